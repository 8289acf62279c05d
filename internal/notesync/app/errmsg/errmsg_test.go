package errmsg_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"notesync/internal/notesync/app/errmsg"
	"notesync/internal/notesync/resilience"
)

func TestDescribe(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{
			name: "wrapped validation status",
			err:  fmt.Errorf("failed to create note: %w", status.Error(codes.InvalidArgument, "Note text cannot be empty")),
			want: "Note text cannot be empty",
		},
		{
			name: "not found",
			err:  status.Error(codes.NotFound, "Note not found"),
			want: "Note not found",
		},
		{
			name: "expired session",
			err:  status.Error(codes.Unauthenticated, "Session expired"),
			want: "Session expired",
		},
		{
			name: "unavailable",
			err:  status.Error(codes.Unavailable, "connection error: desc = \"transport: dial tcp\""),
			want: errmsg.MsgUnavailable,
		},
		{name: "deadline status", err: status.Error(codes.DeadlineExceeded, "ctx"), want: errmsg.MsgTimeout},
		{name: "internal", err: status.Error(codes.Internal, "panic in handler"), want: errmsg.MsgUnexpected},
		{name: "empty message", err: status.Error(codes.PermissionDenied, ""), want: errmsg.MsgUnexpected},
		{name: "circuit open", err: resilience.ErrCircuitOpen, want: errmsg.MsgUnavailable},
		{
			name: "canceled during retry",
			err:  fmt.Errorf("%w: %w", resilience.ErrContextCanceled, context.Canceled),
			want: errmsg.MsgCanceled,
		},
		{name: "deadline", err: context.DeadlineExceeded, want: errmsg.MsgTimeout},
		{name: "plain", err: errors.New("boom"), want: errmsg.MsgUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, errmsg.Describe(tt.err))
		})
	}
}
