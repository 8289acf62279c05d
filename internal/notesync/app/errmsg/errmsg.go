// Package errmsg переводит ошибки удаленных вызовов в сообщения для пользователя.
package errmsg

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"notesync/internal/notesync/resilience"
)

const (
	MsgUnavailable = "Note service is unavailable, try again later"
	MsgTimeout     = "Request timed out"
	MsgCanceled    = "Request was canceled"
	MsgUnexpected  = "Something went wrong, try again"
)

// Describe возвращает сообщение для пользователя. Для клиентских ошибок
// (валидация, авторизация, отсутствие заметки) это сообщение статуса хранилища.
func Describe(err error) string {
	if err == nil {
		return ""
	}

	switch {
	case errors.Is(err, resilience.ErrCircuitOpen):
		return MsgUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return MsgTimeout
	case errors.Is(err, context.Canceled):
		return MsgCanceled
	}

	var withStatus interface{ GRPCStatus() *status.Status }
	if !errors.As(err, &withStatus) {
		return MsgUnexpected
	}

	st := withStatus.GRPCStatus()
	switch st.Code() {
	case codes.Unavailable, codes.ResourceExhausted, codes.Aborted:
		return MsgUnavailable
	case codes.DeadlineExceeded:
		return MsgTimeout
	case codes.Canceled:
		return MsgCanceled
	case codes.Internal, codes.Unknown, codes.Unimplemented, codes.DataLoss:
		return MsgUnexpected
	}

	if st.Message() == "" {
		return MsgUnexpected
	}
	return st.Message()
}
