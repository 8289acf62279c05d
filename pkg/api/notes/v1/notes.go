// Package notesv1 описывает сервис заметок notes.v1.NoteService: сообщения,
// клиент и регистрацию сервера. Сообщения передаются кодеком cbor.
package notesv1

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"notesync/pkg/api/codec"
)

// ServiceName полное имя сервиса.
const ServiceName = "notes.v1.NoteService"

// Полные имена методов.
const (
	NoteServiceListNotesFullMethodName  = "/" + ServiceName + "/ListNotes"
	NoteServiceCreateNoteFullMethodName = "/" + ServiceName + "/CreateNote"
	NoteServiceUpdateNoteFullMethodName = "/" + ServiceName + "/UpdateNote"
	NoteServiceDeleteNoteFullMethodName = "/" + ServiceName + "/DeleteNote"
)

// Note заметка в том виде, в каком ее хранит удаленное хранилище.
type Note struct {
	NoteID    string    `cbor:"note_id"`
	OwnerID   string    `cbor:"owner_id"`
	Text      string    `cbor:"text"`
	CreatedAt time.Time `cbor:"created_at"`
	UpdatedAt time.Time `cbor:"updated_at"`
}

// ListNotesRequest запрос списка заметок владельца.
type ListNotesRequest struct {
	OwnerID string `cbor:"owner_id"`
}

// ListNotesResponse заметки в порядке создания.
type ListNotesResponse struct {
	Notes []*Note `cbor:"notes"`
}

// CreateNoteRequest запрос на создание заметки.
type CreateNoteRequest struct {
	OwnerID string `cbor:"owner_id"`
	Text    string `cbor:"text"`
}

// UpdateNoteRequest запрос на замену текста заметки.
type UpdateNoteRequest struct {
	NoteID string `cbor:"note_id"`
	Text   string `cbor:"text"`
}

// DeleteNoteRequest запрос на удаление заметки.
type DeleteNoteRequest struct {
	NoteID string `cbor:"note_id"`
}

// NoteResponse ответ с одной заметкой.
type NoteResponse struct {
	Note *Note `cbor:"note"`
}

// Empty пустой ответ.
type Empty struct{}

// NoteServiceClient клиентский интерфейс сервиса заметок.
type NoteServiceClient interface {
	ListNotes(ctx context.Context, in *ListNotesRequest, opts ...grpc.CallOption) (*ListNotesResponse, error)
	CreateNote(ctx context.Context, in *CreateNoteRequest, opts ...grpc.CallOption) (*NoteResponse, error)
	UpdateNote(ctx context.Context, in *UpdateNoteRequest, opts ...grpc.CallOption) (*NoteResponse, error)
	DeleteNote(ctx context.Context, in *DeleteNoteRequest, opts ...grpc.CallOption) (*Empty, error)
}

type noteServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewNoteServiceClient создает клиента поверх соединения.
func NewNoteServiceClient(cc grpc.ClientConnInterface) NoteServiceClient {
	return &noteServiceClient{cc: cc}
}

func withCodec(opts []grpc.CallOption) []grpc.CallOption {
	return append([]grpc.CallOption{grpc.CallContentSubtype(codec.Name)}, opts...)
}

func (c *noteServiceClient) ListNotes(ctx context.Context, in *ListNotesRequest, opts ...grpc.CallOption) (*ListNotesResponse, error) {
	out := new(ListNotesResponse)
	if err := c.cc.Invoke(ctx, NoteServiceListNotesFullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *noteServiceClient) CreateNote(ctx context.Context, in *CreateNoteRequest, opts ...grpc.CallOption) (*NoteResponse, error) {
	out := new(NoteResponse)
	if err := c.cc.Invoke(ctx, NoteServiceCreateNoteFullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *noteServiceClient) UpdateNote(ctx context.Context, in *UpdateNoteRequest, opts ...grpc.CallOption) (*NoteResponse, error) {
	out := new(NoteResponse)
	if err := c.cc.Invoke(ctx, NoteServiceUpdateNoteFullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *noteServiceClient) DeleteNote(ctx context.Context, in *DeleteNoteRequest, opts ...grpc.CallOption) (*Empty, error) {
	out := new(Empty)
	if err := c.cc.Invoke(ctx, NoteServiceDeleteNoteFullMethodName, in, out, withCodec(opts)...); err != nil {
		return nil, err
	}
	return out, nil
}

// NoteServiceServer серверный интерфейс сервиса заметок.
type NoteServiceServer interface {
	ListNotes(context.Context, *ListNotesRequest) (*ListNotesResponse, error)
	CreateNote(context.Context, *CreateNoteRequest) (*NoteResponse, error)
	UpdateNote(context.Context, *UpdateNoteRequest) (*NoteResponse, error)
	DeleteNote(context.Context, *DeleteNoteRequest) (*Empty, error)
}

// UnimplementedNoteServiceServer отвечает Unimplemented на все методы.
type UnimplementedNoteServiceServer struct{}

func (UnimplementedNoteServiceServer) ListNotes(context.Context, *ListNotesRequest) (*ListNotesResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListNotes not implemented")
}

func (UnimplementedNoteServiceServer) CreateNote(context.Context, *CreateNoteRequest) (*NoteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CreateNote not implemented")
}

func (UnimplementedNoteServiceServer) UpdateNote(context.Context, *UpdateNoteRequest) (*NoteResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method UpdateNote not implemented")
}

func (UnimplementedNoteServiceServer) DeleteNote(context.Context, *DeleteNoteRequest) (*Empty, error) {
	return nil, status.Error(codes.Unimplemented, "method DeleteNote not implemented")
}

// RegisterNoteServiceServer регистрирует реализацию на сервере.
func RegisterNoteServiceServer(s grpc.ServiceRegistrar, srv NoteServiceServer) {
	s.RegisterService(&NoteServiceDesc, srv)
}

func unary[Req any, Resp any](
	fullMethod string,
	call func(NoteServiceServer, context.Context, *Req) (Resp, error),
) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(NoteServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(NoteServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// NoteServiceDesc описание сервиса для grpc.Server.
var NoteServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*NoteServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "ListNotes",
			Handler:    unary(NoteServiceListNotesFullMethodName, NoteServiceServer.ListNotes),
		},
		{
			MethodName: "CreateNote",
			Handler:    unary(NoteServiceCreateNoteFullMethodName, NoteServiceServer.CreateNote),
		},
		{
			MethodName: "UpdateNote",
			Handler:    unary(NoteServiceUpdateNoteFullMethodName, NoteServiceServer.UpdateNote),
		},
		{
			MethodName: "DeleteNote",
			Handler:    unary(NoteServiceDeleteNoteFullMethodName, NoteServiceServer.DeleteNote),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "notes/v1/notes.cbor",
}
