package config

import (
	"fmt"
	"time"
)

// GRPCClientConfig адреса удаленного хранилища.
type GRPCClientConfig struct {
	AuthService    GRPCServiceConfig `env-prefix:"NOTESYNC_GRPC_AUTH_"`
	NotesService   GRPCServiceConfig `env-prefix:"NOTESYNC_GRPC_NOTES_"`
	RequestTimeout time.Duration     `env:"NOTESYNC_GRPC_REQUEST_TIMEOUT" env-default:"5s"`
}

// GRPCServiceConfig адрес одного gRPC сервиса.
type GRPCServiceConfig struct {
	Host           string        `env:"HOST" env-default:"localhost"`
	Port           int           `env:"PORT" env-default:"50051"`
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT" env-default:"5s"`
}

// GetAddress возвращает host:port.
func (c *GRPCServiceConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
