// Package codec регистрирует CBOR как кодек сообщений gRPC.
//
// Сообщения сервисов описаны обычными Go-структурами с тегами `cbor`,
// поэтому клиенты и серверы вызывают методы с grpc.CallContentSubtype(Name).
package codec

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"google.golang.org/grpc/encoding"
)

// Name имя кодека и content-subtype.
const Name = "cbor"

// Codec реализует encoding.Codec поверх fxamacker/cbor.
type Codec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

// New создает кодек с RFC3339Nano для времени и строгой проверкой дубликатов ключей.
func New() (*Codec, error) {
	enc, err := cbor.EncOptions{
		Time: cbor.TimeRFC3339Nano,
		Sort: cbor.SortCanonical,
	}.EncMode()
	if err != nil {
		return nil, fmt.Errorf("cbor enc mode: %w", err)
	}

	dec, err := cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		return nil, fmt.Errorf("cbor dec mode: %w", err)
	}

	return &Codec{enc: enc, dec: dec}, nil
}

// Marshal кодирует сообщение.
func (c *Codec) Marshal(v any) ([]byte, error) {
	data, err := c.enc.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("cbor marshal %T: %w", v, err)
	}
	return data, nil
}

// Unmarshal декодирует сообщение.
func (c *Codec) Unmarshal(data []byte, v any) error {
	if err := c.dec.Unmarshal(data, v); err != nil {
		return fmt.Errorf("cbor unmarshal %T: %w", v, err)
	}
	return nil
}

// Name возвращает имя кодека.
func (c *Codec) Name() string {
	return Name
}

func init() {
	c, err := New()
	if err != nil {
		panic(err)
	}
	encoding.RegisterCodec(c)
}
