package alnp

import (
	"fmt"
	"reflect"

	"github.com/fxamacker/cbor/v2"
)

// Codec serializes envelopes into datagram payloads and parses payloads back
// into Go values. The client takes it as an interface so tests can substitute
// fakes; CBORCodec is the wire-conformant implementation.
type Codec interface {
	Encode(v any) ([]byte, error)
	Decode(data []byte, v any) error
}

var (
	encMode = mustEncMode()
	decMode = mustDecMode()
)

func mustEncMode() cbor.EncMode {
	em, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return em
}

func mustDecMode() cbor.DecMode {
	// decode nested CBOR maps as map[string]any so discovery replies come out
	// as one uniform generic mapping
	dm, err := cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic(err)
	}
	return dm
}

// CBORCodec encodes envelopes as deterministic CBOR maps.
type CBORCodec struct{}

// NewCodec returns the default wire codec.
func NewCodec() *CBORCodec {
	return &CBORCodec{}
}

func (*CBORCodec) Encode(v any) ([]byte, error) {
	buf, err := encMode.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("alnp: encode %T: %w", v, err)
	}
	return buf, nil
}

func (*CBORCodec) Decode(data []byte, v any) error {
	if err := decMode.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return nil
}

// DecodeReply turns a received discovery reply into a generic key/value map.
// A payload of MaxDatagram bytes or more is rejected as truncated: a read
// that fills the receive buffer cannot be told apart from a longer reply cut
// off by it.
func DecodeReply(c Codec, data []byte) (map[string]any, error) {
	if len(data) >= MaxDatagram {
		return nil, fmt.Errorf("%w: reply fills the %d-byte receive buffer", ErrTruncated, MaxDatagram)
	}
	var m map[string]any
	if err := c.Decode(data, &m); err != nil {
		return nil, err
	}
	return m, nil
}
