package alnp

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// ChannelFormat selects the value width of the channels carried by a frame.
type ChannelFormat uint8

const (
	FormatU8  ChannelFormat = 0x01 // channel values are 0..255
	FormatU16 ChannelFormat = 0x02 // channel values are 0..65535
)

func (f ChannelFormat) String() string {
	switch f {
	case FormatU8:
		return "u8"
	case FormatU16:
		return "u16"
	default:
		return fmt.Sprintf("format(0x%02x)", uint8(f))
	}
}

// FrameEnvelope is one data-plane message: a snapshot of channel values for a
// stream. ConfigID correlates the frame with the stream configuration the
// values were produced for; Groups optionally overrides named channel groups
// for this frame only.
type FrameEnvelope struct {
	Version  uint8               `cbor:"v"`
	Kind     Kind                `cbor:"t"`
	Seq      uint64              `cbor:"seq,omitempty"`
	ConfigID string              `cbor:"cfg,omitempty"`
	Format   ChannelFormat       `cbor:"fmt"`
	Channels []uint16            `cbor:"ch"`
	Priority uint8               `cbor:"prio,omitempty"`
	Groups   map[string][]uint16 `cbor:"grp,omitempty"`
	Metadata map[string]any      `cbor:"meta,omitempty"`
}

// NewFrame builds a frame envelope carrying the given channel values.
func NewFrame(format ChannelFormat, channels []uint16) *FrameEnvelope {
	return &FrameEnvelope{
		Version:  Version,
		Kind:     KindFrame,
		Format:   format,
		Channels: channels,
	}
}

func (f *FrameEnvelope) Validate() error {
	if f.Version != Version {
		return fmt.Errorf("%w: version %d", ErrInvalidEnvelope, f.Version)
	}
	if f.Kind != KindFrame {
		return fmt.Errorf("%w: kind %s", ErrInvalidEnvelope, f.Kind)
	}
	switch f.Format {
	case FormatU8, FormatU16:
	default:
		return fmt.Errorf("%w: unknown channel format %s", ErrInvalidEnvelope, f.Format)
	}
	if len(f.Channels) == 0 {
		return fmt.Errorf("%w: empty channel list", ErrInvalidEnvelope)
	}
	if f.Format == FormatU8 {
		for i, v := range f.Channels {
			if v > 0xff {
				return fmt.Errorf("%w: channel %d value %d exceeds u8 format", ErrInvalidEnvelope, i, v)
			}
		}
	}
	return nil
}

// ControlOp names a control-plane operation.
type ControlOp string

const (
	OpKeepalive   ControlOp = "keepalive"
	OpApplyConfig ControlOp = "apply_config"
	OpStopStream  ControlOp = "stop_stream"
	OpIdentify    ControlOp = "identify"
)

// ControlEnvelope is one control-plane message. Seq orders envelopes within a
// session; Session and Device correlate the envelope with the issuing client.
// Ops outside the constants above pass through untouched so devices can
// accept operations this library does not know about.
type ControlEnvelope struct {
	Version uint8           `cbor:"v"`
	Kind    Kind            `cbor:"t"`
	Seq     uint64          `cbor:"seq,omitempty"`
	Op      ControlOp       `cbor:"op"`
	Session string          `cbor:"sess,omitempty"`
	Device  string          `cbor:"dev,omitempty"`
	Payload cbor.RawMessage `cbor:"body,omitempty"`
}

// NewControl builds a control envelope for the given operation.
func NewControl(op ControlOp) *ControlEnvelope {
	return &ControlEnvelope{
		Version: Version,
		Kind:    KindControl,
		Op:      op,
	}
}

func (e *ControlEnvelope) Validate() error {
	if e.Version != Version {
		return fmt.Errorf("%w: version %d", ErrInvalidEnvelope, e.Version)
	}
	if e.Kind != KindControl {
		return fmt.Errorf("%w: kind %s", ErrInvalidEnvelope, e.Kind)
	}
	if e.Op == "" {
		return fmt.Errorf("%w: empty op", ErrInvalidEnvelope)
	}
	return nil
}
