package alpinelib

import (
	"fmt"
	"net"
	"sync/atomic"

	"github.com/AlpineLab/alpinelib/alnp"
	"github.com/fxamacker/cbor/v2"
)

// SendFrame serializes the frame envelope and sends one datagram to the
// default remote endpoint. Fire and forget: no acknowledgment, no delivery
// guarantee.
func (c *Client) SendFrame(frame *alnp.FrameEnvelope) error {
	return c.sendFrame(frame, c.remote)
}

// SendFrameTo sends the frame to an explicit destination endpoint instead of
// the default remote one.
func (c *Client) SendFrameTo(frame *alnp.FrameEnvelope, dest string) error {
	addr, err := resolveEndpoint(dest)
	if err != nil {
		return fmt.Errorf("invalid frame destination: %w", err)
	}
	return c.sendFrame(frame, addr)
}

func (c *Client) sendFrame(frame *alnp.FrameEnvelope, addr *net.UDPAddr) error {
	if c.isClosed() {
		return ErrClosed
	}
	if err := frame.Validate(); err != nil {
		return err
	}
	buf, err := c.codec.Encode(frame)
	if err != nil {
		return err
	}
	return c.sendTo(buf, addr)
}

// Control serializes the control envelope and sends one datagram to the
// remote endpoint. Same fire-and-forget contract as SendFrame.
func (c *Client) Control(env *alnp.ControlEnvelope) error {
	if c.isClosed() {
		return ErrClosed
	}
	if err := env.Validate(); err != nil {
		return err
	}
	buf, err := c.codec.Encode(env)
	if err != nil {
		return err
	}
	return c.sendTo(buf, c.remote)
}

// NextControl builds a control envelope carrying the next sequence number,
// the current session id and the client's device id. A non-nil payload is
// encoded and attached as the envelope body. The sequence counter is atomic,
// concurrent callers get distinct increasing numbers.
func (c *Client) NextControl(op alnp.ControlOp, payload any) (*alnp.ControlEnvelope, error) {
	env := alnp.NewControl(op)
	env.Seq = atomic.AddUint64(&c.seq, 1)
	env.Session = c.SessionID()
	if c.id != nil {
		env.Device = c.id.ID
	}
	if payload != nil {
		body, err := c.codec.Encode(payload)
		if err != nil {
			return nil, err
		}
		env.Payload = cbor.RawMessage(body)
	}
	return env, nil
}
