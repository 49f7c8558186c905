package alpinelib

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/AlpineLab/alpinelib/alnp"
)

// RequestBuilder turns requested capability names and a nonce into a
// discovery request. The default is alnp.BuildDiscoveryRequest.
type RequestBuilder func(requested []string, nonce []byte) (*alnp.DiscoveryRequest, error)

// DiscoverOption adjusts a single Discover call.
type DiscoverOption func(*discoverConfig)

type discoverConfig struct {
	nonce []byte
}

// WithNonce supplies the discovery nonce instead of drawing a fresh one from
// the client's random source.
func WithNonce(nonce []byte) DiscoverOption {
	return func(dc *discoverConfig) {
		dc.nonce = append([]byte(nil), nonce...)
	}
}

// Discover sends one discovery request for the given capability names to the
// remote endpoint and blocks for a single reply, bounded by the configured
// timeout and the context, whichever expires first. The reply is decoded into
// a generic mapping and returned as-is; no schema is applied beyond adopting
// a granted session id. Exactly one request/response pair per call, no retry.
//
// A timeout surfaces as an error satisfying errors.Is(err,
// os.ErrDeadlineExceeded); a canceled context surfaces as ctx.Err().
// Concurrent Discover calls serialize, the socket carries one exchange at a
// time.
func (c *Client) Discover(ctx context.Context, requested []string, opts ...DiscoverOption) (map[string]any, error) {
	if c.isClosed() {
		return nil, ErrClosed
	}

	var dc discoverConfig
	for _, opt := range opts {
		opt(&dc)
	}

	nonce := dc.nonce
	if nonce == nil {
		nonce = make([]byte, alnp.NonceSize)
		if _, err := io.ReadFull(c.rnd, nonce); err != nil {
			return nil, fmt.Errorf("generate nonce: %w", err)
		}
	}

	req, err := c.build(requested, nonce)
	if err != nil {
		return nil, err
	}
	if req.Device == nil {
		req.Device = c.id
	}

	buf, err := c.codec.Encode(req)
	if err != nil {
		return nil, err
	}

	c.xchgLk.Lock()
	defer c.xchgLk.Unlock()

	if c.isClosed() {
		return nil, ErrClosed
	}

	if err := c.sendTo(buf, c.remote); err != nil {
		return nil, err
	}

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.sock.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("arm receive deadline: %w", err)
	}

	// context cancellation aborts the blocking read by expiring the deadline
	stop := context.AfterFunc(ctx, func() {
		c.sock.SetReadDeadline(time.Now())
	})
	defer stop()

	rbuf := make([]byte, alnp.MaxDatagram)
	n, addr, err := c.sock.ReadFromUDP(rbuf)
	if err != nil {
		if cerr := ctx.Err(); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("receive discovery reply: %w", err)
	}

	reply, err := alnp.DecodeReply(c.codec, rbuf[:n])
	if err != nil {
		return nil, err
	}

	if dev := alnp.ReplyDevice(reply); dev != nil {
		c.rememberDevice(addr, dev)
	}
	if sess := alnp.ReplySession(reply); sess != "" {
		c.adoptSession(sess)
	}

	c.logf("discovery reply from %s (%d bytes)", addr, n)
	c.emit(EventDiscovered)

	return reply, nil
}
