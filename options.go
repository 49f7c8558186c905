package alpinelib

import (
	"io"
	"time"

	"github.com/AlpineLab/alpinelib/alnp"
)

// Option configures a Client at construction time.
type Option func(*Client)

// WithLocalAddr sets the local endpoint to bind, as host:port. The default
// binds every interface on an ephemeral port.
func WithLocalAddr(addr string) Option {
	return func(c *Client) {
		c.localStr = addr
	}
}

// WithTimeout sets the deadline applied to blocking receive operations.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRandom replaces the source discovery nonces are drawn from. The default
// is crypto/rand; tests substitute a deterministic reader.
func WithRandom(r io.Reader) Option {
	return func(c *Client) {
		c.rnd = r
	}
}

// WithIdentity sets the device identity attached to outgoing discovery
// requests and control envelopes.
func WithIdentity(id *alnp.DeviceIdentity) Option {
	return func(c *Client) {
		c.id = id
	}
}

// WithStore attaches a credentials store. Unless WithIdentity is also given,
// the client derives its device identity from the store's first signing key.
func WithStore(s Store) Option {
	return func(c *Client) {
		c.store = s
	}
}

// WithRequestBuilder replaces the discovery request builder.
func WithRequestBuilder(b RequestBuilder) Option {
	return func(c *Client) {
		c.build = b
	}
}

// WithCodec replaces the wire codec.
func WithCodec(codec alnp.Codec) Option {
	return func(c *Client) {
		c.codec = codec
	}
}

// WithCompiler replaces the stream profile compiler.
func WithCompiler(comp Compiler) Option {
	return func(c *Client) {
		c.compile = comp
	}
}

// WithKeepalive sets the interval between keepalive control envelopes sent
// once a session is adopted. Zero disables the keepalive loop.
func WithKeepalive(d time.Duration) Option {
	return func(c *Client) {
		c.keepalive = d
	}
}
