package alpinelib

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/AlpineLab/alpinelib/alnp"
)

const (
	// DefaultTimeout bounds blocking receive operations.
	DefaultTimeout = 3 * time.Second

	// DefaultKeepalive is the interval between keepalive control envelopes
	// once a session has been adopted.
	DefaultKeepalive = 5 * time.Second
)

// ErrClosed is returned by operations invoked after Close.
var ErrClosed = errors.New("alpinelib: client is closed")

// Client holds a single UDP endpoint used to talk to an Alpine device,
// together with the session state adopted from it.
type Client struct {
	seq    uint64 // atomic control sequence counter, kept first for 64-bit alignment
	closed uint32 // atomic, 1 once Close ran

	sock      *net.UDPConn
	remote    *net.UDPAddr // default send target
	localStr  string       // requested bind endpoint, "" for any/ephemeral
	timeout   time.Duration
	keepalive time.Duration
	rnd       io.Reader // nonce source
	codec     alnp.Codec
	build     RequestBuilder
	compile   Compiler
	store     Store
	id        *alnp.DeviceIdentity

	xchgLk sync.Mutex // serializes the discovery exchange on the socket

	sessLk    sync.Mutex
	sessionID string
	configID  string
	kaStop    chan struct{} // closed to stop the keepalive loop

	peersLk sync.RWMutex
	peers   map[string]*peerEntry
}

// New creates a Client bound to a local endpoint and targeting the given
// remote device endpoint (host:port). No datagram is sent until an operation
// is invoked. Fails with a wrapped bind error if the local endpoint is
// unavailable.
func New(remote string, opts ...Option) (*Client, error) {
	c := &Client{
		timeout:   DefaultTimeout,
		keepalive: DefaultKeepalive,
		rnd:       rand.Reader,
		codec:     alnp.NewCodec(),
		build:     alnp.BuildDiscoveryRequest,
		compile:   profileCompiler{},
		peers:     make(map[string]*peerEntry),
	}

	for _, opt := range opts {
		opt(c)
	}

	var err error
	c.remote, err = resolveEndpoint(remote)
	if err != nil {
		return nil, fmt.Errorf("invalid remote endpoint: %w", err)
	}

	var local *net.UDPAddr
	if c.localStr != "" {
		local, err = resolveEndpoint(c.localStr)
		if err != nil {
			return nil, fmt.Errorf("invalid local endpoint: %w", err)
		}
	}

	// a nil local address binds every interface on an ephemeral port
	c.sock, err = net.ListenUDP("udp4", local)
	if err != nil {
		return nil, fmt.Errorf("bind local endpoint: %w", err)
	}

	if c.id == nil && c.store != nil {
		signer := c.store.Keychain().FirstSigner()
		if signer == nil {
			c.sock.Close()
			return nil, errors.New("alpinelib: credentials store has no signing key")
		}
		c.id, err = IdentityFromPublic(signer.Public())
		if err != nil {
			c.sock.Close()
			return nil, fmt.Errorf("derive device identity: %w", err)
		}
	}

	c.logf("client bound to %s, device endpoint %s", c.sock.LocalAddr(), c.remote)

	return c, nil
}

func (c *Client) logf(msg string, args ...any) {
	slog.Debug("alpine client: "+fmt.Sprintf(msg, args...), "event", "alpine:client")
}

func (c *Client) isClosed() bool {
	return atomic.LoadUint32(&c.closed) != 0
}

// sendTo writes one datagram. The socket is safe for concurrent writes, so
// callers do not hold any lock here.
func (c *Client) sendTo(buf []byte, addr *net.UDPAddr) error {
	if len(buf) > alnp.MaxDatagram {
		return fmt.Errorf("%w: payload is %d bytes", alnp.ErrTruncated, len(buf))
	}
	if _, err := c.sock.WriteToUDP(buf, addr); err != nil {
		return fmt.Errorf("send to %s: %w", addr, err)
	}
	return nil
}

// Close releases the socket and stops the keepalive loop. Close is
// idempotent; calls after the first return nil without touching the socket.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closed, 0, 1) {
		return nil
	}

	c.sessLk.Lock()
	if c.kaStop != nil {
		close(c.kaStop)
		c.kaStop = nil
	}
	c.sessLk.Unlock()

	c.logf("client closing")
	return c.sock.Close()
}

// SessionID returns the session identifier adopted from the last discovery
// reply that granted one, or "" before that.
func (c *Client) SessionID() string {
	c.sessLk.Lock()
	defer c.sessLk.Unlock()
	return c.sessionID
}

// ConfigID returns the active stream configuration identifier set by
// StartStream, or "" before any stream was started.
func (c *Client) ConfigID() string {
	c.sessLk.Lock()
	defer c.sessLk.Unlock()
	return c.configID
}

// LocalAddr returns the bound local endpoint.
func (c *Client) LocalAddr() net.Addr {
	return c.sock.LocalAddr()
}

// RemoteAddr returns the default remote device endpoint.
func (c *Client) RemoteAddr() net.Addr {
	return c.remote
}
