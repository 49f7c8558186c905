package alnp

import (
	"errors"
	"fmt"
)

// Protocol constants
const (
	// Version is the ALNP wire schema version carried in the "v" entry of
	// every envelope.
	Version uint8 = 1

	// MaxDatagram is the largest datagram the protocol exchanges, and the
	// receive buffer size for discovery replies.
	MaxDatagram = 2048

	// NonceSize is the length in bytes of a discovery nonce.
	NonceSize = 32
)

// Kind identifies the envelope type carried in a datagram's "t" entry.
type Kind uint8

const (
	// Discovery (0x0x)
	KindDiscoveryRequest Kind = 0x01
	KindDiscoveryReply   Kind = 0x02

	// Data plane (0x1x)
	KindFrame Kind = 0x10

	// Control plane (0x2x)
	KindControl Kind = 0x20

	// System (0x7x)
	KindError Kind = 0x7f
)

func (k Kind) String() string {
	switch k {
	case KindDiscoveryRequest:
		return "discovery_request"
	case KindDiscoveryReply:
		return "discovery_reply"
	case KindFrame:
		return "frame"
	case KindControl:
		return "control"
	case KindError:
		return "error"
	default:
		return fmt.Sprintf("kind(0x%02x)", uint8(k))
	}
}

var (
	ErrTruncated       = errors.New("alnp: datagram truncated")
	ErrDecode          = errors.New("alnp: malformed payload")
	ErrBadNonce        = errors.New("alnp: invalid nonce length")
	ErrNoCapabilities  = errors.New("alnp: missing capability list")
	ErrInvalidEnvelope = errors.New("alnp: invalid envelope")
)
