package alnp

import (
	"fmt"
	"sort"
)

// DiscoveryRequest asks a device to report its capabilities and current
// configuration. Capabilities lists the capability names the caller is
// interested in; Nonce makes each probe unique so a recorded reply cannot be
// mistaken for the answer to a later request.
type DiscoveryRequest struct {
	Version      uint8           `cbor:"v"`
	Kind         Kind            `cbor:"t"`
	Capabilities []string        `cbor:"caps"`
	Nonce        []byte          `cbor:"nonce"`
	Device       *DeviceIdentity `cbor:"dev,omitempty"`
}

// BuildDiscoveryRequest assembles a discovery request from the requested
// capability names and a nonce. The nonce must be exactly NonceSize bytes;
// the capability list may be empty but not nil. Both slices are copied so the
// request stays stable if the caller reuses its buffers.
func BuildDiscoveryRequest(requested []string, nonce []byte) (*DiscoveryRequest, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrBadNonce, len(nonce), NonceSize)
	}
	if requested == nil {
		return nil, ErrNoCapabilities
	}
	// make+copy keeps an empty list non-nil so it reaches the wire as an
	// empty array, not null
	caps := make([]string, len(requested))
	copy(caps, requested)
	return &DiscoveryRequest{
		Version:      Version,
		Kind:         KindDiscoveryRequest,
		Capabilities: caps,
		Nonce:        append([]byte(nil), nonce...),
	}, nil
}

func (r *DiscoveryRequest) Validate() error {
	if r.Version != Version {
		return fmt.Errorf("%w: version %d", ErrInvalidEnvelope, r.Version)
	}
	if r.Kind != KindDiscoveryRequest {
		return fmt.Errorf("%w: kind %s", ErrInvalidEnvelope, r.Kind)
	}
	if len(r.Nonce) != NonceSize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBadNonce, len(r.Nonce), NonceSize)
	}
	if r.Capabilities == nil {
		return ErrNoCapabilities
	}
	return nil
}

// DeviceIdentity names a device on the wire. ID is a UUID string; Name and
// Model are informational.
type DeviceIdentity struct {
	ID    string `cbor:"id"`
	Name  string `cbor:"name,omitempty"`
	Model string `cbor:"model,omitempty"`
}

// CapabilitySet maps capability names to their parameters. A nil parameter
// value means the capability is present without further qualification.
type CapabilitySet map[string]any

// NewCapabilitySet builds a set holding the given names with no parameters.
func NewCapabilitySet(names ...string) CapabilitySet {
	s := make(CapabilitySet, len(names))
	for _, n := range names {
		s[n] = nil
	}
	return s
}

// Has reports whether the set contains the named capability.
func (s CapabilitySet) Has(name string) bool {
	_, ok := s[name]
	return ok
}

// Names returns the capability names in sorted order.
func (s CapabilitySet) Names() []string {
	out := make([]string, 0, len(s))
	for n := range s {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// ReplySession extracts the session identifier a device granted in a decoded
// discovery reply, or "" if the reply carries none.
func ReplySession(reply map[string]any) string {
	if s, ok := reply["session"].(string); ok {
		return s
	}
	return ""
}

// ReplyDevice extracts the device identity advertised in a decoded discovery
// reply, or nil if the reply carries none.
func ReplyDevice(reply map[string]any) *DeviceIdentity {
	m, ok := reply["dev"].(map[string]any)
	if !ok {
		return nil
	}
	dev := &DeviceIdentity{}
	if v, ok := m["id"].(string); ok {
		dev.ID = v
	}
	if dev.ID == "" {
		return nil
	}
	if v, ok := m["name"].(string); ok {
		dev.Name = v
	}
	if v, ok := m["model"].(string); ok {
		dev.Model = v
	}
	return dev
}

// ReplyCapabilities extracts the capability set advertised in a decoded
// discovery reply. A reply without a "caps" map yields an empty set.
func ReplyCapabilities(reply map[string]any) CapabilitySet {
	m, ok := reply["caps"].(map[string]any)
	if !ok {
		return CapabilitySet{}
	}
	s := make(CapabilitySet, len(m))
	for n, params := range m {
		s[n] = params
	}
	return s
}
