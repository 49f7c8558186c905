package alpinelib

import (
	"errors"
	"fmt"

	"github.com/AlpineLab/alpinelib/alnp"
	"github.com/google/uuid"
)

// StreamProfile describes a logical stream configuration before compilation:
// the playback mode, the channel value format, the frame rate and optional
// named channel groups.
type StreamProfile struct {
	Mode   string              `cbor:"mode"`
	Format alnp.ChannelFormat  `cbor:"fmt"`
	RateHz uint32              `cbor:"rate"`
	Groups map[string][]uint16 `cbor:"grp,omitempty"`
}

// AutoProfile returns the canonical default profile used when StartStream is
// called without an explicit one.
func AutoProfile() *StreamProfile {
	return &StreamProfile{
		Mode:   "auto",
		Format: alnp.FormatU8,
		RateHz: 30,
	}
}

// CompiledProfile is the outcome of profile compilation: the runtime config
// id plus the profile it was derived from.
type CompiledProfile struct {
	ConfigID string
	Profile  *StreamProfile
}

// Compiler turns a stream profile into its runtime configuration identifier.
// Compilation must be deterministic, equal profiles yield equal ids.
type Compiler interface {
	Compile(p *StreamProfile) (*CompiledProfile, error)
}

// config ids live in their own UUIDv5 namespace
var profileNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("alnp:profile"))

// profileCodec always uses the canonical encoding, independently of the
// client's wire codec, so config ids stay stable across codec swaps.
var profileCodec = alnp.NewCodec()

type profileCompiler struct{}

func (profileCompiler) Compile(p *StreamProfile) (*CompiledProfile, error) {
	if p == nil {
		return nil, errors.New("alpinelib: nil stream profile")
	}
	enc, err := profileCodec.Encode(p)
	if err != nil {
		return nil, err
	}
	id := uuid.NewSHA1(profileNamespace, enc)
	return &CompiledProfile{ConfigID: id.String(), Profile: p}, nil
}

// CompileProfile compiles a profile with the default deterministic compiler.
func CompileProfile(p *StreamProfile) (*CompiledProfile, error) {
	return profileCompiler{}.Compile(p)
}

// StartStream compiles the profile (AutoProfile when nil) into a runtime
// config id, stores it as the session's active configuration and returns it.
// This is the only operation that mutates the active config id, and it sends
// no datagram.
func (c *Client) StartStream(profile *StreamProfile) (string, error) {
	if c.isClosed() {
		return "", ErrClosed
	}
	if profile == nil {
		profile = AutoProfile()
	}

	cp, err := c.compile.Compile(profile)
	if err != nil {
		return "", fmt.Errorf("compile stream profile: %w", err)
	}

	c.sessLk.Lock()
	c.configID = cp.ConfigID
	c.sessLk.Unlock()

	c.logf("stream configured as %s (mode %s)", cp.ConfigID, profile.Mode)
	c.emit(EventStream)

	return cp.ConfigID, nil
}

// Frame builds a frame envelope pre-stamped with the active stream config id,
// ready for SendFrame.
func (c *Client) Frame(format alnp.ChannelFormat, channels []uint16) *alnp.FrameEnvelope {
	f := alnp.NewFrame(format, channels)
	f.ConfigID = c.ConfigID()
	return f
}
