package alpinelib_test

import (
	"testing"

	"github.com/AlpineLab/alpinelib"
	"github.com/AlpineLab/alpinelib/alnp"
)

func TestCompileProfileDeterministic(t *testing.T) {
	p1 := &alpinelib.StreamProfile{Mode: "live", Format: alnp.FormatU16, RateHz: 44}
	p2 := &alpinelib.StreamProfile{Mode: "live", Format: alnp.FormatU16, RateHz: 44}

	c1, err := alpinelib.CompileProfile(p1)
	if err != nil {
		t.Fatalf("CompileProfile failed: %v", err)
	}
	c2, err := alpinelib.CompileProfile(p2)
	if err != nil {
		t.Fatalf("CompileProfile failed: %v", err)
	}

	if c1.ConfigID == "" {
		t.Fatal("compiled config id is empty")
	}
	if c1.ConfigID != c2.ConfigID {
		t.Errorf("equal profiles compiled to %s and %s", c1.ConfigID, c2.ConfigID)
	}

	p3 := &alpinelib.StreamProfile{Mode: "live", Format: alnp.FormatU16, RateHz: 45}
	c3, err := alpinelib.CompileProfile(p3)
	if err != nil {
		t.Fatalf("CompileProfile failed: %v", err)
	}
	if c3.ConfigID == c1.ConfigID {
		t.Error("different profiles compiled to the same config id")
	}

	if _, err := alpinelib.CompileProfile(nil); err == nil {
		t.Error("CompileProfile accepted a nil profile")
	}
}

func TestStartStream(t *testing.T) {
	c, err := alpinelib.New("127.0.0.1:7411")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	defer c.Close()

	if got := c.ConfigID(); got != "" {
		t.Errorf("ConfigID before any stream = %q, want empty", got)
	}

	// no argument selects the canonical auto profile
	id, err := c.StartStream(nil)
	if err != nil {
		t.Fatalf("StartStream failed: %v", err)
	}
	if id == "" {
		t.Fatal("StartStream returned an empty config id")
	}
	if got := c.ConfigID(); got != id {
		t.Errorf("ConfigID = %q, want %q", got, id)
	}

	auto, err := alpinelib.CompileProfile(alpinelib.AutoProfile())
	if err != nil {
		t.Fatalf("CompileProfile failed: %v", err)
	}
	if id != auto.ConfigID {
		t.Errorf("auto stream id = %s, want %s", id, auto.ConfigID)
	}

	// an explicit profile replaces the active config
	p := &alpinelib.StreamProfile{
		Mode:   "show",
		Format: alnp.FormatU8,
		RateHz: 25,
		Groups: map[string][]uint16{"wash": {1, 2, 3}},
	}
	id2, err := c.StartStream(p)
	if err != nil {
		t.Fatalf("StartStream failed: %v", err)
	}
	if id2 == id {
		t.Error("distinct profile produced the auto config id")
	}
	if got := c.ConfigID(); got != id2 {
		t.Errorf("ConfigID = %q, want %q", got, id2)
	}

	// frames built by the client carry the active config id
	f := c.Frame(alnp.FormatU8, []uint16{9})
	if f.ConfigID != id2 {
		t.Errorf("frame config id = %q, want %q", f.ConfigID, id2)
	}
	if err := f.Validate(); err != nil {
		t.Errorf("client-built frame fails validation: %v", err)
	}
}
