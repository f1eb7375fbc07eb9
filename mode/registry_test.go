package mode

import (
	"testing"
)

func TestRegistryAssignsBitsInOrder(t *testing.T) {
	reg := NewRegistry()

	first := reg.Register("strafe")
	second := reg.Register("slide")

	if first != 4 {
		t.Fatalf("expected first custom mode on bit 4, got %d", first)
	}
	if second != 5 {
		t.Fatalf("expected second custom mode on bit 5, got %d", second)
	}

	bit, ok := reg.Bit("strafe")
	if !ok || bit != first {
		t.Fatalf("expected lookup to return bit %d, got %d (ok=%v)", first, bit, ok)
	}
}

func TestRegistryEncodeDecodeRoundTrip(t *testing.T) {
	reg := NewRegistry()
	reg.Register("strafe")
	reg.Register("slide")

	names := reg.Names()
	// Every combination of the registered flags must survive a round trip.
	for mask := 0; mask < 1<<len(names); mask++ {
		states := make(map[string]bool, len(names))
		for i, name := range names {
			states[name] = mask&(1<<i) != 0
		}

		got := reg.Decode(reg.Encode(states))
		for name, want := range states {
			if got[name] != want {
				t.Fatalf("flag %q: expected %v after round trip of %v, got %v", name, want, states, got[name])
			}
		}
	}
}

func TestRegistryDecodeIgnoresUnknownBits(t *testing.T) {
	reg := NewRegistry()
	reg.Register("strafe")

	// Reserved bits 2 and 3 and the unassigned custom bits are set.
	states := reg.Decode(0b1110_1100)
	if states["jump"] || states["sneak"] || states["strafe"] {
		t.Fatalf("expected no known flag set, got %v", states)
	}
}

func TestRegistryDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected duplicate registration to panic")
		}
	}()

	reg := NewRegistry()
	reg.Register("strafe")
	reg.Register("strafe")
}

func TestRegistryOverflowPanics(t *testing.T) {
	reg := NewRegistry()
	reg.Register("a")
	reg.Register("b")
	reg.Register("c")
	reg.Register("d")

	defer func() {
		if recover() == nil {
			t.Fatal("expected fifth custom mode to panic")
		}
	}()
	reg.Register("e")
}

func TestParamsValidate(t *testing.T) {
	if err := DefaultWalk().Validate(); err != nil {
		t.Fatalf("expected default walk params to validate, got %v", err)
	}
	if err := DefaultStrafe().Validate(); err != nil {
		t.Fatalf("expected default strafe params to validate, got %v", err)
	}

	bad := DefaultWalk()
	bad.MaxSpeed = -1
	if err := bad.Validate(); err == nil {
		t.Fatal("expected negative max speed to be rejected")
	}
}
