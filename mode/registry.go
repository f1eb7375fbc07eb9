package mode

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/predmove/predmove/assert"
	"github.com/predmove/predmove/utils"
)

// Bit positions inside the single compressed flag byte sent with every move.
// The layout is fixed for the lifetime of a session: the first four bits carry
// the base locomotion intents, the remaining four are handed out to registered
// movement modes in registration order.
const (
	BitJump uint8 = iota
	BitSneak
	bitReserved1
	bitReserved2
	bitFirstCustom
)

const flagBits = 8

// Registry maps movement mode names to their bit position in the compressed
// flag byte. Registration order determines bit assignment, so both sides of a
// connection must register modes in the same order.
type Registry struct {
	byName     *orderedmap.OrderedMap[string, uint8]
	nextCustom uint8
}

// NewRegistry returns a registry with the base intents pre-bound.
func NewRegistry() *Registry {
	r := &Registry{
		byName:     orderedmap.NewOrderedMap[string, uint8](),
		nextCustom: bitFirstCustom,
	}
	r.byName.Set("jump", BitJump)
	r.byName.Set("sneak", BitSneak)
	return r
}

// Register assigns the next free custom bit to the named mode and returns it.
// Running out of bits is a configuration fault, not a runtime condition: it
// panics so that a misconfigured registry fails at startup.
func (r *Registry) Register(name string) uint8 {
	_, exists := r.byName.Get(name)
	assert.IsTrue(!exists, "mode %q registered twice", name)
	assert.IsTrue(r.nextCustom < flagBits, "no flag bits left for mode %q (max %d flags per byte)", name, flagBits)

	bit := r.nextCustom
	r.nextCustom++
	r.byName.Set(name, bit)
	return bit
}

// Bit returns the bit position of the named flag.
func (r *Registry) Bit(name string) (uint8, bool) {
	return r.byName.Get(name)
}

// Names returns the registered flag names in bit order.
func (r *Registry) Names() []string {
	names := make([]string, 0, r.byName.Len())
	for el := r.byName.Front(); el != nil; el = el.Next() {
		names = append(names, el.Key)
	}
	return names
}

// Encode packs the named boolean flags into a single byte. Names not present
// in the registry are ignored.
func (r *Registry) Encode(states map[string]bool) byte {
	var flags byte
	for el := r.byName.Front(); el != nil; el = el.Next() {
		if states[el.Key] {
			flags = utils.WithFlag(flags, el.Value, true)
		}
	}
	return flags
}

// Decode unpacks a flag byte into named boolean flags. It is the exact
// inverse of Encode for every representable combination; unknown or reserved
// bits are ignored for forward compatibility.
func (r *Registry) Decode(flags byte) map[string]bool {
	states := make(map[string]bool, r.byName.Len())
	for el := r.byName.Front(); el != nil; el = el.Next() {
		states[el.Key] = utils.HasFlag(flags, el.Value)
	}
	return states
}
