// =============================================================================
// samcut - Flag Decoder
// =============================================================================
//
// This package decodes the SAM FLAG integer into its 12 named boolean
// attributes. The bit layout is the one defined by the SAM specification and
// mirrored by the biogo/hts sam.Flags constants:
//
//   bit  mask   name            sam.Flags
//   ---  -----  --------------  -------------
//   0    0x001  paired          Paired
//   1    0x002  proper_pair     ProperPair
//   2    0x004  unmap           Unmapped
//   3    0x008  munmap          MateUnmapped
//   4    0x010  reverse         Reverse
//   5    0x020  mreverse        MateReverse
//   6    0x040  read1           Read1
//   7    0x080  read2           Read2
//   8    0x100  secondary       Secondary
//   9    0x200  qcfail          QCFail
//   10   0x400  dup             Duplicate
//   11   0x800  supplementary   Supplementary
//
// Any integer is a legal input. Bits above the 12th are ignored.
//
// =============================================================================

package samflag

import (
	"strings"

	"github.com/biogo/hts/sam"
)

// =============================================================================
// CANONICAL NAMES
// =============================================================================

// Count is the number of named flag bits.
const Count = 12

// Mask covers the 12 named bits.
const Mask = 1<<Count - 1

// Names lists the flag names in canonical order, least-significant bit first.
// The order also governs the output order of Bits.String.
var Names = [Count]string{
	"paired",
	"proper_pair",
	"unmap",
	"munmap",
	"reverse",
	"mreverse",
	"read1",
	"read2",
	"secondary",
	"qcfail",
	"dup",
	"supplementary",
}

// masks holds the biogo flag constant for each canonical position.
var masks = [Count]sam.Flags{
	sam.Paired,
	sam.ProperPair,
	sam.Unmapped,
	sam.MateUnmapped,
	sam.Reverse,
	sam.MateReverse,
	sam.Read1,
	sam.Read2,
	sam.Secondary,
	sam.QCFail,
	sam.Duplicate,
	sam.Supplementary,
}

// index maps a flag name to its bit position.
var index = func() map[string]int {
	m := make(map[string]int, Count)
	for i, name := range Names {
		m[name] = i
	}
	return m
}()

// =============================================================================
// DECODED FLAGS
// =============================================================================

// Bits is a decoded FLAG value: 12 booleans in canonical order.
type Bits [Count]bool

// Decode splits v into its 12 named bits.
func Decode(v int32) Bits {
	f := sam.Flags(uint32(v) & Mask)

	var b Bits
	for i, m := range masks {
		b[i] = f&m != 0
	}
	return b
}

// Value returns the bit for a flag name. The second result is false when name
// is not a flag name.
func (b Bits) Value(name string) (set bool, ok bool) {
	i, ok := index[name]
	if !ok {
		return false, false
	}
	return b[i], true
}

// Set returns the names of the set bits in canonical order.
func (b Bits) Set() []string {
	var names []string
	for i, set := range b {
		if set {
			names = append(names, Names[i])
		}
	}
	return names
}

// String joins the names of the set bits with commas. It returns an empty
// string when no bit is set.
func (b Bits) String() string {
	return strings.Join(b.Set(), ",")
}

// Flags converts the bits back to a biogo sam.Flags value.
func (b Bits) Flags() sam.Flags {
	var f sam.Flags
	for i, set := range b {
		if set {
			f |= masks[i]
		}
	}
	return f
}

// Encode returns the integer whose low 12 bits are b.
func (b Bits) Encode() int32 {
	return int32(b.Flags())
}

// FromNames rebuilds Bits from a list of flag names. Unknown names are ignored.
func FromNames(names []string) Bits {
	var b Bits
	for _, name := range names {
		if i, ok := index[name]; ok {
			b[i] = true
		}
	}
	return b
}
