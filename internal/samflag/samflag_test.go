package samflag

import (
	"math"
	"reflect"
	"testing"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name string
		in   int32
		set  []string
	}{
		{name: "zero", in: 0, set: nil},
		{name: "paired only", in: 1, set: []string{"paired"}},
		{
			name: "typical read1",
			in:   115,
			set:  []string{"paired", "proper_pair", "reverse", "mreverse", "read1"},
		},
		{name: "supplementary", in: 0x800, set: []string{"supplementary"}},
		{name: "bits above 12th ignored", in: 0x1000 | 0x4, set: []string{"unmap"}},
		{name: "negative one sets all", in: -1, set: Names[:]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(tt.in).Set()
			if !reflect.DeepEqual(got, tt.set) {
				t.Errorf("Decode(%d).Set() = %v, want %v", tt.in, got, tt.set)
			}
		})
	}
}

func TestStringCanonicalOrder(t *testing.T) {
	// dup (0x400) before read2 (0x80) in input order terms must still print read2 first
	b := Decode(0x400 | 0x80)
	if got, want := b.String(), "read2,dup"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := Decode(0).String(); got != "" {
		t.Errorf("String() of zero flag = %q, want empty", got)
	}
}

func TestValue(t *testing.T) {
	b := Decode(115)

	set, ok := b.Value("read1")
	if !ok || !set {
		t.Errorf("Value(read1) = %v, %v; want true, true", set, ok)
	}
	set, ok = b.Value("read2")
	if !ok || set {
		t.Errorf("Value(read2) = %v, %v; want false, true", set, ok)
	}
	if _, ok := b.Value("qname"); ok {
		t.Error("Value(qname) reported a flag name")
	}
}

func TestRoundTrip(t *testing.T) {
	values := []int32{0, 1, 2, 83, 99, 115, 147, 163, 256, 2048, 4095, 4096, 65535, -1, -4096, math.MaxInt32, math.MinInt32}
	for v := int32(0); v < 1<<13; v++ {
		values = append(values, v)
	}

	for _, v := range values {
		b := Decode(v)
		again := FromNames(b.Set())
		if again != b {
			t.Fatalf("FromNames(Decode(%d).Set()) = %v, want %v", v, again, b)
		}
		if got, want := again.Encode(), v&Mask; got != want {
			t.Fatalf("Encode() after round trip of %d = %d, want %d", v, got, want)
		}
	}
}

func TestValueUnknownName(t *testing.T) {
	for _, name := range []string{"flags", "n", "qname", ""} {
		if _, ok := Decode(-1).Value(name); ok {
			t.Errorf("Value(%q) ok = true", name)
		}
	}
}
