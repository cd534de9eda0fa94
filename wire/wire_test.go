package wire

import (
	"bytes"
	"testing"
)

func TestPutGetUintRoundTrip(t *testing.T) {
	cases := []struct {
		value uint64
		width int
	}{
		{0, 1}, {255, 1}, {256, 2}, {65535, 2}, {65536, 4},
		{4294967295, 4}, {4294967296, 8}, {1<<64 - 1, 8},
	}
	for _, c := range cases {
		b := PutUint(nil, c.value, c.width)
		if len(b) != c.width {
			t.Fatalf("PutUint(%d,%d): got %d bytes", c.value, c.width, len(b))
		}
		if got := GetUint(b, c.width); got != c.value {
			t.Fatalf("GetUint(PutUint(%d,%d)) = %d", c.value, c.width, got)
		}
	}
}

func TestPutGetIntRoundTrip(t *testing.T) {
	cases := []struct {
		value int64
		width int
	}{
		{0, 1}, {-1, 1}, {127, 1}, {-128, 1},
		{-32768, 2}, {32767, 2},
		{-2147483648, 4}, {2147483647, 4},
		{-1 << 40, 8},
	}
	for _, c := range cases {
		b := PutInt(nil, c.value, c.width)
		if got := GetInt(b, c.width); got != c.value {
			t.Fatalf("GetInt(PutInt(%d,%d)) = %d", c.value, c.width, got)
		}
	}
}

func TestFitsUnsigned(t *testing.T) {
	if !FitsUnsigned(255, 1) {
		t.Fatal("255 should fit in 1 unsigned byte")
	}
	if FitsUnsigned(256, 1) {
		t.Fatal("256 should not fit in 1 unsigned byte")
	}
	if !FitsUnsigned(1<<64-1, 8) {
		t.Fatal("max uint64 should fit in 8 bytes")
	}
}

func TestFitsSigned(t *testing.T) {
	if !FitsSigned(127, 1) || FitsSigned(128, 1) {
		t.Fatal("signed 1-byte boundary at 127/128 is wrong")
	}
	if !FitsSigned(-128, 1) || FitsSigned(-129, 1) {
		t.Fatal("signed 1-byte boundary at -128/-129 is wrong")
	}
}

func TestRecommendedSize(t *testing.T) {
	cases := []struct {
		n      int64
		signed bool
		want   int
	}{
		{0, false, 1},
		{255, false, 1},
		{256, false, 2},
		{65535, false, 2},
		{65536, false, 4},
		{1 << 40, false, 8},
		{0, true, 1},
		{127, true, 1},
		{128, true, 2},
		{-129, true, 2},
	}
	for _, c := range cases {
		got, err := RecommendedSize(c.n, c.signed)
		if err != nil {
			t.Fatalf("RecommendedSize(%d,%v): %v", c.n, c.signed, err)
		}
		if got != c.want {
			t.Fatalf("RecommendedSize(%d,%v) = %d, want %d", c.n, c.signed, got, c.want)
		}
	}
}

func TestRecommendedSizeRejectsNegativeUnsigned(t *testing.T) {
	if _, err := RecommendedSize(-1, false); err == nil {
		t.Fatal("expected an error for a negative unsigned size request")
	}
}

func TestResolveWidthModifiers(t *testing.T) {
	cases := []struct {
		tokens     []string
		base       int
		baseSigned bool
		width      int
		signed     bool
	}{
		{nil, 2, true, 2, true},
		{[]string{"short"}, 2, true, 1, true},
		{[]string{"long"}, 2, true, 3, true},
		{[]string{"long", "long"}, 2, true, 4, true},
		{[]string{"unsigned"}, 2, true, 2, false},
		{[]string{"short", "unsigned"}, 2, true, 1, false},
	}
	for _, c := range cases {
		width, signed, err := ResolveWidth(c.tokens, c.base, c.baseSigned)
		if err != nil {
			t.Fatalf("ResolveWidth(%v): %v", c.tokens, err)
		}
		if width != c.width || signed != c.signed {
			t.Fatalf("ResolveWidth(%v) = (%d,%v), want (%d,%v)", c.tokens, width, signed, c.width, c.signed)
		}
	}
}

func TestResolveWidthOutOfRangeIsFatal(t *testing.T) {
	if _, _, err := ResolveWidth([]string{"short", "short", "short"}, 2, true); err == nil {
		t.Fatal("expected an error when modifiers push the width below 1")
	}
	if _, _, err := ResolveWidth([]string{"long", "long", "long", "long", "long", "long", "long"}, 2, true); err == nil {
		t.Fatal("expected an error when modifiers push the width above 8")
	}
}

func TestBufferAppendMethods(t *testing.T) {
	buf := Buffer{}
	buf.AppendByte(0x01)
	buf.AppendUint(0x0203, 2)
	buf.AppendInt(-1, 1)
	buf.AppendBytes([]byte{0xAA, 0xBB})
	buf.AppendCString("hi")

	want := []byte{0x01, 0x02, 0x03, 0xFF, 0xAA, 0xBB, 'h', 'i', 0x00}
	if !bytes.Equal(buf.Bytes, want) {
		t.Fatalf("got % x, want % x", buf.Bytes, want)
	}
}

func TestBufferFloatsAreLittleEndian(t *testing.T) {
	buf := Buffer{}
	buf.AppendFloat32(1.0)
	want := []byte{0x00, 0x00, 0x80, 0x3F}
	if !bytes.Equal(buf.Bytes, want) {
		t.Fatalf("AppendFloat32(1.0) = % x, want % x", buf.Bytes, want)
	}
}

func TestBufferPool(t *testing.T) {
	b := NewBufferFromPool()
	b.AppendByte(1)
	if len(b.Bytes) != 1 {
		t.Fatal("expected a fresh buffer from the pool to accept appends")
	}
	b.ReturnToPool()

	b2 := NewBufferFromPool()
	if len(b2.Bytes) != 0 {
		t.Fatal("expected a pooled buffer to be reset before reuse")
	}
	b2.ReturnToPool()
}

func TestReaderSequentialReads(t *testing.T) {
	r := NewReader([]byte{0x00, 0x01, 0x02, 0x03, 'h', 'i', 0x00})
	if got := r.ReadUint(2); got != 1 {
		t.Fatalf("ReadUint(2) = %d, want 1", got)
	}
	if got := r.ReadInt(2); got != 0x0203 {
		t.Fatalf("ReadInt(2) = %d, want %d", got, 0x0203)
	}
	s, ok := r.ReadCString()
	if !ok || s != "hi" {
		t.Fatalf("ReadCString() = (%q,%v), want (hi,true)", s, ok)
	}
	if r.Len() != 0 {
		t.Fatalf("expected no remaining bytes, got %d", r.Len())
	}
}

func TestReaderUnterminatedCString(t *testing.T) {
	r := NewReader([]byte("no terminator"))
	if _, ok := r.ReadCString(); ok {
		t.Fatal("expected ReadCString to report failure for unterminated input")
	}
}

func TestReaderOutOfBoundsPanicsWithFault(t *testing.T) {
	defer func() {
		rec := recover()
		if rec == nil {
			t.Fatal("expected a panic for an out-of-bounds read")
		}
		if _, ok := rec.(Fault); !ok {
			t.Fatalf("expected a Fault panic, got %#v", rec)
		}
	}()
	r := NewReader([]byte{0x01})
	r.Read(5)
}
