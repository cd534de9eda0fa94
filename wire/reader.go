package wire

import "math"

// Reader provides sequential, bounds-checked access to a byte slice:
// every read advances the cursor and the unconsumed suffix is always
// available via Remaining. Out-of-bounds reads panic with a Fault —
// callers at a package boundary recover and convert.
type Reader struct {
	bytes []byte
	pos   int
}

// NewReader wraps b for sequential reading from position 0.
func NewReader(b []byte) Reader { return Reader{bytes: b} }

// Remaining returns the unconsumed suffix.
func (r *Reader) Remaining() []byte { return r.bytes[r.pos:] }

// Len returns the number of unconsumed bytes.
func (r *Reader) Len() int { return len(r.bytes) - r.pos }

func (r *Reader) need(n int) {
	if n < 0 || r.pos+n > len(r.bytes) {
		fault("read out of bounds")
	}
}

// ReadByte extracts the next raw byte.
func (r *Reader) ReadByte() byte {
	r.need(1)
	v := r.bytes[r.pos]
	r.pos++
	return v
}

// Read extracts the next n raw bytes.
func (r *Reader) Read(n int) []byte {
	r.need(n)
	v := r.bytes[r.pos : r.pos+n]
	r.pos += n
	return v
}

// ReadUint decodes a width-byte big-endian unsigned integer.
func (r *Reader) ReadUint(width int) uint64 {
	return GetUint(r.Read(width), width)
}

// ReadInt decodes a width-byte big-endian two's-complement signed integer.
func (r *Reader) ReadInt(width int) int64 {
	return GetInt(r.Read(width), width)
}

// ReadFloat32 decodes a little-endian IEEE-754 binary32 (see
// Buffer.AppendFloat32 for why little-endian).
func (r *Reader) ReadFloat32() float32 {
	b := r.Read(4)
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}

// ReadFloat64 decodes a little-endian IEEE-754 binary64.
func (r *Reader) ReadFloat64() float64 {
	b := r.Read(8)
	var bits uint64
	for i := 7; i >= 0; i-- {
		bits = bits<<8 | uint64(b[i])
	}
	return math.Float64frombits(bits)
}

// ReadCString reads bytes up to and including the first NUL byte and
// returns the content without the terminator. ok is false when no NUL
// byte is found before the input is exhausted (an unterminated string is
// a DecodingFailure, not a Fault, because it is a well-formed "ran out of
// data" condition the caller should be able to report with context).
func (r *Reader) ReadCString() (string, bool) {
	for i := r.pos; i < len(r.bytes); i++ {
		if r.bytes[i] == 0 {
			s := string(r.bytes[r.pos:i])
			r.pos = i + 1
			return s, true
		}
	}
	return "", false
}
