package wire

import (
	"math"
	"sync"
)

// Buffer accumulates encoded bytes during serialization. Like the
// teacher's Buffer, it supports only append operations and is cheap to
// pool across calls.
type Buffer struct {
	Bytes []byte
}

// Reset clears the buffer contents but keeps the underlying array.
func (b *Buffer) Reset() {
	b.Bytes = b.Bytes[:0]
}

var bufpool = sync.Pool{
	New: func() any { return &Buffer{} },
}

// NewBufferFromPool obtains a reset Buffer from the pool. Call ReturnToPool
// when finished with it.
func NewBufferFromPool() *Buffer {
	b := bufpool.Get().(*Buffer)
	b.Reset()
	return b
}

// ReturnToPool releases the buffer back to the pool. Using the buffer
// after this call is undefined.
func (b *Buffer) ReturnToPool() {
	bufpool.Put(b)
}

// AppendByte appends a single raw byte.
func (b *Buffer) AppendByte(v byte) {
	b.Bytes = append(b.Bytes, v)
}

// AppendBytes appends raw bytes with no length prefix.
func (b *Buffer) AppendBytes(v []byte) {
	b.Bytes = append(b.Bytes, v...)
}

// AppendUint appends value as a width-byte big-endian unsigned integer.
func (b *Buffer) AppendUint(value uint64, width int) {
	b.Bytes = PutUint(b.Bytes, value, width)
}

// AppendInt appends value as a width-byte big-endian two's-complement
// signed integer.
func (b *Buffer) AppendInt(value int64, width int) {
	b.Bytes = PutInt(b.Bytes, value, width)
}

// AppendFloat32 appends the IEEE-754 binary32 bit pattern of value in
// little-endian byte order. This is a deliberate asymmetry: the wire
// format's multi-byte integers are big-endian, but Float and Double are
// little-endian.
func (b *Buffer) AppendFloat32(value float32) {
	bits := math.Float32bits(value)
	b.Bytes = append(b.Bytes,
		byte(bits), byte(bits>>8), byte(bits>>16), byte(bits>>24))
}

// AppendFloat64 appends the IEEE-754 binary64 bit pattern of value in
// little-endian byte order (see AppendFloat32).
func (b *Buffer) AppendFloat64(value float64) {
	bits := math.Float64bits(value)
	for i := 0; i < 8; i++ {
		b.Bytes = append(b.Bytes, byte(bits>>(8*i)))
	}
}

// AppendCString appends s followed by a single NUL terminator. s must not
// contain an embedded NUL byte — callers validate this before calling.
func (b *Buffer) AppendCString(s string) {
	b.Bytes = append(b.Bytes, s...)
	b.Bytes = append(b.Bytes, 0)
}
