package codec

import (
	"strings"
	"unicode/utf8"

	"github.com/cainfmt/cain/cainerr"
	"github.com/cainfmt/cain/schema"
	"github.com/cainfmt/cain/wire"
)

// nullCodec implements §4.2's Null: empty on the wire both ways.
type nullCodec struct{}

func (nullCodec) Encode(v any, _ *schema.Node) ([]byte, error) {
	if v != nil {
		return nil, cainerr.New(cainerr.EncodingFailure, "Null", "", "value is not nil")
	}
	return nil, nil
}

func (nullCodec) Decode(b []byte, _ *schema.Node) (any, []byte, error) {
	return nil, b, nil
}

// boolCodec implements §4.2's Bool.
type boolCodec struct{}

func (boolCodec) Encode(v any, _ *schema.Node) ([]byte, error) {
	bv, ok := v.(bool)
	if !ok {
		return nil, cainerr.New(cainerr.EncodingFailure, "Bool", "", "value is not a bool")
	}
	if bv {
		return []byte{1}, nil
	}
	return []byte{0}, nil
}

func (boolCodec) Decode(b []byte, _ *schema.Node) (any, []byte, error) {
	r := wire.NewReader(b)
	flag := r.ReadByte()
	switch flag {
	case 0:
		return false, r.Remaining(), nil
	case 1:
		return true, r.Remaining(), nil
	default:
		return nil, b, cainerr.New(cainerr.DecodingFailure, "Bool", "", "leading byte is neither 0x00 nor 0x01")
	}
}

// charCodec implements §4.2's Character: the UTF-8 encoding of a single
// code point, whose length the decoder infers from the leading byte
// pattern.
type charCodec struct{}

func (charCodec) Encode(v any, _ *schema.Node) ([]byte, error) {
	r, err := toRune(v)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, utf8.UTFMax)
	n := utf8.EncodeRune(buf, r)
	return buf[:n], nil
}

func toRune(v any) (rune, error) {
	switch t := v.(type) {
	case rune:
		return t, nil
	case string:
		r, size := utf8.DecodeRuneInString(t)
		if r == utf8.RuneError || size != len(t) {
			return 0, cainerr.New(cainerr.EncodingFailure, "Char", "", "value is not exactly one UTF-8 code point")
		}
		return r, nil
	default:
		return 0, cainerr.New(cainerr.EncodingFailure, "Char", "", "value is not a rune or single-character string")
	}
}

func (charCodec) Decode(b []byte, _ *schema.Node) (any, []byte, error) {
	if len(b) == 0 {
		return nil, b, cainerr.New(cainerr.DecodingFailure, "Char", "", "empty input")
	}
	n := utf8LeadLength(b[0])
	if n == 0 || n > len(b) {
		return nil, b, cainerr.New(cainerr.DecodingFailure, "Char", "", "impossible UTF-8 leading byte")
	}
	r, size := utf8.DecodeRune(b[:n])
	if r == utf8.RuneError && size <= 1 {
		return nil, b, cainerr.New(cainerr.DecodingFailure, "Char", "", "invalid UTF-8 sequence")
	}
	return r, b[n:], nil
}

// utf8LeadLength inspects a UTF-8 leading byte and returns the number of
// bytes the encoded code point occupies, per §4.2: 0xxxxxxx→1,
// 110xxxxx→2, 1110xxxx→3, 11110xxx→4. Returns 0 for an impossible lead.
func utf8LeadLength(lead byte) int {
	switch {
	case lead&0x80 == 0x00:
		return 1
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 0
	}
}

// stringCodec implements §4.2's String: UTF-8 bytes terminated by a single
// NUL. Embedded NUL bytes are rejected on encode.
type stringCodec struct{}

func (stringCodec) Encode(v any, _ *schema.Node) ([]byte, error) {
	s, ok := v.(string)
	if !ok {
		return nil, cainerr.New(cainerr.EncodingFailure, "String", "", "value is not a string")
	}
	if strings.IndexByte(s, 0) != -1 {
		return nil, cainerr.New(cainerr.EncodingFailure, "String", "", "string contains an embedded NUL byte")
	}
	buf := wire.Buffer{}
	buf.AppendCString(s)
	return buf.Bytes, nil
}

func (stringCodec) Decode(b []byte, _ *schema.Node) (any, []byte, error) {
	r := wire.NewReader(b)
	s, ok := r.ReadCString()
	if !ok {
		return nil, b, cainerr.New(cainerr.DecodingFailure, "String", "", "unterminated string: no NUL byte found")
	}
	return s, r.Remaining(), nil
}

// binaryCodec implements §4.2's Binary: a length prefix (default 4 bytes
// unsigned, "long"/"short" adjust by one byte) followed by raw bytes.
type binaryCodec struct{}

func binaryWidth(n *schema.Node) (int, error) {
	width, _, err := wire.ResolveWidth(n.Tokens(), 4, false)
	return width, err
}

func (binaryCodec) Encode(v any, n *schema.Node) ([]byte, error) {
	bs, ok := v.([]byte)
	if !ok {
		return nil, cainerr.New(cainerr.EncodingFailure, "Binary", "", "value is not a []byte")
	}
	width, err := binaryWidth(n)
	if err != nil {
		return nil, err
	}
	if !wire.FitsUnsigned(uint64(len(bs)), width) {
		return nil, cainerr.New(cainerr.EncodingFailure, "Binary", "", "length exceeds the chosen width")
	}
	buf := wire.Buffer{}
	buf.AppendUint(uint64(len(bs)), width)
	buf.AppendBytes(bs)
	return buf.Bytes, nil
}

func (binaryCodec) Decode(b []byte, n *schema.Node) (any, []byte, error) {
	width, err := binaryWidth(n)
	if err != nil {
		return nil, b, err
	}
	r := wire.NewReader(b)
	length := r.ReadUint(width)
	data := r.Read(int(length))
	out := make([]byte, len(data))
	copy(out, data)
	return out, r.Remaining(), nil
}

// floatCodec implements §4.2's Float: IEEE-754 binary32.
type floatCodec struct{}

func (floatCodec) Encode(v any, _ *schema.Node) ([]byte, error) {
	f, err := toFloat32(v)
	if err != nil {
		return nil, err
	}
	buf := wire.Buffer{}
	buf.AppendFloat32(f)
	return buf.Bytes, nil
}

func toFloat32(v any) (float32, error) {
	switch t := v.(type) {
	case float32:
		return t, nil
	case float64:
		return float32(t), nil
	default:
		return 0, cainerr.New(cainerr.EncodingFailure, "Float", "", "value is not a float32/float64")
	}
}

func (floatCodec) Decode(b []byte, _ *schema.Node) (any, []byte, error) {
	r := wire.NewReader(b)
	f := r.ReadFloat32()
	return f, r.Remaining(), nil
}

// doubleCodec implements §4.2's Double: IEEE-754 binary64.
type doubleCodec struct{}

func (doubleCodec) Encode(v any, _ *schema.Node) ([]byte, error) {
	f, ok := v.(float64)
	if !ok {
		f32, ok := v.(float32)
		if !ok {
			return nil, cainerr.New(cainerr.EncodingFailure, "Double", "", "value is not a float64/float32")
		}
		f = float64(f32)
	}
	buf := wire.Buffer{}
	buf.AppendFloat64(f)
	return buf.Bytes, nil
}

func (doubleCodec) Decode(b []byte, _ *schema.Node) (any, []byte, error) {
	r := wire.NewReader(b)
	f := r.ReadFloat64()
	return f, r.Remaining(), nil
}

// decimalCodec implements Decimal: the textual decimal representation,
// encoded through the String codec to preserve arbitrary precision
// rather than rounding through a binary float.
type decimalCodec struct{}

func (decimalCodec) Encode(v any, n *schema.Node) ([]byte, error) {
	s, ok := v.(string)
	if !ok {
		return nil, cainerr.New(cainerr.EncodingFailure, "Decimal", "", "value is not a decimal string")
	}
	return stringCodec{}.Encode(s, n)
}

func (decimalCodec) Decode(b []byte, n *schema.Node) (any, []byte, error) {
	v, rest, err := stringCodec{}.Decode(b, n)
	if err != nil {
		return nil, b, cainerr.Wrap(cainerr.DecodingFailure, "Decimal", "", err)
	}
	return v, rest, nil
}

// complexCodec implements §4.2's Complex: two binary32 values (real, imag).
type complexCodec struct{}

func (complexCodec) Encode(v any, _ *schema.Node) ([]byte, error) {
	c, ok := v.(complex64)
	if !ok {
		c128, ok := v.(complex128)
		if !ok {
			return nil, cainerr.New(cainerr.EncodingFailure, "Complex", "", "value is not a complex64/complex128")
		}
		c = complex64(c128)
	}
	buf := wire.Buffer{}
	buf.AppendFloat32(real(c))
	buf.AppendFloat32(imag(c))
	return buf.Bytes, nil
}

func (complexCodec) Decode(b []byte, _ *schema.Node) (any, []byte, error) {
	r := wire.NewReader(b)
	re := r.ReadFloat32()
	im := r.ReadFloat32()
	return complex(re, im), r.Remaining(), nil
}

// doubleComplexCodec implements §4.2's DoubleComplex: two binary64 values.
type doubleComplexCodec struct{}

func (doubleComplexCodec) Encode(v any, _ *schema.Node) ([]byte, error) {
	c, ok := v.(complex128)
	if !ok {
		return nil, cainerr.New(cainerr.EncodingFailure, "DoubleComplex", "", "value is not a complex128")
	}
	buf := wire.Buffer{}
	buf.AppendFloat64(real(c))
	buf.AppendFloat64(imag(c))
	return buf.Bytes, nil
}

func (doubleComplexCodec) Decode(b []byte, _ *schema.Node) (any, []byte, error) {
	r := wire.NewReader(b)
	re := r.ReadFloat64()
	im := r.ReadFloat64()
	return complex(re, im), r.Remaining(), nil
}
