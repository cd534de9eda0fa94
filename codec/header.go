package codec

import (
	"bytes"

	"github.com/cainfmt/cain/cainerr"
	"github.com/cainfmt/cain/schema"
	"github.com/cainfmt/cain/wire"
)

// EncodeHeader implements §4.11's header framing: a two-blob tuple,
// Binary(schema-encoded-as-Type) ++ Binary(payload). The schema blob lets
// DecodeHeader recover n without the caller supplying it.
func EncodeHeader(v any, n *schema.Node) ([]byte, error) {
	schemaBytes, err := Encode(n, schema.Type())
	if err != nil {
		return nil, cainerr.WithPath(err, "schema")
	}
	payloadBytes, err := Encode(v, n)
	if err != nil {
		return nil, cainerr.WithPath(err, "payload")
	}

	blobNode := schema.Binary()
	schemaBlob, err := binaryCodec{}.Encode(schemaBytes, blobNode)
	if err != nil {
		return nil, err
	}
	payloadBlob, err := binaryCodec{}.Encode(payloadBytes, blobNode)
	if err != nil {
		return nil, err
	}

	buf := wire.Buffer{}
	buf.AppendBytes(schemaBlob)
	buf.AppendBytes(payloadBlob)
	return buf.Bytes, nil
}

// DecodeHeader implements the read side of §4.11: it recovers the schema
// from the first blob and uses it to decode the second, doing no version
// negotiation of any kind.
//
// known is an optional already-held schema the caller expects the embedded
// one to match (a prior DecodeHeader result, or a schema built locally).
// When its canonical Type encoding is byte-identical to the embedded blob,
// DecodeHeader skips the recursive Type decode and returns known directly
// instead of rebuilding an equal tree. A mismatch falls back to the full
// decode; schema.Node.Equal then decides whether the freshly decoded node
// is structurally equal to known despite encoding differently, in which
// case known is returned in its place.
func DecodeHeader(b []byte, known ...*schema.Node) (v any, rest []byte, schemaNode *schema.Node, err error) {
	defer cainerr.Recover("Binary", "", &err)
	blobNode := schema.Binary()
	var knownNode *schema.Node
	if len(known) > 0 {
		knownNode = known[0]
	}

	schemaBlobVal, afterSchema, err := binaryCodec{}.Decode(b, blobNode)
	if err != nil {
		return nil, b, nil, cainerr.WithPath(err, "schema")
	}
	schemaBytes := schemaBlobVal.([]byte)

	node, fromKnown := matchKnownSchema(knownNode, schemaBytes)
	if !fromKnown {
		nodeVal, schemaRest, derr := Decode(schemaBytes, schema.Type())
		if derr != nil {
			return nil, b, nil, cainerr.WithPath(derr, "schema")
		}
		if len(schemaRest) != 0 {
			return nil, b, nil, cainerr.New(cainerr.DecodingFailure, "Type", "schema", "trailing bytes after the embedded schema")
		}
		node = nodeVal.(*schema.Node)
		if knownNode != nil && knownNode.Equal(node) {
			node = knownNode
		}
	}

	payloadBlobVal, afterPayload, err := binaryCodec{}.Decode(afterSchema, blobNode)
	if err != nil {
		return nil, b, nil, cainerr.WithPath(err, "payload")
	}
	payloadBytes := payloadBlobVal.([]byte)
	value, payloadRest, err := Decode(payloadBytes, node)
	if err != nil {
		return nil, b, nil, cainerr.WithPath(err, "payload")
	}
	if len(payloadRest) != 0 {
		return nil, b, nil, cainerr.New(cainerr.DecodingFailure, node.Kind.String(), "payload", "trailing bytes after the embedded payload")
	}

	return value, afterPayload, node, nil
}

// matchKnownSchema reports whether schemaBytes is the canonical Type
// encoding of known, without decoding schemaBytes into a tree. Since
// EncodeHeader's Type encoding is deterministic for a given schema, a
// byte-identical blob implies an Equal tree; this lets DecodeHeader skip
// the recursive Type decode entirely in the common case of repeatedly
// reading headers built against the same schema.
func matchKnownSchema(known *schema.Node, schemaBytes []byte) (*schema.Node, bool) {
	if known == nil {
		return nil, false
	}
	encoded, err := Encode(known, schema.Type())
	if err != nil {
		return nil, false
	}
	if !bytes.Equal(encoded, schemaBytes) {
		return nil, false
	}
	return known, true
}
