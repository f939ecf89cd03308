// If you are AI: This file converts decoded AMF0 packets and values into
// yaml.v3 node trees that keep property order.

package render

import (
	"math"
	"net/url"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"amfpeek/internal/core/protocol/amf0"
)

// Packet builds a node tree describing p. References are left as
// "$ref" mappings pointing at their table index.
func Packet(p *amf0.Packet) *yaml.Node {
	headers := seqNode()
	for _, h := range p.Headers {
		headers.Content = append(headers.Content, mapNode(
			"name", strNode(h.Name),
			"must_understand", boolNode(h.MustUnderstand),
			"length", intNode(int64(h.Length)),
			"length_mismatch", boolNode(h.LengthMismatch),
			"value", Value(h.Value),
		))
	}
	messages := seqNode()
	for _, m := range p.Messages {
		messages.Content = append(messages.Content, mapNode(
			"target_uri", strNode(m.TargetURI),
			"response_uri", strNode(m.ResponseURI),
			"body_length", intNode(int64(m.BodyLength)),
			"length_mismatch", boolNode(m.LengthMismatch),
			"value", Value(m.Value),
		))
	}
	return mapNode(
		"version", intNode(int64(p.Version)),
		"headers", headers,
		"messages", messages,
	)
}

// Values builds a sequence node for a bare value sequence.
func Values(values []amf0.Value) *yaml.Node {
	seq := seqNode()
	for _, v := range values {
		seq.Content = append(seq.Content, Value(v))
	}
	return seq
}

// Value builds a node for a single value. Scalars map to YAML scalars;
// objects become mappings in wire order. Typed objects and ECMA arrays
// carry a tag naming their kind.
func Value(v amf0.Value) *yaml.Node {
	if amf0.IsNull(v) {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	}
	switch t := v.(type) {
	case amf0.Undefined:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!undefined", Value: ""}
	case amf0.Unsupported:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!unsupported", Value: ""}
	case amf0.Recordset:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!recordset", Value: ""}
	case amf0.Number:
		return numberNode(float64(t))
	case amf0.Boolean:
		return boolNode(bool(t))
	case amf0.String:
		return strNode(string(t))
	case amf0.LongString:
		return strNode(string(t))
	case amf0.XMLDocument:
		n := strNode(string(t))
		n.Tag = "!xml"
		return n
	case amf0.Date:
		n := strNode(t.Time().Format(time.RFC3339Nano))
		n.Tag = "!date"
		return n
	case amf0.Reference:
		return mapNode("$ref", intNode(int64(t)))
	case *amf0.StrictArray:
		seq := seqNode()
		for _, item := range t.Items {
			seq.Content = append(seq.Content, Value(item))
		}
		return seq
	case *amf0.Object:
		return propertiesNode(t.Properties)
	case *amf0.ECMAArray:
		n := propertiesNode(t.Properties)
		n.Tag = "!ecma"
		return n
	case *amf0.TypedObject:
		n := propertiesNode(t.Properties)
		n.Tag = "!" + url.PathEscape(t.ClassName)
		if t.ClassName == "" {
			n.Tag = "!typed"
		}
		return n
	default:
		return strNode(v.Marker().String())
	}
}

// propertiesNode builds a mapping from a property list in order.
func propertiesNode(props *amf0.Properties) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	if props == nil {
		return n
	}
	for key, val := range props.AllFromFront() {
		n.Content = append(n.Content, strNode(key), Value(val))
	}
	return n
}

// numberNode returns an untagged numeric scalar so YAML resolves it as an
// int or float. Non-finite values use the YAML spellings.
func numberNode(f float64) *yaml.Node {
	var s string
	switch {
	case math.IsNaN(f):
		s = ".nan"
	case math.IsInf(f, 1):
		s = ".inf"
	case math.IsInf(f, -1):
		s = "-.inf"
	default:
		s = strconv.FormatFloat(f, 'g', -1, 64)
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Value: s}
}

// mapNode builds a mapping from alternating key strings and value nodes.
func mapNode(kv ...any) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for i := 0; i < len(kv); i += 2 {
		n.Content = append(n.Content, strNode(kv[i].(string)), kv[i+1].(*yaml.Node))
	}
	return n
}

// seqNode returns an empty sequence node.
func seqNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

// strNode returns a string scalar node.
func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// boolNode returns a boolean scalar node.
func boolNode(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(b)}
}

// intNode returns an integer scalar node.
func intNode(i int64) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(i, 10)}
}
