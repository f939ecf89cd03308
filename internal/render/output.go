// If you are AI: This file writes rendered node trees as YAML or JSON.

package render

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Write encodes n to w in the given format ("yaml" or "json").
func Write(w io.Writer, format string, n *yaml.Node) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(n); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		bw := bufio.NewWriter(w)
		if err := writeJSON(bw, n); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
		return bw.Flush()
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// writeJSON writes n as JSON, keeping mapping order. Custom tags are dropped.
func writeJSON(w *bufio.Writer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.MappingNode:
		w.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				w.WriteByte(',')
			}
			if err := writeJSONString(w, n.Content[i].Value); err != nil {
				return err
			}
			w.WriteByte(':')
			if err := writeJSON(w, n.Content[i+1]); err != nil {
				return err
			}
		}
		return w.WriteByte('}')
	case yaml.SequenceNode:
		w.WriteByte('[')
		for i, item := range n.Content {
			if i > 0 {
				w.WriteByte(',')
			}
			if err := writeJSON(w, item); err != nil {
				return err
			}
		}
		return w.WriteByte(']')
	case yaml.ScalarNode:
		return writeJSONScalar(w, n)
	default:
		return fmt.Errorf("unsupported node kind %d", n.Kind)
	}
}

// writeJSONScalar writes a scalar using its resolved YAML tag.
func writeJSONScalar(w *bufio.Writer, n *yaml.Node) error {
	switch n.ShortTag() {
	case "!!null":
		_, err := w.WriteString("null")
		return err
	case "!!bool", "!!int":
		_, err := w.WriteString(n.Value)
		return err
	case "!!float":
		switch n.Value {
		case ".nan", ".inf", "-.inf":
			// not representable in JSON
			return writeJSONString(w, n.Value)
		}
		_, err := w.WriteString(n.Value)
		return err
	case "!undefined", "!unsupported", "!recordset":
		_, err := w.WriteString("null")
		return err
	default:
		return writeJSONString(w, n.Value)
	}
}

// writeJSONString writes s as a quoted JSON string.
func writeJSONString(w *bufio.Writer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
