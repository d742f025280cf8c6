// Package format pretty-prints configuration documents. Each formatter
// operates on the raw decoded data rather than the canonical schema, and
// each is idempotent: re-formatting already-formatted output of the same
// document yields byte-identical text.
package format

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// DefaultIndent is the indent width used when the caller passes 0.
const DefaultIndent = 2

// JSON reformats a JSON document with the given indent width. Map keys
// are emitted in sorted order, which is what makes the output stable.
func JSON(text string, indent int) (string, error) {
	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return "", fmt.Errorf("parse json: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", strings.Repeat(" ", indentWidth(indent)))
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode json: %w", err)
	}
	return buf.String(), nil
}

// YAML reformats a YAML document with the given indent width. Decoding
// into a yaml.Node keeps key order, so the transform is idempotent.
func YAML(text string, indent int) (string, error) {
	var node yaml.Node
	if err := yaml.Unmarshal([]byte(text), &node); err != nil {
		return "", fmt.Errorf("parse yaml: %w", err)
	}
	if node.Kind == 0 {
		return "", errors.New("parse yaml: empty document")
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indentWidth(indent))
	if err := enc.Encode(&node); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode yaml: %w", err)
	}
	return buf.String(), nil
}

// TOML reformats a TOML document with the given indent width. The encoder
// sorts keys and groups tables, so the output is stable.
func TOML(text string, indent int) (string, error) {
	var v map[string]any
	if _, err := toml.Decode(text, &v); err != nil {
		return "", fmt.Errorf("parse toml: %w", err)
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = strings.Repeat(" ", indentWidth(indent))
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("encode toml: %w", err)
	}
	return buf.String(), nil
}

// XML reformats an XML document with the given indent width via a
// token-level round trip. Whitespace-only character data between elements
// is dropped and regenerated as indentation, so the transform is
// idempotent on element-structured documents.
func XML(text string, indent int) (string, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	var buf bytes.Buffer
	enc := xml.NewEncoder(&buf)
	enc.Indent("", strings.Repeat(" ", indentWidth(indent)))

	sawToken := false
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse xml: %w", err)
		}
		if cd, ok := tok.(xml.CharData); ok && len(bytes.TrimSpace(cd)) == 0 {
			continue
		}
		sawToken = true
		if err := enc.EncodeToken(xml.CopyToken(tok)); err != nil {
			return "", fmt.Errorf("encode xml: %w", err)
		}
	}
	if !sawToken {
		return "", errors.New("parse xml: empty document")
	}
	if err := enc.Flush(); err != nil {
		return "", fmt.Errorf("encode xml: %w", err)
	}
	buf.WriteString("\n")
	return buf.String(), nil
}

func indentWidth(indent int) int {
	if indent <= 0 {
		return DefaultIndent
	}
	return indent
}
