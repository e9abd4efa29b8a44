package junit

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DefaultEncoding is the charset documents declare unless configured
// otherwise.
const DefaultEncoding = "UTF-8"

// Encoder serializes documents with a declared character encoding. The
// declaration, the tab indentation and the charset transform match what
// downstream JUnit consumers already parse.
type Encoder struct {
	name string
	enc  encoding.Encoding
}

// NewEncoder resolves name against the standard charset index. An empty
// name selects UTF-8.
func NewEncoder(name string) (*Encoder, error) {
	if name == "" {
		name = DefaultEncoding
	}

	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("resolving encoding %q: %w", name, err)
	}

	return &Encoder{name: name, enc: enc}, nil
}

// Name returns the charset name as declared in documents.
func (e *Encoder) Name() string {
	return e.name
}

// Encode writes doc to w: the XML declaration, then the document
// indented with tabs, every byte passed through the charset encoder so
// file writes stay binary-safe.
func (e *Encoder) Encode(w io.Writer, doc any) error {
	tw := transform.NewWriter(w, e.enc.NewEncoder())

	if _, err := fmt.Fprintf(tw, "<?xml version=\"1.0\" encoding=\"%s\"?>\n", e.name); err != nil {
		return fmt.Errorf("writing xml declaration: %w", err)
	}

	enc := xml.NewEncoder(tw)
	enc.Indent("", "\t")

	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding document: %w", err)
	}

	if _, err := io.WriteString(tw, "\n"); err != nil {
		return fmt.Errorf("terminating document: %w", err)
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("flushing encoded document: %w", err)
	}

	return nil
}

// EncodeToBytes renders doc fully in memory.
func (e *Encoder) EncodeToBytes(doc any) ([]byte, error) {
	var buf bytes.Buffer
	if err := e.Encode(&buf, doc); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
