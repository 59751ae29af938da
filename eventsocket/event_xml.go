package eventsocket

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// XMLNode is a minimal generic XML DOM: enough to walk an event body's
// element tree and read attributes/text without a schema. No XML parsing
// library appears anywhere in the retrieval pack (see DESIGN.md), so this
// is built on stdlib encoding/xml.
type XMLNode struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Content string     `xml:",chardata"`
	Nodes   []XMLNode  `xml:",any"`
}

// Attr returns the value of the named attribute on this node, if present.
func (n *XMLNode) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Child returns the first direct child element with the given local name.
func (n *XMLNode) Child(name string) *XMLNode {
	for i := range n.Nodes {
		if n.Nodes[i].XMLName.Local == name {
			return &n.Nodes[i]
		}
	}
	return nil
}

// XML parses the body as XML into an XMLNode tree. Returns
// ErrMalformedBody on parse failure; the event remains usable via
// Bytes()/Header() regardless.
func (c Cast) XML() (*XMLNode, error) {
	var root XMLNode
	dec := xml.NewDecoder(bytes.NewReader(c.ev.raw.Body))
	if err := dec.Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedBody, err)
	}
	return &root, nil
}
