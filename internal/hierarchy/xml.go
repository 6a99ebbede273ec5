package hierarchy

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// Namespace is the XML namespace of the OneNote 2013 hierarchy schema.
const Namespace = "http://schemas.microsoft.com/office/onenote/2013/onenote"

var kindsByElement = map[string]Kind{
	"Notebooks":    KindNotebooks,
	"Notebook":     KindNotebook,
	"SectionGroup": KindSectionGroup,
	"Section":      KindSection,
	"Page":         KindPage,
}

func elementKind(name xml.Name) Kind {
	if name.Space != Namespace && name.Space != "" {
		return KindOther
	}
	if k, ok := kindsByElement[name.Local]; ok {
		return k
	}
	return KindOther
}

// Parse decodes a OneNote hierarchy document into a Tree. The document
// element becomes the root node.
func Parse(r io.Reader) (*Tree, error) {
	dec := xml.NewDecoder(r)
	var b Builder
	var open []NodeID
	sawRoot := false

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse hierarchy xml: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			parent := NoNode
			if len(open) > 0 {
				parent = open[len(open)-1]
			} else if sawRoot {
				return nil, fmt.Errorf("failed to parse hierarchy xml: multiple document elements")
			}
			sawRoot = true

			attrs := make(map[string]string, len(el.Attr))
			for _, a := range el.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				attrs[a.Name.Local] = a.Value
			}
			open = append(open, b.Add(parent, elementKind(el.Name), attrs))
		case xml.EndElement:
			open = open[:len(open)-1]
		}
	}

	if !sawRoot {
		return nil, fmt.Errorf("failed to parse hierarchy xml: empty document")
	}
	return b.Build(), nil
}
