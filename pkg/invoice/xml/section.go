package xml

import "encoding/xml"

// Reference points from a section to a header or footer part through a
// relationship ID of the body part.
type Reference struct {
	// Type is one of "default", "first" or "even"
	Type string
	ID   string
}

// Section holds the header and footer references of one w:sectPr
type Section struct {
	Headers []Reference
	Footers []Reference
}

func referenceFromAttrs(attrs []xml.Attr) Reference {
	var ref Reference
	for _, a := range attrs {
		switch {
		case a.Name.Local == "type" && isWord(a.Name.Space):
			ref.Type = a.Value
		case a.Name.Local == "id" && isRel(a.Name.Space):
			ref.ID = a.Value
		}
	}
	if ref.Type == "" {
		ref.Type = "default"
	}
	return ref
}
