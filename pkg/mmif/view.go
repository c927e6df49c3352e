package mmif

// View is a set of annotations produced by one app run.
type View struct {
	ID          string        `json:"id"`
	Metadata    ViewMetadata  `json:"metadata"`
	Annotations []*Annotation `json:"annotations"`
}

// ViewMetadata describes the app that produced a view and what it contains.
type ViewMetadata struct {
	App        string                    `json:"app,omitempty"`
	Timestamp  string                    `json:"timestamp,omitempty"`
	Contains   map[AtType]map[string]any `json:"contains,omitempty"`
	Parameters map[string]any            `json:"parameters,omitempty"`
}

// Annotation is a typed annotation with free-form properties.
type Annotation struct {
	AtType     AtType         `json:"@type"`
	Properties map[string]any `json:"properties"`
}

// ID returns the annotation identifier.
func (a *Annotation) ID() string {
	if v, ok := a.Properties["id"].(string); ok {
		return v
	}
	return ""
}

// Document returns the id of the document the annotation refers to, if any.
func (a *Annotation) Document() string {
	if v, ok := a.Properties["document"].(string); ok {
		return v
	}
	return ""
}

// GetAnnotations returns the annotations of the given type in view order.
func (v *View) GetAnnotations(t AtType) []*Annotation {
	var out []*Annotation
	for _, a := range v.Annotations {
		if a.AtType.Is(t) {
			out = append(out, a)
		}
	}
	return out
}

// refersTo reports whether the view holds annotations about document docID,
// either declared in its contains metadata or named by an annotation.
func (v *View) refersTo(docID string) bool {
	for _, props := range v.Metadata.Contains {
		if doc, ok := props["document"].(string); ok && doc == docID {
			return true
		}
	}
	for _, a := range v.Annotations {
		if a.Document() == docID {
			return true
		}
	}
	return false
}
