package mmif

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
)

var (
	// ErrNoLocation is returned when a document has no location property.
	ErrNoLocation = errors.New("mmif: document has no location")
	// ErrUnsupportedLocation is returned for location schemes other than file.
	ErrUnsupportedLocation = errors.New("mmif: unsupported location scheme")
)

// Document is a MMIF source document.
type Document struct {
	AtType     AtType         `json:"@type"`
	Properties map[string]any `json:"properties"`
}

// NewVideoDocument creates a video document pointing at a local file.
func NewVideoDocument(id, path string) *Document {
	loc := path
	if abs, err := filepath.Abs(path); err == nil {
		loc = (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
	}
	return &Document{
		AtType: TypeVideoDocument,
		Properties: map[string]any{
			"id":       id,
			"location": loc,
		},
	}
}

// ID returns the document identifier.
func (d *Document) ID() string {
	return d.stringProperty("id")
}

// Location returns the raw location URI.
func (d *Document) Location() string {
	return d.stringProperty("location")
}

// Mime returns the document MIME type, if recorded.
func (d *Document) Mime() string {
	return d.stringProperty("mime")
}

// IsVideo reports whether the document is a VideoDocument.
func (d *Document) IsVideo() bool {
	return d.AtType.Is(TypeVideoDocument)
}

// Property returns a property value.
func (d *Document) Property(key string) (any, bool) {
	v, ok := d.Properties[key]
	return v, ok
}

// AddProperty sets a property, replacing any existing value.
func (d *Document) AddProperty(key string, value any) {
	if d.Properties == nil {
		d.Properties = make(map[string]any)
	}
	d.Properties[key] = value
}

// Metadata returns the recognized metadata stored on the document itself.
func (d *Document) Metadata() Metadata {
	return LookupMetadata(d.Properties)
}

// LocationPath resolves the document location to a local filesystem path.
// Both file:// URIs and bare paths are accepted.
func (d *Document) LocationPath() (string, error) {
	loc := d.Location()
	if loc == "" {
		return "", fmt.Errorf("%w: %s", ErrNoLocation, d.ID())
	}
	if !strings.Contains(loc, "://") {
		return loc, nil
	}

	u, err := url.Parse(loc)
	if err != nil {
		return "", fmt.Errorf("parse location %q: %w", loc, err)
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedLocation, u.Scheme)
	}
	return filepath.FromSlash(u.Path), nil
}

func (d *Document) stringProperty(key string) string {
	if v, ok := d.Properties[key].(string); ok {
		return v
	}
	return ""
}
