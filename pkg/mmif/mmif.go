package mmif

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// FormatVersion is written into new MMIF files.
const FormatVersion = "http://mmif.clams.ai/1.0.0"

// Mmif is a MMIF container: source documents plus annotation views.
type Mmif struct {
	Metadata  FileMetadata `json:"metadata"`
	Documents []*Document  `json:"documents"`
	Views     []*View      `json:"views"`
}

// FileMetadata is the top-level MMIF metadata block.
type FileMetadata struct {
	Mmif string `json:"mmif"`
}

// New creates an empty MMIF holding the given documents.
func New(docs ...*Document) *Mmif {
	return &Mmif{
		Metadata:  FileMetadata{Mmif: FormatVersion},
		Documents: docs,
		Views:     []*View{},
	}
}

// Parse decodes MMIF JSON. Numbers are kept as json.Number so that values
// written back are not reformatted.
func Parse(data []byte) (*Mmif, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var m Mmif
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode mmif: %w", err)
	}
	return &m, nil
}

// Load reads and parses a MMIF file.
func Load(path string) (*Mmif, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mmif: %w", err)
	}
	return Parse(data)
}

// Marshal encodes the MMIF as indented JSON.
func (m *Mmif) Marshal() ([]byte, error) {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode mmif: %w", err)
	}
	return append(data, '\n'), nil
}

// Save writes the MMIF to path.
func (m *Mmif) Save(path string) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write mmif: %w", err)
	}
	return nil
}

// GetDocumentByID returns the document with the given id, or nil when absent.
func (m *Mmif) GetDocumentByID(id string) *Document {
	for _, d := range m.Documents {
		if d.ID() == id {
			return d
		}
	}
	return nil
}

// GetViewsForDocument returns the views that annotate document id, in file order.
func (m *Mmif) GetViewsForDocument(id string) []*View {
	var out []*View
	for _, v := range m.Views {
		if v.refersTo(id) {
			out = append(out, v)
		}
	}
	return out
}

// AddView appends a view.
func (m *Mmif) AddView(v *View) {
	m.Views = append(m.Views, v)
}
