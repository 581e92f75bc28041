package fs

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/memo/pkg/core"
)

// Serializer defines how the note sequence is encoded on disk.
// Encode must be deterministic for a given sequence.
type Serializer interface {
	// Decode parses a whole file.
	Decode(data []byte) ([]core.Note, error)
	// Encode converts the whole sequence to bytes.
	Encode(notes []core.Note) ([]byte, error)
}

// DefaultSerializers returns the standard set of serializers keyed by file
// extension.
func DefaultSerializers(pretty bool) map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(pretty),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// --- JSON Serializer ---

// JSONSerializer handles the default memos.json format.
type JSONSerializer struct {
	// Pretty indents the output for humans.
	Pretty bool
}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer(pretty bool) *JSONSerializer {
	return &JSONSerializer{Pretty: pretty}
}

func (s *JSONSerializer) Decode(data []byte) ([]core.Note, error) {
	var notes []core.Note
	// Unmarshal rejects trailing bytes after the array.
	if err := json.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return notes, nil
}

func (s *JSONSerializer) Encode(notes []core.Note) ([]byte, error) {
	if notes == nil {
		notes = []core.Note{}
	}
	if s.Pretty {
		return json.MarshalIndent(notes, "", "  ")
	}
	return json.Marshal(notes)
}

// --- YAML Serializer ---

// YAMLSerializer stores the sequence as a YAML list.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Decode(data []byte) ([]core.Note, error) {
	var notes []core.Note
	if err := yaml.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return notes, nil
}

func (s *YAMLSerializer) Encode(notes []core.Note) ([]byte, error) {
	if notes == nil {
		notes = []core.Note{}
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(notes); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
