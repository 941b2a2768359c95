package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"atletica/internal/core"
)

// File is the on-disk YAML layout:
//
//	events:
//	  - day: 11
//	    month: 2   # zero based, March
//	    label: Semáforo
type File struct {
	Events []core.EventRecord `yaml:"events"`
}

// LoadYAML reads and validates an events file.
func LoadYAML(path string) ([]core.EventRecord, error) {
	if path == "" {
		return nil, errors.New("events file path is empty")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read events file: %w", err)
	}
	events, err := DecodeYAML(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}

// DecodeYAML parses an events document. Unknown keys are rejected so a
// typo such as "mont" does not silently become month 0.
func DecodeYAML(r io.Reader) ([]core.EventRecord, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return []core.EventRecord{}, nil
		}
		return nil, fmt.Errorf("decode events yaml: %w", err)
	}
	for i, ev := range f.Events {
		if err := ev.Validate(); err != nil {
			return nil, fmt.Errorf("event %d (%q): %w", i, ev.Label, err)
		}
	}
	if f.Events == nil {
		f.Events = []core.EventRecord{}
	}
	return f.Events, nil
}

// EncodeYAML writes events in the format read by DecodeYAML.
func EncodeYAML(w io.Writer, events []core.EventRecord) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(File{Events: events}); err != nil {
		return fmt.Errorf("encode events yaml: %w", err)
	}
	return enc.Close()
}
