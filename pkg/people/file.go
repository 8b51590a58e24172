package people

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Decode reads a mapping of ISO dates to people. YAML and JSON are both
// accepted. Missing IDs are generated; list order becomes creation order.
func Decode(r io.Reader) (*Index, error) {
	raw := map[string][]Person{}
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, fmt.Errorf("people: decode: %w", err)
	}

	base := time.Now()
	for iso, list := range raw {
		for i := range list {
			list[i].EnsureID()
			if list[i].Created.IsZero() {
				list[i].Created = base.Add(time.Duration(i))
			}
		}
		raw[iso] = list
	}
	return NewIndex(raw), nil
}

// LoadFile decodes the file at path.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("people: open %s: %w", path, err)
	}
	defer f.Close()
	return Decode(f)
}

// Encode writes idx as YAML, dates ascending.
func Encode(w io.Writer, idx *Index) error {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, iso := range idx.Dates() {
		var value yaml.Node
		if err := value.Encode(idx.AssignmentsFor(iso)); err != nil {
			return fmt.Errorf("people: encode %s: %w", iso, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: iso},
			&value,
		)
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(node); err != nil {
		return fmt.Errorf("people: encode: %w", err)
	}
	return enc.Close()
}

// SaveFile writes idx to path through a temporary file in the same directory,
// so readers never see a partial file.
func SaveFile(path string, idx *Index) error {
	f, err := os.CreateTemp(filepath.Dir(path), ".people-*.yaml")
	if err != nil {
		return fmt.Errorf("people: save %s: %w", path, err)
	}
	defer os.Remove(f.Name())
	if err := Encode(f, idx); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("people: save %s: %w", path, err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("people: save %s: %w", path, err)
	}
	return nil
}
