// Package material manages the shared material library the mod framework
// reads: a JSON file of identifier/color/metal/roughness entries kept next
// to the project's other shared definitions. The library is the source of
// truth the editor and the exporter sync against.
package material

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
)

// Material is one library entry. Color components are linear RGB.
type Material struct {
	Identifier string     `json:"identifier"`
	Color      [3]float64 `json:"color"`
	Metal      float64    `json:"metal"`
	Roughness  float64    `json:"roughness"`
}

// libraryFile is the on-disk shape under the framework's definition key.
type libraryFile struct {
	GlobalDefinitions struct {
		Materials []Material `json:"hs_materials"`
	} `json:"hammerstone:global_definitions"`
}

// Library is a wrapper around the material library file. Entries are
// indexed by identifier and kept in first-added order, which keeps saves
// diff-friendly.
type Library struct {
	path  string
	index map[string]Material
	order []string
}

// Open loads the library at path, creating a file with an empty material
// list (and any missing parent directories) if none exists.
func Open(path string) (*Library, error) {
	l := &Library{path: path, index: make(map[string]Material)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := l.Save(); err != nil {
			return nil, err
		}
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("material library: %w", err)
	}

	var f libraryFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("material library %s: %w", path, err)
	}
	for _, m := range f.GlobalDefinitions.Materials {
		l.Put(m)
	}
	return l, nil
}

// Path returns the library's file path.
func (l *Library) Path() string { return l.path }

// Len returns the number of entries.
func (l *Library) Len() int { return len(l.order) }

// Get returns the entry with the given identifier.
func (l *Library) Get(identifier string) (Material, bool) {
	m, ok := l.index[identifier]
	return m, ok
}

// Put inserts or replaces an entry. Numeric fields are rounded to three
// decimals, matching what the framework stores.
func (l *Library) Put(m Material) {
	for i := range m.Color {
		m.Color[i] = round3(m.Color[i])
	}
	m.Metal = round3(m.Metal)
	m.Roughness = round3(m.Roughness)

	if _, ok := l.index[m.Identifier]; !ok {
		l.order = append(l.order, m.Identifier)
	}
	l.index[m.Identifier] = m
}

// Materials returns all entries in first-added order.
func (l *Library) Materials() []Material {
	out := make([]Material, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.index[id])
	}
	return out
}

// ByName returns the entries as a lookup map for the interchange writer.
func (l *Library) ByName() map[string]Material {
	out := make(map[string]Material, len(l.index))
	for id, m := range l.index {
		out[id] = m
	}
	return out
}

// Save writes the library back to disk, creating parent directories as
// needed.
func (l *Library) Save() error {
	var f libraryFile
	f.GlobalDefinitions.Materials = l.Materials()
	if f.GlobalDefinitions.Materials == nil {
		f.GlobalDefinitions.Materials = []Material{}
	}
	data, err := json.MarshalIndent(&f, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("material library: %w", err)
	}
	if err := os.WriteFile(l.path, data, 0o644); err != nil {
		return fmt.Errorf("material library: %w", err)
	}
	return nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
