package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// Catalog is a set of exercise definitions keyed by id.
type Catalog struct {
	exercises map[string]*Exercise
}

func New() *Catalog {
	return &Catalog{exercises: make(map[string]*Exercise)}
}

// Default returns a catalog holding the built-in exercises.
func Default() *Catalog {
	c := New()
	for _, ex := range builtin() {
		// Built-ins are validated by the catalog tests.
		c.exercises[ex.ID] = ex
	}
	return c
}

// Add validates and stores an exercise, replacing any definition with the same id.
func (c *Catalog) Add(ex *Exercise) error {
	ex.ID = strings.ToLower(strings.TrimSpace(ex.ID))
	if err := ex.Validate(); err != nil {
		return err
	}
	c.exercises[ex.ID] = ex
	return nil
}

func (c *Catalog) Get(id string) (*Exercise, error) {
	ex, ok := c.exercises[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExercise, id)
	}
	return ex, nil
}

// List returns every exercise sorted by id.
func (c *Catalog) List() []*Exercise {
	out := make([]*Exercise, 0, len(c.exercises))
	for _, ex := range c.exercises {
		out = append(out, ex)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out
}

func (c *Catalog) Len() int {
	return len(c.exercises)
}

//
// TOML import
//

type exerciseImport struct {
	Exercises []*Exercise `toml:"exercise"`
}

// DecodeTOML parses exercise definitions from TOML data.
func DecodeTOML(data []byte) ([]*Exercise, error) {
	var imp exerciseImport
	if err := toml.Unmarshal(data, &imp); err != nil {
		return nil, fmt.Errorf("invalid TOML format: %w", err)
	}
	for _, ex := range imp.Exercises {
		ex.ID = strings.ToLower(strings.TrimSpace(ex.ID))
		if err := ex.Validate(); err != nil {
			return nil, err
		}
	}
	return imp.Exercises, nil
}

// LoadTOML reads exercise definitions from a file and adds them to the catalog.
// It returns the number of imported exercises.
func (c *Catalog) LoadTOML(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read file: %w", err)
	}

	exercises, err := DecodeTOML(data)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	for _, ex := range exercises {
		if err := c.Add(ex); err != nil {
			return 0, err
		}
	}
	return len(exercises), nil
}

// EncodeTOML writes exercise definitions in the format LoadTOML reads.
func EncodeTOML(exercises []*Exercise) ([]byte, error) {
	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(exerciseImport{Exercises: exercises}); err != nil {
		return nil, fmt.Errorf("encoding TOML: %w", err)
	}
	return []byte(sb.String()), nil
}

// MergeTOML adds exercises to the definitions stored at path, replacing those with
// the same id, and rewrites the file. A missing file starts out empty.
func MergeTOML(path string, exercises []*Exercise) error {
	stored := New()
	if _, err := os.Stat(path); err == nil {
		if _, err := stored.LoadTOML(path); err != nil {
			return err
		}
	}
	for _, ex := range exercises {
		if err := stored.Add(ex); err != nil {
			return err
		}
	}

	data, err := EncodeTOML(stored.List())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
