// Package seed populates the remote data service from a YAML document:
//
//	brochures:
//	  car_01:
//	    title: Sedan Z
//	    price: "25000"
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/aretw0/brochure/pkg/domain"
	"github.com/aretw0/brochure/pkg/ports"
	"gopkg.in/yaml.v3"
)

// File is the decoded seed document. Values are written as-is, so a seed may
// also contain non-mapping entries.
type File struct {
	Brochures map[string]any `yaml:"brochures"`
}

// Parse decodes a seed document.
func Parse(r io.Reader) (*File, error) {
	var f File
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to parse seed: %w", err)
	}
	for id := range f.Brochures {
		if err := domain.ValidateIdentifier(id); err != nil {
			return nil, fmt.Errorf("seed entry %q: %w", id, err)
		}
	}
	return &f, nil
}

// ParseFile opens and decodes path.
func ParseFile(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return Parse(fh)
}

// IDs returns the identifiers in the file, sorted.
func (f *File) IDs() []string {
	ids := make([]string, 0, len(f.Brochures))
	for id := range f.Brochures {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Apply writes every entry to db under its record path, in identifier order.
// It stops at the first failure and reports how many entries were written.
func (f *File) Apply(ctx context.Context, db ports.WritableDatabase) (int, error) {
	written := 0
	for _, id := range f.IDs() {
		if err := db.Set(ctx, domain.RecordPath(id), f.Brochures[id]); err != nil {
			return written, fmt.Errorf("failed to seed %s: %w", id, err)
		}
		written++
	}
	return written, nil
}
