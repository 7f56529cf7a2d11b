package catalog

import (
	"fmt"

	"github.com/alexanderramin/syllabus/internal/domain"
)

// Convert validates f and builds the immutable catalog from it.
func Convert(f *File) (*domain.Catalog, error) {
	if err := ValidationError(Validate(f)); err != nil {
		return nil, err
	}

	domains := make([]domain.Domain, 0, len(f.Domains))
	for _, d := range f.Domains {
		mods := make([]domain.Module, 0, len(d.Modules))
		for _, m := range d.Modules {
			mods = append(mods, domain.Module{ID: m.ID, Name: m.Name, Description: m.Description})
		}
		domains = append(domains, domain.Domain{ID: d.ID, Title: d.Title, Modules: mods})
	}
	return domain.NewCatalog(domains)
}

// Load reads the catalog at path, or returns the built-in catalog when
// path is empty.
func Load(path string) (*domain.Catalog, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog %s: %w", path, err)
	}
	return Convert(f)
}
