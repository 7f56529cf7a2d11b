package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks a catalog file before conversion and returns every
// problem found.
func Validate(f *File) []error {
	var errs []error

	if len(f.Domains) == 0 {
		errs = append(errs, fmt.Errorf("domains: at least one domain is required"))
	}

	domainIDs := make(map[string]bool)
	moduleIDs := make(map[string]string) // module id -> owning domain id
	for i, d := range f.Domains {
		prefix := fmt.Sprintf("domains[%d]", i)
		if strings.TrimSpace(d.ID) == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if domainIDs[d.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate domain id %q", prefix, d.ID))
		}
		domainIDs[d.ID] = true

		if strings.TrimSpace(d.Title) == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if len(d.Modules) == 0 {
			errs = append(errs, fmt.Errorf("%s.modules: at least one module is required", prefix))
		}

		for j, m := range d.Modules {
			mp := fmt.Sprintf("%s.modules[%d]", prefix, j)
			if strings.TrimSpace(m.ID) == "" {
				errs = append(errs, fmt.Errorf("%s.id is required", mp))
			} else if owner, dup := moduleIDs[m.ID]; dup {
				errs = append(errs, fmt.Errorf("%s.id: module id %q already used in domain %q", mp, m.ID, owner))
			} else {
				moduleIDs[m.ID] = d.ID
			}
			if strings.TrimSpace(m.Name) == "" {
				errs = append(errs, fmt.Errorf("%s.name is required", mp))
			}
		}
	}

	return errs
}

// ValidationError joins every problem reported by Validate.
func ValidationError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
}
