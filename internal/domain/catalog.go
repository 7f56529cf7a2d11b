package domain

import "fmt"

// Module is a single selectable curriculum item. Identity is ID.
type Module struct {
	ID          string
	Name        string
	Description string
}

// Domain is a top-level catalog category. Catalog data is loaded once at
// startup and never mutated afterwards.
type Domain struct {
	ID      string
	Title   string
	Modules []Module
}

// Catalog is the ordered, read-only sequence of domains presented to the user.
type Catalog struct {
	domains []Domain
	index   map[string]int
	modules map[string]Module
}

// NewCatalog copies the given domains into an immutable Catalog.
// Domain IDs and module IDs must be unique across the whole catalog.
func NewCatalog(domains []Domain) (*Catalog, error) {
	c := &Catalog{
		domains: make([]Domain, len(domains)),
		index:   make(map[string]int, len(domains)),
		modules: make(map[string]Module),
	}
	for i, d := range domains {
		if _, dup := c.index[d.ID]; dup {
			return nil, fmt.Errorf("duplicate domain id %q", d.ID)
		}
		c.index[d.ID] = i
		mods := make([]Module, len(d.Modules))
		copy(mods, d.Modules)
		for _, m := range mods {
			if _, dup := c.modules[m.ID]; dup {
				return nil, fmt.Errorf("duplicate module id %q in domain %q", m.ID, d.ID)
			}
			c.modules[m.ID] = m
		}
		c.domains[i] = Domain{ID: d.ID, Title: d.Title, Modules: mods}
	}
	return c, nil
}

// Len returns the number of domains.
func (c *Catalog) Len() int { return len(c.domains) }

// At returns the domain at position i.
func (c *Catalog) At(i int) Domain { return c.domains[i] }

// Domains returns a copy of the ordered domain list.
func (c *Catalog) Domains() []Domain {
	out := make([]Domain, len(c.domains))
	copy(out, c.domains)
	return out
}

// IndexOf returns the slot position of a domain ID.
func (c *Catalog) IndexOf(domainID string) (int, bool) {
	i, ok := c.index[domainID]
	return i, ok
}

// Module looks up a module by ID anywhere in the catalog.
func (c *Catalog) Module(id string) (Module, bool) {
	m, ok := c.modules[id]
	return m, ok
}

// ModuleCount returns the total number of modules across all domains.
func (c *Catalog) ModuleCount() int { return len(c.modules) }
