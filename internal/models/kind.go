package models

import (
	"fmt"
	"time"
)

// ActivityKind is one entry of the immutable activity catalog. Limits are
// whole minutes and always positive.
type ActivityKind struct {
	Name         string // stable identifier, e.g. "smoke"
	Label        string // display label, e.g. "🚬 Smoke Break"
	LimitMinutes int
}

// Limit returns the allowed duration for this kind.
func (k ActivityKind) Limit() time.Duration {
	return time.Duration(k.LimitMinutes) * time.Minute
}

// Catalog maps kind names to their definitions. It is built once from
// configuration and never mutated afterwards.
type Catalog struct {
	kinds map[string]ActivityKind
	order []string
}

// NewCatalog builds a catalog from the given kinds, preserving order.
func NewCatalog(kinds []ActivityKind) (*Catalog, error) {
	c := &Catalog{kinds: make(map[string]ActivityKind, len(kinds))}
	for _, k := range kinds {
		if k.Name == "" {
			return nil, fmt.Errorf("activity kind with empty name")
		}
		if k.LimitMinutes <= 0 {
			return nil, fmt.Errorf("activity kind %q has non-positive limit %d", k.Name, k.LimitMinutes)
		}
		if _, dup := c.kinds[k.Name]; dup {
			return nil, fmt.Errorf("duplicate activity kind %q", k.Name)
		}
		c.kinds[k.Name] = k
		c.order = append(c.order, k.Name)
	}
	return c, nil
}

// Lookup returns the kind definition for name, if it exists.
func (c *Catalog) Lookup(name string) (ActivityKind, bool) {
	k, ok := c.kinds[name]
	return k, ok
}

// Kinds returns all kinds in catalog order.
func (c *Catalog) Kinds() []ActivityKind {
	out := make([]ActivityKind, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.kinds[name])
	}
	return out
}
