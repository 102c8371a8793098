package vgg

import (
	"fmt"
	"slices"
	"sync"
)

// pool marks a pooling stage in rowOf.
const pool = -1

// rowOf converts table notation into a Row.
func rowOf(stages ...int) Row {
	row := make(Row, len(stages))
	for i, v := range stages {
		if v == pool {
			row[i] = Pool()
		} else {
			row[i] = Channels(v)
		}
	}
	return row
}

// Built-in architectures. Each repeats the widths 64, 128, 256, 512, 512
// between five pooling stages; the repetition count per block sets the
// depth.
var builtin = map[string]Row{
	"VGG11": rowOf(64, pool, 128, pool, 256, 256, pool, 512, 512, pool, 512, 512, pool),
	"VGG13": rowOf(64, 64, pool, 128, 128, pool, 256, 256, pool, 512, 512, pool, 512, 512, pool),
	"VGG16": rowOf(64, 64, pool, 128, 128, pool, 256, 256, 256, pool, 512, 512, 512, pool, 512, 512, 512, pool),
	"VGG19": rowOf(64, 64, pool, 128, 128, pool, 256, 256, 256, 256, pool, 512, 512, 512, 512, pool, 512, 512, 512, 512, pool),
}

// builtinNames lists the built-in architectures in depth order.
var builtinNames = []string{"VGG11", "VGG13", "VGG16", "VGG19"}

// Lookup returns the configuration row of a built-in architecture.
//
// The returned row is a copy. Unknown names fail with ErrUnknownArchitecture.
func Lookup(name string) (Row, error) {
	row, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownArchitecture, name)
	}
	return row.Clone(), nil
}

// Names returns the built-in architecture names in depth order.
func Names() []string {
	return slices.Clone(builtinNames)
}

// Catalog is a lookup table that starts with the built-in architectures and
// accepts additional rows. It is safe for concurrent use.
type Catalog struct {
	mu    sync.RWMutex
	rows  map[string]Row
	order []string
}

// NewCatalog returns a catalog holding the built-in architectures.
func NewCatalog() *Catalog {
	c := &Catalog{rows: make(map[string]Row, len(builtin))}
	for _, name := range builtinNames {
		c.rows[name] = builtin[name].Clone()
		c.order = append(c.order, name)
	}
	return c
}

// Add registers row under name. It fails with ErrDuplicateArchitecture if
// the name is taken and with ErrInvalidRow if the row does not validate.
func (c *Catalog) Add(name string, row Row) error {
	if name == "" {
		return fmt.Errorf("%w: empty architecture name", ErrInvalidRow)
	}
	if err := row.Validate(); err != nil {
		return fmt.Errorf("architecture %q: %w", name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.rows[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateArchitecture, name)
	}
	c.rows[name] = row.Clone()
	c.order = append(c.order, name)
	return nil
}

// Lookup returns a copy of the row registered under name.
func (c *Catalog) Lookup(name string) (Row, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	row, ok := c.rows[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownArchitecture, name)
	}
	return row.Clone(), nil
}

// Names returns all registered names, built-ins first, then in the order
// they were added.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.order)
}
