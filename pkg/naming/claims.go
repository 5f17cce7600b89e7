// Package naming resolves destination name conflicts within one planning
// scope so that no two planned files end up with the same final name.
package naming

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Claims is a set of names already assigned in the current scope, each mapped
// to the file that owns it. It is meant for sequential use within one run.
type Claims struct {
	owners   map[string]string // name -> owner that claimed it
	counters map[string]int    // proposed name -> next suffix to try

	// Exists, when set, reports names taken outside the batch (for example
	// files already on disk). Those names are never handed out.
	Exists func(name string) bool
}

// NewClaims creates an empty claim set
func NewClaims() *Claims {
	return &Claims{
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// Claim reserves name for owner without conflict resolution. It reports
// false when another owner already holds the name.
func (c *Claims) Claim(owner, name string) bool {
	if current, exists := c.owners[name]; exists && current != owner {
		return false
	}
	c.owners[name] = owner
	return true
}

// Owner returns the owner of name, if claimed
func (c *Claims) Owner(name string) (string, bool) {
	owner, ok := c.owners[name]
	return owner, ok
}

// Resolve returns the final name for owner. An unclaimed proposed name (or
// one owner already holds) is returned as-is; otherwise "-N" is inserted
// before the extension with increasing N until a free name is found.
func (c *Claims) Resolve(owner, proposed string) string {
	if c.available(owner, proposed) {
		c.owners[proposed] = owner
		return proposed
	}

	stem, ext := SplitExt(proposed)
	counter := c.counters[proposed]
	if counter == 0 {
		counter = 1
	}

	for {
		candidate := fmt.Sprintf("%s-%d%s", stem, counter, ext)
		if c.available(owner, candidate) {
			c.counters[proposed] = counter + 1
			c.owners[candidate] = owner
			return candidate
		}
		counter++
	}
}

func (c *Claims) available(owner, name string) bool {
	if current, exists := c.owners[name]; exists {
		return current == owner
	}
	if c.Exists != nil && c.Exists(name) {
		return false
	}
	return true
}

// SplitExt splits name into stem and extension, where the extension starts at
// the last dot of the base name. Dotfiles such as ".hidden" have no
// extension.
func SplitExt(name string) (stem, ext string) {
	base := filepath.Base(name)
	ext = filepath.Ext(base)
	if ext == base || strings.TrimLeft(base, ".") == strings.TrimPrefix(ext, ".") {
		return name, ""
	}
	return strings.TrimSuffix(name, ext), ext
}
