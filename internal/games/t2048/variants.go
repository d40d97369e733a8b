// Package t2048 adapts the 2048 engine to the platform game loop and registers
// the playable board variants.
package t2048

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-2048/internal/engine"
	"github.com/vovakirdan/tui-2048/internal/registry"
)

// Variant is a board size and target tile under a registry ID.
type Variant struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Size        int    `yaml:"size"`
	Target      int    `yaml:"target"`
}

// Built-in variants. Classic is the default.
var (
	Classic = Variant{ID: "2048", Name: "Classic", Size: 4, Target: 2048,
		Description: "4x4 board, reach 2048"}
	Mini = Variant{ID: "2048_mini", Name: "Mini", Size: 3, Target: 256,
		Description: "3x3 board, reach 256"}
	Sprint = Variant{ID: "2048_sprint", Name: "Sprint", Size: 4, Target: 512,
		Description: "4x4 board, reach 512"}
	Big = Variant{ID: "2048_big", Name: "Big", Size: 5, Target: 4096,
		Description: "5x5 board, reach 4096"}
	Huge = Variant{ID: "2048_huge", Name: "Huge", Size: 6, Target: 8192,
		Description: "6x6 board, reach 8192"}
)

// BuiltinVariants lists the variants registered at init.
var BuiltinVariants = []Variant{Classic, Mini, Sprint, Big, Huge}

var (
	variantsMu sync.RWMutex
	variants   = make(map[string]Variant)
)

func init() {
	for _, v := range BuiltinVariants {
		if err := Register(v); err != nil {
			panic(err)
		}
	}
}

// Validate checks the variant's ID and board shape.
func (v Variant) Validate() error {
	if strings.TrimSpace(v.ID) == "" {
		return fmt.Errorf("t2048: variant id is required")
	}
	if err := engine.ValidateShape(v.Size, v.Target); err != nil {
		return fmt.Errorf("t2048: variant %q: %w", v.ID, err)
	}
	return nil
}

// Title returns the display name.
func (v Variant) Title() string {
	name := v.Name
	if name == "" {
		name = v.ID
	}
	return fmt.Sprintf("2048 %s (%dx%d)", name, v.Size, v.Size)
}

// Register validates v and adds it to the game registry.
func Register(v Variant) error {
	if err := v.Validate(); err != nil {
		return err
	}
	if err := registry.TryRegister(v.ID, func() registry.Game { return New(v) }); err != nil {
		return err
	}

	variantsMu.Lock()
	variants[v.ID] = v
	variantsMu.Unlock()
	return nil
}

// Lookup returns the registered variant with the given ID.
func Lookup(id string) (Variant, bool) {
	variantsMu.RLock()
	defer variantsMu.RUnlock()

	v, ok := variants[id]
	return v, ok
}

// Variants returns all registered variants ordered by board size, then target.
func Variants() []Variant {
	variantsMu.RLock()
	result := make([]Variant, 0, len(variants))
	for _, v := range variants {
		result = append(result, v)
	}
	variantsMu.RUnlock()

	slices.SortFunc(result, func(a, b Variant) int {
		if a.Size != b.Size {
			return a.Size - b.Size
		}
		if a.Target != b.Target {
			return a.Target - b.Target
		}
		return strings.Compare(a.ID, b.ID)
	})
	return result
}
