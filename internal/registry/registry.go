// Package registry maps game IDs to factories. Built-in variants register
// themselves in init; variants defined in config are added at startup.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/tui-2048/internal/core"
)

// Game is a playable variant driven by the platform tick loop.
type Game interface {
	// ID is the stable identifier used on the command line and in score storage.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new game for the given screen and seed.
	Reset(cfg core.RuntimeConfig)

	// Step consumes the input of one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the game into a cleared screen buffer.
	Render(dst *core.Screen)

	// State returns the current score and status flags.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID          string
	Title       string
	Description string
}

// Describer is implemented by games that carry a one-line description.
type Describer interface {
	Description() string
}

// Factory creates a fresh game instance.
type Factory func() Game

// ErrDuplicate is returned when an ID is already registered.
var ErrDuplicate = errors.New("registry: game already registered")

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
	infos     = make(map[string]GameInfo)
)

// Register adds a factory and panics on a duplicate ID.
// Intended for init functions.
func Register(id string, f Factory) {
	if err := TryRegister(id, f); err != nil {
		panic(err)
	}
}

// TryRegister adds a factory, returning ErrDuplicate if id is taken.
func TryRegister(id string, f Factory) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("registry: empty game id")
	}

	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicate, id)
	}

	g := f()
	info := GameInfo{ID: id, Title: g.Title()}
	if d, ok := g.(Describer); ok {
		info.Description = d.Description()
	}

	factories[id] = f
	infos[id] = info
	return nil
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(infos))
	for _, info := range infos {
		result = append(result, info)
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return strings.Compare(a.ID, b.ID)
	})
	return result
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	f, ok := factories[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
