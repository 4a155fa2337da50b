// Package registry provides a global registry of pilots.
// A pilot is a scripted input source that drives the paddle in headless runs.
// Pilots register themselves in init() functions, so the CLI and batch runner
// can discover them by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/breakout-sim/internal/core"
	"github.com/vovakirdan/breakout-sim/internal/sim"
)

// Pilot chooses the logical input for the next tick.
type Pilot interface {
	// Name returns the registered name of the pilot.
	Name() string

	// Next returns the input for the upcoming tick given the current view.
	Next(v sim.View) core.Input
}

// PilotInfo contains metadata about a registered pilot.
type PilotInfo struct {
	Name        string
	Description string
}

// Factory creates a new pilot. Seed feeds pilots that use randomness.
type Factory func(seed int64) Pilot

type entry struct {
	factory     Factory
	description string
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a pilot factory to the registry.
// Panics if a pilot with the same name is already registered.
func Register(name, description string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[name]; exists {
		panic(fmt.Sprintf("registry: pilot %q already registered", name))
	}
	entries[name] = entry{factory: f, description: description}
}

// List returns information about all registered pilots, sorted by name.
func List() []PilotInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]PilotInfo, 0, len(entries))
	for name, e := range entries {
		result = append(result, PilotInfo{Name: name, Description: e.description})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Create instantiates a pilot by name.
// Returns an error if the name is not registered.
func Create(name string, seed int64) (Pilot, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown pilot %q", name)
	}

	return e.factory(seed), nil
}

// Exists checks if a pilot with the given name is registered.
func Exists(name string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[name]
	return ok
}
