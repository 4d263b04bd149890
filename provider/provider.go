// Package provider manages the registry of built-in and user-defined content sources.
package provider

import (
	"sync"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/vidmux/vidmux/log"
	"github.com/vidmux/vidmux/source"
	"golang.org/x/exp/slices"
)

var registry = struct {
	sync.RWMutex
	sources []*source.Descriptor
	loaded  bool
}{}

// Load populates the registry from the built-in list and the user descriptor directory.
// User descriptors shadow builtins with the same ID.
func Load() error {
	customs, err := Customs()
	if err != nil {
		return err
	}

	merged := make(map[string]*source.Descriptor)
	for _, d := range Builtins() {
		merged[d.ID] = d
	}
	for _, d := range customs {
		merged[d.ID] = d
	}

	sources := lo.Values(merged)
	slices.SortFunc(sources, func(a, b *source.Descriptor) int {
		if a.Weight != b.Weight {
			return b.Weight - a.Weight
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})

	registry.Lock()
	registry.sources = sources
	registry.loaded = true
	registry.Unlock()

	log.Debugf("source registry loaded: %d sources", len(sources))
	return nil
}

// ensureLoaded lazily performs the initial registry load.
func ensureLoaded() {
	registry.RLock()
	loaded := registry.loaded
	registry.RUnlock()

	if !loaded {
		if err := Load(); err != nil {
			log.Errorf("source registry load failed: %v", err)
		}
	}
}

// All returns every registered source descriptor, builtins and customs combined.
func All() []*source.Descriptor {
	ensureLoaded()
	registry.RLock()
	defer registry.RUnlock()
	return slices.Clone(registry.sources)
}

// Enabled returns the descriptors that participate in searches by default.
func Enabled() []*source.Descriptor {
	return lo.Filter(All(), func(d *source.Descriptor, _ int) bool {
		return d.Enabled
	})
}

// Get finds a source descriptor by its unique ID.
func Get(id string) (*source.Descriptor, bool) {
	for _, d := range All() {
		if d.ID == id {
			return d, true
		}
	}
	return nil, false
}

// FuzzyFind returns all descriptors whose ID or display name fuzzy-matches the given term.
func FuzzyFind(term string) []*source.Descriptor {
	return lo.Filter(All(), func(d *source.Descriptor, _ int) bool {
		return fuzzy.MatchFold(term, d.ID) || fuzzy.MatchFold(term, d.Name)
	})
}
