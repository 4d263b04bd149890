// Package source defines the domain models for content sources and their search results.
package source

import "fmt"

// Descriptor identifies one external content source and how to reach its search API.
// Descriptors are immutable: they are loaded once at startup and only read during a request.
type Descriptor struct {
	// ID is the unique, stable identifier of the source.
	ID string `json:"id"`

	// Name is the human-readable display name of the source.
	Name string `json:"name"`

	// API is the base URL of the source's videolist endpoint.
	// The search client appends the query parameters itself.
	API string `json:"api"`

	// Enabled marks whether the source participates in searches by default.
	Enabled bool `json:"enabled"`

	// Weight is an ordering hint for presentation; higher weights sort first.
	Weight int `json:"weight,omitempty"`
}

func (d *Descriptor) String() string {
	return d.Name
}

// Validate reports whether the descriptor carries everything a search call needs.
func (d *Descriptor) Validate() error {
	if d.ID == "" {
		return fmt.Errorf("source descriptor without id")
	}
	if d.API == "" {
		return fmt.Errorf("source %s: empty api endpoint", d.ID)
	}
	return nil
}
