// Package crystal provides periodic-structure and composition domain types
// and the parsing capability interfaces consumed by materials featurization.
package crystal

import "context"

// Site is one atomic site in a periodic structure.
type Site struct {
	Element string     `json:"element"`
	Coords  [3]float64 `json:"coords"` // fractional coordinates
}

// Structure is a parsed 3D crystal structure with periodic boundary
// conditions.
type Structure struct {
	Lattice [3][3]float64 `json:"lattice"` // row vectors, angstroms
	Sites   []Site        `json:"sites"`
}

// NumSites returns the number of atomic sites in the structure.
func (s *Structure) NumSites() int {
	return len(s.Sites)
}

// StructureDict is the JSON-serializable dictionary form a crystal structure
// arrives in before parsing.
type StructureDict map[string]any

// Composition is a parsed crystal composition.
type Composition struct {
	Formula string             `json:"formula"` // reduced formula, e.g. "MoS2"
	Amounts map[string]float64 `json:"amounts"` // element symbol -> stoichiometric amount
}

// NumElements returns the number of distinct elements in the composition.
func (c *Composition) NumElements() int {
	return len(c.Amounts)
}

// StructureParser converts a structure dictionary into a parsed structure.
// Implementations must report invalid input as a domain-shaped error.
type StructureParser interface {
	ParseStructure(ctx context.Context, d StructureDict) (*Structure, error)
}

// CompositionParser converts a composition string (e.g. "MoS2") into a
// parsed composition. Implementations must report invalid input as a
// domain-shaped error.
type CompositionParser interface {
	ParseComposition(ctx context.Context, formula string) (*Composition, error)
}
