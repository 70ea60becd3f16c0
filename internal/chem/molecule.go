// Package chem provides molecule domain types and the parsing capability
// interface consumed by molecular featurization.
package chem

import "context"

// Molecule is a parsed small-molecule representation. Instances are produced
// by a Parser; this package never parses chemical formats itself.
type Molecule struct {
	SMILES       string  `json:"smiles"` // canonical SMILES as reported by the parser
	NumAtoms     int     `json:"num_atoms"`
	NumBonds     int     `json:"num_bonds"`
	NumRings     int     `json:"num_rings"`
	FormalCharge int     `json:"formal_charge"`
	Weight       float64 `json:"weight"` // molecular weight in g/mol
}

// Parser converts a SMILES string into a parsed molecule. Implementations
// must report invalid input as a domain-shaped error so batch featurization
// can recover it per item.
type Parser interface {
	ParseSMILES(ctx context.Context, smiles string) (*Molecule, error)
}

// Input is one molecular datapoint: either a raw SMILES string awaiting
// parsing, or an already-parsed molecule.
type Input struct {
	smiles string
	mol    *Molecule
}

// SMILES wraps a raw SMILES string as a molecular input.
func SMILES(s string) Input {
	return Input{smiles: s}
}

// Parsed wraps an already-parsed molecule as a molecular input.
func Parsed(m *Molecule) Input {
	return Input{mol: m}
}

// SMILESInputs wraps a list of raw SMILES strings as molecular inputs.
func SMILESInputs(smiles []string) []Input {
	inputs := make([]Input, len(smiles))
	for i, s := range smiles {
		inputs[i] = SMILES(s)
	}
	return inputs
}

// IsParsed reports whether the input already holds a parsed molecule.
func (in Input) IsParsed() bool {
	return in.mol != nil
}

// Molecule returns the parsed molecule, or nil for a raw string input.
func (in Input) Molecule() *Molecule {
	return in.mol
}

// Raw returns the raw SMILES string for an unparsed input. For a parsed
// input it returns the molecule's canonical SMILES.
func (in Input) Raw() string {
	if in.mol != nil {
		return in.mol.SMILES
	}
	return in.smiles
}
