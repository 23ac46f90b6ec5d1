// Package matrix enumerates the parameter cross-product fixtures are
// generated for and loads optional restrictions of it from YAML or CUE.
package matrix

import (
	"fmt"

	"github.com/akaday/clspv/internal/builtin"
	"github.com/akaday/clspv/internal/fixture"
)

// Matrix is a cross-product of operations, element widths, signedness and
// vector widths. Each axis is enumerated in the order given.
type Matrix struct {
	Operations []builtin.Operation
	Widths     []uint32
	Signed     []bool
	Vectors    []uint32
}

// Default returns the full matrix: {hadd, rhadd} x {8, 16, 32, 64} x
// {unsigned, signed} x {1, 2, 3, 4}, 64 combinations.
func Default() *Matrix {
	return &Matrix{
		Operations: append([]builtin.Operation(nil), builtin.Operations...),
		Widths:     append([]uint32(nil), builtin.Widths...),
		Signed:     []bool{false, true},
		Vectors:    append([]uint32(nil), builtin.Vectors...),
	}
}

// Size returns the number of fixtures the matrix produces.
func (m *Matrix) Size() int {
	return len(m.Operations) * len(m.Widths) * len(m.Signed) * len(m.Vectors)
}

// Fixtures enumerates the matrix: operation, then width, then signedness,
// then vector width.
func (m *Matrix) Fixtures() []fixture.Fixture {
	out := make([]fixture.Fixture, 0, m.Size())
	for _, op := range m.Operations {
		for _, width := range m.Widths {
			for _, signed := range m.Signed {
				for _, vector := range m.Vectors {
					out = append(out, fixture.Fixture{
						Op: op,
						Type: builtin.ElementType{
							Width:  width,
							Signed: signed,
							Vector: vector,
						},
					})
				}
			}
		}
	}
	return out
}

// Validate checks that every axis is non-empty, free of duplicates and
// inside the supported domain.
func (m *Matrix) Validate() error {
	if len(m.Operations) == 0 {
		return &LoadError{Field: "operations", Message: "at least one operation is required"}
	}
	seenOps := make(map[builtin.Operation]bool)
	for _, op := range m.Operations {
		if _, err := builtin.ParseOperation(string(op)); err != nil {
			return &LoadError{Field: "operations", Message: err.Error()}
		}
		if seenOps[op] {
			return &LoadError{Field: "operations", Message: fmt.Sprintf("duplicate operation %q", op)}
		}
		seenOps[op] = true
	}

	if err := validateAxis("widths", m.Widths, func(w uint32) error {
		return builtin.ElementType{Width: w, Vector: 1}.Validate()
	}); err != nil {
		return err
	}

	if len(m.Signed) == 0 {
		return &LoadError{Field: "signed", Message: "at least one signedness is required"}
	}
	if len(m.Signed) > 2 || (len(m.Signed) == 2 && m.Signed[0] == m.Signed[1]) {
		return &LoadError{Field: "signed", Message: "duplicate signedness"}
	}

	return validateAxis("vectors", m.Vectors, func(v uint32) error {
		return builtin.ElementType{Width: 32, Vector: v}.Validate()
	})
}

func validateAxis(field string, values []uint32, check func(uint32) error) error {
	if len(values) == 0 {
		return &LoadError{Field: field, Message: fmt.Sprintf("at least one value is required for %s", field)}
	}
	seen := make(map[uint32]bool)
	for _, v := range values {
		if err := check(v); err != nil {
			return &LoadError{Field: field, Message: err.Error()}
		}
		if seen[v] {
			return &LoadError{Field: field, Message: fmt.Sprintf("duplicate value %d", v)}
		}
		seen[v] = true
	}
	return nil
}
