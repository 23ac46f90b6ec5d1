package builtin

import (
	"fmt"
)

// Operation identifies a halving-add builtin.
type Operation string

const (
	// Hadd computes (a + b) >> 1 without intermediate overflow.
	Hadd Operation = "hadd"
	// Rhadd computes (a + b + 1) >> 1 without intermediate overflow.
	Rhadd Operation = "rhadd"
)

// Operations lists every supported operation in generation order.
var Operations = []Operation{Hadd, Rhadd}

// Domain of element widths and vector widths fixtures are generated for.
var (
	Widths  = []uint32{8, 16, 32, 64}
	Vectors = []uint32{1, 2, 3, 4}
)

// ParseOperation converts a name to an Operation.
func ParseOperation(s string) (Operation, error) {
	switch Operation(s) {
	case Hadd, Rhadd:
		return Operation(s), nil
	default:
		return "", fmt.Errorf("unknown operation %q: must be one of %v", s, Operations)
	}
}

// String returns the builtin's OpenCL name.
func (o Operation) String() string {
	return string(o)
}

// JoinOp returns the bitwise instruction that combines the raw operands
// before the low bit is extracted: "and" truncates, "or" rounds up.
func (o Operation) JoinOp() string {
	if o == Rhadd {
		return "or"
	}
	return "and"
}

// MangledPrefix returns the Itanium prefix for the builtin name:
// _Z, the name length, and the name.
func (o Operation) MangledPrefix() string {
	return fmt.Sprintf("_Z%d%s", len(o), o)
}

// MangledName returns the full mangled symbol of the two-argument builtin
// overload for t, e.g. _Z4haddDv4_tS_.
func (o Operation) MangledName(t ElementType) string {
	return o.MangledPrefix() + MangledParams(t.Width, t.Signed, t.Vector, 2)
}

// ElementType is an OpenCL integer scalar or vector type.
type ElementType struct {
	Width  uint32 `json:"width"`
	Signed bool   `json:"signed"`
	Vector uint32 `json:"vector"`
}

// TypeName returns the OpenCL C spelling, e.g. "uint4".
func (t ElementType) TypeName() string {
	return TypeName(t.Width, t.Signed, t.Vector)
}

// LLVMType returns the LLVM IR spelling, e.g. "<4 x i32>".
func (t ElementType) LLVMType() string {
	return LowLevelType(t.Width, t.Vector)
}

// ScalarLLVMType returns the LLVM IR spelling of a single lane.
func (t ElementType) ScalarLLVMType() string {
	return LowLevelType(t.Width, 1)
}

// ShiftOp returns the right shift that preserves the type's signedness.
func (t ElementType) ShiftOp() string {
	if t.Signed {
		return "ashr"
	}
	return "lshr"
}

// Splat returns value replicated across every lane of t.
func (t ElementType) Splat(value string) string {
	return SplatConstant(t.Vector, t.ScalarLLVMType(), value)
}

// Validate reports whether t lies inside the generated domain.
func (t ElementType) Validate() error {
	if !contains(Widths, t.Width) {
		return fmt.Errorf("unsupported element width %d: must be one of %v", t.Width, Widths)
	}
	if !contains(Vectors, t.Vector) {
		return fmt.Errorf("unsupported vector width %d: must be one of %v", t.Vector, Vectors)
	}
	return nil
}

func contains(values []uint32, v uint32) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
