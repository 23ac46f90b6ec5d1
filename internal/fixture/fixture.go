package fixture

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/akaday/clspv/internal/builtin"
)

// preamble holds the RUN lines and target metadata shared by every fixture.
// It is treated as an opaque constant.
//
//go:embed preamble.ll
var preamble string

// DefaultExt is the file extension of generated fixtures.
const DefaultExt = "ll"

// Capture patterns for FileCheck variables. The a_shr line keeps the
// character class the checked-in fixtures were generated with so that
// regenerating them produces no diff.
const (
	capturePattern       = `%[a-zA-Z0-9_.]+`
	legacyCapturePattern = `%[a-zA_Z0-9_.]+`
)

// Fixture is one generated test: a builtin call and the lowering it
// is expected to be replaced with.
type Fixture struct {
	Op   builtin.Operation   `json:"operation"`
	Type builtin.ElementType `json:"type"`
}

// Name returns the name of the wrapper function, e.g. "rhadd_uint4".
func (f Fixture) Name() string {
	return f.Op.String() + "_" + f.Type.TypeName()
}

// FileName returns the fixture's file name with the given extension.
func (f Fixture) FileName(ext string) string {
	if ext == "" {
		return f.Name()
	}
	return f.Name() + "." + ext
}

// Check is a single FileCheck line. Capture, when set, names the value
// defined by the matched instruction.
type Check struct {
	Capture string
	Pattern string
	Expr    string
}

// String renders the check as a comment line without trailing newline.
func (c Check) String() string {
	if c.Capture == "" {
		return "; CHECK: " + c.Expr
	}
	pattern := c.Pattern
	if pattern == "" {
		pattern = capturePattern
	}
	return fmt.Sprintf("; CHECK: [[%s:%s]] = %s", c.Capture, pattern, c.Expr)
}

// Checks returns the expected lowering of the builtin call, in order:
//
//	hadd(a, b)  = (a >> 1) + (b >> 1) + ((a & b) & 1)
//	rhadd(a, b) = (a >> 1) + (b >> 1) + ((a | b) & 1)
func (f Fixture) Checks() []Check {
	ty := f.Type.LLVMType()
	one := f.Type.Splat("1")
	shift := f.Type.ShiftOp()

	return []Check{
		{Capture: "a_shr", Pattern: legacyCapturePattern, Expr: fmt.Sprintf("%s %s %%a, %s", shift, ty, one)},
		{Capture: "b_shr", Expr: fmt.Sprintf("%s %s %%b, %s", shift, ty, one)},
		{Capture: "add", Expr: fmt.Sprintf("add %s [[a_shr]], [[b_shr]]", ty)},
		{Capture: "join", Expr: fmt.Sprintf("%s %s %%a, %%b", f.Op.JoinOp(), ty)},
		{Capture: "and", Expr: fmt.Sprintf("and %s [[join]], %s", ty, one)},
		{Capture: "hadd", Expr: fmt.Sprintf("add %s [[add]], [[and]]", ty)},
		{Expr: fmt.Sprintf("ret %s [[hadd]]", ty)},
	}
}

// Render returns the complete fixture file contents. The output depends only
// on f, so rendering is deterministic.
func (f Fixture) Render() []byte {
	ty := f.Type.LLVMType()
	callee := f.Op.MangledName(f.Type)

	var buf bytes.Buffer
	buf.WriteString(preamble)
	buf.WriteString("\n")

	fmt.Fprintf(&buf, "define %s @%s(%s %%a, %s %%b) {\n", ty, f.Name(), ty, ty)
	buf.WriteString("entry:\n")
	fmt.Fprintf(&buf, " %%call = call %s @%s(%s %%a, %s %%b)\n", ty, callee, ty, ty)
	fmt.Fprintf(&buf, " ret %s %%call\n", ty)
	buf.WriteString("}\n\n")

	fmt.Fprintf(&buf, "declare %s @%s(%s, %s)\n", ty, callee, ty, ty)
	buf.WriteString("\n")

	for _, c := range f.Checks() {
		buf.WriteString(c.String())
		buf.WriteByte('\n')
	}

	return buf.Bytes()
}
