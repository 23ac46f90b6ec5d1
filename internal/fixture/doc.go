// Package fixture renders and writes the LLVM IR test fixtures for the
// halving-add builtins.
//
// Each fixture wraps a call to one mangled builtin overload and carries
// FileCheck lines describing the instruction sequence the call must be
// replaced with. A fixture's bytes depend only on its operation and element
// type: no timestamps or generated identifiers are embedded, so writing the
// same set twice yields identical files.
package fixture
