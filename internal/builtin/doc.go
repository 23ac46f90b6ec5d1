// Package builtin names the OpenCL integer halving-add builtins.
//
// It maps an (operation, element type) pair onto the three spellings a
// fixture needs:
//   - the OpenCL C type name (char, uint4, long3, ...)
//   - the Itanium-mangled parameter fragment (cc, Dv4_tS_, ...)
//   - the LLVM IR type (i32, <4 x i8>, ...)
//
// This package has no internal imports. Everything here is pure string
// formatting and safe for concurrent use.
package builtin
