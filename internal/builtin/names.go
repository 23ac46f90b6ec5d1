package builtin

import (
	"strconv"
	"strings"
)

// TypeName returns the OpenCL C type name for an integer element type.
// Unsigned types get a "u" prefix and vectors get their width as a suffix,
// e.g. TypeName(8, false, 4) == "uchar4".
//
// Widths other than 8, 16 and 32 spell as long.
func TypeName(width uint32, signed bool, vector uint32) string {
	name := ""
	if !signed {
		name = "u"
	}

	switch width {
	case 8:
		name += "char"
	case 16:
		name += "short"
	case 32:
		name += "int"
	default:
		name += "long"
	}

	if vector > 1 {
		name += strconv.FormatUint(uint64(vector), 10)
	}
	return name
}

// baseLetter returns the Itanium builtin-type code for an integer type.
func baseLetter(width uint32, signed bool) string {
	switch width {
	case 8:
		if signed {
			return "c"
		}
		return "h"
	case 16:
		if signed {
			return "s"
		}
		return "t"
	case 32:
		if signed {
			return "i"
		}
		return "j"
	default:
		if signed {
			return "l"
		}
		return "m"
	}
}

// MangledParams returns the mangled parameter list for a builtin taking
// params arguments of the same type.
//
// Scalars repeat the base letter once per parameter ("cc"). Vectors spell
// the first parameter as Dv<N>_<base> and refer back to it with one "S_"
// substitution per extra parameter ("Dv4_tS_").
//
// params is clamped to the range 1..3.
func MangledParams(width uint32, signed bool, vector uint32, params int) string {
	if params < 1 {
		params = 1
	}
	if params > 3 {
		params = 3
	}

	base := baseLetter(width, signed)
	if vector == 1 {
		return strings.Repeat(base, params)
	}

	return "Dv" + strconv.FormatUint(uint64(vector), 10) + "_" + base + strings.Repeat("S_", params-1)
}

// LowLevelType returns the LLVM IR spelling of an integer scalar or vector.
func LowLevelType(width, vector uint32) string {
	base := "i" + strconv.FormatUint(uint64(width), 10)
	if vector == 1 {
		return base
	}
	return "<" + strconv.FormatUint(uint64(vector), 10) + " x " + base + ">"
}

// SplatConstant returns an LLVM IR constant with every lane set to value.
// For scalars this is value itself.
func SplatConstant(vector uint32, elemType, value string) string {
	if vector == 1 {
		return value
	}

	var sb strings.Builder
	sb.WriteByte('<')
	for i := uint32(0); i < vector; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(elemType)
		sb.WriteByte(' ')
		sb.WriteString(value)
	}
	sb.WriteByte('>')
	return sb.String()
}
