package fixture

import (
	"bytes"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/akaday/clspv/internal/builtin"
)

func genFixture() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf(builtin.Hadd, builtin.Rhadd),
		gen.OneConstOf(uint32(8), uint32(16), uint32(32), uint32(64)),
		gen.Bool(),
		gen.OneConstOf(uint32(1), uint32(2), uint32(3), uint32(4)),
	).Map(func(values []any) Fixture {
		return Fixture{
			Op: values[0].(builtin.Operation),
			Type: builtin.ElementType{
				Width:  values[1].(uint32),
				Signed: values[2].(bool),
				Vector: values[3].(uint32),
			},
		}
	})
}

func TestRenderProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("render is deterministic", prop.ForAll(
		func(f Fixture) bool {
			return bytes.Equal(f.Render(), f.Render())
		},
		genFixture(),
	))

	properties.Property("call, declare and ret agree on the type", prop.ForAll(
		func(f Fixture) bool {
			out := string(f.Render())
			ty := f.Type.LLVMType()
			callee := f.Op.MangledName(f.Type)
			return strings.HasPrefix(out, preamble) &&
				strings.Contains(out, "define "+ty+" @"+f.Name()+"(") &&
				strings.Contains(out, " %call = call "+ty+" @"+callee+"(") &&
				strings.Contains(out, "declare "+ty+" @"+callee+"("+ty+", "+ty+")\n") &&
				strings.HasSuffix(out, "; CHECK: ret "+ty+" [[hadd]]\n")
		},
		genFixture(),
	))

	properties.Property("shift follows signedness and join follows operation", prop.ForAll(
		func(f Fixture) bool {
			checks := f.Checks()
			shift := "lshr "
			if f.Type.Signed {
				shift = "ashr "
			}
			join := "and "
			if f.Op == builtin.Rhadd {
				join = "or "
			}
			return len(checks) == 7 &&
				strings.HasPrefix(checks[0].Expr, shift) &&
				strings.HasPrefix(checks[1].Expr, shift) &&
				strings.HasPrefix(checks[3].Expr, join)
		},
		genFixture(),
	))

	properties.TestingRun(t)
}

// The checked sequence must compute floor((a+b)/2) for hadd and
// floor((a+b+1)/2) for rhadd without widening.
func TestLoweringIdentity(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	properties.Property("signed hadd", prop.ForAll(
		func(a, b int8) bool {
			got := (a >> 1) + (b >> 1) + ((a & b) & 1)
			return int16(got) == (int16(a)+int16(b))>>1
		},
		gen.Int8(), gen.Int8(),
	))

	properties.Property("signed rhadd", prop.ForAll(
		func(a, b int8) bool {
			got := (a >> 1) + (b >> 1) + ((a | b) & 1)
			return int16(got) == (int16(a)+int16(b)+1)>>1
		},
		gen.Int8(), gen.Int8(),
	))

	properties.Property("unsigned hadd", prop.ForAll(
		func(a, b uint8) bool {
			got := (a >> 1) + (b >> 1) + ((a & b) & 1)
			return uint16(got) == (uint16(a)+uint16(b))>>1
		},
		gen.UInt8(), gen.UInt8(),
	))

	properties.Property("unsigned rhadd", prop.ForAll(
		func(a, b uint8) bool {
			got := (a >> 1) + (b >> 1) + ((a | b) & 1)
			return uint16(got) == (uint16(a)+uint16(b)+1)>>1
		},
		gen.UInt8(), gen.UInt8(),
	))

	properties.TestingRun(t)
}
