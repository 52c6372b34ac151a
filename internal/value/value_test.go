package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDisplayForms(t *testing.T) {
	tests := []struct {
		v    Value
		want string
	}{
		{Bool(true), "true"},
		{Bool(false), "false"},
		{Int(42), "42"},
		{Int(-7), "-7"},
		{Float(1.5), "1.5"},
		{Str("hi"), `"hi"`},
		{Str("a\nb"), `"a\nb"`},
		{Command("dup"), "dup"},
		{Deferred("dup"), `\dup`},
		{Quote{}, "[ ]"},
		{Quote{Int(1), Str("a"), Quote{Bool(true)}}, `[ 1 "a" [ true ] ]`},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.v.String())
	}
}

func TestRaw(t *testing.T) {
	require.Equal(t, "hi", Raw(Str("hi")))
	require.Equal(t, "42", Raw(Int(42)))
	require.Equal(t, "[ 1 ]", Raw(Quote{Int(1)}))
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b Value
		want bool
	}{
		{Bool(true), Bool(true), true},
		{Bool(true), Bool(false), false},
		{Int(1), Int(1), true},
		{Int(1), Float(1.0), true},
		{Float(1.0), Int(1), true},
		{Int(1), Float(1.5), false},
		{Str("a"), Str("a"), true},
		{Str("a"), Str("b"), false},
		{Str("dup"), Command("dup"), true},
		{Command("dup"), Deferred("dup"), true},
		{Quote{Int(1), Int(2)}, Quote{Int(1), Int(2)}, true},
		{Quote{Int(1)}, Quote{Int(1), Int(2)}, false},
		{Quote{Int(1)}, Quote{Float(1)}, true},
		{Int(1), Str("1"), false},
		{Bool(true), Int(1), false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Equal(tt.a, tt.b), "%s vs %s", tt.a, tt.b)
	}
}

func TestTotalOrder(t *testing.T) {
	// Ascending chain across the order's buckets.
	chain := []Value{
		Bool(false), Bool(true),
		Int(-3), Float(0.5), Int(1), Float(2.5),
		Str("a"), Command("b"), Str("c"),
		Quote{}, Quote{Int(1)}, Quote{Int(1), Int(1)}, Quote{Int(2)},
	}
	for i := 0; i < len(chain); i++ {
		for j := 0; j < len(chain); j++ {
			c := Compare(chain[i], chain[j])
			switch {
			case i < j:
				require.Negative(t, c, "%s < %s", chain[i], chain[j])
			case i > j:
				require.Positive(t, c, "%s > %s", chain[i], chain[j])
			default:
				require.Zero(t, c, "%s == %s", chain[i], chain[j])
			}
		}
	}
}

func TestTrichotomy(t *testing.T) {
	vals := []Value{
		Bool(false), Bool(true), Int(0), Int(1), Float(1), Float(2.5),
		Str(""), Str("a"), Command("a"), Deferred("z"),
		Quote{}, Quote{Int(1)},
	}
	for _, a := range vals {
		for _, b := range vals {
			lt := Less(a, b)
			gt := Less(b, a)
			eq := Equal(a, b)
			count := 0
			for _, x := range []bool{lt, gt, eq} {
				if x {
					count++
				}
			}
			require.Equal(t, 1, count, "exactly one of lt/gt/eq for %s vs %s", a, b)
		}
	}
}

func TestToBool(t *testing.T) {
	tests := []struct {
		v    Value
		want Bool
	}{
		{Bool(true), true},
		{Bool(false), false},
		{Int(0), false},
		{Int(3), true},
		{Float(0), false},
		{Float(0.1), true},
		{Str(""), false},
		{Str("x"), true},
		{Quote{}, false},
		{Quote{Int(0)}, true},
		{Command("p"), true},
		{Deferred("p"), true},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, ToBool(tt.v), "%s", tt.v)
	}
}

func TestToInt(t *testing.T) {
	n, err := ToInt(Float(2.9))
	require.NoError(t, err)
	require.Equal(t, Int(2), n)

	n, err = ToInt(Str("-12"))
	require.NoError(t, err)
	require.Equal(t, Int(-12), n)

	n, err = ToInt(Bool(true))
	require.NoError(t, err)
	require.Equal(t, Int(1), n)

	_, err = ToInt(Str("nope"))
	require.Error(t, err)

	_, err = ToInt(Float(1e300))
	require.Error(t, err)

	_, err = ToInt(Quote{})
	require.Error(t, err)
}

func TestToFloat(t *testing.T) {
	f, err := ToFloat(Int(2))
	require.NoError(t, err)
	require.Equal(t, Float(2), f)

	f, err = ToFloat(Str("2.5"))
	require.NoError(t, err)
	require.Equal(t, Float(2.5), f)

	_, err = ToFloat(Quote{})
	require.Error(t, err)
}

func TestToStr(t *testing.T) {
	s, err := ToStr(Str("x"))
	require.NoError(t, err)
	require.Equal(t, Str("x"), s)

	s, err = ToStr(Command("dup"))
	require.NoError(t, err)
	require.Equal(t, Str("dup"), s)

	s, err = ToStr(Deferred("dup"))
	require.NoError(t, err)
	require.Equal(t, Str("dup"), s)

	s, err = ToStr(Int(7))
	require.NoError(t, err)
	require.Equal(t, Str("7"), s)

	s, err = ToStr(Bool(false))
	require.NoError(t, err)
	require.Equal(t, Str("false"), s)

	_, err = ToStr(Quote{Int(1)})
	require.Error(t, err)
}

func TestToQuote(t *testing.T) {
	q := Quote{Int(1)}
	require.Equal(t, q, ToQuote(q))
	require.Equal(t, Quote{Int(5)}, ToQuote(Int(5)))
}

func TestCoercionIdempotence(t *testing.T) {
	vals := []Value{Bool(true), Int(3), Float(2.5), Str("9"), Quote{Int(1)}}
	for _, v := range vals {
		b := ToBool(v)
		require.Equal(t, b, ToBool(b))
		if n, err := ToInt(v); err == nil {
			n2, err := ToInt(n)
			require.NoError(t, err)
			require.Equal(t, n, n2)
		}
		if f, err := ToFloat(v); err == nil {
			f2, err := ToFloat(f)
			require.NoError(t, err)
			require.Equal(t, f, f2)
		}
		if s, err := ToStr(v); err == nil {
			s2, err := ToStr(s)
			require.NoError(t, err)
			require.Equal(t, s, s2)
		}
		q := ToQuote(v)
		require.Equal(t, q, ToQuote(q))
	}
}
