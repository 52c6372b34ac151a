package eval

import (
	"math"
	"math/rand/v2"

	"nickandperla.net/tape/internal/value"
)

func isNumeric(v value.Value) bool {
	k := v.Kind()
	return k == value.KindInt || k == value.KindFloat
}

// arith builds a binary numeric command. Two ints take the checked
// integer path; any float makes both operands floats.
func arith(name, usage string,
	intFn func(a, b int64) (int64, *Error),
	floatFn func(a, b float64) (float64, *Error),
) *Def {
	return builtin(name, usage, func(m *Machine) error {
		vals, err := m.take(name, 2)
		if err != nil {
			return err
		}
		a, b := vals[0], vals[1]
		if !isNumeric(a) || !isNumeric(b) {
			m.untake(vals)
			return errf(WrongType, name, "needs two numbers, got %s and %s", a.Kind(), b.Kind())
		}

		if a.Kind() == value.KindInt && b.Kind() == value.KindInt {
			n, aerr := intFn(int64(a.(value.Int)), int64(b.(value.Int)))
			if aerr != nil {
				m.untake(vals)
				aerr.Op = name
				return aerr
			}
			m.push(value.Int(n))
			return nil
		}

		af, _ := value.ToFloat(a)
		bf, _ := value.ToFloat(b)
		f, aerr := floatFn(float64(af), float64(bf))
		if aerr != nil {
			m.untake(vals)
			aerr.Op = name
			return aerr
		}
		m.push(value.Float(f))
		return nil
	})
}

func mathDefs() []*Def {
	return []*Def{
		arith("+", "( a b -- sum ) Adds two numbers.",
			func(a, b int64) (int64, *Error) {
				c := a + b
				if b > 0 && c < a {
					return 0, errf(IntegerOverflow, "", "%d + %d", a, b)
				}
				if b < 0 && c > a {
					return 0, errf(IntegerUnderflow, "", "%d + %d", a, b)
				}
				return c, nil
			},
			func(a, b float64) (float64, *Error) { return a + b, nil },
		),

		arith("-", "( a b -- difference ) Subtracts b from a.",
			func(a, b int64) (int64, *Error) {
				c := a - b
				if b < 0 && c < a {
					return 0, errf(IntegerOverflow, "", "%d - %d", a, b)
				}
				if b > 0 && c > a {
					return 0, errf(IntegerUnderflow, "", "%d - %d", a, b)
				}
				return c, nil
			},
			func(a, b float64) (float64, *Error) { return a - b, nil },
		),

		arith("*", "( a b -- product ) Multiplies two numbers.",
			func(a, b int64) (int64, *Error) {
				if a == 0 || b == 0 {
					return 0, nil
				}
				c := a * b
				if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) || c/b != a {
					if (a < 0) == (b < 0) {
						return 0, errf(IntegerOverflow, "", "%d * %d", a, b)
					}
					return 0, errf(IntegerUnderflow, "", "%d * %d", a, b)
				}
				return c, nil
			},
			func(a, b float64) (float64, *Error) { return a * b, nil },
		),

		arith("/", "( a b -- quotient ) Divides a by b.",
			func(a, b int64) (int64, *Error) {
				if b == 0 {
					return 0, errf(DivisionByZero, "", "%d / 0", a)
				}
				if a == math.MinInt64 && b == -1 {
					return 0, errf(IntegerOverflow, "", "%d / %d", a, b)
				}
				return a / b, nil
			},
			func(a, b float64) (float64, *Error) {
				if b == 0 {
					return 0, errf(DivisionByZero, "", "%v / 0", a)
				}
				return a / b, nil
			},
		),

		arith("%", "( a b -- remainder ) Mathematical modulo; the sign follows the divisor.",
			func(a, b int64) (int64, *Error) {
				if b == 0 {
					return 0, errf(DivisionByZero, "", "%d %% 0", a)
				}
				r := a % b
				if r != 0 && (r < 0) != (b < 0) {
					r += b
				}
				return r, nil
			},
			func(a, b float64) (float64, *Error) {
				if b == 0 {
					return 0, errf(DivisionByZero, "", "%v %% 0", a)
				}
				r := math.Mod(a, b)
				if r != 0 && (r < 0) != (b < 0) {
					r += b
				}
				return r, nil
			},
		),

		builtin("abs", "( a -- |a| ) Absolute value.", func(m *Machine) error {
			vals, err := m.take("abs", 1)
			if err != nil {
				return err
			}
			switch t := vals[0].(type) {
			case value.Int:
				if t == math.MinInt64 {
					m.untake(vals)
					return errf(IntegerOverflow, "abs", "%d", int64(t))
				}
				if t < 0 {
					t = -t
				}
				m.push(t)
				return nil
			case value.Float:
				m.push(value.Float(math.Abs(float64(t))))
				return nil
			}
			m.untake(vals)
			return errf(WrongType, "abs", "needs a number, got a %s", vals[0].Kind())
		}),

		builtin("rand", "( -- i ) A random 64-bit signed integer.", func(m *Machine) error {
			m.push(value.Int(int64(rand.Uint64())))
			return nil
		}),

		compare2("eq?", "( a b -- bool ) True when a equals b.", func(c int) bool { return c == 0 }),
		compare2("gt?", "( a b -- bool ) True when a orders after b.", func(c int) bool { return c > 0 }),
		compare2("gte?", "( a b -- bool ) True when a orders at or after b.", func(c int) bool { return c >= 0 }),
		compare2("lt?", "( a b -- bool ) True when a orders before b.", func(c int) bool { return c < 0 }),
		compare2("lte?", "( a b -- bool ) True when a orders at or before b.", func(c int) bool { return c <= 0 }),

		builtin("and", "( a b -- bool ) Boolean conjunction.", func(m *Machine) error {
			vals, err := m.take("and", 2)
			if err != nil {
				return err
			}
			m.push(value.ToBool(vals[0]) && value.ToBool(vals[1]))
			return nil
		}),

		builtin("or", "( a b -- bool ) Boolean disjunction.", func(m *Machine) error {
			vals, err := m.take("or", 2)
			if err != nil {
				return err
			}
			m.push(value.ToBool(vals[0]) || value.ToBool(vals[1]))
			return nil
		}),

		builtin("not", "( a -- bool ) Boolean negation.", func(m *Machine) error {
			vals, err := m.take("not", 1)
			if err != nil {
				return err
			}
			m.push(!value.ToBool(vals[0]))
			return nil
		}),
	}
}

func compare2(name, usage string, keep func(c int) bool) *Def {
	return builtin(name, usage, func(m *Machine) error {
		vals, err := m.take(name, 2)
		if err != nil {
			return err
		}
		m.push(value.Bool(keep(value.Compare(vals[0], vals[1]))))
		return nil
	})
}
