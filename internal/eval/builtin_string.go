package eval

import (
	"strings"

	"nickandperla.net/tape/internal/value"
)

func asciiUpper(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
	return string(b)
}

func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func stringDefs() []*Def {
	return []*Def{
		builtin("split", "( s delim -- [substr...] ) Splits a string; an empty delimiter splits per byte.", func(m *Machine) error {
			vals, err := m.take("split", 2)
			if err != nil {
				return err
			}
			s, ok1 := vals[0].(value.Str)
			delim, ok2 := vals[1].(value.Str)
			if !ok1 || !ok2 {
				m.untake(vals)
				return errf(WrongType, "split", "needs two strings, got %s and %s", vals[0].Kind(), vals[1].Kind())
			}

			var out value.Quote
			if delim == "" {
				out = make(value.Quote, 0, len(s))
				for i := 0; i < len(s); i++ {
					out = append(out, value.Str(s[i:i+1]))
				}
			} else {
				parts := strings.Split(string(s), string(delim))
				out = make(value.Quote, 0, len(parts))
				for _, p := range parts {
					out = append(out, value.Str(p))
				}
			}
			m.push(out)
			return nil
		}),

		builtin("join", "( [s...] delim -- s ) Joins the elements of a quote.", func(m *Machine) error {
			vals, err := m.take("join", 2)
			if err != nil {
				return err
			}
			q, ok1 := vals[0].(value.Quote)
			delim, ok2 := vals[1].(value.Str)
			if !ok1 || !ok2 {
				m.untake(vals)
				return errf(WrongType, "join", "needs a quote and a string, got %s and %s", vals[0].Kind(), vals[1].Kind())
			}
			parts := make([]string, len(q))
			for i, v := range q {
				s, cerr := value.ToStr(v)
				if cerr != nil {
					m.untake(vals)
					return wrapErr(WrongType, "join", cerr)
				}
				parts[i] = string(s)
			}
			m.push(value.Str(strings.Join(parts, string(delim))))
			return nil
		}),

		builtin("upcase", "( s -- S ) ASCII uppercase.", func(m *Machine) error {
			vals, err := m.take("upcase", 1)
			if err != nil {
				return err
			}
			s, ok := vals[0].(value.Str)
			if !ok {
				m.untake(vals)
				return errf(WrongType, "upcase", "needs a string, got a %s", vals[0].Kind())
			}
			m.push(value.Str(asciiUpper(string(s))))
			return nil
		}),

		builtin("downcase", "( s -- s ) ASCII lowercase.", func(m *Machine) error {
			vals, err := m.take("downcase", 1)
			if err != nil {
				return err
			}
			s, ok := vals[0].(value.Str)
			if !ok {
				m.untake(vals)
				return errf(WrongType, "downcase", "needs a string, got a %s", vals[0].Kind())
			}
			m.push(value.Str(asciiLower(string(s))))
			return nil
		}),

		searchDef("starts-with?", "( a b -- bool ) True when a starts with b.",
			strings.HasPrefix,
			func(q, needle value.Quote) bool {
				if len(needle) > len(q) {
					return false
				}
				for i, v := range needle {
					if !value.Equal(q[i], v) {
						return false
					}
				}
				return true
			}),

		searchDef("ends-with?", "( a b -- bool ) True when a ends with b.",
			strings.HasSuffix,
			func(q, needle value.Quote) bool {
				if len(needle) > len(q) {
					return false
				}
				off := len(q) - len(needle)
				for i, v := range needle {
					if !value.Equal(q[off+i], v) {
						return false
					}
				}
				return true
			}),

		builtin("contains?", "( a b -- bool ) Byte search on strings, element search on quotes.", func(m *Machine) error {
			vals, err := m.take("contains?", 2)
			if err != nil {
				return err
			}
			switch hay := vals[0].(type) {
			case value.Str:
				needle, ok := vals[1].(value.Str)
				if !ok {
					m.untake(vals)
					return errf(WrongType, "contains?", "cannot search a string for a %s", vals[1].Kind())
				}
				m.push(value.Bool(strings.Contains(string(hay), string(needle))))
				return nil
			case value.Quote:
				for _, v := range hay {
					if value.Equal(v, vals[1]) {
						m.push(value.Bool(true))
						return nil
					}
				}
				m.push(value.Bool(false))
				return nil
			}
			m.untake(vals)
			return errf(WrongType, "contains?", "cannot search a %s", vals[0].Kind())
		}),
	}
}

// searchDef builds the prefix/suffix predicates, which search strings
// by bytes and quotes by element equality.
func searchDef(name, usage string, strFn func(s, needle string) bool, quoteFn func(q, needle value.Quote) bool) *Def {
	return builtin(name, usage, func(m *Machine) error {
		vals, err := m.take(name, 2)
		if err != nil {
			return err
		}
		switch hay := vals[0].(type) {
		case value.Str:
			needle, ok := vals[1].(value.Str)
			if !ok {
				m.untake(vals)
				return errf(WrongType, name, "cannot search a string for a %s", vals[1].Kind())
			}
			m.push(value.Bool(strFn(string(hay), string(needle))))
			return nil
		case value.Quote:
			needle, ok := vals[1].(value.Quote)
			if !ok {
				m.untake(vals)
				return errf(WrongType, name, "cannot search a quote for a %s", vals[1].Kind())
			}
			m.push(value.Bool(quoteFn(hay, needle)))
			return nil
		}
		m.untake(vals)
		return errf(WrongType, name, "cannot search a %s", vals[0].Kind())
	})
}
