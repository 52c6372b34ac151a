package eval

import (
	"fmt"
	"sort"

	"nickandperla.net/tape/internal/value"
)

// coreDefs assembles the standard vocabulary.
func coreDefs() []*Def {
	var defs []*Def
	defs = append(defs, stackDefs()...)
	defs = append(defs, dictDefs()...)
	defs = append(defs, evalDefs()...)
	defs = append(defs, coerceDefs()...)
	defs = append(defs, mathDefs()...)
	defs = append(defs, stringDefs()...)
	defs = append(defs, quoteDefs()...)
	defs = append(defs, ioDefs()...)
	defs = append(defs, hostDefs()...)
	return defs
}

// defName extracts the identifier from a value naming a definition.
func defName(op string, v value.Value) (string, error) {
	switch t := v.(type) {
	case value.Str:
		return string(t), nil
	case value.Command:
		return string(t), nil
	case value.Deferred:
		return string(t), nil
	}
	return "", errf(WrongType, op, "cannot name a definition with a %s", v.Kind())
}

func stackDefs() []*Def {
	return []*Def{
		builtin("dup", "( a -- a a ) Duplicates the top of the stack.", func(m *Machine) error {
			vals, err := m.take("dup", 1)
			if err != nil {
				return err
			}
			m.push(vals[0])
			m.push(vals[0])
			return nil
		}),

		builtin("drop", "( a -- ) Discards the top of the stack.", func(m *Machine) error {
			_, err := m.take("drop", 1)
			return err
		}),

		builtin("swap", "( a b -- b a ) Exchanges the top two values.", func(m *Machine) error {
			vals, err := m.take("swap", 2)
			if err != nil {
				return err
			}
			m.push(vals[1])
			m.push(vals[0])
			return nil
		}),

		builtin("rot", "( a b c -- c a b ) Moves the top value under the next two.", func(m *Machine) error {
			vals, err := m.take("rot", 3)
			if err != nil {
				return err
			}
			m.push(vals[2])
			m.push(vals[0])
			m.push(vals[1])
			return nil
		}),

		builtin(".s", "( -- ) Prints the working stack to the diagnostic stream.", func(m *Machine) error {
			fmt.Fprintln(m.host.Stderr(), value.Quote(m.nest.top().vals).String())
			return nil
		}),

		builtin("quote", "( a -- [a] ) Wraps the top value in a quote.", func(m *Machine) error {
			vals, err := m.take("quote", 1)
			if err != nil {
				return err
			}
			m.push(value.Quote{vals[0]})
			return nil
		}),

		builtin("quote-all", "( ... -- [...] ) Wraps the whole working stack in a single quote.", func(m *Machine) error {
			f := m.nest.top()
			all := value.Quote(f.vals)
			f.vals = []value.Value{all}
			return nil
		}),

		builtin("anything?", "( -- bool ) True when the working stack is nonempty.", func(m *Machine) error {
			m.push(value.Bool(len(m.nest.top().vals) > 0))
			return nil
		}),
	}
}

func dictDefs() []*Def {
	return []*Def{
		builtin("def!", "( action name -- ) Binds name to a quote action.", func(m *Machine) error {
			vals, err := m.take("def!", 2)
			if err != nil {
				return err
			}
			name, err := defName("def!", vals[1])
			if err != nil {
				m.untake(vals)
				return err
			}
			q, ok := vals[0].(value.Quote)
			if !ok {
				m.untake(vals)
				return errf(WrongType, "def!", "action must be a quote, not a %s", vals[0].Kind())
			}
			m.defs[name] = quoted(name, q)
			return nil
		}),

		builtin("def?", "( name -- bool ) True when name is defined.", func(m *Machine) error {
			vals, err := m.take("def?", 1)
			if err != nil {
				return err
			}
			name, err := defName("def?", vals[0])
			if err != nil {
				m.untake(vals)
				return err
			}
			_, ok := m.defs[name]
			m.push(value.Bool(ok))
			return nil
		}),

		builtin("defs", "( -- [name...] ) All defined names, sorted.", func(m *Machine) error {
			names := make([]string, 0, len(m.defs))
			for name := range m.defs {
				names = append(names, name)
			}
			sort.Strings(names)
			q := make(value.Quote, 0, len(names))
			for _, name := range names {
				q = append(q, value.Str(name))
			}
			m.push(q)
			return nil
		}),

		builtin("usage", "( name -- description ) The description bound to name.", func(m *Machine) error {
			vals, err := m.take("usage", 1)
			if err != nil {
				return err
			}
			name, err := defName("usage", vals[0])
			if err != nil {
				m.untake(vals)
				return err
			}
			d, ok := m.defs[name]
			if !ok {
				m.untake(vals)
				return errf(CommandUndefined, "usage", "%q is not defined", name)
			}
			m.push(value.Str(d.Usage))
			return nil
		}),

		builtin("def-usage", "( name description -- ) Attaches a description to name.", func(m *Machine) error {
			vals, err := m.take("def-usage", 2)
			if err != nil {
				return err
			}
			name, err := defName("def-usage", vals[0])
			if err != nil {
				m.untake(vals)
				return err
			}
			desc, cerr := value.ToStr(vals[1])
			if cerr != nil {
				m.untake(vals)
				return wrapErr(WrongType, "def-usage", cerr)
			}
			d, ok := m.defs[name]
			if !ok {
				m.untake(vals)
				return errf(CommandUndefined, "def-usage", "%q is not defined", name)
			}
			// Copy so a jailed def-usage cannot reach the parent.
			nd := *d
			nd.Usage = string(desc)
			m.defs[name] = &nd
			return nil
		}),

		builtin(":", "( v name -- ) or ( v1 ... vk [n1 ... nk] -- ) Binds values to names.", func(m *Machine) error {
			spec, err := m.take(":", 1)
			if err != nil {
				return err
			}

			if names, ok := spec[0].(value.Quote); ok {
				idents := make([]string, len(names))
				for i, n := range names {
					ident, err := defName(":", n)
					if err != nil {
						m.untake(spec)
						return err
					}
					idents[i] = ident
				}
				vals, err := m.take(":", len(idents))
				if err != nil {
					m.untake(spec)
					return err
				}
				for i, ident := range idents {
					m.defs[ident] = quoted(ident, value.Quote{vals[i]})
				}
				return nil
			}

			name, err := defName(":", spec[0])
			if err != nil {
				m.untake(spec)
				return err
			}
			vals, err := m.take(":", 1)
			if err != nil {
				m.untake(spec)
				return err
			}
			m.defs[name] = quoted(name, value.Quote{vals[0]})
			return nil
		}),
	}
}

func coerceDefs() []*Def {
	coerce := func(name, usage string, fn func(v value.Value) (value.Value, error)) *Def {
		return builtin(name, usage, func(m *Machine) error {
			vals, err := m.take(name, 1)
			if err != nil {
				return err
			}
			out, cerr := fn(vals[0])
			if cerr != nil {
				m.untake(vals)
				return wrapErr(WrongType, name, cerr)
			}
			m.push(out)
			return nil
		})
	}

	return []*Def{
		coerce("to-bool", "( a -- bool ) Coerces to a bool.", func(v value.Value) (value.Value, error) {
			return value.ToBool(v), nil
		}),
		coerce("to-int", "( a -- int ) Coerces to an int.", func(v value.Value) (value.Value, error) {
			n, err := value.ToInt(v)
			return n, err
		}),
		coerce("to-float", "( a -- float ) Coerces to a float.", func(v value.Value) (value.Value, error) {
			f, err := value.ToFloat(v)
			return f, err
		}),
		coerce("to-string", "( a -- string ) Coerces to a string.", func(v value.Value) (value.Value, error) {
			s, err := value.ToStr(v)
			return s, err
		}),
		coerce("to-cmd", "( a -- command ) Coerces a name to a command.", func(v value.Value) (value.Value, error) {
			switch t := v.(type) {
			case value.Command:
				return t, nil
			case value.Deferred:
				return value.Command(t), nil
			case value.Str:
				return value.Command(t), nil
			}
			return nil, fmt.Errorf("cannot make a %s into a command", v.Kind())
		}),
		coerce("to-def", "( a -- deferred ) Coerces a name to a deferred command.", func(v value.Value) (value.Value, error) {
			switch t := v.(type) {
			case value.Deferred:
				return t, nil
			case value.Command:
				return value.Deferred(t), nil
			case value.Str:
				return value.Deferred(t), nil
			}
			return nil, fmt.Errorf("cannot make a %s into a deferred command", v.Kind())
		}),
		coerce("to-quote", "( a -- [a] ) Coerces to a quote.", func(v value.Value) (value.Value, error) {
			return value.ToQuote(v), nil
		}),
	}
}
