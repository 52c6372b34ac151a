// Package eval implements the tape machine: the context stack, the
// command dictionary, and interpreter dispatch.
package eval

import (
	"nickandperla.net/tape/internal/host"
	"nickandperla.net/tape/internal/scanner"
	"nickandperla.net/tape/internal/token"
	"nickandperla.net/tape/internal/value"
)

// Version is the interpreter version reported by the version command.
const Version = "0.4.0"

// frame is one working stack.
type frame struct {
	vals []value.Value
}

// nest is the context stack: a non-empty LIFO of working stacks. The
// bottom frame is the program's root stack.
type nest struct {
	frames []*frame
}

func (n *nest) top() *frame {
	return n.frames[len(n.frames)-1]
}

func (n *nest) push(f *frame) {
	n.frames = append(n.frames, f)
}

func (n *nest) pop() *frame {
	f := n.top()
	n.frames = n.frames[:len(n.frames)-1]
	return f
}

// Machine interprets tape programs. A jail shares the parent's context
// stack but owns its dictionary, so definitions made inside it vanish
// on return.
type Machine struct {
	nest *nest
	defs map[string]*Def
	host host.Host
}

// New creates a machine with the core dictionary over the given host.
func New(h host.Host) *Machine {
	m := &Machine{
		nest: &nest{frames: []*frame{{}}},
		defs: make(map[string]*Def),
		host: h,
	}
	for _, d := range coreDefs() {
		m.defs[d.Name] = d
	}
	return m
}

// jail clones the dictionary and shares the context stack.
func (m *Machine) jail() *Machine {
	defs := make(map[string]*Def, len(m.defs))
	for k, v := range m.defs {
		defs[k] = v
	}
	return &Machine{nest: m.nest, defs: defs, host: m.host}
}

// boxed is a jail over a private context stack seeded with the given
// working stack, used by doin and the iteration combinators.
func (m *Machine) boxed(vals []value.Value) *Machine {
	j := m.jail()
	j.nest = &nest{frames: []*frame{{vals: vals}}}
	return j
}

func (m *Machine) push(v value.Value) {
	f := m.nest.top()
	f.vals = append(f.vals, v)
}

// take pops n values from the working stack, top of stack last in the
// returned slice. When a command fails after popping, it restores them
// with untake so the failure is observably stack-neutral.
func (m *Machine) take(op string, n int) ([]value.Value, error) {
	f := m.nest.top()
	if len(f.vals) < n {
		return nil, errf(StackUnderflow, op, "needs %d, stack has %d", n, len(f.vals))
	}
	cut := len(f.vals) - n
	vals := append([]value.Value(nil), f.vals[cut:]...)
	f.vals = f.vals[:cut]
	return vals, nil
}

func (m *Machine) untake(vals []value.Value) {
	f := m.nest.top()
	f.vals = append(f.vals, vals...)
}

// Stack returns a copy of the current working stack, bottom first.
func (m *Machine) Stack() value.Quote {
	return append(value.Quote(nil), m.nest.top().vals...)
}

// StackDepth returns the number of values on the current working stack.
func (m *Machine) StackDepth() int {
	return len(m.nest.top().vals)
}

// RootDepth returns the number of values on the root context.
func (m *Machine) RootDepth() int {
	return len(m.nest.frames[0].vals)
}

// Host returns the machine's host.
func (m *Machine) Host() host.Host {
	return m.host
}

// Exec resolves name in the dictionary and runs its action.
func (m *Machine) Exec(name string) error {
	d, ok := m.defs[name]
	if !ok {
		return errf(CommandUndefined, name, "%q is not defined", name)
	}
	return d.act(m)
}

// handleVal interprets one value from a quote under execution:
// commands resolve and run, everything else is pushed.
func (m *Machine) handleVal(v value.Value) error {
	if c, ok := v.(value.Command); ok {
		return m.Exec(string(c))
	}
	m.push(v)
	return nil
}

// runQuote interprets each element of a quote against the machine.
func (m *Machine) runQuote(q value.Quote) error {
	for _, v := range q {
		if err := m.handleVal(v); err != nil {
			return err
		}
	}
	return nil
}

// runAction executes an action value: quotes run element-wise;
// commands, deferred commands and strings run by name.
func (m *Machine) runAction(op string, action value.Value) error {
	switch a := action.(type) {
	case value.Quote:
		return m.runQuote(a)
	case value.Command:
		return m.Exec(string(a))
	case value.Deferred:
		return m.Exec(string(a))
	case value.Str:
		return m.Exec(string(a))
	}
	return errf(WrongType, op, "cannot execute a %s", action.Kind())
}

// isAction reports whether v can be passed to runAction.
func isAction(v value.Value) bool {
	switch v.Kind() {
	case value.KindQuote, value.KindCommand, value.KindDeferred, value.KindString:
		return true
	}
	return false
}

// RunSource tokenizes and interprets a program string.
func (m *Machine) RunSource(src string) error {
	return m.Run(scanner.NewFromString(src))
}

// Run interprets the scanner's token stream against the machine.
// While a quote literal is open, terms are pushed as command values
// rather than executed.
func (m *Machine) Run(sc *scanner.Scanner) error {
	base := len(m.nest.frames)

	for {
		item, err := sc.Next()
		if err != nil {
			return wrapErr(ParseError, "", err)
		}

		switch item.Kind {
		case token.None:
			if len(m.nest.frames) > base {
				m.nest.frames = m.nest.frames[:base]
				return errf(ParseError, "", "line %d: unterminated quote", item.Line)
			}
			return nil

		case token.LeftBracket:
			m.nest.push(&frame{})

		case token.RightBracket:
			if len(m.nest.frames) <= base {
				return errf(ContextStackUnderflow, "", "line %d: ] with no matching [", item.Line)
			}
			f := m.nest.pop()
			m.push(value.Quote(f.vals))

		case token.Bool:
			m.push(value.Bool(item.Bool))

		case token.Int:
			m.push(value.Int(item.Int))

		case token.Float:
			m.push(value.Float(item.Float))

		case token.String:
			m.push(value.Str(item.Text))

		case token.DeferredTerm:
			m.push(value.Deferred(item.Text))

		case token.Term:
			if len(m.nest.frames) > base {
				m.push(value.Command(item.Text))
				continue
			}
			if err := m.Exec(item.Text); err != nil {
				return err
			}
		}
	}
}
