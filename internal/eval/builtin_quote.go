package eval

import (
	"sort"

	"nickandperla.net/tape/internal/value"
)

func quoteDefs() []*Def {
	return []*Def{
		builtin("map", "( [a...] f -- [b...] ) Runs f jailed over each element; collects the results.", func(m *Machine) error {
			vals, err := m.take("map", 2)
			if err != nil {
				return err
			}
			q, ok := vals[0].(value.Quote)
			if !ok {
				m.untake(vals)
				return errf(WrongType, "map", "needs a quote, got a %s", vals[0].Kind())
			}
			if !isAction(vals[1]) {
				m.untake(vals)
				return errf(WrongType, "map", "cannot execute a %s", vals[1].Kind())
			}
			out := value.Quote{}
			for _, elem := range q {
				j := m.boxed([]value.Value{elem})
				if err := j.runAction("map", vals[1]); err != nil {
					m.untake(vals)
					return err
				}
				out = append(out, j.nest.top().vals...)
			}
			m.push(out)
			return nil
		}),

		builtin("filter", "( [a...] f -- [a...] ) Keeps elements whose jailed run ends true.", func(m *Machine) error {
			vals, err := m.take("filter", 2)
			if err != nil {
				return err
			}
			q, ok := vals[0].(value.Quote)
			if !ok {
				m.untake(vals)
				return errf(WrongType, "filter", "needs a quote, got a %s", vals[0].Kind())
			}
			if !isAction(vals[1]) {
				m.untake(vals)
				return errf(WrongType, "filter", "cannot execute a %s", vals[1].Kind())
			}
			out := value.Quote{}
			for _, elem := range q {
				j := m.boxed([]value.Value{elem})
				if err := j.runAction("filter", vals[1]); err != nil {
					m.untake(vals)
					return err
				}
				if res := j.nest.top().vals; len(res) > 0 && bool(value.ToBool(res[len(res)-1])) {
					out = append(out, elem)
				}
			}
			m.push(out)
			return nil
		}),

		builtin("any?", "( [a...] f -- bool ) True when f holds for some element; short-circuits.", func(m *Machine) error {
			vals, err := m.take("any?", 2)
			if err != nil {
				return err
			}
			q, ok := vals[0].(value.Quote)
			if !ok {
				m.untake(vals)
				return errf(WrongType, "any?", "needs a quote, got a %s", vals[0].Kind())
			}
			if !isAction(vals[1]) {
				m.untake(vals)
				return errf(WrongType, "any?", "cannot execute a %s", vals[1].Kind())
			}
			for _, elem := range q {
				j := m.boxed([]value.Value{elem})
				if err := j.runAction("any?", vals[1]); err != nil {
					m.untake(vals)
					return err
				}
				if res := j.nest.top().vals; len(res) > 0 && bool(value.ToBool(res[len(res)-1])) {
					m.push(value.Bool(true))
					return nil
				}
			}
			m.push(value.Bool(false))
			return nil
		}),

		builtin("len", "( a -- n ) Bytes of a string, elements of a quote, 1 otherwise.", func(m *Machine) error {
			vals, err := m.take("len", 1)
			if err != nil {
				return err
			}
			switch t := vals[0].(type) {
			case value.Str:
				m.push(value.Int(len(t)))
			case value.Quote:
				m.push(value.Int(len(t)))
			default:
				m.push(value.Int(1))
			}
			return nil
		}),

		builtin("...", "( [a...] -- a... ) Unpacks a quote onto the working stack.", func(m *Machine) error {
			vals, err := m.take("...", 1)
			if err != nil {
				return err
			}
			for _, v := range value.ToQuote(vals[0]) {
				m.push(v)
			}
			return nil
		}),

		builtin("rev", "( a -- a ) Reverses string bytes or quote elements; scalars pass through.", func(m *Machine) error {
			vals, err := m.take("rev", 1)
			if err != nil {
				return err
			}
			switch t := vals[0].(type) {
			case value.Str:
				b := []byte(t)
				for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
					b[i], b[j] = b[j], b[i]
				}
				m.push(value.Str(b))
			case value.Quote:
				out := make(value.Quote, len(t))
				for i, v := range t {
					out[len(t)-1-i] = v
				}
				m.push(out)
			default:
				m.push(vals[0])
			}
			return nil
		}),

		builtin("sort", "( [a...] -- [a...] ) Sorts a quote by the total order; scalars pass through.", func(m *Machine) error {
			vals, err := m.take("sort", 1)
			if err != nil {
				return err
			}
			q, ok := vals[0].(value.Quote)
			if !ok {
				m.push(vals[0])
				return nil
			}
			out := append(value.Quote(nil), q...)
			sort.SliceStable(out, func(i, j int) bool {
				return value.Less(out[i], out[j])
			})
			m.push(out)
			return nil
		}),

		builtin("concat", "( [a...] [b...] -- [a... b...] ) Joins two quotes.", func(m *Machine) error {
			vals, err := m.take("concat", 2)
			if err != nil {
				return err
			}
			qa, ok1 := vals[0].(value.Quote)
			qb, ok2 := vals[1].(value.Quote)
			if !ok1 || !ok2 {
				m.untake(vals)
				return errf(WrongType, "concat", "needs two quotes, got %s and %s", vals[0].Kind(), vals[1].Kind())
			}
			out := make(value.Quote, 0, len(qa)+len(qb))
			out = append(out, qa...)
			out = append(out, qb...)
			m.push(out)
			return nil
		}),

		builtin("push", "( [a...] b -- [a... b] ) Appends a value to a quote.", func(m *Machine) error {
			vals, err := m.take("push", 2)
			if err != nil {
				return err
			}
			q, ok := vals[0].(value.Quote)
			if !ok {
				m.untake(vals)
				return errf(WrongType, "push", "needs a quote, got a %s", vals[0].Kind())
			}
			out := make(value.Quote, 0, len(q)+1)
			out = append(out, q...)
			out = append(out, vals[1])
			m.push(out)
			return nil
		}),

		builtin("pop", "( [a... b] -- [a...] b ) Removes the last element of a quote.", func(m *Machine) error {
			vals, err := m.take("pop", 1)
			if err != nil {
				return err
			}
			q, ok := vals[0].(value.Quote)
			if !ok {
				m.untake(vals)
				return errf(WrongType, "pop", "needs a quote, got a %s", vals[0].Kind())
			}
			if len(q) == 0 {
				m.untake(vals)
				return errf(StackUnderflow, "pop", "the quote is empty")
			}
			m.push(append(value.Quote(nil), q[:len(q)-1]...))
			m.push(q[len(q)-1])
			return nil
		}),

		builtin("enq", "( a [b...] -- [b... a] ) Enqueues a value at the back of a quote.", func(m *Machine) error {
			vals, err := m.take("enq", 2)
			if err != nil {
				return err
			}
			q, ok := vals[1].(value.Quote)
			if !ok {
				m.untake(vals)
				return errf(WrongType, "enq", "needs a quote, got a %s", vals[1].Kind())
			}
			out := make(value.Quote, 0, len(q)+1)
			out = append(out, q...)
			out = append(out, vals[0])
			m.push(out)
			return nil
		}),

		builtin("deq", "( [a b...] -- a [b...] ) Dequeues the front element of a quote.", func(m *Machine) error {
			vals, err := m.take("deq", 1)
			if err != nil {
				return err
			}
			q, ok := vals[0].(value.Quote)
			if !ok {
				m.untake(vals)
				return errf(WrongType, "deq", "needs a quote, got a %s", vals[0].Kind())
			}
			if len(q) == 0 {
				m.untake(vals)
				return errf(StackUnderflow, "deq", "the quote is empty")
			}
			m.push(q[0])
			m.push(append(value.Quote(nil), q[1:]...))
			return nil
		}),
	}
}
