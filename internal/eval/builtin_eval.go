package eval

import (
	"nickandperla.net/tape/internal/scanner"
	"nickandperla.net/tape/internal/value"
)

func evalDefs() []*Def {
	return []*Def{
		builtin("do!", "( action -- ? ) Executes an action against the current machine.", func(m *Machine) error {
			vals, err := m.take("do!", 1)
			if err != nil {
				return err
			}
			if !isAction(vals[0]) {
				m.untake(vals)
				return errf(WrongType, "do!", "cannot execute a %s", vals[0].Kind())
			}
			return m.runAction("do!", vals[0])
		}),

		builtin("do", "( action -- ? ) Executes an action in a jail; definitions do not escape.", func(m *Machine) error {
			vals, err := m.take("do", 1)
			if err != nil {
				return err
			}
			if !isAction(vals[0]) {
				m.untake(vals)
				return errf(WrongType, "do", "cannot execute a %s", vals[0].Kind())
			}
			return m.jail().runAction("do", vals[0])
		}),

		builtin("do!?", "( action cond -- ? ) Executes when cond is true, drops the action otherwise.", func(m *Machine) error {
			vals, err := m.take("do!?", 2)
			if err != nil {
				return err
			}
			if !isAction(vals[0]) {
				m.untake(vals)
				return errf(WrongType, "do!?", "cannot execute a %s", vals[0].Kind())
			}
			if !value.ToBool(vals[1]) {
				return nil
			}
			return m.runAction("do!?", vals[0])
		}),

		builtin("do?", "( action cond -- ? ) As do!?, but jailed.", func(m *Machine) error {
			vals, err := m.take("do?", 2)
			if err != nil {
				return err
			}
			if !isAction(vals[0]) {
				m.untake(vals)
				return errf(WrongType, "do?", "cannot execute a %s", vals[0].Kind())
			}
			if !value.ToBool(vals[1]) {
				return nil
			}
			return m.jail().runAction("do?", vals[0])
		}),

		builtin("doin", "( ctx action -- quote ) Runs action against ctx unpacked in a jail.", func(m *Machine) error {
			vals, err := m.take("doin", 2)
			if err != nil {
				return err
			}
			ctx, ok := vals[0].(value.Quote)
			if !ok {
				m.untake(vals)
				return errf(WrongType, "doin", "context must be a quote, not a %s", vals[0].Kind())
			}
			if !isAction(vals[1]) {
				m.untake(vals)
				return errf(WrongType, "doin", "cannot execute a %s", vals[1].Kind())
			}
			j := m.boxed(append([]value.Value(nil), ctx...))
			if err := j.runAction("doin", vals[1]); err != nil {
				m.untake(vals)
				return err
			}
			m.push(value.Quote(j.nest.top().vals))
			return nil
		}),

		builtin("loop", "( action -- ) Repeats an action until it fails.", func(m *Machine) error {
			vals, err := m.take("loop", 1)
			if err != nil {
				return err
			}
			if !isAction(vals[0]) {
				m.untake(vals)
				return errf(WrongType, "loop", "cannot execute a %s", vals[0].Kind())
			}
			// The terminating failure breaks the loop and is
			// otherwise suppressed.
			for {
				if err := m.runAction("loop", vals[0]); err != nil {
					return nil
				}
			}
		}),

		builtin("eval", "( code -- ? ) Tokenizes a string and interprets it here.", func(m *Machine) error {
			vals, err := m.take("eval", 1)
			if err != nil {
				return err
			}
			code, ok := vals[0].(value.Str)
			if !ok {
				m.untake(vals)
				return errf(WrongType, "eval", "code must be a string, not a %s", vals[0].Kind())
			}
			return m.Run(scanner.NewFromString(string(code)))
		}),

		builtin("opt", "( [cond action ...] -- ? ) Runs the action paired with the first true condition.", func(m *Machine) error {
			vals, err := m.take("opt", 1)
			if err != nil {
				return err
			}
			options, ok := vals[0].(value.Quote)
			if !ok || len(options)%2 != 0 {
				m.untake(vals)
				return errf(WrongType, "opt", "needs a quote of condition/action pairs")
			}
			for i := 0; i < len(options); i += 2 {
				if err := m.runAction("opt", options[i]); err != nil {
					return err
				}
				res, err := m.take("opt", 1)
				if err != nil {
					return err
				}
				if value.ToBool(res[0]) {
					return m.runAction("opt", options[i+1])
				}
			}
			return nil
		}),
	}
}
