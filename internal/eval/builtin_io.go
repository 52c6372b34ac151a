package eval

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/kballard/go-shellquote"

	"nickandperla.net/tape/internal/host"
	"nickandperla.net/tape/internal/value"
)

const (
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiNorm  = "\x1b[0m"
)

// hostErr maps a failed host call to an interpreter error kind.
func hostErr(op string, err error) *Error {
	if errors.Is(err, host.ErrUnsupported) {
		return wrapErr(Unsupported, op, err)
	}
	return wrapErr(IOError, op, err)
}

func ioDefs() []*Def {
	return []*Def{
		builtin("p", "( a -- ) Prints a value; strings print raw.", func(m *Machine) error {
			vals, err := m.take("p", 1)
			if err != nil {
				return err
			}
			fmt.Fprint(m.host.Stdout(), value.Raw(vals[0]))
			return nil
		}),

		builtin("ep", "( a -- ) Prints a value to the diagnostic stream.", func(m *Machine) error {
			vals, err := m.take("ep", 1)
			if err != nil {
				return err
			}
			fmt.Fprint(m.host.Stderr(), value.Raw(vals[0]))
			return nil
		}),

		builtin("nl", "( -- ) Prints a newline.", func(m *Machine) error {
			fmt.Fprintln(m.host.Stdout())
			return nil
		}),

		builtin("enl", "( -- ) Prints a newline to the diagnostic stream.", func(m *Machine) error {
			fmt.Fprintln(m.host.Stderr())
			return nil
		}),

		styleDef("red", ansiRed),
		styleDef("green", ansiGreen),
		styleDef("norm", ansiNorm),

		builtin("rl", "( -- line ) Reads one line from standard input.", func(m *Machine) error {
			line, err := m.host.ReadLine()
			if err == io.EOF {
				return errf(IOError, "rl", "end of input")
			}
			if err != nil {
				return hostErr("rl", err)
			}
			m.push(value.Str(line))
			return nil
		}),

		builtin("rls", "( -- [line...] ) Reads standard input to the end.", func(m *Machine) error {
			lines := value.Quote{}
			for {
				line, err := m.host.ReadLine()
				if err == io.EOF {
					m.push(lines)
					return nil
				}
				if err != nil {
					return hostErr("rls", err)
				}
				lines = append(lines, value.Str(line))
			}
		}),
	}
}

// styleDef emits an ANSI style code when standard output is a
// terminal, and nothing otherwise.
func styleDef(name, code string) *Def {
	return builtin(name, "( -- ) Styles terminal output.", func(m *Machine) error {
		if m.host.StdoutTTY() {
			fmt.Fprint(m.host.Stdout(), code)
		}
		return nil
	})
}

// inspirations is the fixed pool the inspire command draws from.
var inspirations = []string{
	"Put it on the stack and see what sticks.",
	"Small words, well joined, move mountains.",
	"A quote is a promise you can keep later.",
	"When lost, print the stack.",
	"Compose first; name what survives.",
	"Every pipe dreams of becoming a program.",
	"Leave the stack cleaner than you found it.",
	"Duplication is cheap. Confusion is not.",
}

func hostDefs() []*Def {
	return []*Def{
		builtin("cwd", "( -- path ) The current working directory.", func(m *Machine) error {
			wd, err := m.host.Getwd()
			if err != nil {
				return hostErr("cwd", err)
			}
			m.push(value.Str(wd))
			return nil
		}),

		builtin("cd", "( path -- ) Changes the working directory; a lone ~ expands to HOME.", func(m *Machine) error {
			vals, err := m.take("cd", 1)
			if err != nil {
				return err
			}
			path, ok := vals[0].(value.Str)
			if !ok {
				m.untake(vals)
				return errf(WrongType, "cd", "needs a string, got a %s", vals[0].Kind())
			}
			dir := string(path)
			if dir == "~" {
				home, ok := m.host.Env("HOME")
				if !ok {
					m.untake(vals)
					return errf(IOError, "cd", "HOME is not set")
				}
				dir = home
			}
			if err := m.host.Chdir(dir); err != nil {
				m.untake(vals)
				return hostErr("cd", err)
			}
			return nil
		}),

		builtin("ls", "( -- [name...] ) Lists the working directory.", func(m *Machine) error {
			wd, err := m.host.Getwd()
			if err != nil {
				return hostErr("ls", err)
			}
			names, err := m.host.ListDir(wd)
			if err != nil {
				return hostErr("ls", err)
			}
			q := make(value.Quote, 0, len(names))
			for _, name := range names {
				q = append(q, value.Str(name))
			}
			m.push(q)
			return nil
		}),

		builtin("readf", "( path -- contents ) Reads a file.", func(m *Machine) error {
			vals, err := m.take("readf", 1)
			if err != nil {
				return err
			}
			path, ok := vals[0].(value.Str)
			if !ok {
				m.untake(vals)
				return errf(WrongType, "readf", "needs a string, got a %s", vals[0].Kind())
			}
			data, err := m.host.ReadFile(string(path))
			if err != nil {
				m.untake(vals)
				return hostErr("readf", err)
			}
			m.push(value.Str(data))
			return nil
		}),

		fileWriteDef("writef", "( contents path -- ) Writes a file.", host.Host.WriteFile),
		fileWriteDef("appendf", "( contents path -- ) Appends to a file, creating it when absent.", host.Host.AppendFile),

		builtin("exec", "( cmd -- stdout ) Runs a command and captures its output.", func(m *Machine) error {
			vals, err := m.take("exec", 1)
			if err != nil {
				return err
			}
			cmdline, ok := vals[0].(value.Str)
			if !ok {
				m.untake(vals)
				return errf(WrongType, "exec", "needs a string, got a %s", vals[0].Kind())
			}
			argv, err := shellquote.Split(string(cmdline))
			if err != nil {
				m.untake(vals)
				return wrapErr(ParseError, "exec", err)
			}
			out, err := m.host.Spawn(argv)
			if err != nil {
				m.untake(vals)
				return hostErr("exec", err)
			}
			m.push(value.Str(strings.TrimSuffix(out, "\n")))
			return nil
		}),

		builtin("args", "( -- [arg...] ) The program's arguments.", func(m *Machine) error {
			argv := m.host.Args()
			if len(argv) > 0 {
				argv = argv[1:]
			}
			q := make(value.Quote, 0, len(argv))
			for _, a := range argv {
				q = append(q, value.Str(a))
			}
			m.push(q)
			return nil
		}),

		builtin("procname", "( -- name ) The process name.", func(m *Machine) error {
			argv := m.host.Args()
			if len(argv) == 0 || argv[0] == "" {
				return errf(ProcessNameUnknown, "procname", "the host did not provide one")
			}
			m.push(value.Str(argv[0]))
			return nil
		}),

		builtin("interactive?", "( -- bool ) True when standard input is a terminal.", func(m *Machine) error {
			m.push(value.Bool(m.host.Interactive()))
			return nil
		}),

		builtin("version", "( -- s ) The interpreter version.", func(m *Machine) error {
			m.push(value.Str(Version))
			return nil
		}),

		builtin("quit", "( -- ) Exits, warning when the stack is not empty.", func(m *Machine) error {
			if m.RootDepth() > 0 {
				fmt.Fprintf(m.host.Stderr(), "quitting with a dirty stack: %s\n",
					value.Quote(m.nest.frames[0].vals).String())
			}
			m.host.Exit(0)
			return nil
		}),

		builtin("exit", "( n -- ) Exits with a status, clamped to 0..255.", func(m *Machine) error {
			vals, err := m.take("exit", 1)
			if err != nil {
				return err
			}
			n, cerr := value.ToInt(vals[0])
			if cerr != nil {
				m.untake(vals)
				return wrapErr(WrongType, "exit", cerr)
			}
			code := int64(n)
			switch {
			case code < 0:
				fmt.Fprintf(m.host.Stderr(), "exit status %d clamped to 0\n", code)
				code = 0
			case code > 255:
				fmt.Fprintf(m.host.Stderr(), "exit status %d clamped to 255\n", code)
				code = 255
			}
			m.host.Exit(int(code))
			return nil
		}),

		builtin("inspire", "( -- s ) Words to work by.", func(m *Machine) error {
			m.push(value.Str(inspirations[rand.IntN(len(inspirations))]))
			return nil
		}),
	}
}

func fileWriteDef(name, usage string, write func(h host.Host, path string, data []byte) error) *Def {
	return builtin(name, usage, func(m *Machine) error {
		vals, err := m.take(name, 2)
		if err != nil {
			return err
		}
		contents, cerr := value.ToStr(vals[0])
		if cerr != nil {
			m.untake(vals)
			return wrapErr(WrongType, name, cerr)
		}
		path, ok := vals[1].(value.Str)
		if !ok {
			m.untake(vals)
			return errf(WrongType, name, "path must be a string, not a %s", vals[1].Kind())
		}
		if err := write(m.host, string(path), []byte(contents)); err != nil {
			m.untake(vals)
			return hostErr(name, err)
		}
		return nil
	})
}
