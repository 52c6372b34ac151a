package tape

import (
	"os"

	"nickandperla.net/tape/internal/eval"
	"nickandperla.net/tape/internal/host"
	"nickandperla.net/tape/internal/scanner"
	"nickandperla.net/tape/internal/value"
)

// Version is the interpreter version.
const Version = eval.Version

// Runtime is the tape interpreter runtime.
type Runtime struct {
	machine  *eval.Machine
	host     host.Host
	prelude  string
	noStdlib bool
}

// New creates a new tape runtime with the given options.
func New(opts ...Option) *Runtime {
	r := &Runtime{}

	for _, opt := range opts {
		opt(r)
	}

	if r.host == nil {
		r.host = host.NewOS()
	}
	r.machine = eval.New(r.host)

	// Load the prelude unless disabled.
	if !r.noStdlib {
		prelude := r.prelude
		if prelude == "" {
			prelude = DefaultPrelude
		}
		if prelude != "" {
			r.machine.RunSource(prelude)
		}
	}

	return r
}

// Run tokenizes and interprets a program string.
func (r *Runtime) Run(source string) error {
	return r.machine.RunSource(source)
}

// RunFile interprets a script file. A leading shebang line is skipped
// as a comment.
func (r *Runtime) RunFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.machine.Run(scanner.New(f))
}

// Stack returns a copy of the current working stack, bottom first.
func (r *Runtime) Stack() value.Quote {
	return r.machine.Stack()
}

// StackDepth returns the number of values on the working stack.
func (r *Runtime) StackDepth() int {
	return r.machine.StackDepth()
}

// Host returns the runtime's host.
func (r *Runtime) Host() host.Host {
	return r.host
}
