// Package tape provides the public API for the tape interpreter.
package tape

import (
	"nickandperla.net/tape/internal/host"
)

// Option configures a Runtime.
type Option func(*Runtime)

// WithHost sets the host the interpreter runs against. The default is
// the real operating system.
func WithHost(h host.Host) Option {
	return func(r *Runtime) {
		r.host = h
	}
}

// WithRestrictedHost withholds filesystem and process capabilities
// from the host set by an earlier WithHost, or from the OS host when
// none was set; commands that need them report unsupported.
func WithRestrictedHost() Option {
	return func(r *Runtime) {
		if r.host == nil {
			r.host = host.NewOS()
		}
		r.host = host.Restricted{Base: r.host}
	}
}

// WithPrelude sets a custom prelude source to be loaded on startup.
// If not set, DefaultPrelude is used.
func WithPrelude(source string) Option {
	return func(r *Runtime) {
		r.prelude = source
	}
}

// WithNoStdlib disables loading the standard prelude.
func WithNoStdlib() Option {
	return func(r *Runtime) {
		r.noStdlib = true
	}
}

// Host is the interface the interpreter's side effects flow through.
type Host = host.Host
