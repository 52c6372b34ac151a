// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

import "nickandperla.net/tape/internal/value"

// Def is one dictionary entry: a name bound to either a built-in Go
// action or a quote to be executed.
type Def struct {
	Name  string
	Usage string

	gofn  func(m *Machine) error
	quote value.Quote
}

func (d *Def) act(m *Machine) error {
	if d.gofn != nil {
		return d.gofn(m)
	}
	return m.runQuote(d.quote)
}

// builtin defines a command backed by a Go function.
func builtin(name, usage string, fn func(m *Machine) error) *Def {
	return &Def{Name: name, Usage: usage, gofn: fn}
}

// quoted defines a command backed by a quote action.
func quoted(name string, q value.Quote) *Def {
	return &Def{Name: name, quote: q}
}

// Define binds name to a quote action in the machine's dictionary,
// replacing any existing entry. Definitions are never removed.
func (m *Machine) Define(name string, q value.Quote) {
	m.defs[name] = quoted(name, q)
}

// Defined reports whether name resolves in the dictionary.
func (m *Machine) Defined(name string) bool {
	_, ok := m.defs[name]
	return ok
}
