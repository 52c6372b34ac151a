package eval

import (
	"testing"

	"github.com/stretchr/testify/require"

	"nickandperla.net/tape/internal/host"
	"nickandperla.net/tape/internal/value"
)

func TestPrint(t *testing.T) {
	m, h := newMachine()
	require.NoError(t, m.RunSource(`"hi" p nl 42 p nl [ 1 "a" ] p nl`))
	require.Equal(t, "hi\n42\n[ 1 \"a\" ]\n", h.Out.String())
	require.Equal(t, 0, m.StackDepth())
}

func TestPrintDiagnostic(t *testing.T) {
	m, h := newMachine()
	require.NoError(t, m.RunSource(`"oops" ep enl`))
	require.Equal(t, "oops\n", h.Err.String())
	require.Empty(t, h.Out.String())
}

func TestStylesAreTTYOnly(t *testing.T) {
	m, h := newMachine()
	require.NoError(t, m.RunSource(`red "x" p norm green`))
	require.Equal(t, "x", h.Out.String())

	h2 := host.NewFake("")
	h2.OutTTY = true
	m2 := New(h2)
	require.NoError(t, m2.RunSource(`red "x" p norm`))
	require.Equal(t, "\x1b[31mx\x1b[0m", h2.Out.String())
}

func TestReadLine(t *testing.T) {
	h := host.NewFake("one\ntwo\n")
	m := New(h)
	require.NoError(t, m.RunSource("rl rl"))
	requireStack(t, m, `[ "one" "two" ]`)

	err := m.RunSource("rl")
	require.True(t, IsKind(err, IOError))
}

func TestReadLines(t *testing.T) {
	h := host.NewFake("one\ntwo\nthree")
	m := New(h)
	require.NoError(t, m.RunSource("rls"))
	requireStack(t, m, `[ [ "one" "two" "three" ] ]`)
}

func TestCwdAndCd(t *testing.T) {
	m, h := newMachine()
	require.NoError(t, m.RunSource(`cwd`))
	requireStack(t, m, `[ "/" ]`)

	require.NoError(t, m.RunSource(`drop "/tmp" cd cwd`))
	requireStack(t, m, `[ "/tmp" ]`)
	require.Equal(t, "/tmp", h.Dir)
}

func TestCdTildeExpandsHome(t *testing.T) {
	m, h := newMachine()
	h.EnvVars["HOME"] = "/home/u"
	require.NoError(t, m.RunSource(`"~" cd cwd`))
	requireStack(t, m, `[ "/home/u" ]`)
}

func TestCdTildeWithoutHome(t *testing.T) {
	m, _ := newMachine()
	err := m.RunSource(`"~" cd`)
	require.True(t, IsKind(err, IOError))
	requireStack(t, m, `[ "~" ]`)
}

func TestLs(t *testing.T) {
	m, h := newMachine()
	h.FS["/b.txt"] = []byte("b")
	h.FS["/a.txt"] = []byte("a")
	require.NoError(t, m.RunSource("ls"))
	requireStack(t, m, `[ [ "a.txt" "b.txt" ] ]`)
}

func TestFileRoundTrip(t *testing.T) {
	m, h := newMachine()
	require.NoError(t, m.RunSource(`"hello" "/f.txt" writef "/f.txt" readf`))
	requireStack(t, m, `[ "hello" ]`)
	require.Equal(t, "hello", string(h.FS["/f.txt"]))
}

func TestAppendCreatesWhenAbsent(t *testing.T) {
	m, h := newMachine()
	require.NoError(t, m.RunSource(`"a" "/log" appendf "b" "/log" appendf`))
	require.Equal(t, "ab", string(h.FS["/log"]))
}

func TestReadfMissingFile(t *testing.T) {
	m, _ := newMachine()
	err := m.RunSource(`"/nope" readf`)
	require.True(t, IsKind(err, IOError))
	requireStack(t, m, `[ "/nope" ]`)
}

func TestReadfCap(t *testing.T) {
	m, h := newMachine()
	h.FS["/big"] = make([]byte, host.ReadFileCap+1)
	err := m.RunSource(`"/big" readf`)
	require.True(t, IsKind(err, IOError))
	requireStack(t, m, `[ "/big" ]`)
}

func TestExec(t *testing.T) {
	m, h := newMachine()
	var got []string
	h.SpawnFn = func(argv []string) (string, error) {
		got = argv
		return "out line\n", nil
	}
	require.NoError(t, m.RunSource(`"echo 'a b' c" exec`))
	require.Equal(t, []string{"echo", "a b", "c"}, got)
	requireStack(t, m, `[ "out line" ]`)
}

func TestExecBadQuoting(t *testing.T) {
	m, _ := newMachine()
	err := m.RunSource(`"echo 'unclosed" exec`)
	require.True(t, IsKind(err, ParseError))
	requireStack(t, m, `[ "echo 'unclosed" ]`)
}

func TestArgsAndProcname(t *testing.T) {
	m, h := newMachine()
	h.Argv = []string{"tape", "x", "y"}
	require.NoError(t, m.RunSource("args procname"))
	requireStack(t, m, `[ [ "x" "y" ] "tape" ]`)
}

func TestProcnameUnknown(t *testing.T) {
	m, h := newMachine()
	h.Argv = nil
	err := m.RunSource("procname")
	require.True(t, IsKind(err, ProcessNameUnknown))
}

func TestInteractive(t *testing.T) {
	m, h := newMachine()
	require.NoError(t, m.RunSource("interactive?"))
	requireStack(t, m, "[ false ]")

	h.InTTY = true
	require.NoError(t, m.RunSource("drop interactive?"))
	requireStack(t, m, "[ true ]")
}

func TestVersion(t *testing.T) {
	m, _ := newMachine()
	require.NoError(t, m.RunSource("version"))
	requireStack(t, m, `[ "`+Version+`" ]`)
}

func TestExitClamps(t *testing.T) {
	tests := []struct {
		src     string
		code    int
		clamped bool
	}{
		{"5 exit", 5, false},
		{"0 exit", 0, false},
		{"300 exit", 255, true},
		{"-1 exit", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			m, h := newMachine()
			require.NoError(t, m.RunSource(tt.src))
			require.True(t, h.Exited)
			require.Equal(t, tt.code, h.ExitCode)
			if tt.clamped {
				require.Contains(t, h.Err.String(), "clamped")
			} else {
				require.Empty(t, h.Err.String())
			}
		})
	}
}

func TestQuitWarnsOnDirtyStack(t *testing.T) {
	m, h := newMachine()
	require.NoError(t, m.RunSource("quit"))
	require.True(t, h.Exited)
	require.Equal(t, 0, h.ExitCode)
	require.Empty(t, h.Err.String())

	m2, h2 := newMachine()
	require.NoError(t, m2.RunSource("1 2 quit"))
	require.True(t, h2.Exited)
	require.Equal(t, 0, h2.ExitCode)
	require.Contains(t, h2.Err.String(), "dirty stack")
	require.Contains(t, h2.Err.String(), "[ 1 2 ]")
}

func TestInspire(t *testing.T) {
	m, _ := newMachine()
	require.NoError(t, m.RunSource("inspire"))
	s, ok := m.Stack()[0].(value.Str)
	require.True(t, ok)
	require.Contains(t, inspirations, string(s))
}

func TestRestrictedHost(t *testing.T) {
	m := New(host.Restricted{Base: host.NewFake("")})
	for _, src := range []string{"cwd", "ls", `"x" exec`, `"/f" readf`} {
		err := m.RunSource(src)
		require.True(t, IsKind(err, Unsupported), "%s: %v", src, err)
	}
	err := m.RunSource(`"/tmp" cd`)
	require.True(t, IsKind(err, Unsupported))
	requireStack(t, m, `[ "x" "/f" "/tmp" ]`)
}
