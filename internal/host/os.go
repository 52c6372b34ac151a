package host

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/mattn/go-isatty"
)

// OS is the real operating-system host.
type OS struct {
	stdin  *bufio.Reader
	stdout *os.File
	stderr *os.File
	args   []string
}

// NewOS creates a host over the current process's streams and args.
func NewOS() *OS {
	return &OS{
		stdin:  bufio.NewReader(os.Stdin),
		stdout: os.Stdout,
		stderr: os.Stderr,
		args:   os.Args,
	}
}

// SetArgs overrides the argument vector exposed to programs. The
// process name stays at index 0.
func (h *OS) SetArgs(args []string) {
	h.args = args
}

func (h *OS) ReadLine() (string, error) {
	line, err := h.stdin.ReadString('\n')
	if err == io.EOF {
		if line == "" {
			return "", io.EOF
		}
		return line, nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (h *OS) Stdout() io.Writer { return h.stdout }
func (h *OS) Stderr() io.Writer { return h.stderr }

func (h *OS) StdoutTTY() bool {
	return isatty.IsTerminal(h.stdout.Fd()) || isatty.IsCygwinTerminal(h.stdout.Fd())
}

func (h *OS) StderrTTY() bool {
	return isatty.IsTerminal(h.stderr.Fd()) || isatty.IsCygwinTerminal(h.stderr.Fd())
}

func (h *OS) Interactive() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}

func (h *OS) Getwd() (string, error) {
	return os.Getwd()
}

func (h *OS) Chdir(dir string) error {
	return os.Chdir(dir)
}

func (h *OS) ListDir(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

func (h *OS) ReadFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, ReadFileCap+1)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	if n > ReadFileCap {
		return nil, fmt.Errorf("%s: larger than the %d byte read cap", path, ReadFileCap)
	}
	return buf[:n], nil
}

func (h *OS) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func (h *OS) AppendFile(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (h *OS) Spawn(argv []string) (string, error) {
	if len(argv) == 0 {
		return "", fmt.Errorf("empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Stderr = h.stderr
	out, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func (h *OS) Env(name string) (string, bool) {
	return os.LookupEnv(name)
}

func (h *OS) Args() []string {
	return h.args
}

func (h *OS) Exit(code int) {
	os.Exit(code)
}
