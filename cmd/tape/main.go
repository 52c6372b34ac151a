// Command tape is the tape interpreter CLI.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"nickandperla.net/tape/internal/host"
	"nickandperla.net/tape/pkg/tape"
)

func main() {
	var (
		evalStr  = flag.String("e", "", "Evaluate a tape string")
		file     = flag.String("f", "", "Execute a tape script")
		dbPath   = flag.String("db", defaultHistoryPath(), "REPL history database path")
		noStdlib = flag.Bool("no-stdlib", false, "Disable the standard prelude")
		version  = flag.Bool("version", false, "Print the version and exit")
	)

	flag.Parse()

	if *version {
		fmt.Println("tape " + tape.Version)
		return
	}

	h := host.NewOS()
	opts := []tape.Option{tape.WithHost(h)}
	if *noStdlib {
		opts = append(opts, tape.WithNoStdlib())
	}
	runtime := tape.New(opts...)

	switch {
	case *file != "":
		// Arguments after -f are the script's args.
		h.SetArgs(append([]string{os.Args[0]}, flag.Args()...))
		fail(h, runtime.RunFile(*file))

	case *evalStr != "":
		fail(h, runtime.Run(*evalStr))

	case flag.NArg() > 0:
		// Bare arguments are joined and evaluated as a program.
		fail(h, runtime.Run(strings.Join(flag.Args(), " ")))

	case !h.Interactive():
		// Piped input: the whole of stdin is the program.
		input, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
			os.Exit(1)
		}
		fail(h, runtime.Run(string(input)))

	default:
		runREPL(runtime, h, *dbPath)
	}
}

// fail reports an uncaught interpreter error, red when stderr is a
// terminal, and exits nonzero.
func fail(h *host.OS, err error) {
	if err == nil {
		return
	}
	if h.StderrTTY() {
		fmt.Fprintf(os.Stderr, "\x1b[31m%v\x1b[0m\n", err)
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tape_history.db"
	}
	return filepath.Join(home, ".tape_history.db")
}
