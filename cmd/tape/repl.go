package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"nickandperla.net/tape/internal/host"
	"nickandperla.net/tape/internal/store"
	"nickandperla.net/tape/pkg/tape"
)

func printBanner() {
	fmt.Printf("tape %s (Ctrl+D to exit)\n", tape.Version)
	fmt.Println(`Try: 1 2 + pl    or: "defs" eval [ pl ] map drop`)
	fmt.Println()
}

func runREPL(runtime *tape.Runtime, h *host.OS, dbPath string) {
	hist := openHistory(dbPath)
	defer hist.Close()
	lines, _ := hist.Recent(500)

	printBanner()

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		runBasicREPL(runtime, h)
		return
	}

	runRawREPL(runtime, h, hist, lines)
}

// openHistory falls back to a memory history when the database cannot
// be opened.
func openHistory(path string) store.History {
	if s, err := store.NewSQLite(path); err == nil {
		return s
	}
	return store.NewMemory()
}

// replEval runs one accepted entry and shows the resulting stack.
func replEval(runtime *tape.Runtime, h *host.OS, input string) {
	if err := runtime.Run(input); err != nil {
		if h.StderrTTY() {
			fmt.Fprintf(os.Stderr, "\x1b[31m%v\x1b[0m\n", err)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		return
	}
	if runtime.StackDepth() > 0 {
		fmt.Println(runtime.Stack().String())
	}
}

// runBasicREPL handles non-TTY input (piped input).
func runBasicREPL(runtime *tape.Runtime, h *host.OS) {
	reader := bufio.NewReader(os.Stdin)
	var multiline strings.Builder
	inMultiline := false

	for {
		if inMultiline {
			fmt.Print("  ... ")
		} else {
			fmt.Print("tape> ")
		}

		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}

		line = strings.TrimRight(line, "\r\n")

		if strings.HasSuffix(line, "\\") {
			multiline.WriteString(strings.TrimSuffix(line, "\\"))
			multiline.WriteString("\n")
			inMultiline = true
			continue
		}

		var input string
		if inMultiline {
			multiline.WriteString(line)
			input = multiline.String()
			multiline.Reset()
			inMultiline = false
		} else {
			input = line
		}

		if strings.TrimSpace(input) == "" {
			continue
		}

		replEval(runtime, h, input)
	}
}

// runRawREPL reads lines in raw mode with editing and history recall.
// The terminal is restored around each evaluation so program output
// and rl reads behave normally.
func runRawREPL(runtime *tape.Runtime, h *host.OS, hist store.History, lines []string) {
	fd := int(os.Stdin.Fd())
	var multiline strings.Builder
	inMultiline := false

	for {
		prompt := "tape> "
		if inMultiline {
			prompt = "  ... "
		}

		oldState, err := term.MakeRaw(fd)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to set raw mode: %v\n", err)
			runBasicREPL(runtime, h)
			return
		}
		fmt.Print(prompt)
		line, eof, canceled := readLineRaw(fd, prompt, lines)
		term.Restore(fd, oldState)

		if eof {
			fmt.Println()
			return
		}
		if canceled {
			multiline.Reset()
			inMultiline = false
			continue
		}

		if strings.HasSuffix(line, "\\") {
			multiline.WriteString(strings.TrimSuffix(line, "\\"))
			multiline.WriteString("\n")
			inMultiline = true
			continue
		}

		var input string
		if inMultiline {
			multiline.WriteString(line)
			input = multiline.String()
			multiline.Reset()
			inMultiline = false
		} else {
			input = line
		}

		if strings.TrimSpace(input) == "" {
			continue
		}

		lines = append(lines, input)
		hist.Append(input)
		replEval(runtime, h, input)
	}
}

// readLineRaw reads a line in raw mode with editing and history.
// Returns the line, whether EOF was requested, and whether the entry
// was canceled with Ctrl+C.
func readLineRaw(fd int, prompt string, history []string) (string, bool, bool) {
	var line []rune
	cursor := 0
	histIdx := len(history)
	saved := ""
	buf := make([]byte, 1)

	redrawFromCursor := func() {
		fmt.Print("\x1b[K")
		for i := cursor; i < len(line); i++ {
			fmt.Print(string(line[i]))
		}
		if cursor < len(line) {
			fmt.Printf("\x1b[%dD", len(line)-cursor)
		}
	}

	setLine := func(s string) {
		line = []rune(strings.ReplaceAll(s, "\n", " "))
		cursor = len(line)
		fmt.Print("\r\x1b[K", prompt, string(line))
	}

	insert := func(r rune) {
		newLine := make([]rune, 0, len(line)+1)
		newLine = append(newLine, line[:cursor]...)
		newLine = append(newLine, r)
		newLine = append(newLine, line[cursor:]...)
		line = newLine
		cursor++
		fmt.Print(string(r))
		if cursor < len(line) {
			redrawFromCursor()
		}
	}

	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return string(line), true, false
		}

		b := buf[0]

		switch b {
		case 0x04: // Ctrl+D
			if len(line) == 0 {
				return "", true, false
			}
			if cursor < len(line) {
				line = append(line[:cursor], line[cursor+1:]...)
				redrawFromCursor()
			}

		case 0x03: // Ctrl+C
			fmt.Print("^C\r\n")
			return "", false, true

		case 0x0d, 0x0a: // Enter
			fmt.Print("\r\n")
			return string(line), false, false

		case 0x7f, 0x08: // Backspace
			if cursor > 0 {
				cursor--
				line = append(line[:cursor], line[cursor+1:]...)
				fmt.Print("\b")
				redrawFromCursor()
			}

		case 0x1b: // ESC - arrow key sequence
			nextBuf := make([]byte, 1)
			n, err := os.Stdin.Read(nextBuf)
			if err != nil || n == 0 {
				continue
			}
			if nextBuf[0] != '[' {
				continue
			}
			arrowBuf := make([]byte, 1)
			n, err = os.Stdin.Read(arrowBuf)
			if err != nil || n == 0 {
				continue
			}

			switch arrowBuf[0] {
			case 'A': // Up - older history
				if histIdx > 0 {
					if histIdx == len(history) {
						saved = string(line)
					}
					histIdx--
					setLine(history[histIdx])
				}
			case 'B': // Down - newer history
				if histIdx < len(history) {
					histIdx++
					if histIdx == len(history) {
						setLine(saved)
					} else {
						setLine(history[histIdx])
					}
				}
			case 'C': // Right
				if cursor < len(line) {
					cursor++
					fmt.Print("\x1b[C")
				}
			case 'D': // Left
				if cursor > 0 {
					cursor--
					fmt.Print("\x1b[D")
				}
			case '3': // Delete key: ESC [ 3 ~
				delBuf := make([]byte, 1)
				os.Stdin.Read(delBuf)
				if delBuf[0] == '~' && cursor < len(line) {
					line = append(line[:cursor], line[cursor+1:]...)
					redrawFromCursor()
				}
			}

		case 0x01: // Ctrl+A - beginning of line
			if cursor > 0 {
				fmt.Printf("\x1b[%dD", cursor)
				cursor = 0
			}

		case 0x05: // Ctrl+E - end of line
			if cursor < len(line) {
				fmt.Printf("\x1b[%dC", len(line)-cursor)
				cursor = len(line)
			}

		case 0x0b: // Ctrl+K - kill to end of line
			if cursor < len(line) {
				line = line[:cursor]
				fmt.Print("\x1b[K")
			}

		case 0x15: // Ctrl+U - kill to beginning of line
			if cursor > 0 {
				fmt.Printf("\x1b[%dD", cursor)
				line = line[cursor:]
				cursor = 0
				redrawFromCursor()
			}

		default:
			if b >= 0x20 && b < 0x7f {
				insert(rune(b))
			} else if b >= 0x80 {
				// UTF-8 multi-byte sequence - read remaining bytes
				utfBuf := []byte{b}
				numBytes := 0
				if b&0xE0 == 0xC0 {
					numBytes = 1
				} else if b&0xF0 == 0xE0 {
					numBytes = 2
				} else if b&0xF8 == 0xF0 {
					numBytes = 3
				}
				for i := 0; i < numBytes; i++ {
					n, err := os.Stdin.Read(buf)
					if err != nil || n == 0 {
						break
					}
					utfBuf = append(utfBuf, buf[0])
				}
				insert([]rune(string(utfBuf))[0])
			}
		}
	}
}
