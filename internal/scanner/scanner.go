// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package scanner provides a streaming byte-level lexer for tape.
package scanner

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"nickandperla.net/tape/internal/token"
)

// Scanner tokenizes tape input byte-by-byte.
type Scanner struct {
	reader    *bufio.Reader
	buf       strings.Builder
	peeked    *token.Item
	line      int  // Current line number (1-based)
	lineStart bool // No token seen yet on the current line
}

// New creates a new Scanner from an io.Reader.
func New(r io.Reader) *Scanner {
	return &Scanner{
		reader:    bufio.NewReader(r),
		line:      1,
		lineStart: true,
	}
}

// NewFromString creates a new Scanner from a string.
func NewFromString(s string) *Scanner {
	return New(strings.NewReader(s))
}

// Line returns the current line number (1-based).
func (s *Scanner) Line() int {
	return s.line
}

// Peek returns the next item without consuming it.
func (s *Scanner) Peek() (*token.Item, error) {
	if s.peeked != nil {
		return s.peeked, nil
	}
	item, err := s.Next()
	if err != nil {
		return nil, err
	}
	s.peeked = item
	return item, nil
}

// Next returns the next token from the input. End of input is reported
// as a token.None item, not an error.
func (s *Scanner) Next() (*token.Item, error) {
	if s.peeked != nil {
		item := s.peeked
		s.peeked = nil
		return item, nil
	}

	b, eof, err := s.skipBlanks()
	if err != nil {
		return nil, err
	}
	if eof {
		return &token.Item{Kind: token.None, Line: s.line}, nil
	}

	startLine := s.line
	switch b {
	case '[':
		return &token.Item{Kind: token.LeftBracket, Line: startLine}, nil
	case ']':
		return &token.Item{Kind: token.RightBracket, Line: startLine}, nil
	case '"':
		return s.scanString(startLine)
	case '\\':
		word, err := s.scanWord(nil)
		if err != nil {
			return nil, err
		}
		if word == "" {
			return nil, fmt.Errorf("line %d: lone backslash, expected a deferred term", startLine)
		}
		return &token.Item{Kind: token.DeferredTerm, Text: word, Line: startLine}, nil
	default:
		word, err := s.scanWord([]byte{b})
		if err != nil {
			return nil, err
		}
		item := token.Classify(word, startLine)
		return &item, nil
	}
}

// skipBlanks consumes whitespace and comment lines, returning the first
// significant byte. A line whose first token would begin with '#' is a
// comment through the line terminator; this is what skips shebang lines.
func (s *Scanner) skipBlanks() (b byte, eof bool, err error) {
	for {
		b, err = s.reader.ReadByte()
		if err == io.EOF {
			return 0, true, nil
		}
		if err != nil {
			return 0, false, err
		}

		switch b {
		case '\n':
			s.line++
			s.lineStart = true
		case ' ', '\t', '\r':
			// Blanks before the first token keep the line "fresh" for
			// comment detection.
		case '#':
			if !s.lineStart {
				s.lineStart = false
				return b, false, nil
			}
			if eof, err := s.skipToLineEnd(); eof || err != nil {
				return 0, eof, err
			}
		default:
			s.lineStart = false
			return b, false, nil
		}
	}
}

// skipToLineEnd consumes through the next newline.
func (s *Scanner) skipToLineEnd() (eof bool, err error) {
	for {
		b, err := s.reader.ReadByte()
		if err == io.EOF {
			return true, nil
		}
		if err != nil {
			return false, err
		}
		if b == '\n' {
			s.line++
			s.lineStart = true
			return false, nil
		}
	}
}

// scanWord accumulates a bare word. Words end at whitespace or at one
// of the structural bytes '[', ']', '"', which begin their own token.
func (s *Scanner) scanWord(prefix []byte) (string, error) {
	s.buf.Reset()
	s.buf.Write(prefix)

	for {
		b, err := s.reader.ReadByte()
		if err == io.EOF {
			return s.buf.String(), nil
		}
		if err != nil {
			return "", err
		}

		switch b {
		case ' ', '\t', '\r', '\n', '[', ']', '"':
			s.reader.UnreadByte()
			return s.buf.String(), nil
		default:
			s.buf.WriteByte(b)
		}
	}
}

// scanString scans a double-quoted string literal. The opening quote
// has already been consumed.
func (s *Scanner) scanString(startLine int) (*token.Item, error) {
	s.buf.Reset()

	for {
		b, err := s.reader.ReadByte()
		if err == io.EOF {
			return nil, fmt.Errorf("line %d: unterminated string literal", startLine)
		}
		if err != nil {
			return nil, err
		}

		switch b {
		case '"':
			return &token.Item{Kind: token.String, Text: s.buf.String(), Line: startLine}, nil
		case '\n':
			s.line++
			s.buf.WriteByte(b)
		case '\\':
			esc, err := s.reader.ReadByte()
			if err == io.EOF {
				return nil, fmt.Errorf("line %d: unterminated string literal", startLine)
			}
			if err != nil {
				return nil, err
			}
			switch esc {
			case 'n':
				s.buf.WriteByte('\n')
			case 't':
				s.buf.WriteByte('\t')
			case 'r':
				s.buf.WriteByte('\r')
			case '0':
				s.buf.WriteByte(0)
			case '\\':
				s.buf.WriteByte('\\')
			case '"':
				s.buf.WriteByte('"')
			default:
				return nil, fmt.Errorf("line %d: unknown string escape \\%c", s.line, esc)
			}
		default:
			s.buf.WriteByte(b)
		}
	}
}
