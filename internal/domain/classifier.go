// Package domain holds the line classifier, filter predicates and the
// counting workflow for the ctally CLI.
package domain

import (
	"bytes"
	"strings"
)

// LineState carries classifier state from one physical line to the next
// within a single file.
type LineState int

// Available LineState values.
const (
	// StateNormal means the line starts outside any block comment.
	StateNormal LineState = iota
	// StateInBlockComment means an unclosed /* comment spans into the line.
	StateInBlockComment
)

// ScanLine reports whether one physical line counts as code and returns
// the state the next line starts in. A line is code when, after removing
// comment regions, any non-whitespace content remains. String and char
// literals are tracked within the line so comment tokens inside them stay
// inert; a backslash escapes the following character. Literal state is
// resolved per line and never carried across lines.
func ScanLine(line string, state LineState) (bool, LineState) {
	var visible strings.Builder

	inBlock := state == StateInBlockComment

	var quote byte

	i := 0
	for i < len(line) {
		c := line[i]

		if inBlock {
			if c == '*' && i+1 < len(line) && line[i+1] == '/' {
				inBlock = false
				i += 2

				continue
			}

			i++

			continue
		}

		if quote != 0 {
			if c == '\\' && i+1 < len(line) {
				visible.WriteByte(c)
				visible.WriteByte(line[i+1])
				i += 2

				continue
			}

			if c == quote {
				quote = 0
			}

			visible.WriteByte(c)
			i++

			continue
		}

		if c == '/' && i+1 < len(line) {
			// Everything after // is comment; decide on what came before.
			if line[i+1] == '/' {
				break
			}

			if line[i+1] == '*' {
				inBlock = true
				i += 2

				continue
			}
		}

		if c == '"' || c == '\'' {
			quote = c
		}

		visible.WriteByte(c)
		i++
	}

	next := StateNormal
	if inBlock {
		next = StateInBlockComment
	}

	content := strings.TrimSpace(visible.String())
	if content == "" || content == `\` {
		// Blank, comment-only, or a bare line continuation.
		return false, next
	}

	return true, next
}

// CountBytes counts code lines in one file's raw contents. Classification
// never fails: non-UTF8 or otherwise unexpected bytes are treated as
// ordinary characters. Each file starts in StateNormal, so an unterminated
// block comment never leaks into the next file.
func CountBytes(src []byte) int {
	state := StateNormal
	count := 0

	for len(src) > 0 {
		var line []byte

		if i := bytes.IndexByte(src, '\n'); i >= 0 {
			line = src[:i]
			src = src[i+1:]
		} else {
			line = src
			src = nil
		}

		line = bytes.TrimSuffix(line, []byte{'\r'})

		code, next := ScanLine(string(line), state)
		state = next

		if code {
			count++
		}
	}

	return count
}
