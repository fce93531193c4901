// Package wfval checks that a test input file is in canonical whitespace
// format:
//
//   - the file is not empty;
//   - every line ends with '\n';
//   - no leading, trailing or consecutive spaces;
//   - only '\n' and printable characters with codes 32..127;
//   - no leading or trailing empty lines.
package wfval

import (
	"fmt"
	"io"
	"os"
)

// Violation reports the first rule broken by an input, with its position.
type Violation struct {
	Line int
	Col  int
	Msg  string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", v.Line, v.Col, v.Msg)
}

func violation(line, col int, msg string) *Violation {
	return &Violation{Line: line, Col: col, Msg: msg}
}

// Validate checks data and returns nil or the first *Violation found.
func Validate(data []byte) error {
	if len(data) == 0 {
		return violation(1, 0, "empty input")
	}

	line, col := 1, 0
	metLine := false
	lineEmpty := true
	spaceAllowed := false // a space is only legal right after a non-space

	for _, c := range data {
		if c == '\n' {
			if !lineEmpty && !spaceAllowed {
				return violation(line, col, "illegal trailing space")
			}
			if lineEmpty && !metLine {
				return violation(line, col, "illegal leading empty line")
			}
			metLine = true
			line++
			col = 0
			lineEmpty = true
			spaceAllowed = false
			continue
		}

		col++
		if c == ' ' {
			if !spaceAllowed {
				return violation(line, col, "illegal space")
			}
			spaceAllowed = false
			lineEmpty = false
			continue
		}
		if c < 33 || c > 127 {
			return violation(line, col, fmt.Sprintf("illegal character with code %d", c))
		}
		spaceAllowed = true
		lineEmpty = false
	}

	if !lineEmpty && !spaceAllowed {
		return violation(line, col, "illegal trailing space")
	}
	if data[len(data)-1] != '\n' {
		return violation(line, col, "last line doesn't end with eoln")
	}
	if len(data) >= 2 && data[len(data)-2] == '\n' {
		return violation(line-1, 0, "illegal trailing empty line")
	}
	return nil
}

// ValidateReader reads r fully and validates it.
func ValidateReader(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return Validate(data)
}

// ValidateFile validates the file at path.
func ValidateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Validate(data)
}
