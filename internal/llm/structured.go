package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator checks a decoded value. Returns nil if valid.
type SchemaValidator[T any] func(T) error

// ExtractJSON decodes the first JSON object or array in raw model output
// into T. Markdown fences, surrounding prose, comments and trailing commas
// are tolerated. validator runs on the decoded value when non-nil.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	var zero T

	block := extractJSONBlock(stripCodeFences(raw))
	if block == "" {
		return zero, fmt.Errorf("%w: no JSON value found in response", ErrInvalidOutput)
	}
	block = stripTrailingCommas(stripJSONComments(block))

	var result T
	if err := json.Unmarshal([]byte(block), &result); err != nil {
		return zero, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validator != nil {
		if err := validator(result); err != nil {
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return result, nil
}

// ExtractSVG returns the first <svg>...</svg> element in raw, or "" when
// there is none.
func ExtractSVG(raw string) string {
	lower := strings.ToLower(raw)
	start := strings.Index(lower, "<svg")
	if start < 0 {
		return ""
	}
	end := strings.LastIndex(lower, "</svg>")
	if end < start {
		return ""
	}
	return strings.TrimSpace(raw[start : end+len("</svg>")])
}

// stripCodeFences drops ``` fence lines and keeps their contents.
func stripCodeFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// extractJSONBlock returns the first balanced {...} or [...] value.
func extractJSONBlock(s string) string {
	start := strings.IndexAny(s, "{[")
	if start == -1 {
		return ""
	}

	var stack []byte
	sc := newScanner(s[start:])
	for sc.next() {
		if sc.inString {
			continue
		}
		switch c := sc.c; c {
		case '{', '[':
			stack = append(stack, c)
		case '}', ']':
			if len(stack) == 0 {
				return ""
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return s[start : start+sc.i+1]
			}
		}
	}
	return ""
}

// stripJSONComments removes // and /* */ comments outside string values.
func stripJSONComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	sc := newScanner(s)
	for sc.next() {
		if !sc.inString && sc.c == '/' && sc.i+1 < len(s) {
			switch s[sc.i+1] {
			case '/':
				for sc.i+1 < len(s) && s[sc.i+1] != '\n' {
					sc.i++
				}
				continue
			case '*':
				sc.i += 2
				for sc.i+1 < len(s) && !(s[sc.i] == '*' && s[sc.i+1] == '/') {
					sc.i++
				}
				sc.i++
				continue
			}
		}
		b.WriteByte(sc.c)
	}
	return b.String()
}

// stripTrailingCommas drops a comma directly preceding } or ].
func stripTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	sc := newScanner(s)
	for sc.next() {
		if !sc.inString && sc.c == ',' {
			if next := nextNonSpace(s, sc.i+1); next == '}' || next == ']' {
				continue
			}
		}
		b.WriteByte(sc.c)
	}
	return b.String()
}

func nextNonSpace(s string, i int) byte {
	for ; i < len(s); i++ {
		switch s[i] {
		case ' ', '\n', '\r', '\t':
		default:
			return s[i]
		}
	}
	return 0
}

// scanner walks a JSON text byte by byte. inString is true for every byte
// of a string literal, its quotes included.
type scanner struct {
	s        string
	i        int
	c        byte
	inString bool
	open     bool
	escaped  bool
}

func newScanner(s string) *scanner {
	return &scanner{s: s, i: -1}
}

func (sc *scanner) next() bool {
	sc.i++
	if sc.i >= len(sc.s) {
		return false
	}
	sc.c = sc.s[sc.i]

	switch {
	case sc.escaped:
		sc.escaped = false
	case sc.open && sc.c == '\\':
		sc.escaped = true
	case sc.c == '"':
		sc.inString = true
		sc.open = !sc.open
		return true
	}
	sc.inString = sc.open
	return true
}
