package nbt

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports malformed tag-tree input: an unknown discriminant, an
// invalid length or a truncated payload. Path locates the failing tag.
type ParseError struct {
	Path []string // e.g. ["display", "Lore", "[2]"]
	Err  error
}

func (e *ParseError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("nbt parse error: %v", e.Err)
	}
	return fmt.Sprintf("nbt parse error at %s: %v", formatPath(e.Path), e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WriteError reports a value that has no encoding in the tag format.
type WriteError struct {
	Path []string
	Err  error
}

func (e *WriteError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("nbt write error: %v", e.Err)
	}
	return fmt.Sprintf("nbt write error at %s: %v", formatPath(e.Path), e.Err)
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// formatPath renders compound names joined by dots and list indices in
// brackets: display.Lore[2].
func formatPath(path []string) string {
	var b strings.Builder
	for i, p := range path {
		if i > 0 && !strings.HasPrefix(p, "[") {
			b.WriteByte('.')
		}
		b.WriteString(p)
	}
	return b.String()
}

func indexSegment(i int) string {
	return "[" + strconv.Itoa(i) + "]"
}

// tracker keeps the path of the tag currently being read or written.
type tracker struct {
	path []string
}

func (t *tracker) push(segment string) { t.path = append(t.path, segment) }
func (t *tracker) pop()                { t.path = t.path[:len(t.path)-1] }

func (t *tracker) snapshot() []string {
	out := make([]string, len(t.path))
	copy(out, t.path)
	return out
}

func (t *tracker) parseErr(format string, args ...any) error {
	return &ParseError{Path: t.snapshot(), Err: fmt.Errorf(format, args...)}
}

func (t *tracker) writeErr(format string, args ...any) error {
	return &WriteError{Path: t.snapshot(), Err: fmt.Errorf(format, args...)}
}
