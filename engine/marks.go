package engine

import (
	"fmt"
	"strings"
)

// Marks selects the behaviors the runtime adds around a function.
type Marks uint8

const (
	// Memoize caches results by argument values.
	Memoize Marks = 1 << iota
	// TailOptimize turns self-calls in tail position into loop jumps.
	TailOptimize
	// AutoFree reclaims everything allocated during a call when it returns.
	AutoFree

	None Marks = 0
	All        = Memoize | TailOptimize | AutoFree
)

var markNames = []struct {
	mark Marks
	name string
}{
	{Memoize, "memoize"},
	{TailOptimize, "tailrec"},
	{AutoFree, "autofree"},
}

func (m Marks) Has(flag Marks) bool { return m&flag == flag }

func (m Marks) valid() bool { return m&^All == 0 }

func (m Marks) String() string {
	if m == None {
		return "none"
	}
	var names []string
	for _, mn := range markNames {
		if m.Has(mn.mark) {
			names = append(names, mn.name)
		}
	}
	if rest := m &^ All; rest != 0 {
		names = append(names, fmt.Sprintf("0x%02x", uint8(rest)))
	}
	return strings.Join(names, "|")
}

// label is String without the placeholder for no marks.
func (m Marks) label() string {
	if m == None {
		return ""
	}
	return m.String()
}

// ParseMarks reads a list of mark names separated by commas, pipes or
// spaces, e.g. "memoize|autofree". "none" and "" give None.
func ParseMarks(s string) (Marks, error) {
	var m Marks
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '|' || r == ' '
	})
	for _, f := range fields {
		f = strings.ToLower(f)
		if f == "none" {
			continue
		}
		found := false
		for _, mn := range markNames {
			if mn.name == f {
				m |= mn.mark
				found = true
				break
			}
		}
		if !found {
			return None, fmt.Errorf("%w: unknown mark %q", ErrInvalidMarks, f)
		}
	}
	return m, nil
}
