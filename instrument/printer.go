package instrument

import (
	"io"
	"strings"

	"github.com/on-the-ground/rvm_ive_go/value"
)

// Printer renders values for print and println. Arguments are written back
// to back, without separators.
type Printer struct {
	w io.Writer
}

func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = io.Discard
	}
	return &Printer{w: w}
}

func (p *Printer) Print(vs ...value.Value) error {
	var sb strings.Builder
	for _, v := range vs {
		sb.WriteString(v.String())
	}
	_, err := io.WriteString(p.w, sb.String())
	return err
}

func (p *Printer) Println() error {
	_, err := io.WriteString(p.w, "\n")
	return err
}
