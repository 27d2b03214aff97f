package ir

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/on-the-ground/rvm_ive_go/value"
)

// Format renders e as an s-expression. Locals print as $slot.
func Format(e Expr) string {
	var sb strings.Builder
	printer{sb: &sb}.expr(e)
	return sb.String()
}

// String renders the function header and body, with parameter names in
// place of their slots.
func (f *Function) String() string {
	var sb strings.Builder
	sb.WriteString(f.Name)
	sb.WriteByte('(')
	sb.WriteString(strings.Join(f.Params, ", "))
	sb.WriteString(") = ")
	printer{sb: &sb, params: f.Params}.expr(f.Body)
	return sb.String()
}

type printer struct {
	sb     *strings.Builder
	params []string
}

func (p printer) list(head string, es ...Expr) {
	p.sb.WriteByte('(')
	p.sb.WriteString(head)
	for _, e := range es {
		p.sb.WriteByte(' ')
		p.expr(e)
	}
	p.sb.WriteByte(')')
}

func (p printer) local(slot int) string {
	if slot >= 0 && slot < len(p.params) {
		return p.params[slot]
	}
	return "$" + strconv.Itoa(slot)
}

func (p printer) expr(e Expr) {
	switch e := e.(type) {
	case nil:
		p.sb.WriteString("void")
	case *Const:
		switch e.Value.Kind() {
		case value.KindText:
			p.sb.WriteString(strconv.Quote(e.Value.String()))
		case value.KindVoid:
			p.sb.WriteString("void")
		default:
			p.sb.WriteString(e.Value.String())
		}
	case *Local:
		p.sb.WriteString(p.local(e.Slot))
	case *Assign:
		p.sb.WriteString("(set! " + p.local(e.Slot) + " ")
		p.expr(e.Value)
		p.sb.WriteByte(')')
	case *If:
		if e.Else == nil {
			p.list("if", e.Cond, e.Then)
			return
		}
		p.list("if", e.Cond, e.Then, e.Else)
	case *Block:
		p.list("do", e.Body...)
	case *Return:
		if e.Value == nil {
			p.sb.WriteString("(return)")
			return
		}
		p.list("return", e.Value)
	case *While:
		p.list("while", e.Cond, e.Body)
	case *Call:
		p.list(e.Func, e.Args...)
	case *SelfTailCall:
		p.list("tailcall "+e.Func, e.Args...)
	case *Binary:
		p.list(e.Op.String(), e.Left, e.Right)
	case *Not:
		p.list("!", e.Operand)
	default:
		panic(fmt.Errorf("invalid expression type: %T", e))
	}
}
