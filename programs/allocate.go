package programs

import "github.com/on-the-ground/rvm_ive_go/ir"

// CountAllocate fills a new vector with count texts, "0", "1", ..., and
// returns its size. It allocates count+1 heap objects.
func CountAllocate(name string) *ir.Function {
	const (
		count = iota
		vec
		i
	)
	return &ir.Function{
		Name:   name,
		Params: []string{"count"},
		Locals: 3,
		Body: ir.BlockOf(
			ir.AssignOf(vec, ir.CallOf("vector", ir.LocalOf(count))),
			ir.AssignOf(i, ir.IntOf(0)),
			ir.WhileOf(ir.Lt(ir.LocalOf(i), ir.LocalOf(count)), ir.BlockOf(
				ir.CallOf("vectorAdd", ir.LocalOf(vec), ir.CallOf("str", ir.LocalOf(i))),
				ir.AssignOf(i, ir.Add(ir.LocalOf(i), ir.IntOf(1))),
			)),
			ir.ReturnOf(ir.CallOf("vectorSize", ir.LocalOf(vec))),
		),
	}
}
