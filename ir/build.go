package ir

import "github.com/on-the-ground/rvm_ive_go/value"

func IntOf(n int64) Expr { return &Const{Value: value.Int(n)} }

func BoolOf(b bool) Expr { return &Const{Value: value.Bool(b)} }

func TextOf(s string) Expr { return &Const{Value: value.Str(s)} }

func NullOf() Expr { return &Const{Value: value.Null()} }

func LocalOf(slot int) Expr { return &Local{Slot: slot} }

func AssignOf(slot int, v Expr) Expr { return &Assign{Slot: slot, Value: v} }

func IfOf(cond, then, els Expr) Expr { return &If{Cond: cond, Then: then, Else: els} }

func BlockOf(body ...Expr) Expr { return &Block{Body: body} }

func ReturnOf(v Expr) Expr { return &Return{Value: v} }

func WhileOf(cond, body Expr) Expr { return &While{Cond: cond, Body: body} }

func CallOf(fn string, args ...Expr) Expr { return &Call{Func: fn, Args: args} }

func NotOf(e Expr) Expr { return &Not{Operand: e} }

func BinaryOf(op Op, l, r Expr) Expr { return &Binary{Op: op, Left: l, Right: r} }

func Add(l, r Expr) Expr { return BinaryOf(OpAdd, l, r) }
func Sub(l, r Expr) Expr { return BinaryOf(OpSub, l, r) }
func Mul(l, r Expr) Expr { return BinaryOf(OpMul, l, r) }
func Lt(l, r Expr) Expr  { return BinaryOf(OpLt, l, r) }
func Le(l, r Expr) Expr  { return BinaryOf(OpLe, l, r) }
func Eq(l, r Expr) Expr  { return BinaryOf(OpEq, l, r) }
