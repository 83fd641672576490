package prettyprinter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/pokerscript/internal/ast"
	"github.com/funvibe/pokerscript/internal/symbols"
	"github.com/funvibe/pokerscript/internal/typesystem"
)

// --- Tree Dump (numbered node graph with decorations) ---

// Dump renders program as a numbered node graph, one line per node or
// entity:
//
//	   1 | Program statements=[#2,#5]
//	   2 | VariableDeclaration modifier=null type=#3 variable=(Id,"x",#4) initializer=(Int,"1")
//
// Identifier leaves point at the entity they resolve to. Positions are not
// rendered, so programs that differ only in layout dump identically.
func Dump(program *ast.Program) string {
	d := &dumper{tags: make(map[any]int)}
	if program == nil {
		return ""
	}
	ast.Inspect(program, func(n ast.Node) bool {
		if t, ok := n.(*ast.Token); ok {
			if t.Entity != nil {
				d.tagEntity(t.Entity)
			}
			return true
		}
		d.tag(n)
		return true
	})

	var b strings.Builder
	for i, item := range d.order {
		if i > 0 {
			b.WriteByte('\n')
		}
		kind, props := d.describe(item)
		fmt.Fprintf(&b, "%4d | %s", i+1, kind)
		for _, p := range props {
			b.WriteByte(' ')
			b.WriteString(p)
		}
	}
	return b.String()
}

type dumper struct {
	tags  map[any]int
	order []any
}

func (d *dumper) tag(x any) bool {
	if _, seen := d.tags[x]; seen {
		return false
	}
	d.order = append(d.order, x)
	d.tags[x] = len(d.order)
	return true
}

func (d *dumper) tagEntity(e symbols.Entity) {
	if !d.tag(e) {
		return
	}
	if fn, ok := e.(*symbols.Function); ok {
		for _, p := range fn.Params() {
			d.tag(p)
		}
	}
}

type prop struct {
	key string
	val any
}

func (d *dumper) describe(item any) (string, []string) {
	var kind string
	var props []prop

	switch n := item.(type) {
	case *ast.Program:
		kind, props = "Program", []prop{{"statements", n.Statements}}
	case *ast.Block:
		kind, props = "Block", []prop{{"statements", n.Statements}}
	case *ast.VariableDeclaration:
		kind, props = "VariableDeclaration", []prop{
			{"modifier", n.Modifier}, {"type", n.Type}, {"variable", n.Variable}, {"initializer", n.Initializer},
		}
	case *ast.FunctionDeclaration:
		kind, props = "FunctionDeclaration", []prop{
			{"returnType", n.ReturnType}, {"name", n.Name}, {"parameters", n.Parameters}, {"body", n.Body},
		}
	case *ast.Parameter:
		kind, props = "Parameter", []prop{{"type", n.Type}, {"name", n.Name}}
	case *ast.PrintStatement:
		kind, props = "PrintStatement", []prop{{"argument", n.Argument}}
	case *ast.Assignment:
		kind, props = "Assignment", []prop{{"target", n.Target}, {"op", n.Op}, {"source", n.Source}}
	case *ast.Bump:
		kind, props = "Bump", []prop{{"operand", n.Operand}, {"op", n.Op}, {"type", n.ResolvedType()}}
	case *ast.BreakStatement:
		kind = "BreakStatement"
	case *ast.ReturnStatement:
		kind, props = "ReturnStatement", []prop{{"expression", n.Expression}}
	case *ast.IfStatement:
		kind, props = "IfStatement", []prop{
			{"test", n.Test}, {"consequent", n.Consequent}, {"alternates", n.Alternates}, {"else", n.Else},
		}
	case *ast.ElseIf:
		kind, props = "ElseIf", []prop{{"test", n.Test}, {"consequent", n.Consequent}}
	case *ast.WhileStatement:
		kind, props = "WhileStatement", []prop{{"test", n.Test}, {"body", n.Body}}
	case *ast.ForLoop:
		kind, props = "ForLoop", []prop{
			{"declaration", n.Declaration}, {"test", n.Test}, {"update", n.Update}, {"body", n.Body},
		}
	case *ast.LoopDeclaration:
		kind, props = "LoopDeclaration", []prop{{"type", n.Type}, {"variable", n.Variable}, {"initializer", n.Initializer}}
	case *ast.ExpressionStatement:
		kind, props = "ExpressionStatement", []prop{{"expression", n.Expression}}

	case *ast.Conditional:
		kind, props = "Conditional", []prop{
			{"test", n.Test}, {"consequent", n.Consequent}, {"alternate", n.Alternate}, {"type", n.ResolvedType()},
		}
	case *ast.BinaryExpression:
		kind, props = "BinaryExpression", []prop{
			{"op", n.Op}, {"left", n.Left}, {"right", n.Right}, {"type", n.ResolvedType()},
		}
	case *ast.UnaryExpression:
		kind, props = "UnaryExpression", []prop{{"op", n.Op}, {"operand", n.Operand}, {"type", n.ResolvedType()}}
	case *ast.ArrayExpression:
		kind, props = "ArrayExpression", []prop{{"elements", n.Elements}, {"type", n.ResolvedType()}}
	case *ast.EmptyArray:
		kind, props = "EmptyArray", []prop{{"elementType", n.ElementType}, {"type", n.ResolvedType()}}
	case *ast.EmptyOptional:
		kind, props = "EmptyOptional", []prop{{"elementType", n.ElementType}, {"type", n.ResolvedType()}}
	case *ast.Subscript:
		kind, props = "Subscript", []prop{{"array", n.Array}, {"index", n.Index}, {"type", n.ResolvedType()}}
	case *ast.Call:
		kind, props = "Call", []prop{{"callee", n.Callee}, {"args", n.Args}, {"type", n.ResolvedType()}}

	case *ast.NamedType:
		kind, props = "NamedType", []prop{{"name", n.Name}, {"type", n.ResolvedType()}}
	case *ast.ArrayType:
		kind, props = "ArrayType", []prop{{"elem", n.Elem}, {"type", n.ResolvedType()}}
	case *ast.OptionalType:
		kind, props = "OptionalType", []prop{{"elem", n.Elem}, {"type", n.ResolvedType()}}

	case *symbols.Variable:
		kind, props = "Variable", []prop{{"name", n.Name()}, {"readOnly", n.ReadOnly()}, {"type", n.Type()}}
	case *symbols.Function:
		kind, props = "Function", []prop{{"name", n.Name()}, {"params", n.Params()}, {"returnType", n.ReturnType()}}
	case *symbols.TypeEntity:
		kind, props = "Type", []prop{{"name", n.Name()}, {"type", n.Type()}}
	default:
		kind = fmt.Sprintf("%T", item)
	}

	out := make([]string, len(props))
	for i, p := range props {
		out[i] = p.key + "=" + d.view(p.val)
	}
	return kind, out
}

// view renders one property value: tagged items by number, leaves inline.
func (d *dumper) view(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case typesystem.Type:
		return x.String()
	case *ast.Token:
		if x == nil {
			return "null"
		}
		s := fmt.Sprintf("(%s,%q", x.Category(), x.Lexeme())
		if x.Entity != nil {
			s += "," + d.view(x.Entity)
		}
		return s + ")"
	case []ast.Statement:
		return viewList(d, x)
	case []ast.Expression:
		return viewList(d, x)
	case []*ast.Parameter:
		return viewList(d, x)
	case []*ast.ElseIf:
		return viewList(d, x)
	case []*symbols.Variable:
		return viewList(d, x)
	}

	if n, ok := v.(ast.Node); ok && ast.IsNil(n) {
		return "null"
	}
	if id, ok := d.tags[v]; ok {
		return "#" + strconv.Itoa(id)
	}
	return fmt.Sprintf("%v", v)
}

func viewList[T any](d *dumper, items []T) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = d.view(it)
	}
	return "[" + strings.Join(parts, ",") + "]"
}
