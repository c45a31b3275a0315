// Package checker performs the single consolidated semantic pass: function
// signature collection, scope/type resolution, and return-path checking,
// grounded on a closed, single-file AST with no deferred cross-reference
// resolution to drive (§4.4).
package checker

import (
	"github.com/melihbirim/1im-pl/internal/diagnostics"
	"github.com/melihbirim/1im-pl/internal/frontend/ast"
	"github.com/melihbirim/1im-pl/internal/langtypes"
	"github.com/melihbirim/1im-pl/internal/semantics"
)

// Checker walks a parsed program once the signature-collection pre-pass has
// populated the global scope.
type Checker struct {
	diag     *diagnostics.DiagnosticBag
	filepath string

	global     *semantics.SymbolTable
	scope      *semantics.SymbolTable
	scopeStack []*semantics.SymbolTable

	loopDepth int

	// funcReturn is the enclosing function's declared return type (nil for
	// void); funcErrUnion is the same type asserted to *semantics.ErrorUnionType
	// when applicable, used to validate try's propagation rule.
	funcReturn   semantics.Type
	funcErrUnion *semantics.ErrorUnionType

	// suppress silences diagnostic reporting during the return-type
	// inference pre-pass, which re-evaluates candidate return expressions
	// purely to learn their type — any problem it finds will be reported
	// again, for real, once the function's body is checked normally.
	suppress bool

	info *Info
}

// Info is the type side-channel the code generator consumes instead of
// re-deriving types from scratch: every checked expression's resolved type,
// every declaration's resolved type, and every function's collected
// signature, each keyed by the declaring/using AST node so the generator
// can look a node up directly as it walks the same tree a second time.
type Info struct {
	ExprTypes map[ast.Expression]semantics.Type
	DeclTypes map[ast.Node]semantics.Type
	FuncSigs  map[string]*semantics.FunctionType

	// FirstDecl marks which set_assign nodes are the name's first-occurrence
	// declaration, as opposed to a later reassignment of the same name —
	// the code generator emits a C declaration for the former and a bare
	// assignment for the latter.
	FirstDecl map[ast.Node]bool
}

// Analyze runs signature collection followed by a full body check over
// prog, reporting every diagnostic to diag, and returns the type
// information the code generator needs to lower the same tree.
func Analyze(prog *ast.Program, filepath string, diag *diagnostics.DiagnosticBag) *Info {
	c := &Checker{diag: diag, filepath: filepath}
	c.global = semantics.NewSymbolTable(nil)
	c.scope = c.global
	c.info = &Info{
		ExprTypes: make(map[ast.Expression]semantics.Type),
		DeclTypes: make(map[ast.Node]semantics.Type),
		FuncSigs:  make(map[string]*semantics.FunctionType),
		FirstDecl: make(map[ast.Node]bool),
	}

	c.collectSignatures(prog)
	c.checkBlockStmts(prog.Stmts)

	for name, sym := range c.global.AllLocal() {
		if sig, ok := sym.Type.(*semantics.FunctionType); ok {
			c.info.FuncSigs[name] = sig
		}
	}

	return c.info
}

func (c *Checker) recordDecl(n ast.Node, t semantics.Type) {
	if !c.suppress {
		c.info.DeclTypes[n] = t
	}
}

func (c *Checker) report(d *diagnostics.Diagnostic) {
	if c.suppress {
		return
	}
	c.diag.Add(d)
}

func (c *Checker) pushScope() {
	c.scopeStack = append(c.scopeStack, c.scope)
	c.scope = semantics.NewSymbolTable(c.scope)
}

func (c *Checker) popScope() {
	last := len(c.scopeStack) - 1
	c.scope = c.scopeStack[last]
	c.scopeStack = c.scopeStack[:last]
}

// collectSignatures is the first pass over the program's top-level
// statements: every function's name, parameter types, and return type are
// registered in the global scope before any body is checked, so that calls
// can appear lexically before their callee's definition.
func (c *Checker) collectSignatures(prog *ast.Program) {
	for _, n := range prog.Stmts {
		fn, ok := n.(*ast.FunctionDef)
		if !ok {
			continue
		}
		if prev, exists := c.global.LookupLocal(fn.Name); exists {
			c.diag.Add(diagnostics.RedeclaredSymbol(c.filepath, fn.Loc(), prev.Decl.Loc(), fn.Name))
			continue
		}

		sig := &semantics.FunctionType{}
		paramScope := semantics.NewSymbolTable(c.global)
		for _, p := range fn.Params {
			pt := c.resolveType(p.Type)
			sig.Params = append(sig.Params, semantics.FunctionParam{Name: p.Name, Type: pt})
			paramScope.Declare(semantics.NewSymbol(p.Name, semantics.SymbolParam, pt, p))
		}

		if fn.ReturnType != nil {
			sig.ReturnType = c.resolveType(fn.ReturnType)
			if p, ok := sig.ReturnType.(*semantics.PrimitiveType); ok && p.Name == langtypes.TYPE_VOID {
				sig.ReturnType = nil // `returns void` is the same as an omitted clause
			}
		} else {
			sig.ReturnType = c.inferReturnType(fn, paramScope)
		}

		c.global.Declare(semantics.NewSymbol(fn.Name, semantics.SymbolFunc, sig, fn))
	}
}

// inferReturnType determines an omitted-return-type function's return type
// from its body's return statements (§4.4): a function with no return
// statements at all, or only bare returns, is void; a function whose
// returns are all values must agree (as far as this best-effort pass can
// tell — the real type check re-verifies every return against the chosen
// type once the signature is fixed); mixing bare and valued returns is
// itself an error.
func (c *Checker) inferReturnType(fn *ast.FunctionDef, paramScope *semantics.SymbolTable) semantics.Type {
	prevScope, prevSuppress := c.scope, c.suppress
	c.scope = paramScope
	c.suppress = true
	defer func() { c.scope, c.suppress = prevScope, prevSuppress }()

	var found semantics.Type
	hasBare, hasValue := false, false

	var walk func(stmts []ast.Node)
	walk = func(stmts []ast.Node) {
		for _, n := range stmts {
			switch s := n.(type) {
			case *ast.ReturnStmt:
				if s.Value == nil {
					hasBare = true
					continue
				}
				hasValue = true
				t := c.checkExpr(s.Value, true)
				if found == nil {
					found = t
				}
			case *ast.IfStmt:
				walk(s.ThenBody.Stmts)
				for _, ei := range s.ElseIfs {
					walk(ei.Body.Stmts)
				}
				if s.ElseBody != nil {
					walk(s.ElseBody.Stmts)
				}
			case *ast.WhileLoop:
				walk(s.Body.Stmts)
			case *ast.ForLoop:
				walk(s.Body.Stmts)
			case *ast.ParallelBlock:
				walk(s.Body.Stmts)
			case *ast.TryCatch:
				walk(s.CatchBody.Stmts)
			}
		}
	}
	walk(fn.Body.Stmts)

	if hasBare && hasValue {
		c.diag.Add(diagnostics.TypeMismatch(c.filepath, fn.Loc(), "a consistent return shape", "a mixture of bare and value-returning returns"))
		return &semantics.Invalid{}
	}
	if hasBare || found == nil {
		return nil
	}
	if semantics.IsIntLit(found) {
		return semantics.DefaultInt()
	}
	if semantics.IsFloatLit(found) {
		return semantics.DefaultFloat()
	}
	return found
}

// resolveType lowers a parsed type_node to its semantic Type, enforcing the
// error-union and slice invariants that the type grammar alone can't (§4.4):
// an error union's ok and err components must differ and neither may itself
// be an array, slice, or error union; a slice's element must not itself be
// an array.
func (c *Checker) resolveType(t ast.TypeNode) semantics.Type {
	switch tt := t.(type) {
	case *ast.PrimitiveTypeNode:
		return &semantics.PrimitiveType{Name: tt.Name}
	case *ast.ArrayTypeNode:
		return &semantics.ArrayType{Fixed: true, Len: tt.Len, Elem: c.resolveType(tt.Elem)}
	case *ast.SliceTypeNode:
		elem := c.resolveType(tt.Elem)
		if _, bad := elem.(*semantics.ArrayType); bad {
			c.report(diagnostics.TypeMismatch(c.filepath, tt.Loc(), "a non-array element type", elem.String()))
		}
		return &semantics.ArrayType{Fixed: false, Elem: elem}
	case *ast.ErrorUnionTypeNode:
		ok := c.resolveType(tt.Ok)
		errT := c.resolveType(tt.Err)
		if isCompoundOrUnion(ok) || isCompoundOrUnion(errT) {
			c.report(diagnostics.TypeMismatch(c.filepath, tt.Loc(), "a primitive ok/err component", "an array or error-union component"))
		} else if semantics.TypesEqual(ok, errT) {
			c.report(diagnostics.TypeMismatch(c.filepath, tt.Loc(), "distinct ok and err types", ok.String()+" on both sides"))
		}
		return &semantics.ErrorUnionType{Ok: ok, Err: errT}
	}
	return &semantics.Invalid{}
}

func isCompoundOrUnion(t semantics.Type) bool {
	switch t.(type) {
	case *semantics.ArrayType, *semantics.ErrorUnionType:
		return true
	}
	return false
}
