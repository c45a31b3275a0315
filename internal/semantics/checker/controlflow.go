package checker

import (
	"github.com/melihbirim/1im-pl/internal/diagnostics"
	"github.com/melihbirim/1im-pl/internal/frontend/ast"
	"github.com/melihbirim/1im-pl/internal/source"
)

// FlowStepKind identifies what kind of branch a FlowStep records.
type FlowStepKind int

const (
	StepFunctionBody FlowStepKind = iota
	StepIfThen
	StepIfElse
)

// FlowStep is a single branch decision on the way to a fallthrough point.
type FlowStep struct {
	Kind FlowStepKind
	Loc  *source.Location
}

// FlowPath is one path through the body that can fall off the end without
// returning.
type FlowPath struct {
	Steps []FlowStep
	Loc   *source.Location
}

// FlowResult is the return-coverage outcome of a statement or block.
// Loops never count as coverage (§4.4): a while/for body is analyzed for
// its own internal diagnostics but never makes AlwaysReturns true.
type FlowResult struct {
	AlwaysReturns bool
	MissingPaths  []FlowPath
}

// checkFunctionReturns verifies the last statement of fn's body is a
// return, or an if/else-if/else cascade whose every branch covers return
// (§4.4's syntactic return-coverage rule). Only called for non-void
// functions.
func (c *Checker) checkFunctionReturns(fn *ast.FunctionDef) {
	base := []FlowStep{{Kind: StepFunctionBody, Loc: fn.Loc()}}
	flow := c.analyzeBlockFlow(fn.Body, base)
	if flow.AlwaysReturns {
		return
	}

	diag := diagnostics.MissingReturn(c.filepath, fn.Loc(), fn.Name)

	for i, p := range flow.MissingPaths {
		if i >= 3 {
			diag = diag.WithNote("additional non-returning paths omitted")
			break
		}
		diag = diag.WithSecondaryLabel(c.filepath, p.Loc, "falls through here without returning")
	}

	c.report(diag)
}

// analyzeBlockFlow examines a block's last statement — this is purely a
// return-coverage scan; typing/scoping is handled separately by
// checkBlockStmts.
func (c *Checker) analyzeBlockFlow(block *ast.Block, base []FlowStep) FlowResult {
	var res FlowResult
	stmts := block.Stmts
	if len(stmts) > 1 {
		stmts = stmts[len(stmts)-1:]
	}
	for _, stmt := range stmts {
		if res.AlwaysReturns {
			break
		}
		switch s := stmt.(type) {
		case *ast.ReturnStmt:
			res.AlwaysReturns = true
		case *ast.IfStmt:
			sub := c.analyzeIfFlow(s, base)
			res.MissingPaths = append(res.MissingPaths, sub.MissingPaths...)
			if sub.AlwaysReturns {
				res.AlwaysReturns = true
			}
		default:
			// while/for/parallel/break/continue/try-catch/expr-stmt/assignment:
			// none of these cover a return by themselves.
		}
	}
	if !res.AlwaysReturns {
		res.MissingPaths = append(res.MissingPaths, FlowPath{Steps: base, Loc: block.Loc()})
	}
	return res
}

func (c *Checker) analyzeIfFlow(stmt *ast.IfStmt, base []FlowStep) FlowResult {
	thenPath := appendStep(base, FlowStep{Kind: StepIfThen, Loc: stmt.ThenBody.Loc()})
	thenRes := c.analyzeBlockFlow(stmt.ThenBody, thenPath)

	allReturn := thenRes.AlwaysReturns
	missing := append([]FlowPath{}, thenRes.MissingPaths...)

	for _, ei := range stmt.ElseIfs {
		eiPath := appendStep(base, FlowStep{Kind: StepIfThen, Loc: ei.Body.Loc()})
		eiRes := c.analyzeBlockFlow(ei.Body, eiPath)
		allReturn = allReturn && eiRes.AlwaysReturns
		missing = append(missing, eiRes.MissingPaths...)
	}

	if stmt.ElseBody != nil {
		elsePath := appendStep(base, FlowStep{Kind: StepIfElse, Loc: stmt.ElseBody.Loc()})
		elseRes := c.analyzeBlockFlow(stmt.ElseBody, elsePath)
		allReturn = allReturn && elseRes.AlwaysReturns
		missing = append(missing, elseRes.MissingPaths...)
	} else {
		// No else clause: there is always a fallthrough path that skips
		// the whole if, whatever the then/else-if branches do.
		allReturn = false
		missing = append(missing, FlowPath{
			Steps: appendStep(base, FlowStep{Kind: StepIfElse, Loc: stmt.Loc()}),
			Loc:   stmt.Loc(),
		})
	}

	return FlowResult{AlwaysReturns: allReturn, MissingPaths: missing}
}

func appendStep(base []FlowStep, step FlowStep) []FlowStep {
	out := make([]FlowStep, len(base), len(base)+1)
	copy(out, base)
	return append(out, step)
}
