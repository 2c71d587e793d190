// Package visitor walks a test file's AST looking for candidates: spans of
// source that could be deleted without the test file failing to compile,
// each one a bet that the statement or call it covers is actually exercised
// by the test whose body contains it.
//
// The walk is a single mutable-state recursive descent, not a generic
// double-dispatch visitor: which candidates get emitted depends on context
// (are we inside a recognized `it()` body right now?) and on a running
// count of how many leaf statements have been visited so far, both of which
// are far more natural to thread through one stateful struct than to wire
// through a generic Accept/Visit interface.
package visitor

import (
	"github.com/kolkov/tscut/internal/ignore"
	"github.com/kolkov/tscut/internal/testcase"
	"github.com/kolkov/tscut/internal/tsast"
)

// Candidate is one span the visitor proposes as deletable, together with
// the message of the test case it was found in.
type Candidate struct {
	Message string
	Lo, Hi  int
}

// Visitor accumulates candidates across a single module's worth of
// statements. Create one per file; it is not safe for concurrent use.
type Visitor struct {
	recognizer testcase.Recognizer
	ignored    *ignore.Checker

	inItCallExpr        bool
	currentMessage      string
	nStmtLeavesVisited  int

	candidates []Candidate
}

// New builds a Visitor using recognizer to find test cases and ignored to
// exempt assertion calls from mutation.
func New(recognizer testcase.Recognizer, ignored *ignore.Checker) *Visitor {
	return &Visitor{recognizer: recognizer, ignored: ignored}
}

// Visit walks a module's top-level statements and returns every candidate
// found, in the order the walk emits them: a call's method-call suffix is
// appended when that call's own descent completes, so it precedes the
// candidate for the statement that contains it.
func (v *Visitor) Visit(body []*tsast.Node) []Candidate {
	for _, stmt := range body {
		v.visitStmt(stmt)
	}
	return v.candidates
}

// excludedFromEmission are statement kinds the leaf rule still counts
// (so a parent correctly sees itself as non-leaf) but never emits as a
// candidate on their own: deleting a bare break/continue/return changes
// control flow in a way no mutation-survival signal can usefully measure,
// and a declaration deleted whole just breaks every later reference to it.
func excludedFromEmission(k tsast.StmtKind) bool {
	switch k {
	case tsast.StmtBreak, tsast.StmtContinue, tsast.StmtDecl, tsast.StmtReturn:
		return true
	default:
		return false
	}
}

func (v *Visitor) visitStmt(stmt *tsast.Node) {
	if stmt == nil {
		return
	}

	if args, ok := v.ignoredCallStatement(stmt); ok {
		for _, a := range args {
			v.visitExpr(a)
		}
		return
	}

	before := v.nStmtLeavesVisited
	for _, child := range stmt.Children() {
		v.visitAny(child)
	}
	if v.nStmtLeavesVisited == before {
		v.nStmtLeavesVisited++
		if v.inItCallExpr && !excludedFromEmission(stmt.StmtKind()) {
			v.emit(stmt.Lo, stmt.Hi)
		}
	}
}

// ignoredCallStatement reports whether stmt's top expression, after
// unwrapping await/chain/non-null/as wrappers and then peeling away any
// chain of identifier member-call hops, bottoms out at a call the ignore
// checker recognizes as a full assertion invocation
// (`assert.equal(x, y)`, or `expect(x)` underneath `expect(x).to.equal(y)`).
// When it does, the caller skips the whole chain but still needs to walk
// the base call's own arguments for nested candidates, which it returns.
func (v *Visitor) ignoredCallStatement(stmt *tsast.Node) (args []*tsast.Node, ok bool) {
	if stmt.StmtKind() != tsast.StmtExpr {
		return nil, false
	}
	expr := trimExpr(stmt.Expression())
	for expr != nil {
		if chain := ignore.CalleeChain(expr); chain != nil {
			if v.ignored != nil && v.ignored.IsIgnoredCall(chain) {
				return expr.Arguments(), true
			}
			return nil, false
		}
		base, _, isMethodCall := ignore.MemberCallChain(expr)
		if !isMethodCall {
			return nil, false
		}
		expr = base
	}
	return nil, false
}

// trimExpr strips wrappers that carry no mutation-relevant meaning of their
// own (await, optional-chaining, non-null assertion, `as` casts, and plain
// non-call member access) to reach the expression a statement is really
// about.
func trimExpr(e *tsast.Node) *tsast.Node {
	for e != nil {
		switch e.Type {
		case "AwaitExpression":
			e = e.Argument()
		case "ChainExpression", "TSNonNullExpression", "TSAsExpression":
			e = e.Expression()
		case "MemberExpression":
			e = e.Object()
		default:
			return e
		}
	}
	return e
}

func (v *Visitor) visitExpr(e *tsast.Node) {
	if e == nil {
		return
	}

	if e.ExprKind() == tsast.ExprCall {
		if tc, ok := v.recognizer.Match(e); ok {
			v.enterTestCase(tc)
			return
		}
		if callee := e.Callee(); callee != nil {
			v.visitAny(callee)
		}
		for _, a := range e.Arguments() {
			v.visitExpr(a)
		}
		v.visitMethodCallSuffix(e)
		return
	}

	for _, child := range e.Children() {
		v.visitAny(child)
	}
}

// enterTestCase walks a recognized it() body. A nested it() (unusual, but
// not forbidden TypeScript) keeps the outer test's message rather than
// replacing it: candidates found inside still correlate to whichever
// message the runner actually reports when that outer test runs.
func (v *Visitor) enterTestCase(tc testcase.TestCase) {
	if !v.inItCallExpr {
		v.inItCallExpr = true
		v.currentMessage = tc.Message
		defer func() {
			v.inItCallExpr = false
			v.currentMessage = ""
		}()
	}
	for _, stmt := range tc.Body {
		v.visitStmt(stmt)
	}
}

// visitMethodCallSuffix implements the method-call-suffix rule: for a call
// `receiver.p0.p1...(args)`, propose deleting from the end of receiver to
// the end of the call, leaving the receiver expression itself intact. Only
// the first hop after the receiver is checked against chai/should.js glue
// (`.to`, `.should`, zero-arg `.toNumber`/`.toString`): a chain that opens
// with one of those is an assertion DSL in progress, and cutting any
// suffix of it would not remove anything a mutation run could observe.
func (v *Visitor) visitMethodCallSuffix(call *tsast.Node) {
	if !v.inItCallExpr {
		return
	}
	receiver, path, ok := ignore.MemberCallChain(call)
	if !ok || receiver == nil {
		return
	}
	if ignore.IsIgnoredSuffixMethod(path, len(call.Arguments())) {
		return
	}
	v.emit(receiver.Hi, call.Hi)
}

// visitAny dispatches a node that may be a statement, an expression, or
// neither (declarators, object properties, catch clauses, switch cases —
// scaffolding nodes the default traversal still has to recurse through).
func (v *Visitor) visitAny(n *tsast.Node) {
	if n == nil {
		return
	}
	switch {
	case n.IsStmt():
		v.visitStmt(n)
	case n.IsExpr():
		v.visitExpr(n)
	default:
		for _, c := range n.Children() {
			v.visitAny(c)
		}
	}
}

func (v *Visitor) emit(lo, hi int) {
	v.candidates = append(v.candidates, Candidate{Message: v.currentMessage, Lo: lo, Hi: hi})
}
