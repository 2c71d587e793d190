// Package testcase recognizes Mocha-style `it(...)` test cases in an
// adapted AST and extracts the pieces the rest of tscut needs: the test's
// literal message and the statement list that forms its body.
package testcase

import "github.com/kolkov/tscut/internal/tsast"

// TestCase is one recognized `it("message", async () => { ... })` call.
type TestCase struct {
	// Message is the test's literal first-argument string.
	Message string
	// Body is the statement list tscut walks looking for candidates.
	Body []*tsast.Node
	// Call is the underlying CallExpression node, kept for its span.
	Call *tsast.Node
}

// Recognizer decides which call expressions are test cases. The zero value
// recognizes plain `it(message, fn)`; AcceptFunctionExprBody additionally
// allows the callback to be an ordinary `function` expression instead of an
// arrow, matching test suites that predate arrow-function adoption.
type Recognizer struct {
	AcceptFunctionExprBody bool
}

// Match reports whether call is a recognized `it(...)` invocation and, if
// so, returns the TestCase it describes.
func (r Recognizer) Match(call *tsast.Node) (TestCase, bool) {
	if call == nil || call.ExprKind() != tsast.ExprCall {
		return TestCase{}, false
	}
	callee := call.Callee()
	if callee == nil || callee.Type != "Identifier" || callee.Name() != "it" {
		return TestCase{}, false
	}
	args := call.Arguments()
	if len(args) != 2 {
		return TestCase{}, false
	}
	message, ok := args[0].StringValue()
	if !ok {
		return TestCase{}, false
	}
	body := r.callbackBody(args[1])
	if body == nil {
		return TestCase{}, false
	}
	return TestCase{Message: message, Body: body, Call: call}, true
}

// callbackBody returns the statement list of fn if fn is a shape this
// recognizer accepts as a test callback, or nil otherwise.
func (r Recognizer) callbackBody(fn *tsast.Node) []*tsast.Node {
	if fn == nil {
		return nil
	}
	switch fn.Type {
	case "ArrowFunctionExpression":
		if fn.ArrowBodyKind() != tsast.ArrowBodyBlock {
			// A concise-expression-body arrow (`it("x", () => foo())`) has no
			// statement list to mutate within; nothing to recognize.
			return nil
		}
		return fn.FunctionBody()
	case "FunctionExpression":
		if !r.AcceptFunctionExprBody {
			return nil
		}
		return fn.FunctionBody()
	default:
		return nil
	}
}
