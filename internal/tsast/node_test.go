package tsast

import (
	"encoding/json"
	"testing"
)

// fromJSON is a test-only helper building a Node tree from a literal ESTree
// JSON document, standing in for what Parse would otherwise produce from a
// real typescript-eslint parse.
func fromJSON(t *testing.T, raw string) *Node {
	t.Helper()
	n, err := newNode(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("newNode: %v", err)
	}
	if n == nil {
		t.Fatalf("newNode returned nil")
	}
	return n
}

func TestIdentifierHasNoChildren(t *testing.T) {
	n := fromJSON(t, `{"type":"Identifier","name":"foo","range":[0,3]}`)
	if n.Name() != "foo" {
		t.Errorf("Name() = %q, want foo", n.Name())
	}
	if got := n.Children(); got != nil {
		t.Errorf("Children() = %v, want nil", got)
	}
	if !n.IsExpr() || n.ExprKind() != ExprIdent {
		t.Errorf("Identifier should classify as ExprIdent")
	}
}

func TestMemberExpressionAccessors(t *testing.T) {
	raw := `{
		"type": "MemberExpression",
		"range": [0, 10],
		"computed": false,
		"object": {"type": "Identifier", "name": "contract", "range": [0, 8]},
		"property": {"type": "Identifier", "name": "balance", "range": [9, 16]}
	}`
	n := fromJSON(t, raw)
	if n.ExprKind() != ExprMember {
		t.Fatalf("expected ExprMember")
	}
	if n.Computed() {
		t.Errorf("Computed() = true, want false")
	}
	if n.Object().Name() != "contract" {
		t.Errorf("Object().Name() = %q", n.Object().Name())
	}
	if n.Property().Name() != "balance" {
		t.Errorf("Property().Name() = %q", n.Property().Name())
	}
}

func TestCallExpressionCalleeAndArguments(t *testing.T) {
	raw := `{
		"type": "CallExpression",
		"range": [0, 20],
		"callee": {"type": "Identifier", "name": "expect", "range": [0, 6]},
		"arguments": [
			{"type": "Identifier", "name": "x", "range": [7, 8]},
			{"type": "Literal", "value": "y", "range": [10, 13]}
		]
	}`
	n := fromJSON(t, raw)
	if n.ExprKind() != ExprCall {
		t.Fatalf("expected ExprCall")
	}
	if n.Callee().Name() != "expect" {
		t.Errorf("Callee().Name() = %q", n.Callee().Name())
	}
	args := n.Arguments()
	if len(args) != 2 {
		t.Fatalf("len(Arguments()) = %d, want 2", len(args))
	}
	if s, ok := args[1].StringValue(); !ok || s != "y" {
		t.Errorf("StringValue() = %q, %v", s, ok)
	}
}

func TestArrowBodyKindBlockVsExpr(t *testing.T) {
	blockArrow := fromJSON(t, `{
		"type": "ArrowFunctionExpression",
		"range": [0, 30],
		"body": {"type": "BlockStatement", "range": [10, 30], "body": []}
	}`)
	if blockArrow.ArrowBodyKind() != ArrowBodyBlock {
		t.Errorf("expected ArrowBodyBlock")
	}

	exprArrow := fromJSON(t, `{
		"type": "ArrowFunctionExpression",
		"range": [0, 20],
		"body": {"type": "Identifier", "name": "x", "range": [10, 11]}
	}`)
	if exprArrow.ArrowBodyKind() != ArrowBodyExpr {
		t.Errorf("expected ArrowBodyExpr")
	}
}

func TestIfStatementChildrenIncludesTestAndBranches(t *testing.T) {
	raw := `{
		"type": "IfStatement",
		"range": [0, 40],
		"test": {"type": "Identifier", "name": "cond", "range": [4, 8]},
		"consequent": {"type": "BlockStatement", "range": [10, 20], "body": []},
		"alternate": {"type": "BlockStatement", "range": [25, 35], "body": []}
	}`
	n := fromJSON(t, raw)
	if !n.IsStmt() {
		t.Fatalf("IfStatement should be a statement")
	}
	children := n.Children()
	if len(children) != 3 {
		t.Fatalf("len(Children()) = %d, want 3", len(children))
	}
}

func TestStmtKindClassification(t *testing.T) {
	cases := []struct {
		jsonType string
		want     StmtKind
	}{
		{"ExpressionStatement", StmtExpr},
		{"BreakStatement", StmtBreak},
		{"ContinueStatement", StmtContinue},
		{"ReturnStatement", StmtReturn},
		{"VariableDeclaration", StmtDecl},
	}
	for _, c := range cases {
		n := fromJSON(t, `{"type":"`+c.jsonType+`","range":[0,1]}`)
		if got := n.StmtKind(); got != c.want {
			t.Errorf("%s: StmtKind() = %v, want %v", c.jsonType, got, c.want)
		}
	}
}

func TestFunctionBodyNilForExpressionArrow(t *testing.T) {
	n := fromJSON(t, `{
		"type": "ArrowFunctionExpression",
		"range": [0, 10],
		"body": {"type": "CallExpression", "range": [4, 10], "callee": {"type":"Identifier","name":"f","range":[4,5]}, "arguments":[]}
	}`)
	if got := n.FunctionBody(); got != nil {
		t.Errorf("FunctionBody() = %v, want nil for concise-body arrow", got)
	}
}
