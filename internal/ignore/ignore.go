// Package ignore decides which calls are assertion-like and therefore
// exempt from mutation: either because the whole statement just asserts
// (assert(...), assert.equal(...), expect(x).to.equal(y)) and descending
// into it would only ever produce useless candidates, or because a single
// call in a longer chain is chai/should.js glue (`.to`, `.should`) rather
// than the receiver call a mutation would actually want to remove.
package ignore

import (
	"fmt"
	"strings"

	"github.com/kolkov/tscut/internal/tsast"
)

// Config lists the additional dotted call paths a caller wants layered on
// top of the built-in assertion set (assert, assert.*, expect). Each entry
// is a dotted path such as "chai.expect" or a bare identifier like
// "invariant".
type Config struct {
	Methods   []string
	Functions []string
}

// Checker evaluates a built Config against call expressions. Build it once
// per analysis run and reuse it across files.
type Checker struct {
	dotted map[string]bool
	bare   map[string]bool
}

var builtinBare = []string{"assert", "expect"}

// New validates cfg and builds a Checker. A malformed dotted path (empty
// segment, leading or trailing dot) is rejected rather than silently
// ignored, since a typo here would silently disable a mutation check.
func New(cfg Config) (*Checker, error) {
	c := &Checker{dotted: map[string]bool{}, bare: map[string]bool{}}
	for _, name := range builtinBare {
		c.bare[name] = true
	}
	for _, m := range cfg.Methods {
		if err := validatePath(m); err != nil {
			return nil, fmt.Errorf("ignore: method %q: %w", m, err)
		}
		c.dotted[m] = true
	}
	for _, f := range cfg.Functions {
		if err := validatePath(f); err != nil {
			return nil, fmt.Errorf("ignore: function %q: %w", f, err)
		}
		c.bare[f] = true
	}
	return c, nil
}

func validatePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty path")
	}
	for _, s := range strings.Split(path, ".") {
		if s == "" {
			return fmt.Errorf("empty segment")
		}
	}
	return nil
}

// IsIgnoredCall reports whether call — a bare call (`assert(x)`) or a
// method call reached by walking down a receiver chain (`assert.equal(x)`,
// `expect(x).to.equal(y)`) — is a full assertion invocation that should be
// skipped as a statement: tscut still descends into its arguments, but
// never proposes deleting the call itself.
//
// chain is the sequence of identifier/property names from the outermost
// callee down to (but excluding) the final call, e.g. ["assert", "equal"]
// for `assert.equal(...)` or ["expect"] for `expect(...)`. Any chain whose
// first segment is assert matches; expect and configured Functions entries
// match only a bare call of that name; configured Methods entries match the
// whole dotted chain.
func (c *Checker) IsIgnoredCall(chain []string) bool {
	if c == nil || len(chain) == 0 {
		return false
	}
	if chain[0] == "assert" {
		return true
	}
	if len(chain) == 1 && c.bare[chain[0]] {
		return true
	}
	return c.dotted[strings.Join(chain, ".")]
}

// IsIgnoredSuffixMethod reports whether path — the chain of identifier
// property names between a method call's receiver and the call itself,
// receiver-adjacent hop first (["to", "equal"] for `x.to.equal(y)`) — opens
// with chai/should.js glue (`.to`, `.should`, or a zero-argument
// `.toNumber()`/`.toString()`) that the method-call-suffix rule should look
// straight through rather than treat as the receiver call to cut at. Only
// the first hop is examined: once a chain starts with assertion-DSL glue,
// nothing after it is a real receiver call worth proposing a cut against.
func IsIgnoredSuffixMethod(path []string, argCount int) bool {
	if len(path) == 0 {
		return false
	}
	switch path[0] {
	case "should", "to":
		return true
	case "toNumber", "toString":
		return len(path) == 1 && argCount == 0
	default:
		return false
	}
}

// CalleeChain walks a CallExpression's callee down through any
// MemberExpression hops, returning the dotted identifier/property path from
// outermost to innermost (e.g. ["assert", "equal"] for `assert.equal`), or
// nil if the chain bottoms out in anything other than an Identifier.
func CalleeChain(call *tsast.Node) []string {
	if call == nil || call.ExprKind() != tsast.ExprCall {
		return nil
	}
	var names []string
	cur := call.Callee()
	for cur != nil && cur.Type == "MemberExpression" {
		prop := cur.Property()
		if prop == nil || prop.Type != "Identifier" || cur.Computed() {
			return nil
		}
		names = append([]string{prop.Name()}, names...)
		cur = cur.Object()
	}
	if cur == nil || cur.Type != "Identifier" {
		return nil
	}
	return append([]string{cur.Name()}, names...)
}

// MemberCallChain decomposes call as `base.p0.p1...(args)`: a receiver
// reached by walking identifier member accesses off the callee, and the
// chain of property names between that receiver and the call, receiver-
// adjacent hop first. Unlike [CalleeChain], base may be anything — another
// call (`expect(x).to.equal(y)`'s base is `expect(x)`), a computed member
// access, a `this` expression — the walk simply stops at the first hop
// that isn't a plain identifier property access and reports whatever it
// reached. ok is false when no identifier hop can be peeled off the callee:
// call is not a call, its callee is not a MemberExpression, or the callee's
// outermost access is computed or has a non-identifier property.
func MemberCallChain(call *tsast.Node) (base *tsast.Node, path []string, ok bool) {
	if call == nil || call.ExprKind() != tsast.ExprCall {
		return nil, nil, false
	}
	cur := call.Callee()
	for cur != nil && cur.Type == "MemberExpression" && !cur.Computed() {
		prop := cur.Property()
		if prop == nil || prop.Type != "Identifier" {
			break
		}
		path = append([]string{prop.Name()}, path...)
		cur = cur.Object()
	}
	if len(path) == 0 {
		return nil, nil, false
	}
	return cur, path, true
}
