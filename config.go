package tscut

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// IgnoreConfig extends the built-in assertion exemptions (assert,
// assert.*, expect) with project-specific ones, and tunes which test
// callback shapes [Analyze] recognizes.
type IgnoreConfig struct {
	// Methods are additional dotted call paths ("chai.expect") treated as
	// full assertion invocations, exempt from the statement-deletion rule.
	Methods []string

	// Functions are additional bare function names ("invariant") treated
	// the same way.
	Functions []string

	// AcceptFunctionExprBody allows `it("msg", function () {...})` test
	// callbacks in addition to the default `it("msg", () => {...})` arrow
	// form, for suites that predate arrow-function adoption.
	AcceptFunctionExprBody bool
}

// LoadIgnoreConfig builds an IgnoreConfig from environment variables,
// optionally loading envFile first (pass "" to skip and read the process
// environment as-is). It reads TSCUT_IGNORED_METHODS,
// TSCUT_IGNORED_FUNCTIONS (comma-separated dotted paths), and
// TSCUT_ACCEPT_FUNCTION_EXPR_BODY ("true" to enable).
func LoadIgnoreConfig(envFile string) (*IgnoreConfig, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, &IoError{Path: envFile, Err: err}
		}
	}
	return &IgnoreConfig{
		Methods:                splitEnvList(os.Getenv("TSCUT_IGNORED_METHODS")),
		Functions:              splitEnvList(os.Getenv("TSCUT_IGNORED_FUNCTIONS")),
		AcceptFunctionExprBody: os.Getenv("TSCUT_ACCEPT_FUNCTION_EXPR_BODY") == "true",
	}, nil
}

func splitEnvList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
