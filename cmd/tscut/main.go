// tscut - mutation candidate finder for Hardhat TypeScript test suites.
//
// Walks a project's test files, finds spans inside `it(...)` bodies that
// could be deleted without breaking compilation, and prints them. With
// -dry-run, it also compiles the project and runs each affected test file
// once up front to record which `it` messages the runner actually reports,
// so candidates whose test was skipped or renamed can be flagged.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/kolkov/tscut"
	"github.com/kolkov/tscut/internal/harness"
)

const (
	shortUsage = "usage: tscut [-dir path] [-method path]... [-function name]... [-env file] [-dry-run] [path ...]"
	longUsage  = `Arguments:
  -dir path         project root to walk (default ".")
  -method path      additional ignored dotted method path, e.g. chai.expect
                    (may be given multiple times)
  -function name    additional ignored bare function name
                    (may be given multiple times)
  -accept-function-expr-body
                    also recognize it("msg", function () {...}) callbacks
  -env file         load ignore configuration from a .env file
  -dry-run          compile the project and run each test file once first,
                    so candidates can be checked against recorded runner
                    output

Other:
  -h, --help        show this help message
  -version          show tscut version and exit

With no path arguments, every .ts file under -dir's "test" directory is
analyzed; it is an error if that directory does not exist.
`
)

func main() {
	dir := "."
	var methods, functions []string
	acceptFunctionExprBody := false
	envFile := ""
	dryRun := false

	var i int
	for i = 1; i < len(os.Args); i++ {
		arg := os.Args[i]
		if arg == "--" {
			i++
			break
		}
		if arg == "-" || !strings.HasPrefix(arg, "-") {
			break
		}
		switch arg {
		case "-dir":
			i = needArg(i, "-dir")
			dir = os.Args[i]
		case "-method":
			i = needArg(i, "-method")
			methods = append(methods, os.Args[i])
		case "-function":
			i = needArg(i, "-function")
			functions = append(functions, os.Args[i])
		case "-accept-function-expr-body":
			acceptFunctionExprBody = true
		case "-env":
			i = needArg(i, "-env")
			envFile = os.Args[i]
		case "-dry-run":
			dryRun = true
		case "-h", "--help":
			fmt.Printf("tscut %s\n\n%s\n\n%s", tscut.Version, shortUsage, longUsage)
			os.Exit(0)
		case "-version", "--version":
			fmt.Printf("tscut version %s\n", tscut.Version)
			os.Exit(0)
		default:
			errorExitf("flag provided but not defined: %s", arg)
		}
	}
	explicitPaths := os.Args[i:]

	cfg := &tscut.IgnoreConfig{AcceptFunctionExprBody: acceptFunctionExprBody}
	if envFile != "" {
		loaded, err := tscut.LoadIgnoreConfig(envFile)
		if err != nil {
			errorExit(err)
		}
		cfg = loaded
		cfg.AcceptFunctionExprBody = cfg.AcceptFunctionExprBody || acceptFunctionExprBody
	}
	cfg.Methods = append(cfg.Methods, methods...)
	cfg.Functions = append(cfg.Functions, functions...)

	if !tscut.Applicable(dir) {
		errorExitf("%s does not look like a Hardhat project (no hardhat.config.ts)", dir)
	}

	var files []tscut.SourceFile
	if len(explicitPaths) > 0 {
		for _, p := range explicitPaths {
			files = append(files, tscut.SourceFile{Root: dir, Path: p})
		}
	} else {
		walked, err := tscut.WalkTestFiles(dir)
		if err != nil {
			errorExit(err)
		}
		files = walked
	}

	analyzer, err := tscut.NewAnalyzer(cfg)
	if err != nil {
		errorExit(err)
	}

	index := tscut.NewCandidateIndex()
	perFile := make(map[tscut.SourceFile][]tscut.Candidate, len(files))
	exitCode := 0
	for _, f := range files {
		candidates, err := analyzer.Analyze(f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tscut: %v\n", err)
			exitCode = 1
			continue
		}
		perFile[f] = candidates
		index.Track(f, candidates)
	}

	if dryRun {
		dryRunObserve(dir, files, index)
	}

	for _, f := range files {
		for _, c := range perFile[f] {
			if dryRun {
				if _, warnNow := index.Observe(f, c.Message); warnNow {
					w := tscut.ItMessageNotFound{File: f.RelPath(), Message: c.Message}
					fmt.Fprintf(os.Stderr, "tscut: warning: %s\n", w.Warning())
				}
			}
			fmt.Printf("%s: %s\n", c.Span, c.Message)
		}
	}
	os.Exit(exitCode)
}

// dryRunObserve compiles the project once and runs each file's tests,
// recording in index which it() messages the runner actually reported
// passing.
func dryRunObserve(dir string, files []tscut.SourceFile, index *tscut.CandidateIndex) {
	ctx := context.Background()
	h := harness.New(dir)
	if err := h.Compile(ctx); err != nil {
		errorExit(err)
	}
	for _, f := range files {
		result, err := h.Test(ctx, f.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tscut: %v\n", err)
			continue
		}
		if err := index.ObserveRunnerOutput(f, result.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "tscut: %v\n", err)
		}
	}
}

func needArg(i int, flag string) int {
	if i+1 >= len(os.Args) {
		errorExitf("flag needs an argument: %s", flag)
	}
	return i + 1
}

func errorExitf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "tscut: "+format+"\n", args...)
	os.Exit(1)
}

func errorExit(err error) {
	fmt.Fprintf(os.Stderr, "tscut: %v\n", err)
	os.Exit(1)
}
