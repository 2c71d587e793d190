package tscut

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/kolkov/tscut/internal/ignore"
	"github.com/kolkov/tscut/internal/sourcemap"
	"github.com/kolkov/tscut/internal/testcase"
	"github.com/kolkov/tscut/internal/tsast"
	"github.com/kolkov/tscut/internal/visitor"
)

// Version is the tscut version string.
const Version = "0.1.0"

// hardhatConfigName is the one filename that marks a Hardhat project root,
// per §6.1: "a file named hardhat.config.ts exists directly under the
// root." Hardhat itself also accepts .js/.cjs config files, but tscut only
// ever needs to dispatch TypeScript suites, so the original's narrower
// check is kept rather than broadened.
const hardhatConfigName = "hardhat.config.ts"

// Applicable reports whether root looks like a Hardhat project — the same
// check a caller should run before trying to walk or dry-run it.
func Applicable(root string) bool {
	_, err := os.Stat(filepath.Join(root, hardhatConfigName))
	return err == nil
}

// WalkTestFiles finds every regular file under root's "test" directory
// whose extension is exactly ".ts", skipping node_modules.
//
// This uses [filepath.WalkDir], which never follows symlinked directories.
// That is a narrower symlink policy than some walkers offer, but it rules
// out symlink cycles entirely rather than needing to detect them, and no
// third-party directory walker appeared anywhere in this project's
// dependency set to justify reaching past the standard library here.
func WalkTestFiles(root string) ([]SourceFile, error) {
	start := filepath.Join(root, "test")

	var files []SourceFile
	err := filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "node_modules" {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), ".ts") {
			return nil
		}
		files = append(files, SourceFile{Root: root, Path: path})
		return nil
	})
	if err != nil {
		return nil, &IoError{Path: start, Err: err}
	}
	return files, nil
}

// Module is a parsed TypeScript test file.
type Module = tsast.Module

// Analyzer holds the parsed-file cache and ignore configuration shared
// across every file in one analysis run. Build one with [NewAnalyzer] and
// reuse it; a fresh Analyzer per file discards the parse cache's benefit.
type Analyzer struct {
	cache      *tsast.Cache
	ignored    *ignore.Checker
	recognizer testcase.Recognizer
}

// NewAnalyzer builds an Analyzer from cfg. A nil cfg uses the built-in
// assertion exemptions and the default arrow-only test callback shape.
func NewAnalyzer(cfg *IgnoreConfig) (*Analyzer, error) {
	if cfg == nil {
		cfg = &IgnoreConfig{}
	}
	checker, err := ignore.New(ignore.Config{Methods: cfg.Methods, Functions: cfg.Functions})
	if err != nil {
		return nil, &ConfigError{Message: err.Error()}
	}
	cache, err := tsast.NewCache(256)
	if err != nil {
		return nil, err
	}
	return &Analyzer{
		cache:      cache,
		ignored:    checker,
		recognizer: testcase.Recognizer{AcceptFunctionExprBody: cfg.AcceptFunctionExprBody},
	}, nil
}

// ParseFile parses file, consulting the Analyzer's cache. A file that
// cannot be stat'ed or read yields an [IoError]; a parse failure yields a
// [ParseError].
func (a *Analyzer) ParseFile(file SourceFile) (*Module, error) {
	m, err := a.cache.ParseFile(file.Root, file.Path)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, &IoError{Path: file.Path, Err: err}
		}
		return nil, &ParseError{File: file.RelPath(), Message: err.Error()}
	}
	return m, nil
}

// Analyze parses file and walks it for mutation candidates.
func (a *Analyzer) Analyze(file SourceFile) ([]Candidate, error) {
	module, err := a.ParseFile(file)
	if err != nil {
		return nil, err
	}
	loaded, err := sourcemap.Load(file.Path)
	if err != nil {
		return nil, &IoError{Path: file.Path, Err: err}
	}

	v := visitor.New(a.recognizer, a.ignored)
	raw := v.Visit(module.Body())

	candidates := make([]Candidate, 0, len(raw))
	for _, c := range raw {
		span, err := loaded.ToSpan(file, c.Lo, c.Hi)
		if err != nil {
			return nil, &ProgrammerError{Message: err.Error()}
		}
		candidates = append(candidates, Candidate{Span: span, Message: c.Message})
	}
	return candidates, nil
}

// ParseFile is a convenience wrapper for a one-off parse, equivalent to
// NewAnalyzer(nil) followed by Analyzer.ParseFile. For repeated calls
// across many files, build an [Analyzer] once and reuse it instead.
func ParseFile(file SourceFile) (*Module, error) {
	a, err := NewAnalyzer(nil)
	if err != nil {
		return nil, err
	}
	return a.ParseFile(file)
}

// Analyze is a convenience wrapper for a one-off analysis, equivalent to
// building an [Analyzer] from cfg and calling Analyzer.Analyze. For
// repeated calls across many files, build an [Analyzer] once and reuse it
// instead — each call here throws away its parse cache.
func Analyze(file SourceFile, cfg *IgnoreConfig) ([]Candidate, error) {
	a, err := NewAnalyzer(cfg)
	if err != nil {
		return nil, err
	}
	return a.Analyze(file)
}
