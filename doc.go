// Package tscut finds mutation candidates in Hardhat TypeScript test
// suites: spans of source inside an `it(...)` test body that could be
// deleted without the file failing to compile, each one a bet that the
// statement it covers is actually exercised by the test around it.
//
// tscut itself never runs your tests. It parses, walks, and reports;
// running a candidate's mutated file through Hardhat and checking whether
// the test still passes is the caller's loop to drive, optionally with the
// help of the harness subpackage.
//
// # Quick Start
//
// For a single file:
//
//	file := tscut.SourceFile{Root: ".", Path: "test/Token.ts"}
//	candidates, err := tscut.Analyze(file, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For a whole project, build one [Analyzer] and reuse it so its parse cache
// carries across files:
//
//	analyzer, err := tscut.NewAnalyzer(cfg)
//	files, err := tscut.WalkTestFiles(".")
//	for _, f := range files {
//	    candidates, err := analyzer.Analyze(f)
//	    // ...
//	}
//
// # Configuration
//
// The [IgnoreConfig] type extends the built-in assertion exemptions
// (assert, assert.*, expect) with project-specific ones:
//
//	cfg := &tscut.IgnoreConfig{
//	    Methods:   []string{"chai.expect"},
//	    Functions: []string{"invariant"},
//	}
//
// [LoadIgnoreConfig] reads the same settings from a .env file or the
// TSCUT_IGNORED_METHODS / TSCUT_IGNORED_FUNCTIONS environment variables.
//
// # Error Handling
//
// Errors are returned as specific types for detailed handling:
//   - [IoError]: a test file could not be read or walked
//   - [ParseError]: a test file is not valid TypeScript
//   - [ConfigError]: an IgnoreConfig entry is malformed
//   - [ProgrammerError]: an internal invariant was violated (a candidate's
//     byte range did not fit its file)
//
// [Warning] values (see [ItMessageNotFound]) are not errors: they surface
// through [CandidateIndex.Observe] to flag a candidate whose test message
// never showed up in any recorded runner output, most often because the
// test is skipped, filtered out of the run, or was renamed.
//
// # Concurrency
//
// The [Candidate] slice [Analyze] returns is plain data, safe to share
// read-only across goroutines. A [Module] is not: its nodes decode their
// children on first access and cache them, so walking one Module from
// several goroutines at once is a data race. An [Analyzer] hands the same
// cached Module to every Analyze call for an unchanged file, so concurrent
// Analyze calls on one Analyzer are not safe either; give each goroutine
// its own Analyzer. [CandidateIndex] is not safe for concurrent use:
// callers analyzing multiple files concurrently should give each goroutine
// its own index and merge afterward, or guard a shared one with a mutex.
package tscut
