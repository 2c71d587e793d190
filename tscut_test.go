package tscut_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/tscut"
)

func writeFixture(t *testing.T, dir, name, source string) tscut.SourceFile {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(source), 0o644))
	return tscut.SourceFile{Root: dir, Path: path}
}

func TestApplicableDetectsHardhatConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hardhat.config.ts"), []byte("export default {};\n"), 0o644))

	assert.True(t, tscut.Applicable(dir))
	assert.False(t, tscut.Applicable(t.TempDir()))
}

func TestWalkTestFilesSkipsNodeModulesAndNonTsFiles(t *testing.T) {
	dir := t.TempDir()
	testDir := filepath.Join(dir, "test")
	require.NoError(t, os.MkdirAll(testDir, 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(testDir, "node_modules"), 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(testDir, "Counter.test.ts"), []byte("it('x', () => {});\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(testDir, "Counter.d.ts"), []byte("export {};\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(testDir, "README.md"), []byte("# notes\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(testDir, "node_modules", "Ignored.test.ts"), []byte("it('y', () => {});\n"), 0o644))

	files, err := tscut.WalkTestFiles(dir)
	require.NoError(t, err)

	var rels []string
	for _, f := range files {
		rels = append(rels, f.RelPath())
	}
	// Counter.d.ts is included: its extension is still ".ts", matching the
	// original walker's Path::extension() check, which does not special-case
	// declaration files.
	assert.ElementsMatch(t, []string{"test/Counter.test.ts", "test/Counter.d.ts"}, rels)
}

func TestAnalyzeFindsWholeStatementAndSuffixCandidates(t *testing.T) {
	dir := t.TempDir()
	source := `import { expect } from "chai";

describe("Counter", () => {
  it("increments the counter", async () => {
    const tx = await counter.increment();
    await tx.wait();
    expect(await counter.count()).to.equal(1);
  });
});
`
	file := writeFixture(t, dir, "Counter.test.ts", source)

	candidates, err := tscut.Analyze(file, nil)
	require.NoError(t, err)
	require.NotEmpty(t, candidates, "a test body with non-assertion statements should yield candidates")

	var sawStatement, sawSuffix bool
	for _, c := range candidates {
		assert.Equal(t, "increments the counter", c.Message)
		assert.Equal(t, "Counter.test.ts", c.Span.SourceFile.RelPath())
		if c.Span.Start.Line == 6 && c.Span.End.Line == 6 {
			switch {
			case c.Span.Start.Column == 4 && c.Span.End.Column == 20:
				sawStatement = true // `await tx.wait();`
			case c.Span.Start.Column == 12 && c.Span.End.Column == 19:
				sawSuffix = true // `.wait()`
			}
		}
	}
	assert.True(t, sawStatement, "the whole `await tx.wait();` statement should be a candidate")
	assert.True(t, sawSuffix, "the `.wait()` method-call suffix should be a candidate")
}

func TestAnalyzeIgnoresPureAssertionBody(t *testing.T) {
	dir := t.TempDir()
	source := `it("is a tautology", () => {
  assert(true);
});
`
	file := writeFixture(t, dir, "Trivial.test.ts", source)

	candidates, err := tscut.Analyze(file, nil)
	require.NoError(t, err)
	assert.Empty(t, candidates, "a body containing only an ignored assertion call has nothing to mutate")
}

func TestAnalyzeRespectsConfiguredIgnoredFunctions(t *testing.T) {
	dir := t.TempDir()
	source := `it("checks an invariant", () => {
  invariant(ready);
});
`
	file := writeFixture(t, dir, "Invariant.test.ts", source)

	withoutCfg, err := tscut.Analyze(file, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, withoutCfg, "invariant() is not ignored by default")

	cfg := &tscut.IgnoreConfig{Functions: []string{"invariant"}}
	withCfg, err := tscut.Analyze(file, cfg)
	require.NoError(t, err)
	assert.Empty(t, withCfg, "invariant() should be skipped once configured as an ignored function")
}

func TestAnalyzeIsDeterministic(t *testing.T) {
	dir := t.TempDir()
	source := `import { expect } from "chai";

describe("Counter", () => {
  it("increments the counter", async () => {
    const tx = await counter.increment();
    await tx.wait();
    expect(await counter.count()).to.equal(1);
  });
});
`
	file := writeFixture(t, dir, "Counter.test.ts", source)

	first, err := tscut.Analyze(file, nil)
	require.NoError(t, err)
	second, err := tscut.Analyze(file, nil)
	require.NoError(t, err)

	require.Equal(t, first, second, "analyzing the same file with the same config must yield an identical ordered span list")
	for _, c := range first {
		assert.False(t, c.Span.End.Before(c.Span.Start), "every span must satisfy start <= end")
	}
}

func TestCandidateIndexTracksAndObserves(t *testing.T) {
	dir := t.TempDir()
	source := `it("runs once", () => {
  doWork();
});
`
	file := writeFixture(t, dir, "Work.test.ts", source)

	candidates, err := tscut.Analyze(file, nil)
	require.NoError(t, err)
	require.NotEmpty(t, candidates)

	index := tscut.NewCandidateIndex()
	index.Track(file, candidates)

	require.NoError(t, index.ObserveRunnerOutput(file, "  ✔ runs once\n"))
	observable, warnNow := index.Observe(file, "runs once")
	assert.True(t, observable)
	assert.False(t, warnNow)
}
