package candidateindex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kolkov/tscut/internal/candidateindex"
	"github.com/kolkov/tscut/internal/sourcemap"
)

var testFile = sourcemap.SourceFile{Root: ".", Path: "contracts/Counter.test.ts"}

func spanRecord(message string) candidateindex.Record {
	return candidateindex.Record{
		Span:    sourcemap.Span{SourceFile: testFile},
		Message: message,
	}
}

func TestTrackSeedsRecordsAndState(t *testing.T) {
	idx := candidateindex.New()
	idx.Track(testFile, []candidateindex.Record{
		spanRecord("increments the counter"),
		spanRecord("reverts on overflow"),
	})

	assert.Len(t, idx.Records(), 2)

	observable, warnNow := idx.Observe(testFile, "increments the counter")
	assert.False(t, observable)
	assert.True(t, warnNow, "first Observe on an untracked-by-runner message should warn once")
}

func TestObserveRunnerOutputMarksMessagesFound(t *testing.T) {
	idx := candidateindex.New()
	idx.Track(testFile, []candidateindex.Record{
		spanRecord("increments the counter"),
		spanRecord("reverts on overflow"),
	})

	output := "  Counter\n    ✔ increments the counter (42ms)\n    ✔ reverts on overflow\n"
	require.NoError(t, idx.ObserveRunnerOutput(testFile, output))

	observable, warnNow := idx.Observe(testFile, "increments the counter")
	assert.True(t, observable)
	assert.False(t, warnNow)

	observable, warnNow = idx.Observe(testFile, "reverts on overflow")
	assert.True(t, observable)
	assert.False(t, warnNow)
}

func TestObserveRunnerOutputIgnoresUnrelatedLines(t *testing.T) {
	idx := candidateindex.New()
	idx.Track(testFile, []candidateindex.Record{spanRecord("increments the counter")})

	output := "  1 passing (12ms)\n  ✖ increments the counter\n"
	require.NoError(t, idx.ObserveRunnerOutput(testFile, output))

	observable, _ := idx.Observe(testFile, "increments the counter")
	assert.False(t, observable, "a failing-test line (✖) should never mark a message Found")
}

func TestObserveWarnsExactlyOncePerMessage(t *testing.T) {
	idx := candidateindex.New()
	idx.Track(testFile, []candidateindex.Record{spanRecord("never runs")})

	_, warnNow := idx.Observe(testFile, "never runs")
	assert.True(t, warnNow)

	observable, warnNow := idx.Observe(testFile, "never runs")
	assert.False(t, observable)
	assert.False(t, warnNow, "a message already warned about should not warn again")
}

func TestObserveUnknownFileIsObservableByDefault(t *testing.T) {
	idx := candidateindex.New()
	other := sourcemap.SourceFile{Root: ".", Path: "unseen.test.ts"}

	observable, warnNow := idx.Observe(other, "anything")
	assert.True(t, observable, "a file that was never tracked carries no untested candidates to warn about")
	assert.False(t, warnNow)
}
