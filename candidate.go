package tscut

import (
	"github.com/kolkov/tscut/internal/candidateindex"
	"github.com/kolkov/tscut/internal/sourcemap"
)

// SourceFile identifies a test file relative to the project root it was
// discovered under.
type SourceFile = sourcemap.SourceFile

// Span is a contiguous byte range of a SourceFile, expressed as start/end
// line/column positions.
type Span = sourcemap.Span

// Candidate is one span [Analyze] proposes as deletable, together with the
// message of the `it(...)` test case it was found in.
type Candidate = candidateindex.Record

// CandidateIndex correlates candidates across a whole analysis run back to
// the test messages a runner actually reported passing. It is not safe for
// concurrent use; give each concurrent analysis its own index and merge the
// results.
type CandidateIndex struct {
	inner *candidateindex.Index
}

// NewCandidateIndex builds an empty CandidateIndex.
func NewCandidateIndex() *CandidateIndex {
	return &CandidateIndex{inner: candidateindex.New()}
}

// Records returns every candidate added so far, in the order they were
// added.
func (idx *CandidateIndex) Records() []Candidate {
	return idx.inner.Records()
}

// Track registers candidates already found in file and seeds NotFound
// observability state for every distinct message among them. Call this
// for every file's analysis results before calling ObserveRunnerOutput or
// Observe for that file.
func (idx *CandidateIndex) Track(file SourceFile, candidates []Candidate) {
	idx.inner.Track(file, candidates)
}

// ObserveRunnerOutput scans a test runner's stdout for Mocha-style passing
// test lines and marks the matching (file, message) pairs as having been
// exercised.
func (idx *CandidateIndex) ObserveRunnerOutput(file SourceFile, output string) error {
	return idx.inner.ObserveRunnerOutput(file, output)
}

// Observe reports whether message's candidates in file were ever seen
// passing in recorded runner output, and whether the caller should surface
// an [ItMessageNotFound] warning now. See [candidateindex.Index.Observe]
// for the exact warn-once contract.
func (idx *CandidateIndex) Observe(file SourceFile, message string) (observable, warnNow bool) {
	return idx.inner.Observe(file, message)
}

// MessageFor looks up the it() message the candidate at span was found
// under. ok is false if span was never registered via Track.
func (idx *CandidateIndex) MessageFor(span Span) (message string, ok bool) {
	return idx.inner.MessageFor(span)
}
