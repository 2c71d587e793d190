// Package candidateindex correlates mutation candidates back to the test
// messages a runner printed, so a caller can tell which candidates were
// ever actually exercised. It owns the per-file, per-message observability
// state machine: a message starts NotFound, becomes Found the first time a
// runner's stdout line matches it, and moves to WarningEmitted the first
// time tscut has already warned that a candidate's message never showed up
// in any run — after which it stays quiet about that message for good.
package candidateindex

import (
	"strings"

	"github.com/coregx/coregex"

	"github.com/kolkov/tscut/internal/sourcemap"
)

// State is where a (file, message) pair sits in the observability
// state machine.
type State int

const (
	NotFound State = iota
	Found
	WarningEmitted
)

// Record is one candidate, placed in its file and tagged with the test
// message it belongs to.
type Record struct {
	Span    sourcemap.Span
	Message string
}

// Index holds every candidate discovered across a run, keyed by source
// file, plus the observability state for each (file, message) pair seen.
type Index struct {
	records []Record
	state   map[sourcemap.SourceFile]map[string]State
}

// New builds an empty Index.
func New() *Index {
	return &Index{state: map[sourcemap.SourceFile]map[string]State{}}
}

// Track registers records already found in file and seeds NotFound state
// for every distinct message among them.
func (idx *Index) Track(file sourcemap.SourceFile, records []Record) {
	idx.records = append(idx.records, records...)
	for _, r := range records {
		idx.ensureState(file, r.Message)
	}
}

func (idx *Index) ensureState(file sourcemap.SourceFile, message string) {
	perFile, ok := idx.state[file]
	if !ok {
		perFile = map[string]State{}
		idx.state[file] = perFile
	}
	if _, ok := perFile[message]; !ok {
		perFile[message] = NotFound
	}
}

// Records returns every registered candidate, in the order Track saw them.
func (idx *Index) Records() []Record {
	return idx.records
}

// MessageFor reports the it() message the record at span belongs to, the
// named span-keyed lookup: given a span a caller is about to mutate (or has
// already mutated), which test's pass/fail result does its candidate
// correlate with. ok is false if span was never registered via Track.
func (idx *Index) MessageFor(span sourcemap.Span) (message string, ok bool) {
	for _, r := range idx.records {
		if r.Span == span {
			return r.Message, true
		}
	}
	return "", false
}

// passMarker is the glyph Mocha's spec reporter prefixes a passing test
// title with. Matching on it rather than trying to parse indentation keeps
// this robust against the reporter's nesting depth for describe() blocks.
const passMarker = `✔`

// ObserveRunnerOutput scans a test runner's stdout for passing-test lines
// ("  ✔ <message>" or "  ✔ <message> (<time>ms)") and marks the matching
// (file, message) pairs Found. coregex backs the marker search so large
// logs are scanned without falling back to backtracking.
func (idx *Index) ObserveRunnerOutput(file sourcemap.SourceFile, output string) error {
	matcher, err := coregex.Compile(passMarker)
	if err != nil {
		return err
	}
	perFile := idx.state[file]
	if perFile == nil {
		return nil
	}
	for _, line := range splitLines(output) {
		loc := matcher.FindStringIndex(line)
		if loc == nil {
			continue
		}
		message := trimTimingSuffix(strings.TrimSpace(line[loc[1]:]))
		if _, ok := perFile[message]; ok {
			perFile[message] = Found
		}
	}
	return nil
}

// trimTimingSuffix removes a Mocha-style trailing " (123ms)" or " (2s)"
// duration annotation, if present, leaving the bare test message.
func trimTimingSuffix(s string) string {
	i := strings.LastIndex(s, " (")
	if i < 0 || !strings.HasSuffix(s, ")") {
		return s
	}
	inner := s[i+2 : len(s)-1]
	if !isDuration(inner) {
		return s
	}
	return strings.TrimSpace(s[:i])
}

func isDuration(s string) bool {
	switch {
	case strings.HasSuffix(s, "ms"):
		s = s[:len(s)-2]
	case strings.HasSuffix(s, "s"):
		s = s[:len(s)-1]
	default:
		return false
	}
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

// Observe reports whether message's candidates in file were ever seen
// passing in runner output (observable), and whether the caller should
// surface an ItMessageNotFound warning right now (warnNow). warnNow is true
// at most once per (file, message) pair: the first caller to observe a
// message stuck at NotFound gets warnNow=true and flips its state to
// WarningEmitted, so every later call for the same pair gets warnNow=false.
func (idx *Index) Observe(file sourcemap.SourceFile, message string) (observable, warnNow bool) {
	perFile := idx.state[file]
	if perFile == nil {
		return true, false
	}
	switch perFile[message] {
	case Found:
		return true, false
	case WarningEmitted:
		return false, false
	default: // NotFound
		perFile[message] = WarningEmitted
		return false, true
	}
}
