// Package sourcemap holds file contents and converts byte offsets into the
// line/column positions and project-relative spans the rest of tscut deals
// in. Once built, a LoadedFile is immutable and safe to share read-only
// across analysis passes for the same file.
package sourcemap

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"
)

// SourceFile identifies a test file relative to the project root it was
// discovered under. Two SourceFiles are equal iff both fields match.
type SourceFile struct {
	Root string
	Path string
}

// RelPath returns Path relative to Root, falling back to Path unchanged if
// it does not live under Root.
func (f SourceFile) RelPath() string {
	rel, err := filepath.Rel(f.Root, f.Path)
	if err != nil {
		return f.Path
	}
	return rel
}

func (f SourceFile) String() string {
	return f.RelPath()
}

// LineColumn is a 1-based line and 0-based display-width column.
type LineColumn struct {
	Line   int
	Column int
}

// Before reports whether lc precedes other in source order.
func (lc LineColumn) Before(other LineColumn) bool {
	if lc.Line != other.Line {
		return lc.Line < other.Line
	}
	return lc.Column < other.Column
}

// Span is a contiguous byte range of a SourceFile, expressed as start/end
// LineColumns. Start is always <= End.
type Span struct {
	SourceFile SourceFile
	Start      LineColumn
	End        LineColumn
}

// String renders the canonical textual form
// "<relative_path>:<start.line>:<start.column>-<end.line>:<end.column>".
func (s Span) String() string {
	return fmt.Sprintf("%s:%d:%d-%d:%d",
		s.SourceFile.RelPath(), s.Start.Line, s.Start.Column, s.End.Line, s.End.Column)
}

// LoadedFile is the parsed line-start index for one file's bytes, built once
// and reused for every ToSpan call against that file.
type LoadedFile struct {
	Bytes      []byte
	lineStarts []int // byte offset of the first byte of each line; lineStarts[0] == 0
}

// Load reads path and builds its line-start index.
func Load(path string) (*LoadedFile, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &LoadedFile{Bytes: b, lineStarts: computeLineStarts(b)}, nil
}

func computeLineStarts(b []byte) []int {
	starts := []int{0}
	for i, c := range b {
		if c == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// ToLineColumn converts a byte offset into a 1-based line / 0-based
// display-width column. offset must be in [0, len(Bytes)].
func (f *LoadedFile) ToLineColumn(offset int) LineColumn {
	// Binary search for the last line start <= offset.
	i := sort.Search(len(f.lineStarts), func(i int) bool { return f.lineStarts[i] > offset }) - 1
	if i < 0 {
		i = 0
	}
	lineStart := f.lineStarts[i]
	col := utf8.RuneCount(f.Bytes[lineStart:offset])
	return LineColumn{Line: i + 1, Column: col}
}

// ToSpan converts a half-open byte range [lo, hi) into a Span. It is a
// programmer error to call this with lo > hi or either bound out of range;
// see the root package's ProgrammerError for how the caller should surface
// that.
func (f *LoadedFile) ToSpan(file SourceFile, lo, hi int) (Span, error) {
	if lo > hi {
		return Span{}, fmt.Errorf("sourcemap: lo (%d) > hi (%d)", lo, hi)
	}
	if lo < 0 || hi > len(f.Bytes) {
		return Span{}, fmt.Errorf("sourcemap: range [%d, %d) out of bounds for %d-byte file", lo, hi, len(f.Bytes))
	}
	return Span{
		SourceFile: file,
		Start:      f.ToLineColumn(lo),
		End:        f.ToLineColumn(hi),
	}, nil
}
