package tsast

import (
	"encoding/json"
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/kdy1/go-typescript-eslint/pkg/typescriptestree"

	"github.com/kolkov/tscut/internal/sourcemap"
)

// Module is a parsed TypeScript source file. Program returns its top-level
// statement list; everything else hangs off nodes reached from there.
type Module struct {
	File    sourcemap.SourceFile
	Source  []byte
	program *Node
}

// Body returns the module's top-level statements.
func (m *Module) Body() []*Node {
	if m == nil || m.program == nil {
		return nil
	}
	return m.program.children("body")
}

type cacheKey struct {
	path    string
	modTime int64
	size    int64
}

// Cache memoizes parsed modules by path (as passed to ParseFile),
// modification time, and size, so repeated analysis passes over the same project (successive
// WalkTestFiles runs, or an -dry-run re-check after a single file changed)
// reparse only what actually changed on disk.
type Cache struct {
	entries *lru.Cache[cacheKey, *Module]
}

// NewCache builds a Cache holding up to size parsed modules.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = 128
	}
	entries, err := lru.New[cacheKey, *Module](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: entries}, nil
}

// ParseFile reads and parses path, relative to root, consulting the cache
// first and populating it on a miss.
func (c *Cache) ParseFile(root, path string) (*Module, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	key := cacheKey{path: path, modTime: info.ModTime().UnixNano(), size: info.Size()}
	if c.entries != nil {
		if m, ok := c.entries.Get(key); ok {
			return m, nil
		}
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	m, err := Parse(sourcemap.SourceFile{Root: root, Path: path}, src)
	if err != nil {
		return nil, err
	}
	if c.entries != nil {
		c.entries.Add(key, m)
	}
	return m, nil
}

// Parse adapts source into a Module by running it through the upstream
// typescript-eslint parser and round-tripping the result through JSON into
// this package's own node shape. The round trip is deliberate: it keeps
// every downstream package decoupled from the upstream library's exact Go
// struct layout, at the cost of one JSON marshal/unmarshal per file.
func Parse(file sourcemap.SourceFile, source []byte) (*Module, error) {
	opts := typescriptestree.NewBuilder().
		WithSourceType(typescriptestree.SourceTypeModule).
		WithJSX(false).
		WithLoc(false).
		WithRange(true).
		WithFilePath(file.Path).
		MustBuild()

	result, err := typescriptestree.Parse(string(source), opts)
	if err != nil {
		return nil, fmt.Errorf("tsast: parse %s: %w", file.RelPath(), err)
	}

	data, err := json.Marshal(result.AST)
	if err != nil {
		return nil, fmt.Errorf("tsast: encode AST for %s: %w", file.RelPath(), err)
	}
	program, err := newNode(data)
	if err != nil {
		return nil, fmt.Errorf("tsast: decode AST for %s: %w", file.RelPath(), err)
	}
	return &Module{File: file, Source: source, program: program}, nil
}

// FromESTreeJSON builds a Module directly from an already-serialized
// ESTree Program document, bypassing the upstream parser entirely. It
// exists for tests and tooling that already hold a parsed document (a
// cached parse shipped alongside a fixture, for instance) and would rather
// not pay for a second real parse.
func FromESTreeJSON(file sourcemap.SourceFile, source []byte, programJSON []byte) (*Module, error) {
	program, err := newNode(programJSON)
	if err != nil {
		return nil, fmt.Errorf("tsast: decode AST for %s: %w", file.RelPath(), err)
	}
	return &Module{File: file, Source: source, program: program}, nil
}
