package research

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/patternforge/skillsmith/internal/logging"
)

const (
	maxScanFileSize = 512 * 1024
	maxFileMatches  = 20
	maxCodeBlocks   = 5
	maxRelatedTests = 5
	contextLines    = 5
)

// skipDirs are directory names never worth scanning.
var skipDirs = map[string]bool{
	".git":         true,
	".jj":          true,
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"target":       true,
}

// Scanner searches a project tree for files and snippets matching
// free-text query terms.
type Scanner struct {
	root string
}

// NewScanner creates a scanner rooted at the given project directory.
func NewScanner(root string) *Scanner {
	return &Scanner{root: root}
}

// Search walks the project and collects files, code snippets, related
// tests, and detected conventions matching the query. Unreadable files
// are skipped; an unreadable root returns an empty result, not an
// error, so callers degrade to boilerplate content.
func (s *Scanner) Search(query string) *CodebasePatterns {
	terms := queryTerms(query)
	patterns := &CodebasePatterns{}
	if len(terms) == 0 {
		return patterns
	}

	logging.Debug("scanning codebase", "root", s.root, "terms", strings.Join(terms, ","))

	_ = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			name := d.Name()
			if skipDirs[name] || (strings.HasPrefix(name, ".") && path != s.root) {
				return filepath.SkipDir
			}
			return nil
		}
		if len(patterns.Files) >= maxFileMatches {
			return filepath.SkipAll
		}

		info, err := d.Info()
		if err != nil || info.Size() > maxScanFileSize {
			return nil
		}

		s.scanFile(path, terms, patterns)
		return nil
	})

	patterns.Conventions = s.detectConventions()
	return patterns
}

func (s *Scanner) scanFile(path string, terms []string, patterns *CodebasePatterns) {
	data, err := os.ReadFile(path)
	if err != nil || !looksLikeText(data) {
		return
	}

	rel, err := filepath.Rel(s.root, path)
	if err != nil {
		rel = path
	}

	content := strings.ToLower(string(data))
	bestTerm := ""
	matches := 0
	for _, term := range terms {
		if n := strings.Count(content, term); n > 0 && n > matches {
			matches = n
			bestTerm = term
		}
	}
	if matches == 0 {
		return
	}

	patterns.Files = append(patterns.Files, FileMatch{
		Path:    rel,
		Pattern: bestTerm,
		Matches: matches,
	})

	isTest := strings.Contains(filepath.Base(rel), "_test.") ||
		strings.Contains(rel, string(filepath.Separator)+"test")

	block := extractBlock(rel, string(data), bestTerm)
	if isTest {
		if len(patterns.RelatedTests) < maxRelatedTests {
			patterns.RelatedTests = append(patterns.RelatedTests, block)
		}
		return
	}
	if len(patterns.CodeBlocks) < maxCodeBlocks {
		patterns.CodeBlocks = append(patterns.CodeBlocks, block)
	}
}

// extractBlock cuts a snippet of contextLines lines around the first
// line containing the term.
func extractBlock(rel, content, term string) CodeBlock {
	lines := strings.Split(content, "\n")
	at := 0
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), term) {
			at = i
			break
		}
	}

	start := at - contextLines
	if start < 0 {
		start = 0
	}
	end := at + contextLines + 1
	if end > len(lines) {
		end = len(lines)
	}

	return CodeBlock{
		Path:     rel,
		Language: languageFromPath(rel),
		Content:  strings.Join(lines[start:end], "\n"),
		Context:  "matched " + term,
	}
}

// conventionProbe ties a detectable marker to the convention it implies.
type conventionProbe struct {
	marker     string
	glob       string
	convention Convention
}

var conventionProbes = []conventionProbe{
	{
		marker: "t.Run(",
		glob:   "_test.go",
		convention: Convention{
			Name:        "table-driven tests",
			Description: "Tests are organized as tables of cases run as subtests.",
			Example:     "for _, tt := range tests { t.Run(tt.name, func(t *testing.T) { ... }) }",
		},
	},
	{
		marker: "%w",
		glob:   ".go",
		convention: Convention{
			Name:        "wrapped errors",
			Description: "Errors are wrapped with %w so callers can match with errors.Is/As.",
			Example:     `fmt.Errorf("open config: %w", err)`,
		},
	},
	{
		marker: "slog.",
		glob:   ".go",
		convention: Convention{
			Name:        "structured logging",
			Description: "Logging goes through log/slog with key-value attributes.",
			Example:     `slog.Info("request served", "path", path, "ms", elapsed)`,
		},
	},
}

// detectConventions samples project files for the markers above.
func (s *Scanner) detectConventions() []Convention {
	found := make(map[string]Convention)

	_ = filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if skipDirs[d.Name()] || (strings.HasPrefix(d.Name(), ".") && path != s.root) {
				return filepath.SkipDir
			}
			return nil
		}
		if len(found) == len(conventionProbes) {
			return filepath.SkipAll
		}

		var data []byte
		for _, probe := range conventionProbes {
			if _, seen := found[probe.convention.Name]; seen {
				continue
			}
			if !strings.HasSuffix(path, probe.glob) {
				continue
			}
			if data == nil {
				data, err = os.ReadFile(path)
				if err != nil {
					return nil
				}
			}
			if strings.Contains(string(data), probe.marker) {
				found[probe.convention.Name] = probe.convention
			}
		}
		return nil
	})

	var conventions []Convention
	for _, probe := range conventionProbes {
		if conv, ok := found[probe.convention.Name]; ok {
			conventions = append(conventions, conv)
		}
	}
	return conventions
}

// queryTerms lowercases the query and keeps words long enough to be
// meaningful search terms.
func queryTerms(query string) []string {
	var terms []string
	for _, w := range strings.Fields(strings.ToLower(query)) {
		if len(w) >= 3 {
			terms = append(terms, w)
		}
	}
	return terms
}

// looksLikeText rejects binary files by probing the first chunk for
// NUL bytes.
func looksLikeText(data []byte) bool {
	probe := data
	if len(probe) > 1024 {
		probe = probe[:1024]
	}
	for _, b := range probe {
		if b == 0 {
			return false
		}
	}
	return true
}

func languageFromPath(path string) string {
	switch filepath.Ext(path) {
	case ".go":
		return "go"
	case ".ts", ".tsx":
		return "typescript"
	case ".js", ".jsx":
		return "javascript"
	case ".py":
		return "python"
	case ".rs":
		return "rust"
	case ".rb":
		return "ruby"
	case ".sh":
		return "bash"
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	case ".sql":
		return "sql"
	case ".md":
		return "markdown"
	default:
		return ""
	}
}
