package library

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	// ErrMissingFrontmatter indicates the document did not start with a YAML fence.
	ErrMissingFrontmatter = errors.New("library: missing frontmatter")
	// ErrMalformedFrontmatter indicates the YAML block could not be parsed.
	ErrMalformedFrontmatter = errors.New("library: malformed frontmatter")
)

// Frontmatter is the metadata block at the top of a SKILL.md document.
type Frontmatter struct {
	Name          string   `yaml:"name"`
	Description   string   `yaml:"description"`
	Category      string   `yaml:"category,omitempty"`
	AllowedTools  []string `yaml:"allowed-tools,omitempty"`
	RelatedSkills []string `yaml:"related-skills,omitempty"`
}

// ParseFrontmatter extracts the metadata block and body from a document
// that starts with `---` YAML fences.
func ParseFrontmatter(content []byte) (Frontmatter, []byte, error) {
	if len(content) == 0 {
		return Frontmatter{}, nil, ErrMissingFrontmatter
	}
	normalized := normalizeNewlines(content)
	if !bytes.HasPrefix(normalized, []byte("---\n")) {
		return Frontmatter{}, nil, ErrMissingFrontmatter
	}
	rest := normalized[4:]
	parts := bytes.SplitN(rest, []byte("\n---\n"), 2)
	if len(parts) < 2 {
		return Frontmatter{}, nil, ErrMalformedFrontmatter
	}
	var fm Frontmatter
	if err := yaml.Unmarshal(parts[0], &fm); err != nil {
		return Frontmatter{}, nil, fmt.Errorf("library: parse frontmatter: %w", err)
	}
	return fm, parts[1], nil
}

// WriteFrontmatter renders frontmatter + body with YAML fences.
func WriteFrontmatter(fm Frontmatter, body []byte) ([]byte, error) {
	if fm.Name == "" {
		return nil, fmt.Errorf("library: frontmatter missing skill name")
	}
	data, err := yaml.Marshal(fm)
	if err != nil {
		return nil, fmt.Errorf("library: encode frontmatter: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(bytes.TrimRight(data, "\n"))
	buf.WriteString("\n---\n\n")
	buf.Write(body)
	return buf.Bytes(), nil
}

// FieldNames returns the frontmatter keys that carry values, in
// document order. Used when borrowing the shape of an existing skill.
func (fm Frontmatter) FieldNames() []string {
	fields := []string{"name", "description"}
	if fm.Category != "" {
		fields = append(fields, "category")
	}
	if len(fm.AllowedTools) > 0 {
		fields = append(fields, "allowed-tools")
	}
	if len(fm.RelatedSkills) > 0 {
		fields = append(fields, "related-skills")
	}
	return fields
}

func normalizeNewlines(content []byte) []byte {
	content = bytes.ReplaceAll(content, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(content, []byte("\r"), []byte("\n"))
}
