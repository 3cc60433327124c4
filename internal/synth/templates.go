package synth

import (
	"fmt"
	"sort"
	"strings"

	"github.com/patternforge/skillsmith/internal/research"
)

// buildTemplates turns harvested code blocks into reusable template
// files grouped by language: an index per language plus up to maxFiles
// individual snippet files.
func buildTemplates(input research.GenerationInput, maxFiles int) []File {
	if input.CodebasePatterns == nil || len(input.CodebasePatterns.CodeBlocks) == 0 {
		return nil
	}
	if maxFiles <= 0 {
		maxFiles = 10
	}

	byLang := make(map[string][]research.CodeBlock)
	for _, block := range input.CodebasePatterns.CodeBlocks {
		lang := detectLanguage(block)
		byLang[lang] = append(byLang[lang], block)
	}

	langs := make([]string, 0, len(byLang))
	for lang := range byLang {
		langs = append(langs, lang)
	}
	sort.Strings(langs)

	var files []File
	emitted := 0
	for _, lang := range langs {
		blocks := byLang[lang]

		var index strings.Builder
		index.WriteString("# " + titleCase(lang) + " Templates\n\n")

		wrote := 0
		for i, block := range blocks {
			if emitted >= maxFiles {
				break
			}
			name := fmt.Sprintf("%s-%02d%s", lang, i+1, extensionFor(lang))
			index.WriteString(fmt.Sprintf("- `%s`", name))
			if block.Context != "" {
				index.WriteString(" - " + firstLine(block.Context))
			}
			index.WriteString("\n")

			files = append(files, File{
				Path:    "templates/" + name,
				Content: strings.TrimRight(block.Content, "\n") + "\n",
				Type:    FileTypeTemplate,
			})
			emitted++
			wrote++
		}

		// A language whose snippets were all cut by the file cap gets
		// no index either.
		if wrote == 0 {
			continue
		}

		files = append(files, File{
			Path:    "templates/" + lang + "-index.md",
			Content: index.String(),
			Type:    FileTypeTemplate,
		})
	}

	return files
}

// detectLanguage trusts the block's own label and otherwise guesses
// from the file extension, falling back to "text".
func detectLanguage(block research.CodeBlock) string {
	if block.Language != "" {
		return strings.ToLower(block.Language)
	}
	dot := strings.LastIndexByte(block.Path, '.')
	if dot < 0 {
		return "text"
	}
	switch strings.ToLower(block.Path[dot+1:]) {
	case "go":
		return "go"
	case "ts", "tsx":
		return "typescript"
	case "js", "jsx":
		return "javascript"
	case "py":
		return "python"
	case "rs":
		return "rust"
	case "rb":
		return "ruby"
	case "sh", "bash":
		return "bash"
	case "yaml", "yml":
		return "yaml"
	case "json":
		return "json"
	case "sql":
		return "sql"
	case "md":
		return "markdown"
	default:
		return "text"
	}
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}

func extensionFor(lang string) string {
	switch lang {
	case "go":
		return ".go"
	case "typescript":
		return ".ts"
	case "javascript":
		return ".js"
	case "python":
		return ".py"
	case "rust":
		return ".rs"
	case "ruby":
		return ".rb"
	case "bash":
		return ".sh"
	case "yaml":
		return ".yaml"
	case "json":
		return ".json"
	case "sql":
		return ".sql"
	case "markdown":
		return ".md"
	default:
		return ".txt"
	}
}
