package main

import "sort"

// languageDef ties one language to the extensions and exact filenames
// that identify it.
type languageDef struct {
	Name       string
	Extensions []string
	Filenames  []string
}

var languageTable = []languageDef{
	{"Go", []string{".go"}, []string{"go.mod"}},
	{"JavaScript", []string{".js", ".jsx", ".mjs", ".cjs"}, nil},
	{"TypeScript", []string{".ts", ".tsx"}, nil},
	{"Python", []string{".py"}, nil},
	{"Rust", []string{".rs"}, nil},
	{"Java", []string{".java"}, nil},
	{"Kotlin", []string{".kt", ".kts"}, nil},
	{"C", []string{".c", ".h"}, nil},
	{"C++", []string{".cc", ".cpp", ".cxx", ".hpp"}, nil},
	{"C#", []string{".cs"}, nil},
	{"Ruby", []string{".rb"}, []string{"Gemfile", "Rakefile"}},
	{"PHP", []string{".php"}, nil},
	{"Swift", []string{".swift"}, nil},
	{"Shell", []string{".sh", ".bash", ".zsh"}, nil},
	{"Make", nil, []string{"Makefile", "makefile", "GNUmakefile"}},
	{"Docker", []string{".dockerfile"}, []string{"Dockerfile"}},
	{"HTML", []string{".html", ".htm"}, nil},
	{"CSS", []string{".css", ".scss", ".less"}, nil},
	{"Vue", []string{".vue"}, nil},
	{"Svelte", []string{".svelte"}, nil},
	{"Markdown", []string{".md", ".markdown"}, nil},
	{"YAML", []string{".yml", ".yaml"}, nil},
	{"TOML", []string{".toml"}, nil},
	{"JSON", []string{".json"}, nil},
	{"SQL", []string{".sql"}, nil},
}

var (
	extensionLanguages = map[string]string{}
	filenameLanguages  = map[string]string{}
)

func init() {
	for _, def := range languageTable {
		for _, ext := range def.Extensions {
			if extensionLanguages[ext] == "" { // first claim wins
				extensionLanguages[ext] = def.Name
			}
		}
		for _, fname := range def.Filenames {
			if filenameLanguages[fname] == "" {
				filenameLanguages[fname] = def.Name
			}
		}
	}
}

// languageForFile resolves a language from an exact filename first,
// then from the extension.
func languageForFile(name, ext string) (string, bool) {
	if lang, ok := filenameLanguages[name]; ok {
		return lang, true
	}
	if ext != "" {
		if lang, ok := extensionLanguages[ext]; ok {
			return lang, true
		}
	}
	return "", false
}

// detectStack summarizes the languages of the files that survive bloat
// classification. Bloat and binary files are left out so the stack
// reflects what an assistant would actually read.
func detectStack(inventory []FileRecord, bloatFiles []BloatFile) []StackEntry {
	bloat := make(map[string]struct{}, len(bloatFiles))
	for _, f := range bloatFiles {
		bloat[f.RelativePath] = struct{}{}
	}

	byLanguage := map[string]*StackEntry{}
	for _, f := range inventory {
		if f.IsBinary {
			continue
		}
		if _, isBloat := bloat[f.RelativePath]; isBloat {
			continue
		}
		lang, ok := languageForFile(f.Name, f.Extension)
		if !ok {
			continue
		}
		entry := byLanguage[lang]
		if entry == nil {
			entry = &StackEntry{Language: lang}
			byLanguage[lang] = entry
		}
		entry.FileCount++
		entry.TokenCount += f.TokenCount
	}

	stack := make([]StackEntry, 0, len(byLanguage))
	for _, entry := range byLanguage {
		stack = append(stack, *entry)
	}
	sort.Slice(stack, func(i, j int) bool {
		if stack[i].TokenCount != stack[j].TokenCount {
			return stack[i].TokenCount > stack[j].TokenCount
		}
		return stack[i].Language < stack[j].Language
	})
	return stack
}
