package parser

import (
	"iter"
	"regexp"
	"strings"

	"modscan/internal/definition"
)

// localeFolders are the language folders and `l_<folder>` header suffixes games use.
var localeFolders = []string{
	"default", "english", "braz_por", "french", "german", "polish", "russian",
	"simp_chinese", "spanish", "chinese", "traditional_chinese", "japanese", "korean",
}

var localisationKey = regexp.MustCompile(`^[\w'.-]+$`)

// LocalisationParser reads `.yml` localisation files into one SpecialVariable
// per key. The Type groups entries by language rather than by folder, so
// `localisation\english\replace\a_l_english.yml` and
// `localisation\english\b_l_english.yml` compare against each other.
type LocalisationParser struct {
	rules PathRules
}

func NewLocalisationParser() *LocalisationParser {
	return &LocalisationParser{rules: PathRules{
		Prefixes: []string{"localisation", "localisation_synced", "localization"},
	}}
}

func (p *LocalisationParser) Name() string { return "generic-localisation" }

func (p *LocalisationParser) CanParse(args Args) bool {
	return definition.Ext(args.File) == ".yml" && p.rules.Match(args.File)
}

func (p *LocalisationParser) Parse(args Args) iter.Seq[*definition.Definition] {
	fileLang := languageFromFile(args.File)
	return func(yield func(*definition.Definition) bool) {
		e := NewEmitter(args)
		lang := ""
		for _, raw := range args.Lines {
			line := strings.TrimSpace(strings.TrimPrefix(raw, "\ufeff"))
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if l := languageHeader(line); l != "" {
				lang = l
				if fileLang != "" {
					lang = fileLang
				}
				continue
			}
			if lang == "" {
				continue
			}
			key, _, ok := strings.Cut(line, ":")
			key = strings.TrimSpace(key)
			if !ok || !localisationKey.MatchString(key) {
				continue
			}

			d := e.New(key, lang+":\n "+line, definition.SpecialVariable, localisationType(args.File, lang))
			d.CodeTag = lang
			d.CodeSeparator = ":"
			if !yield(d) {
				return
			}
		}
	}
}

// languageHeader returns `l_english` for a `l_english:` header line.
func languageHeader(line string) string {
	head, rest, ok := strings.Cut(line, ":")
	if !ok {
		return ""
	}
	if rest = strings.TrimSpace(rest); rest != "" && !strings.HasPrefix(rest, "#") {
		return ""
	}
	head = strings.ToLower(strings.TrimSpace(head))
	for _, f := range localeFolders {
		if head == "l_"+f {
			return head
		}
	}
	return ""
}

// languageFromFile reads the language from a `_l_english.yml` suffix or an
// `english` folder. Games trust the file name over the header.
func languageFromFile(file string) string {
	name := strings.ToLower(definition.FileName(file))
	for _, f := range localeFolders {
		if name == "l_"+f+".yml" || strings.HasSuffix(name, "_l_"+f+".yml") {
			return "l_" + f
		}
	}
	parts := definition.SplitPath(strings.ToLower(file))
	for _, dir := range parts[:max(len(parts)-1, 0)] {
		for _, f := range localeFolders {
			if dir == f {
				return "l_" + f
			}
		}
	}
	return ""
}

// localisationType is `<root>\<language folder>\<language>-yml`.
func localisationType(file, lang string) string {
	parts := definition.SplitPath(file)
	virtual := []string{parts[0]}
	if folder := strings.TrimPrefix(lang, "l_"); folder != lang {
		virtual = append(virtual, folder)
	}
	virtual = append(virtual, definition.FileName(file))
	return definition.FormatType(strings.Join(virtual, `\`), lang+"-yml")
}
