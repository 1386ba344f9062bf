package patterns

import (
	"regexp"
	"strings"
)

// Language is a lowercase language tag such as "python" or "c++".
type Language string

const (
	Python     Language = "python"
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	HTML       Language = "html"
	CSS        Language = "css"
	Java       Language = "java"
	CPP        Language = "c++"
	CSharp     Language = "c#"
	Rust       Language = "rust"
	Go         Language = "go"
	SQL        Language = "sql"
	PHP        Language = "php"
	Ruby       Language = "ruby"
	Bash       Language = "bash"
)

type signature struct {
	lang     Language
	patterns []*regexp.Regexp
}

// signatures is evaluated in order and the first language with any matching
// pattern wins. The order is a priority order and must not change.
var signatures = []signature{
	{Python, compileAll(
		`(?m)^\s*def\s+\w+\s*\(.*\)\s*(->\s*[\w\[\], .]+)?\s*:`,
		`(?m)^\s*(from\s+[\w.]+\s+)?import\s+[\w.]+(\s+as\s+\w+)?\s*$`,
		`(?m)^\s*class\s+\w+(\(.*\))?\s*:\s*$`,
		`(?m)^\s*(elif\b.*|except\b.*|try)\s*:`,
		`\bself\.\w+`,
		`if\s+__name__\s*==\s*['"]__main__['"]`,
	)},
	{JavaScript, compileAll(
		`\b(const|let|var)\s+\w+\s*=`,
		`=>`,
		`\bfunction\s*\w*\s*\(`,
		`\bconsole\.\w+\(`,
		`\bdocument\.\w+`,
		`\brequire\(['"]`,
		`(?m)^\s*import\s+.+\s+from\s+['"]`,
		`(?m)^\s*export\s+(default\s+)?(function|const|class)\b`,
	)},
	{TypeScript, compileAll(
		`:\s*(string|number|boolean|any|void|unknown)\b`,
		`\binterface\s+\w+\s*\{`,
		`(?m)^\s*type\s+\w+\s*=`,
	)},
	{HTML, compileAll(
		`(?i)<!DOCTYPE\s+html`,
		`(?i)<(html|head|body|div|span|p|a|ul|ol|li|script|style|table|form|input|button|h[1-6])(\s[^<>]*)?>`,
	)},
	{CSS, compileAll(
		`(?s)[.#]?[\w-]+(\s*[,>+~]?\s*[.#:]?[\w-]+)*\s*\{\s*[\w-]+\s*:\s*[^;{}]+;`,
		`(?m)^\s*@(media|import|keyframes|font-face)\b`,
	)},
	{Java, compileAll(
		`\bpublic\s+(static\s+)?(final\s+)?(class|void|int|String|interface)\b`,
		`System\.out\.print(ln)?\(`,
		`(?m)^\s*import\s+java\.`,
	)},
	{CPP, compileAll(
		`#include\s*<[\w./]+>`,
		`\bstd::`,
		`\bcout\s*<<`,
	)},
	{CSharp, compileAll(
		`(?m)^\s*using\s+System`,
		`\bnamespace\s+[\w.]+`,
		`Console\.Write(Line)?\(`,
	)},
	{Rust, compileAll(
		`\bfn\s+\w+\s*(<[^>]*>)?\s*\(`,
		`\blet\s+mut\b`,
		`\bprintln!\(`,
		`(?m)^\s*impl\b`,
	)},
	{Go, compileAll(
		`(?m)^package\s+\w+\s*$`,
		`\bfunc\s+(\(\w+\s+\*?\w+\)\s*)?\w+\(`,
		`:=`,
		`\bfmt\.\w+\(`,
	)},
	{SQL, compileAll(
		`(?is)\bSELECT\b.+\bFROM\b`,
		`(?i)\bINSERT\s+INTO\b`,
		`(?i)\bUPDATE\s+\w+\s+SET\b`,
		`(?i)\bCREATE\s+TABLE\b`,
		`(?i)\bDELETE\s+FROM\b`,
	)},
	{PHP, compileAll(
		`<\?php`,
		`\$\w+\s*=[^=]`,
		`(?m)\becho\s+.*;\s*$`,
	)},
	{Ruby, compileAll(
		`(?m)^\s*def\s+\w+[?!]?(\(.*\))?\s*$`,
		`(?m)^\s*puts\s`,
		`(?m)^\s*end\s*$`,
		`\.each\s+do\s*\|`,
	)},
	{Bash, compileAll(
		`^#!/(usr/)?bin/(env\s+)?(ba|z)?sh`,
		`(?m)^\s*(sudo|apt|apt-get|brew|npm|npx|yarn|git|cd|ls|mkdir|rm|cp|mv|echo|export|curl|wget|chmod|docker|kubectl|pip)\s`,
		`(?m)^\s*if\s+\[\[?\s`,
		`(?m)^\s*fi\s*$`,
	)},
}

func compileAll(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(exprs))
	for i, e := range exprs {
		out[i] = regexp.MustCompile(e)
	}
	return out
}

// DetectLanguageMarkers returns the first language whose signature matches
// text.
func DetectLanguageMarkers(text string) (Language, bool) {
	for _, sig := range signatures {
		for _, re := range sig.patterns {
			if re.MatchString(text) {
				return sig.lang, true
			}
		}
	}
	return "", false
}

// Languages returns every language tag in priority order.
func Languages() []Language {
	out := make([]Language, len(signatures))
	for i, sig := range signatures {
		out[i] = sig.lang
	}
	return out
}

// languageAliases maps shorthand and alternate spellings to a tag.
var languageAliases = map[string]Language{
	"js":         JavaScript,
	"node":       JavaScript,
	"nodejs":     JavaScript,
	"jsx":        JavaScript,
	"py":         Python,
	"python3":    Python,
	"ts":         TypeScript,
	"tsx":        TypeScript,
	"cpp":        CPP,
	"cplusplus":  CPP,
	"csharp":     CSharp,
	"cs":         CSharp,
	"golang":     Go,
	"rs":         Rust,
	"rb":         Ruby,
	"sh":         Bash,
	"shell":      Bash,
	"zsh":        Bash,
	"postgres":   SQL,
	"postgresql": SQL,
	"mysql":      SQL,
	"sqlite":     SQL,
	"htm":        HTML,
	"scss":       CSS,
}

// NormalizeLanguage resolves a user-supplied language name or alias.
func NormalizeLanguage(name string) (Language, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return "", false
	}
	if l, ok := languageAliases[name]; ok {
		return l, true
	}
	for _, sig := range signatures {
		if string(sig.lang) == name {
			return sig.lang, true
		}
	}
	return "", false
}

// Extension returns a file extension for lang, or "txt".
func Extension(lang Language) string {
	switch lang {
	case Python:
		return "py"
	case JavaScript:
		return "js"
	case TypeScript:
		return "ts"
	case HTML:
		return "html"
	case CSS:
		return "css"
	case Java:
		return "java"
	case CPP:
		return "cpp"
	case CSharp:
		return "cs"
	case Rust:
		return "rs"
	case Go:
		return "go"
	case SQL:
		return "sql"
	case PHP:
		return "php"
	case Ruby:
		return "rb"
	case Bash:
		return "sh"
	}
	return "txt"
}
