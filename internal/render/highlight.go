package render

import (
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// lexerAliases maps kernel language names chroma does not know to ones it does.
var lexerAliases = map[string]string{
	"ipython":  "python",
	"ipython2": "python",
	"ipython3": "python",
	"c++":      "cpp",
}

// LexerName normalizes a notebook language name to the canonical chroma
// alias. Unknown names are returned lower-cased so writers can fall back to
// plain text; an empty name stays empty.
func LexerName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	if alias, ok := lexerAliases[name]; ok {
		name = alias
	}

	lexer := lexers.Get(name)
	if lexer == nil {
		return name
	}
	cfg := lexer.Config()
	if len(cfg.Aliases) > 0 {
		return cfg.Aliases[0]
	}
	return strings.ToLower(cfg.Name)
}
