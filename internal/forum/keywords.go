package forum

import (
	"strings"
)

// ConvertKeywordsToQuerytext converts an attorney's keyword list into a
// raw tsquery expression: keywords ORed together, each quoted so that a
// multi-word keyword matches as a single phrase rather than separate
// terms. Blank keywords are dropped; an empty list yields "".
func ConvertKeywordsToQuerytext(keywords []string) string {
	terms := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		// Escape embedded quotes for the tsquery literal
		kw = strings.ReplaceAll(kw, "'", "''")
		terms = append(terms, "'"+kw+"'")
	}
	return strings.Join(terms, " | ")
}
