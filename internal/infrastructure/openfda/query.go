package openfda

import (
	"strings"
	"unicode"
)

const searchField = "product_description"

// BuildSearchQuery turns free text into a field-scoped openFDA search
// expression. Multi-word input is quoted so it matches as a phrase instead of
// independent terms; embedded double quotes are backslash-escaped.
func BuildSearchQuery(foodQuery string) string {
	q := strings.ReplaceAll(strings.TrimSpace(foodQuery), `"`, `\"`)
	if strings.IndexFunc(q, unicode.IsSpace) >= 0 {
		return searchField + `:"` + q + `"`
	}
	return searchField + ":" + q
}
