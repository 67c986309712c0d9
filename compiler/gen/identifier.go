package gen

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateIdentifier trims raw and returns it if it is a valid identifier:
// ASCII letters, digits and underscores only, not starting with a digit.
func ValidateIdentifier(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	switch {
	case name == "":
		return "", &IdentifierError{Name: raw, Message: "name is empty"}
	case name[0] >= '0' && name[0] <= '9':
		return "", &IdentifierError{Name: raw, Message: "name starts with a digit"}
	case !identRe.MatchString(name):
		return "", &IdentifierError{Name: raw, Message: "name may only contain letters, digits and underscores"}
	}
	return name, nil
}

// MethodSuffix derives the accessor name fragment of a column key.
// The key is split on underscores, hyphens and tabs, empty words are
// dropped and the first letter of every word is upper-cased:
//
//	user_email -> UserEmail
//	first-name -> FirstName
func MethodSuffix(key string) string {
	words := strings.FieldsFunc(key, func(r rune) bool {
		return r == '_' || r == '-' || r == '\t'
	})
	var b strings.Builder
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		b.WriteString(w[size:])
	}
	return b.String()
}

// ExportedName returns a member name for targets whose identifiers
// may not start with a digit.
func ExportedName(suffix string) string {
	if suffix != "" && suffix[0] >= '0' && suffix[0] <= '9' {
		return "Column" + suffix
	}
	return suffix
}
