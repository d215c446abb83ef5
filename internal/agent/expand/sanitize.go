package expand

import "strings"

// SanitizeLike escapes pattern-match metacharacters so a user-supplied
// term only ever matches literally inside a LIKE filter. Backslashes are
// stripped first, which also makes the function idempotent: sanitizing
// an already-sanitized term yields the same string.
func SanitizeLike(term string) string {
	s := strings.ReplaceAll(term, `\`, "")
	s = strings.ReplaceAll(s, "%", `\%`)
	s = strings.ReplaceAll(s, "_", `\_`)
	return s
}
