package repository

import "strings"

var escapeLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// nombreContiene is the ILIKE clause for a case-insensitive literal substring
// match on nombre. Pair it with patronContiene.
const nombreContiene = `nombre ILIKE ? ESCAPE '\'`

// patronContiene wraps search in wildcards after escaping the LIKE
// metacharacters it contains, so "50%" matches only names with "50%" in them.
func patronContiene(search string) string {
	return "%" + escapeLike.Replace(search) + "%"
}
