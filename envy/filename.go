package envy

import "strings"

// ExpandFilename substitutes the first Placeholder in template with id.
// Later occurrences are left as they are.
func ExpandFilename(template, id string) string {
	return strings.Replace(template, Placeholder, id, 1)
}
