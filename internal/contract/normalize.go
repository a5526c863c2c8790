package contract

import (
	"regexp"
	"strings"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeLabel converts a free-text label to its canonical token form:
// case-folded, trimmed, with every run of non-alphanumeric characters
// collapsed to a single underscore. "Consumer Discretionary" becomes
// "consumer_discretionary". Every comparison or store of a label must go
// through this function.
func NormalizeLabel(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = nonAlnum.ReplaceAllString(value, "_")
	return strings.Trim(value, "_")
}
