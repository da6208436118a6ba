package g9

import (
	"regexp"
	"strings"
)

// kvPattern matches "key : value" lines. The key is 1-128 non-colon
// characters; the value is the remainder of the line. Surrounding
// whitespace on both sides is trimmed by the parser.
var kvPattern = regexp.MustCompile(`^\s*([^:]{1,128})\s*:\s*(.+?)\s*$`)

// ExtractKeyValues scans decoded export text line by line and collects
// "key : value" pairs. Lines that do not match are skipped silently.
// Only the first occurrence of a key is kept; g9 repeats some keys later
// in the file with per-set values that must not overwrite the header.
func ExtractKeyValues(text string) map[string]string {
	keys := make(map[string]string)
	for _, line := range strings.Split(text, "\n") {
		m := kvPattern.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		k := strings.TrimSpace(m[1])
		v := strings.TrimSpace(m[2])
		if _, seen := keys[k]; !seen {
			keys[k] = v
		}
	}
	return keys
}
