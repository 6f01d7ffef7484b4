package password

import (
	_ "embed"
	"strings"
)

//go:embed common_passwords.txt
var commonPasswordsRaw string

// commonPasswords is the lowercased denylist, keyed for lookup against
// candidate.lower.
var commonPasswords = parseDenylist(commonPasswordsRaw)

// parseDenylist reads one entry per line, ignoring blank lines and lines
// starting with '#'.
func parseDenylist(raw string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, line := range strings.Split(raw, "\n") {
		entry := strings.TrimSpace(line)
		if entry == "" || strings.HasPrefix(entry, "#") {
			continue
		}
		set[strings.ToLower(entry)] = struct{}{}
	}
	return set
}
