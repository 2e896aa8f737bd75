package str

import "strings"

// EmptyDefault returns d when s is blank.
func EmptyDefault(s, d string) string {
	if len(strings.TrimSpace(s)) == 0 {
		return d
	}
	return s
}

func In(s string, options []string) bool {
	for _, o := range options {
		if s == o {
			return true
		}
	}
	return false
}
