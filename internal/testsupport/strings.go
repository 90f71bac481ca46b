package testsupport

import (
	"strconv"
	"strings"
)

func itoa(v int) string {
	return strconv.Itoa(v)
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
