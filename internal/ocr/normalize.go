package ocr

import (
	"regexp"
	"strings"
)

var (
	reCRLF       = regexp.MustCompile(`\r\n?`)
	reTabs       = regexp.MustCompile(`\t+`)
	reMultiBlank = regexp.MustCompile(`\n{3,}`)
)

var reBoxNoise = regexp.MustCompile(`(?m)^\s*[_\-]{3,}\s*$`)

// Normalize collapses noisy whitespace from recognition output. Conservative:
// keeps line breaks (the grammars are line-scoped) and interior spacing other
// than tab runs.
func Normalize(s string) string {
	if s == "" {
		return s
	}
	s = reCRLF.ReplaceAllString(s, "\n")
	s = reTabs.ReplaceAllString(s, " ")
	s = reMultiBlank.ReplaceAllString(s, "\n\n")
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
