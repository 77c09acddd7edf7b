package scanner

import (
	"regexp"
	"strconv"
	"strings"
)

// linePattern pairs a token kind with the anchored full-line regex that
// produces it.
type linePattern struct {
	kind Kind
	re   *regexp.Regexp
}

// patterns is the classification table, tried in order; the first match
// wins. Order is load-bearing: the warning form ("Line : N - msg") must be
// tried before the bare error line form ("Line : N ..."), which would
// otherwise swallow it.
var patterns = []linePattern{
	{KindEnd, regexp.MustCompile(`^Valid CSS information\s*$`)},
	{KindErrorCount, regexp.MustCompile(`^Sorry! We found the following errors \((\d+)\)\s*$`)},
	{KindWarning, regexp.MustCompile(`^Line : (\d+) - (.*?)\s*$`)},
	{KindErrorLine, regexp.MustCompile(`^Line : (\d+)(?:\s.*)?$`)},
	{KindErrorMessage, regexp.MustCompile(`^\s+(.*?)\s*:\s*$`)},
	{KindNoError, regexp.MustCompile(`^Congratulations! No Error Found\.\s*$`)},
	{KindParseError, regexp.MustCompile(`^\s+Parse Error\s*$`)},
	{KindPath, regexp.MustCompile(`^URI : file:(.*?)\s*$`)},
	{KindWarningCount, regexp.MustCompile(`^Warnings \((\d+)\)\s*$`)},
}

// Classify matches a raw line against the pattern table and returns the
// token for the first pattern that matches. Lines matching no pattern
// return ok=false and are dropped by the caller.
func Classify(line string, lineNum int) (*Token, bool) {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		tok := &Token{
			Kind:    p.kind,
			Raw:     line,
			LineNum: lineNum,
		}

		switch p.kind {
		case KindErrorCount, KindWarningCount:
			tok.Count = mustAtoi(m[1])
		case KindErrorLine:
			tok.Line = mustAtoi(m[1])
		case KindWarning:
			tok.Line = mustAtoi(m[1])
			tok.Message = m[2]
		case KindErrorMessage:
			tok.Message = m[1]
		case KindPath:
			tok.Path = strings.TrimSpace(m[1])
		}

		return tok, true
	}

	return nil, false
}

// mustAtoi converts a \d+ capture; the regex guarantees it is numeric.
func mustAtoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
