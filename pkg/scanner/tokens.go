// Package scanner classifies W3C CSS validator text output into tokens.
package scanner

// Kind identifies which line pattern a token was produced by.
type Kind int

const (
	// KindEnd is the validator's closing banner ("Valid CSS information").
	KindEnd Kind = iota

	// KindErrorCount is the error summary ("Sorry! We found the following errors (N)").
	KindErrorCount

	// KindWarning is a combined line number and warning message ("Line : N - msg").
	KindWarning

	// KindErrorLine is a bare error line number ("Line : N"), message follows.
	KindErrorLine

	// KindErrorMessage is the indented error message line ending with " :".
	KindErrorMessage

	// KindNoError is the success banner ("Congratulations! No Error Found.").
	KindNoError

	// KindParseError is the indented "Parse Error" literal.
	KindParseError

	// KindPath is a source file marker ("URI : file:<path>").
	KindPath

	// KindWarningCount is the warning summary ("Warnings (N)").
	KindWarningCount
)

// String returns a human-readable name for the kind, used in grammar
// violation messages.
func (k Kind) String() string {
	switch k {
	case KindEnd:
		return "end marker"
	case KindErrorCount:
		return "error count"
	case KindWarning:
		return "warning line"
	case KindErrorLine:
		return "error line number"
	case KindErrorMessage:
		return "error message"
	case KindNoError:
		return "no-error marker"
	case KindParseError:
		return "parse-error marker"
	case KindPath:
		return "URI marker"
	case KindWarningCount:
		return "warning count"
	default:
		return "unknown token"
	}
}

// Token is the classified result of matching one input line.
// Only the fields belonging to the matched pattern are populated.
type Token struct {
	Kind Kind

	// Count is the reported total for KindErrorCount and KindWarningCount.
	Count int

	// Line is the CSS source line number for KindErrorLine and KindWarning.
	Line int

	// Message is the validator message for KindErrorMessage and KindWarning,
	// with the trailing separator stripped.
	Message string

	// Path is the source file path for KindPath, with the file: scheme stripped.
	Path string

	// Raw is the original input line.
	Raw string

	// LineNum is the 1-based position of the line in the input stream.
	LineNum int
}
