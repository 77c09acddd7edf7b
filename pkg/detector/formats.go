package detector

import "regexp"

// OutputMode represents a known validator output mode for detection.
type OutputMode struct {
	Name       string           // Mode name as passed to -output
	Signatures []*regexp.Regexp // Compiled signature regexes (set during init)
	SigStrs    []string         // Signature strings for diagnostics
	Hint       string           // Guidance shown when this mode is detected
	Filterable bool             // True if the filter can consume this mode
}

// DefaultModes returns the built-in output modes to detect. More specific
// signatures come first so an XML envelope is not mistaken for text noise.
func DefaultModes() []*OutputMode {
	modes := []*OutputMode{
		{
			Name: "soap12",
			SigStrs: []string{
				`^<\?xml version=`,
				`<env:Envelope`,
				`<m:cssvalidationresponse`,
				`<m:validity>`,
			},
			Hint: "re-run the validator with -output text",
		},
		{
			Name: "html",
			SigStrs: []string{
				`^\s*<!DOCTYPE html`,
				`^\s*<html`,
				`<body`,
				`W3C CSS Validator`,
			},
			Hint: "re-run the validator with -output text",
		},
		{
			Name: "gnu",
			SigStrs: []string{
				`^[^\s:]+:\d+:\d*:?\s`,
			},
			Hint: "re-run the validator with -output text",
		},
		{
			Name: "text",
			SigStrs: []string{
				`^Sorry! We found the following errors \(\d+\)\s*$`,
				`^Congratulations! No Error Found\.\s*$`,
				`^URI : file:`,
				`^Line : \d+`,
				`^Warnings \(\d+\)\s*$`,
				`^Valid CSS information\s*$`,
				`^W3C CSS Validator results`,
				`^\{.*output=text.*\}$`,
			},
			Hint:       "",
			Filterable: true,
		},
	}

	// Compile all signatures
	for _, m := range modes {
		m.Signatures = make([]*regexp.Regexp, len(m.SigStrs))
		for i, s := range m.SigStrs {
			m.Signatures[i] = regexp.MustCompile(s)
		}
	}

	return modes
}
