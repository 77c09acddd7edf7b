// Package filter reduces classified validator output to formatted
// messages and an overall verdict.
//
// The token stream must match the validator's text-mode grammar:
//
//	report          := (no_error | error_section) warning_section? end_marker
//	error_section   := err_cnt (path error_group+)+
//	error_group     := err_ln (err_msg | parse_err)
//	warning_section := warn_cnt (path warn_group*)*
//	warn_group      := warn_ln_msg
//
// Any deviation is fatal: the run aborts with an error wrapping
// ErrMalformed rather than producing a best-guess partial report.
package filter

import (
	"context"
	"errors"
	"fmt"
	"io"

	"cssfilt/pkg/report"
	"cssfilt/pkg/scanner"
)

// ErrMalformed indicates the validator output did not match the expected
// text-mode grammar. Distinct from a validation failure: it means the
// filter/validator combination is broken, not the CSS.
var ErrMalformed = errors.New("validator output does not match expected grammar")

// parseErrorMessage is rendered when the validator reports a structural
// parse failure in place of a normal error message.
const parseErrorMessage = "Parse error (invalid or unsupported)"

// Result is the outcome of one filter run.
type Result struct {
	// Errors is the validator's reported error count.
	Errors int

	// Warnings is the validator's reported warning count.
	Warnings int

	// ErrorsFound is true if the validator reported any errors.
	// Determines the exit status: warnings alone leave it clean.
	ErrorsFound bool
}

// Run consumes the token stream, writes formatted messages to rep as they
// are recognized, and returns the overall result. A grammar violation or
// premature end of stream returns an error wrapping ErrMalformed.
func Run(ctx context.Context, src scanner.TokenSource, rep *report.Reporter) (*Result, error) {
	r := &reducer{
		cur: &cursor{src: src},
		rep: rep,
		res: &Result{},
	}
	if err := r.report(ctx); err != nil {
		return nil, err
	}
	return r.res, nil
}

// reducer is a recursive-descent parser over the token cursor. Each rule
// consumes exactly the tokens it owns; no backtracking.
type reducer struct {
	cur *cursor
	rep *report.Reporter
	res *Result
}

func (r *reducer) report(ctx context.Context) error {
	tok, err := r.cur.next(ctx)
	if err == io.EOF {
		return fmt.Errorf("%w: no recognizable output (is the validator running with -output text?)", ErrMalformed)
	}
	if err != nil {
		return err
	}

	switch tok.Kind {
	case scanner.KindErrorCount:
		r.res.ErrorsFound = true
		r.res.Errors = tok.Count
		r.rep.Summary(fmt.Sprintf("Found %d error(s)", tok.Count))
		if err := r.errorSection(ctx); err != nil {
			return err
		}
	case scanner.KindNoError:
		r.rep.Summary("No error.")
	default:
		return violation(tok, "expected error count or no-error marker at start of report")
	}

	la, err := r.cur.peek(ctx)
	if err != nil && err != io.EOF {
		return err
	}
	if err == nil && la.Kind == scanner.KindWarningCount {
		r.cur.advance()
		r.res.Warnings = la.Count
		r.rep.Summary(fmt.Sprintf("Found %d warning(s)", la.Count))
		if err := r.warningSection(ctx); err != nil {
			return err
		}
	}

	return r.end(ctx)
}

// errorSection consumes one or more path groups, stopping once the
// lookahead is no longer a URI marker.
func (r *reducer) errorSection(ctx context.Context) error {
	for {
		tok, err := r.cur.next(ctx)
		if err == io.EOF {
			return fmt.Errorf("%w: output truncated inside error section", ErrMalformed)
		}
		if err != nil {
			return err
		}
		if tok.Kind != scanner.KindPath {
			return violation(tok, "expected URI marker in error section")
		}

		if err := r.errorGroups(ctx, tok.Path); err != nil {
			return err
		}

		la, err := r.cur.peek(ctx)
		if err == io.EOF {
			return nil // missing end marker is reported by end()
		}
		if err != nil {
			return err
		}
		if la.Kind != scanner.KindPath {
			return nil
		}
	}
}

// errorGroups consumes the error groups for one path. Errors require at
// least one group per path; a bare URI marker is a grammar violation.
func (r *reducer) errorGroups(ctx context.Context, path string) error {
	groups := 0
	for {
		la, err := r.cur.peek(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		if la.Kind != scanner.KindErrorLine {
			break
		}
		r.cur.advance()

		msg, err := r.cur.next(ctx)
		if err == io.EOF {
			return fmt.Errorf("%w: output truncated after error line %d", ErrMalformed, la.Line)
		}
		if err != nil {
			return err
		}
		switch msg.Kind {
		case scanner.KindErrorMessage:
			r.rep.Issue(path, la.Line, msg.Message)
		case scanner.KindParseError:
			r.rep.Issue(path, la.Line, parseErrorMessage)
		default:
			return violation(msg, fmt.Sprintf("expected message or parse-error marker after error line %d", la.Line))
		}
		groups++
	}

	if groups == 0 {
		return fmt.Errorf("%w: no error lines followed URI %q", ErrMalformed, path)
	}
	return nil
}

// warningSection consumes path groups until the end marker. Unlike the
// error section, a path with zero itemized warnings is valid, and so is a
// warning count with no paths at all.
func (r *reducer) warningSection(ctx context.Context) error {
	for {
		la, err := r.cur.peek(ctx)
		if err == io.EOF {
			return nil // missing end marker is reported by end()
		}
		if err != nil {
			return err
		}

		switch la.Kind {
		case scanner.KindEnd:
			return nil
		case scanner.KindPath:
			r.cur.advance()
			if err := r.warningGroups(ctx, la.Path); err != nil {
				return err
			}
		default:
			return violation(la, "expected URI marker or end marker in warning section")
		}
	}
}

func (r *reducer) warningGroups(ctx context.Context, path string) error {
	for {
		la, err := r.cur.peek(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if la.Kind != scanner.KindWarning {
			return nil
		}
		r.cur.advance()
		r.rep.Issue(path, la.Line, la.Message)
	}
}

// end requires the terminal marker; its absence means the validator's
// output was truncated or produced in an unexpected mode.
func (r *reducer) end(ctx context.Context) error {
	tok, err := r.cur.next(ctx)
	if err == io.EOF {
		return fmt.Errorf("%w: output ended before the end marker", ErrMalformed)
	}
	if err != nil {
		return err
	}
	if tok.Kind != scanner.KindEnd {
		return violation(tok, "expected end marker")
	}
	return nil
}

func violation(tok *scanner.Token, want string) error {
	return fmt.Errorf("%w: %s, got %s at input line %d (%q)",
		ErrMalformed, want, tok.Kind, tok.LineNum, tok.Raw)
}
