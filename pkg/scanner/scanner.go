package scanner

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// TokenSource provides an iterator over classified validator output lines.
// Implementations must be safe for sequential access (not concurrent).
type TokenSource interface {
	// Next returns the next token. Lines that match no pattern are
	// skipped. Returns io.EOF when the stream is exhausted.
	Next(ctx context.Context) (*Token, error)
}

// Scanner implements TokenSource over a validator output stream.
type Scanner struct {
	scanner *bufio.Scanner
	lineNum int
}

// New creates a Scanner reading validator text output from r.
func New(r io.Reader) *Scanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size
	return &Scanner{scanner: s}
}

// Next returns the next classified line.
// Skips lines that match no pattern.
// Returns io.EOF when the stream is exhausted.
func (s *Scanner) Next(ctx context.Context) (*Token, error) {
	for {
		// Check for context cancellation
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !s.scanner.Scan() {
			if err := s.scanner.Err(); err != nil {
				return nil, fmt.Errorf("reading validator output: %w", err)
			}
			return nil, io.EOF
		}
		s.lineNum++

		tok, ok := Classify(s.scanner.Text(), s.lineNum)
		if !ok {
			// Unclassified lines carry no grammar meaning
			continue
		}
		return tok, nil
	}
}
