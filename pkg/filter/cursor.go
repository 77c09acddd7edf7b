package filter

import (
	"context"

	"cssfilt/pkg/scanner"
)

// cursor provides one token of lookahead over a TokenSource. All grammar
// rules share the same cursor; tokens are consumed strictly in order and
// never replayed.
type cursor struct {
	src scanner.TokenSource
	tok *scanner.Token
}

// peek returns the next token without consuming it.
// Returns io.EOF when the stream is exhausted.
func (c *cursor) peek(ctx context.Context) (*scanner.Token, error) {
	if c.tok != nil {
		return c.tok, nil
	}
	tok, err := c.src.Next(ctx)
	if err != nil {
		return nil, err
	}
	c.tok = tok
	return tok, nil
}

// advance discards the buffered lookahead token.
func (c *cursor) advance() {
	c.tok = nil
}

// next consumes and returns the next token.
func (c *cursor) next(ctx context.Context) (*scanner.Token, error) {
	tok, err := c.peek(ctx)
	if err != nil {
		return nil, err
	}
	c.advance()
	return tok, nil
}
