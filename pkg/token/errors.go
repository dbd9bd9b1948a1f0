package token

import "fmt"

// TokenizeError reports malformed lexical input: an unterminated string or
// comment, an unknown character, or a malformed numeric literal.
type TokenizeError struct {
	Offset  int
	Message string
}

func (e *TokenizeError) Error() string {
	return fmt.Sprintf("tokenize error at offset %d: %s", e.Offset, e.Message)
}
