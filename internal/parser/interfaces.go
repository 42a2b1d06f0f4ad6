package parser

import "io"

// Parser defines a generic interface for decoding an upstream JSON response
// into display-ready values
type Parser[T any] interface {
	Parse(body io.Reader) ([]T, error)
}
