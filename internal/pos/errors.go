package pos

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure so transports can map it without parsing
// messages. Infrastructure failures are never wrapped in *Error.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindInvalidQuantity    Kind = "invalid_quantity"
	KindInsufficientStock  Kind = "insufficient_stock"
	KindInsufficientPoints Kind = "insufficient_points"
	KindValidation         Kind = "validation"
)

// Error is a domain failure raised by a workflow. The enclosing transaction
// has already been rolled back by the time a caller sees one.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf builds a domain error of the given kind.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the domain kind from err, or "" for infrastructure errors.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
