// Package apperr defines the failures the kitchen engine reports to its callers.
//
// Every failure is a client-input or state-conflict error that rejects a single
// operation. The transport layer maps each Kind onto a protocol status.
package apperr

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Kind classifies a failure.
type Kind string

const (
	KindReferenceNotFound       Kind = "ReferenceNotFound"
	KindInvalidProductPrice     Kind = "InvalidProductPrice"
	KindInvalidMenuPrice        Kind = "InvalidMenuPrice"
	KindEmptyMenuLines          Kind = "EmptyMenuLines"
	KindInvalidQuantity         Kind = "InvalidQuantity"
	KindInvalidGuestCount       Kind = "InvalidGuestCount"
	KindTableIsEmpty            Kind = "TableIsEmpty"
	KindTableGrouped            Kind = "TableGrouped"
	KindTableHasActiveOrder     Kind = "TableHasActiveOrder"
	KindTableNotAvailable       Kind = "TableNotAvailable"
	KindInvalidGroupSize        Kind = "InvalidGroupSize"
	KindGroupHasActiveOrder     Kind = "GroupHasActiveOrder"
	KindEmptyOrderLines         Kind = "EmptyOrderLines"
	KindOrderAlreadyCompleted   Kind = "OrderAlreadyCompleted"
	KindInvalidStatusTransition Kind = "InvalidStatusTransition"
	KindConflict                Kind = "Conflict"
)

// Error is a typed engine failure.
type Error struct {
	Kind    Kind
	Message string

	// Details holds the offending ids and values, keyed by name.
	Details map[string]string

	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%s", k, e.Details[k])
		}
		b.WriteString(")")
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same Kind, so errors.Is(err, &Error{Kind: k}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// New returns an Error of the given kind. kv is an alternating list of detail names
// and values.
func New(kind Kind, message string, kv ...any) *Error {
	e := &Error{Kind: kind, Message: message}
	if len(kv) > 0 {
		e.Details = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			e.Details[fmt.Sprint(kv[i])] = fmt.Sprint(kv[i+1])
		}
	}
	return e
}

// Wrap is New with an underlying cause.
func Wrap(err error, kind Kind, message string, kv ...any) *Error {
	e := New(kind, message, kv...)
	e.Err = err
	return e
}

// NotFound reports that an id of the given entity does not resolve.
func NotFound(entity, id string) *Error {
	return New(KindReferenceNotFound, entity+" not found", "entity", entity, "id", id)
}

// KindOf returns the Kind of err, or "" if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
