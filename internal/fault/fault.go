// internal/fault/fault.go
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies an error by the policy the daemon applies to it.
type Kind int

const (
	KindUnknown Kind = iota

	// KindFatal is a resource or API failure outside the daemon's control.
	// The top-level handler logs it and exits non-zero.
	KindFatal

	// KindTransient is a retryable connection failure. It never leaves
	// the component that produced it.
	KindTransient
)

func (k Kind) String() string {
	switch k {
	case KindFatal:
		return "fatal"
	case KindTransient:
		return "transient"
	default:
		return "unknown"
	}
}

// Error is a classified error with optional structured attributes.
type Error struct {
	Kind       Kind
	Message    string
	Underlying error
	Attributes map[string]any
}

func (e *Error) Error() string {
	switch {
	case e.Underlying == nil:
		return e.Message
	case e.Message == "":
		return e.Underlying.Error()
	default:
		return fmt.Sprintf("%s: %v", e.Message, e.Underlying)
	}
}

func (e *Error) Unwrap() error {
	return e.Underlying
}

// Wrap classifies err. Wrap(nil, ...) is nil.
func Wrap(err error, kind Kind, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: msg, Underlying: err}
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, kind Kind, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Underlying: err}
}

// Fatalf creates a KindFatal error with no underlying cause.
func Fatalf(format string, args ...any) error {
	return &Error{Kind: KindFatal, Message: fmt.Sprintf(format, args...)}
}

// Attr returns err with key=val attached. err itself is never modified:
// an outermost *Error is copied, anything else is wrapped keeping its Kind.
func Attr(err error, key string, val any) error {
	if err == nil {
		return nil
	}

	var out Error
	if e, ok := err.(*Error); ok {
		out = *e
	} else {
		out = Error{Kind: GetKind(err), Underlying: err}
	}

	attrs := make(map[string]any, len(out.Attributes)+1)
	for k, v := range out.Attributes {
		attrs[k] = v
	}
	attrs[key] = val
	out.Attributes = attrs
	return &out
}

// GetKind returns the outermost Kind in err's chain.
func GetKind(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsFatal reports whether err is classified KindFatal.
func IsFatal(err error) bool {
	return GetKind(err) == KindFatal
}

// Fields flattens the attributes of every *Error in the chain into
// alternating key/value pairs, outermost first, suitable for a sugared logger.
func Fields(err error) []any {
	seen := make(map[string]bool)
	var out []any

	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			break
		}
		for k, v := range e.Attributes {
			if seen[k] {
				continue
			}
			seen[k] = true
			out = append(out, k, v)
		}
		err = e.Underlying
	}
	return out
}
