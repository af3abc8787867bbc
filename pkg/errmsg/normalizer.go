package errmsg

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	DefaultTitle = "Unexpected error"
	DefaultBody  = "An unexpected error occurred. Please try again later."
)

// Normalizer turns arbitrary errors into Messages. It is an explicit value so
// that each host decides how much detail its users see.
type Normalizer struct {
	details bool
	title   string
	body    string
}

// NormalizerOption configures a Normalizer.
type NormalizerOption func(*Normalizer)

// WithDetails exposes the error type and text instead of the generic fallback.
func WithDetails(show bool) NormalizerOption {
	return func(n *Normalizer) { n.details = show }
}

// WithFallback replaces the generic title and body.
func WithFallback(title, body string) NormalizerOption {
	return func(n *Normalizer) {
		if title != "" {
			n.title = title
		}
		if body != "" {
			n.body = body
		}
	}
}

// NewNormalizer creates a Normalizer that hides error details unless
// WithDetails(true) is given.
func NewNormalizer(opts ...NormalizerOption) *Normalizer {
	n := &Normalizer{title: DefaultTitle, body: DefaultBody}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Normalize returns the message for err. A PresentableError anywhere in the
// chain wins; other errors produce a retryable fallback message.
// Normalize(nil) returns the zero Message.
func (n *Normalizer) Normalize(err error) Message {
	if err == nil {
		return Message{}
	}

	var pe *PresentableError
	if errors.As(err, &pe) {
		return pe.msg
	}

	if !n.details {
		return Message{Title: n.title, Body: n.body, Retryable: true, source: err}
	}

	title := humanize(typeName(err))
	if title == "" || title == "Unknown" {
		title = n.title
	}
	body := err.Error()
	if body == "" {
		body = n.title
	}
	return Message{Title: title, Body: body, Retryable: true, source: err}
}

// humanize splits a Go identifier on case changes and title-cases the words:
// "PathError" -> "Path Error", "errorString" -> "Error String".
func humanize(ident string) string {
	var words []string
	var cur []rune
	runes := []rune(ident)
	for i, r := range runes {
		if r == '_' {
			if len(cur) > 0 {
				words = append(words, string(cur))
				cur = cur[:0]
			}
			continue
		}
		if i > 0 && unicode.IsUpper(r) && len(cur) > 0 {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || (unicode.IsUpper(prev) && nextLower) {
				words = append(words, string(cur))
				cur = cur[:0]
			}
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		words = append(words, string(cur))
	}

	// Casers carry state and must not be shared between goroutines.
	caser := cases.Title(language.English, cases.NoLower)
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}
