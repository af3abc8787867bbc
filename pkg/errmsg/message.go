package errmsg

import (
	"encoding/base64"
	"reflect"
	"strings"
)

// Message is the user-facing form of an error.
type Message struct {
	Title     string
	Body      string
	Retryable bool

	// source is the value the message was built from; it only feeds ID.
	source any
}

// ID returns a short, stable identifier of the message origin, suitable for
// support references. It is the base64 encoding of the source type name, or
// of the first 24 characters of a string source, with any "Exception" or
// "Error" suffix removed.
func (m Message) ID() string {
	var name string
	switch src := m.source.(type) {
	case nil:
		name = "Unknown"
	case string:
		name = truncate(src, 24)
	default:
		name = typeName(src)
	}
	name = strings.TrimSuffix(name, "Exception")
	name = strings.TrimSuffix(name, "Error")
	return base64.StdEncoding.EncodeToString([]byte(name))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// typeName returns the bare type name of v, without package or pointer.
func typeName(v any) string {
	t := reflect.TypeOf(v)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == nil || t.Name() == "" {
		return "Unknown"
	}
	return t.Name()
}
