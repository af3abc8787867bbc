package statesse

import (
	"github.com/dmitrymomot/statekit/pkg/asyncstate"
	"github.com/dmitrymomot/statekit/pkg/errmsg"
	"github.com/dmitrymomot/statekit/pkg/updatable"
)

// Payload is the JSON shape of a state patched into the client signals.
type Payload struct {
	Kind     string        `json:"kind"`
	Progress *float64      `json:"progress,omitempty"`
	Data     any           `json:"data,omitempty"`
	Error    *ErrorPayload `json:"error,omitempty"`
}

// ErrorPayload is a normalized error.
type ErrorPayload struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Retryable bool   `json:"retryable"`
}

// UpdatablePayload carries the last known data next to the current activity.
type UpdatablePayload struct {
	HasData  bool    `json:"hasData"`
	Data     any     `json:"data,omitempty"`
	Activity Payload `json:"activity"`
}

// Encode converts s to its payload, normalizing errors with n.
func Encode[T any](s asyncstate.State[T], n *errmsg.Normalizer) Payload {
	p := Payload{Kind: s.Kind().String()}
	if v, ok := s.Progress(); ok {
		p.Progress = &v
	}
	if v, ok := s.Value(); ok {
		p.Data = v
	}
	if err := s.Err(); err != nil {
		msg := n.Normalize(err)
		p.Error = &ErrorPayload{
			ID:        msg.ID(),
			Title:     msg.Title,
			Body:      msg.Body,
			Retryable: msg.Retryable,
		}
	}
	return p
}

// EncodeUpdatable converts s to its payload.
func EncodeUpdatable[T any](s updatable.State[T], n *errmsg.Normalizer) UpdatablePayload {
	p := UpdatablePayload{Activity: Encode(s.Activity(), n)}
	if v, ok := s.Value(); ok {
		p.HasData = true
		p.Data = v
	}
	return p
}
