package statesse

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/dmitrymomot/statekit/pkg/asyncstate"
	"github.com/dmitrymomot/statekit/pkg/errmsg"
	"github.com/dmitrymomot/statekit/pkg/logger"
	"github.com/dmitrymomot/statekit/pkg/updatable"
)

// DefaultSignal is the signal name states are patched into.
const DefaultSignal = "state"

// Option configures Stream and StreamUpdatable.
type Option func(*options)

type options struct {
	signal     string
	normalizer *errmsg.Normalizer
	logger     *slog.Logger
}

// WithSignal sets the signal name. Default is DefaultSignal.
func WithSignal(name string) Option {
	return func(o *options) {
		if name != "" {
			o.signal = name
		}
	}
}

// WithNormalizer sets the error normalizer. Default hides error details.
func WithNormalizer(n *errmsg.Normalizer) Option {
	return func(o *options) {
		if n != nil {
			o.normalizer = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func newOptions(opts []Option) *options {
	o := &options{signal: DefaultSignal}
	for _, opt := range opts {
		opt(o)
	}
	if o.normalizer == nil {
		o.normalizer = errmsg.NewNormalizer()
	}
	o.logger = logger.OrDefault(o.logger).With(logger.Component("statesse"), slog.String("signal", o.signal))
	return o
}

// Stream patches every state received from states into the client's signals
// until states is closed or the request is done. A finished request is not
// an error.
//
//	states := asyncstate.FromSuspending(r.Context(), loadReport)
//	if err := statesse.Stream(w, r, states); err != nil {
//		log.Error("stream failed", logger.Error(err))
//	}
func Stream[T any](w http.ResponseWriter, r *http.Request, states <-chan asyncstate.State[T], opts ...Option) error {
	o := newOptions(opts)
	return run(w, r, o, states, func(s asyncstate.State[T]) any {
		return Encode(s, o.normalizer)
	})
}

// StreamUpdatable works like Stream for updatable states.
func StreamUpdatable[T any](w http.ResponseWriter, r *http.Request, states <-chan updatable.State[T], opts ...Option) error {
	o := newOptions(opts)
	return run(w, r, o, states, func(s updatable.State[T]) any {
		return EncodeUpdatable(s, o.normalizer)
	})
}

func run[S any](w http.ResponseWriter, r *http.Request, o *options, states <-chan S, encode func(S) any) error {
	ctx := r.Context()
	sse := datastar.NewSSE(w, r)
	o.logger.DebugContext(ctx, "state stream opened")

	for {
		select {
		case <-ctx.Done():
			o.logger.DebugContext(ctx, "state stream closed by client")
			return nil
		case s, ok := <-states:
			if !ok {
				o.logger.DebugContext(ctx, "state stream completed")
				return nil
			}
			data, err := json.Marshal(map[string]any{o.signal: encode(s)})
			if err != nil {
				return errors.Join(ErrEncode, err)
			}
			if err := sse.PatchSignals(data); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return fmt.Errorf("%w: %w", ErrPatch, err)
			}
		}
	}
}
