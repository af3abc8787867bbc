// Package backoff provides retry delay strategies for stream producers.
// All strategies are stateless and safe for concurrent use.
package backoff
