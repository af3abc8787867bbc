// Package statesse streams async and updatable states to a browser as
// datastar signal patches over server-sent events.
//
// Each state becomes a "datastar-patch-signals" event whose payload is
// {"state": {"kind": ..., "progress": ..., "data": ..., "error": ...}}.
// Errors are passed through an errmsg.Normalizer so only presentable text
// reaches the client.
package statesse
