package statesse

import "errors"

var (
	ErrEncode = errors.New("statesse: failed to encode state")
	ErrPatch  = errors.New("statesse: failed to patch signals")
)
