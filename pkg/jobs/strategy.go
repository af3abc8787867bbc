package jobs

import (
	"fmt"
	"path/filepath"
	"runtime"
)

// Strategy decides what happens when a job is requested for a key that
// already has a running job.
type Strategy uint8

const (
	// StrategyJoin returns the running job instead of starting a new one.
	StrategyJoin Strategy = iota
	// StrategyReplace cancels the running job and starts a new one.
	StrategyReplace
)

func (s Strategy) String() string {
	switch s {
	case StrategyJoin:
		return "join"
	case StrategyReplace:
		return "replace"
	default:
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
}

// CallSite is the key used when a job is requested with a nil key: every
// source location gets its own key.
type CallSite struct {
	File string
	Line int
}

func (c CallSite) String() string {
	return fmt.Sprintf("%s:%d", filepath.Base(c.File), c.Line)
}

// keyOrCallSite returns key, or the location skip frames above its caller.
func keyOrCallSite(key any, skip int) any {
	if key != nil {
		return key
	}
	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return CallSite{File: "unknown"}
	}
	return CallSite{File: file, Line: line}
}
