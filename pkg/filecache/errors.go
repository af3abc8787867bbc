package filecache

import "errors"

var (
	// Key validation
	ErrInvalidKey = errors.New("filecache: invalid key") // Prevents path traversal

	// Storage errors
	ErrNotFound          = errors.New("filecache: object not found")
	ErrFailedToRead      = errors.New("filecache: failed to read object")
	ErrFailedToWrite     = errors.New("filecache: failed to write object")
	ErrFailedToDelete    = errors.New("filecache: failed to delete object")
	ErrFailedToStat      = errors.New("filecache: failed to stat object")
	ErrInvalidConfig     = errors.New("filecache: invalid configuration")
	ErrFailedToLoadAWS   = errors.New("filecache: failed to load AWS config")
	ErrBucketNotFound    = errors.New("filecache: bucket not found")
	ErrAccessDenied      = errors.New("filecache: access denied")
	ErrServiceBusy       = errors.New("filecache: service temporarily unavailable")
	ErrOperationTimeout  = errors.New("filecache: operation timed out")
	ErrOperationCanceled = errors.New("filecache: operation canceled")

	// Redis connection
	ErrInvalidRedisURL = errors.New("filecache: failed to parse redis connection string")
	ErrRedisNotReady   = errors.New("filecache: redis did not become ready within the given time period")

	// Cache errors
	ErrCacheMiss = errors.New("filecache: cache miss")
	ErrEncode    = errors.New("filecache: failed to encode value")
	ErrDecode    = errors.New("filecache: failed to decode value")
)
