// Package logger provides a context-aware wrapper around Go's slog package
// with functional options for configuration and attribute constructors used
// across statekit.
//
// New creates a *slog.Logger backed by slog.NewJSONHandler or
// slog.NewTextHandler, wrapped in LogHandlerDecorator, which runs registered
// ContextExtractor callbacks for every record.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithFormat(logger.FormatText),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithContextValue("request_id", ctxKeyRequestID),
//	)
//
//	mgr := jobs.NewManager(ctx, jobs.WithLogger(log))
//
// The attribute helpers (JobKey, JobID, Strategy, Attempt, Token, State, ...)
// keep key names consistent between packages. Helpers receiving a nil value
// return an empty attribute, which slog drops:
//
//	log.Debug("job finished", logger.JobKey(key), logger.Error(err))
package logger
