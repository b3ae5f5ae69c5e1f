// Package logger builds *slog.Logger instances with functional options,
// consistent attribute constructors and transparent injection of values
// stored in context.Context.
//
// New determines the concrete handler (slog.NewTextHandler or
// slog.NewJSONHandler) from the configured Format and wraps it with
// LogHandlerDecorator, which runs the registered ContextExtractor callbacks
// before delegating. RequestIDExtractor pulls the id set by chi's RequestID
// middleware.
//
// # Usage
//
//	var cfg logger.Config
//	config.MustLoad(&cfg)
//
//	log := logger.New(
//	    logger.FromConfig(cfg),
//	    logger.WithContextExtractors(logger.RequestIDExtractor),
//	)
//	logger.SetAsDefault(log)
//
//	log.InfoContext(ctx, "toast presented",
//	    logger.ToastID(id),
//	    logger.Priority(75),
//	)
//
// Attribute helpers such as Error and ToastID return an empty slog.Attr for
// zero inputs, which slog drops, so callers need no nil checks.
package logger
