// Package httpserver wraps net/http with graceful shutdown, server timeouts
// from the environment, lifecycle hooks and a health-check handler.
//
// Run binds the listener, serves until the context is cancelled, SIGINT or
// SIGTERM arrives, or Shutdown is called, and then shuts down within the
// configured timeout. Request contexts are cancelled when shutdown starts,
// which releases long-lived event streams. Stop hooks run afterwards and are
// where owners of background work (such as a toast scheduler) tear it down.
//
//	srv := httpserver.NewFromConfig(cfg,
//	    httpserver.WithLogger(log),
//	    httpserver.WithStopHook(func(context.Context) error {
//	        scheduler.Close()
//	        return nil
//	    }),
//	)
//	if err := srv.Run(ctx, router); err != nil {
//	    log.Error("server stopped", logger.Error(err))
//	}
//
// Listen errors wrap ErrStart and shutdown or hook errors wrap ErrShutdown.
package httpserver
