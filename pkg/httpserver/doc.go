// Package httpserver runs an http.Handler with timeouts taken from Config
// and a graceful shutdown on context cancellation, SIGINT or SIGTERM.
//
//	var cfg httpserver.Config
//	config.MustLoad(&cfg)
//
//	srv := httpserver.New(cfg, httpserver.WithLogger(log))
//	if err := srv.Run(ctx, router); err != nil {
//		log.Error("server failed", logger.Error(err))
//	}
//
// LivenessHandler and ReadinessHandler serve the /healthz and /readyz
// probes; readiness runs each Check with the request context.
package httpserver
