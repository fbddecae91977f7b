// Package logger builds *slog.Logger values with per-environment defaults
// and context extractors.
//
// A ContextExtractor is called for every record and may add one attribute
// taken from the context. The request ID, environment and negotiated
// language packages each provide one:
//
//	log := logger.New(
//		logger.WithEnvironment(env, "localegate"),
//		logger.FromConfig(cfg.Log),
//		logger.WithContextExtractors(
//			requestid.LoggerExtractor(),
//			i18n.LoggerExtractor(),
//		),
//	)
//	logger.SetAsDefault(log)
//
// Development logs are debug level text; staging and production logs are
// info level JSON. LOG_LEVEL and LOG_FORMAT override either.
package logger
