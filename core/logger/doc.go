// Package logger provides structured logging utilities built on log/slog:
// a small option-based factory and a set of attribute helpers with stable keys.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithProduction("staticd"),
//		logger.WithLevel(logger.ParseLevel(os.Getenv("LOG_LEVEL"))),
//	)
//
//	log.Info("server starting",
//		logger.Component("server"),
//		logger.Addr("localhost:8000"),
//	)
//
// # Environment Configurations
//
//	// Development: text format, debug level
//	logger.New(logger.WithDevelopment("staticd"))
//
//	// Production: JSON format, info level
//	logger.New(logger.WithProduction("staticd"))
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for zero inputs where that makes sense
// (nil errors, empty request ids), and slog skips empty attributes:
//
//	log.Error("read failed", logger.File(path), logger.Error(err))
//
// # Testing
//
//	var buf bytes.Buffer
//	log := logger.New(logger.WithJSONFormatter(), logger.WithOutput(&buf))
package logger
