// Package logger provides structured logging capabilities.
//
// The logger package builds envy's zap logger from the logging section of
// the configuration. Logs always go to stderr so that resolved
// configurations printed on stdout stay machine-readable.
//
// Usage:
//
//	logger, err := logger.New("development", "debug")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	logger.Info("resolving", zap.String("env", "production"))
package logger
