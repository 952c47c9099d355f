// Package logging provides structured logging using uber/zap.
//
// This package offers production-ready logging with two modes:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// Example Usage:
//
//	logger := logging.NewDefault().Named("cache")
//	logger.Info("manifest cached", zap.String("page", pageURL))
//	logger.Warn("fetch failed", zap.Error(err))
package logging
