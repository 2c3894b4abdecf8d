// Package logging builds the zap loggers used across the toolbox.
//
// Two modes are provided:
//   - Default: JSON lines on stderr at info level
//   - Development (-d): colored console output at debug level
//
// Components take a *zap.Logger and name themselves:
//
//	logger := logging.NewDefault()
//	svc := apps.NewService(apps.Options{Logger: logger.Named("apps")})
package logging
