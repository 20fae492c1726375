package util

import (
	"go.uber.org/zap"
)

// InitLogger builds the process logger for the given gin mode and installs it
// as the zap global so LogError and friends pick it up.
func InitLogger(mode string) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if mode == "release" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		return nil, err
	}

	zap.ReplaceGlobals(logger)
	return logger, nil
}

// LogError logs an error with context
func LogError(message string, err error) {
	if err != nil {
		zap.L().Error(message, zap.Error(err))
	}
}

// LogInfo logs an informational message
func LogInfo(message string, fields ...zap.Field) {
	zap.L().Info(message, fields...)
}

// LogWarning logs a warning message
func LogWarning(message string, fields ...zap.Field) {
	zap.L().Warn(message, fields...)
}
