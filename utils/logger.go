package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFile is where structured logs are written besides stdout
var LogFile = filepath.Join("logs", "app.log")

var (
	baseLogger  = zap.NewNop()
	sugarLogger = baseLogger.Sugar()
)

// InitLogger initializes the zap logger. Both modes write JSON lines with
// the same keys to stdout and LogFile so scripts/analyze_logs.go can read
// either. Outside production the level is debug and warnings carry stacks.
func InitLogger(env string) error {
	if err := os.MkdirAll(filepath.Dir(LogFile), 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %v", err)
	}

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Encoding = "json"
		cfg.EncoderConfig = zap.NewProductionEncoderConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.OutputPaths = []string{"stdout", LogFile}
	cfg.ErrorOutputPaths = []string{"stderr"}

	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return fmt.Errorf("failed to build logger: %v", err)
	}
	SetLogger(logger)
	return nil
}

// SetLogger replaces the process logger
func SetLogger(logger *zap.Logger) {
	baseLogger = logger
	sugarLogger = logger.Sugar()
}

// Logger returns the structured logger
func Logger() *zap.Logger {
	return baseLogger.WithOptions(zap.AddCallerSkip(-1))
}

// SyncLogger flushes buffered log entries
func SyncLogger() {
	_ = baseLogger.Sync()
}

// LogInfo logs an informational message
func LogInfo(format string, v ...interface{}) {
	sugarLogger.Infof(format, v...)
}

// LogWarn logs a warning
func LogWarn(format string, v ...interface{}) {
	sugarLogger.Warnf(format, v...)
}

// LogError logs an error message
func LogError(format string, v ...interface{}) {
	sugarLogger.Errorf(format, v...)
}

// LogDebug logs a debug message
func LogDebug(format string, v ...interface{}) {
	sugarLogger.Debugf(format, v...)
}

// LogErrorWithStack logs an error with stack trace
func LogErrorWithStack(err error, stack []byte) {
	sugarLogger.Errorw("panic recovered", "error", err, "stack", string(stack))
}
