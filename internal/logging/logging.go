package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger    = zap.NewNop()
	logFile   *os.File
	logDir    string
	isFileLog bool
)

// Init initializes logging. If toFile is true, logs are written to a file
// in the logs directory instead of stderr. This prevents log output from
// corrupting the TUI.
func Init(toFile bool, level string) error {
	var lvl zapcore.Level
	if level == "" {
		level = "info"
	}
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}

	if !toFile {
		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(time.TimeOnly)
		core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.Lock(os.Stderr), lvl)
		logger = zap.New(core, zap.AddCaller())
		return nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}
	logDir = filepath.Join(homeDir, ".moviematch", "logs")

	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02")
	logPath := filepath.Join(logDir, fmt.Sprintf("moviematch-%s.log", timestamp))

	logFile, err = os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), zapcore.AddSync(logFile), lvl)
	logger = zap.New(core, zap.AddCaller())
	isFileLog = true

	logger.Info("=== MovieMatch session started ===")
	return nil
}

// L returns the process logger. It discards everything until Init is called.
func L() *zap.Logger {
	return logger
}

// Close flushes the logger and closes the log file if one is open.
func Close() {
	_ = logger.Sync()
	if logFile != nil {
		logger.Info("=== MovieMatch session ended ===")
		_ = logger.Sync()
		logFile.Close()
		logFile = nil
	}
}

// Discard drops all log output.
func Discard() {
	logger = zap.NewNop()
}

// GetLogDir returns the directory where logs are stored.
func GetLogDir() string {
	return logDir
}

// IsFileLogging returns true if logging is going to a file.
func IsFileLogging() bool {
	return isFileLog
}
