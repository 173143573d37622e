package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global logger instance
	Logger *zap.SugaredLogger
	// Flag to track if JSON output is enabled
	JSONOutput bool

	// logFile is the file the logger writes to, if any
	logFile   string
	logHandle *os.File
)

func init() {
	// Safe no-op logger until Initialize is called, so library packages
	// (grammar, inventory) can log unconditionally.
	Logger = zap.NewNop().Sugar()
}

// Options controls how the global logger is built
type Options struct {
	// JSON selects structured JSON output instead of console output
	JSON bool
	// Verbosity is the -v count, see VerbosityToLevel
	Verbosity int
	// File, when set, redirects output to this file. The file is truncated
	// on Initialize and removed by Cleanup if nothing was written to it.
	File string
}

// Initialize sets up the global logger based on the JSON output preference
func Initialize(jsonOutput bool) error {
	return InitializeWithOptions(Options{JSON: jsonOutput, Verbosity: VerbosityInfo})
}

// InitializeWithOptions sets up the global logger
func InitializeWithOptions(opts Options) error {
	// Release the previous log file before opening a new one
	Cleanup()

	JSONOutput = opts.JSON
	level := VerbosityToLevel(opts.Verbosity)

	sink := zapcore.AddSync(os.Stdout)
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return err
		}
		sink = zapcore.AddSync(f)
		logFile = opts.File
		logHandle = f
	}

	var encoder zapcore.Encoder
	if opts.JSON {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
		cfg.EncodeCaller = nil
		encoder = zapcore.NewConsoleEncoder(cfg)
	}

	Logger = zap.New(zapcore.NewCore(encoder, sink, level)).Sugar()
	return nil
}

// Cleanup flushes any buffered log entries, closes the log file and
// removes it if the run produced no output.
func Cleanup() {
	if Logger != nil {
		Logger.Sync()
	}
	if logHandle != nil {
		logHandle.Close()
		logHandle = nil
		// later log calls must not write to the closed file
		Logger = zap.NewNop().Sugar()
	}
	if logFile == "" {
		return
	}
	if info, err := os.Stat(logFile); err == nil && info.Size() == 0 {
		os.Remove(logFile)
	}
	logFile = ""
}

// Infow logs an info message with structured fields
func Infow(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Infow(msg, keysAndValues...)
	}
}

// Errorw logs an error message with structured fields
func Errorw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Errorw(msg, keysAndValues...)
	}
}

// Warnw logs a warning message with structured fields
func Warnw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Warnw(msg, keysAndValues...)
	}
}

// Debugw logs a debug message with structured fields
func Debugw(msg string, keysAndValues ...interface{}) {
	if Logger != nil {
		Logger.Debugw(msg, keysAndValues...)
	}
}
