package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const defaultLogFile = "glyph-popup.log"

const (
	timeKey    = "time"
	messageKey = "message"
	eventKey   = "event"
	payloadKey = "payload"
)

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	zapLogger    *zap.Logger
	logger       logr.Logger
	logFile      *os.File
)

// Error writes errors to the shared log file. Startup failures and clipboard
// failures land here rather than in the picker UI.
func Error(err error) {
	if err == nil {
		return
	}
	l, ok := current()
	if !ok {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return
	}
	l.Error(err, "error")
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are currently written.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	l, ok := current()
	if !ok {
		return
	}
	if payload == nil {
		l.Info("trace", eventKey, event)
		return
	}
	l.Info("trace", eventKey, event, payloadKey, payload)
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// Path returns the active log destination.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

// Sync flushes buffered entries and closes the log file.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func current() (logr.Logger, bool) {
	mu.Lock()
	defer mu.Unlock()
	if zapLogger != nil {
		return logger, true
	}
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging failed: %v\n", err)
		return logr.Logger{}, false
	}
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.TimeKey = timeKey
	encoderCfg.MessageKey = messageKey
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(f),
		zap.NewAtomicLevelAt(zapcore.InfoLevel),
	)
	logFile = f
	zapLogger = zap.New(core, zap.AddCaller())
	logger = zapr.NewLogger(zapLogger)
	return logger, true
}

func closeLocked() {
	if zapLogger == nil {
		return
	}
	_ = zapLogger.Sync()
	if logFile != nil {
		_ = logFile.Close()
	}
	zapLogger = nil
	logFile = nil
	logger = logr.Logger{}
}
