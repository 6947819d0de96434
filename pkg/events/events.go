// Package events emits structured workflow events: state transitions, error
// kinds and operation latencies. It is the observability surface the
// orchestrators report into; an external collector consumes the JSON stream.
package events

import (
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Component names used as the event source.
const (
	ComponentWorkflow      = "workflow"
	ComponentQuestionnaire = "questionnaire"
	ComponentPlan          = "plan"
	ComponentTasks         = "tasks"
	ComponentChat          = "chat"
	ComponentSession       = "session"
)

type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

var defaultLogger *Logger

// Init builds the zap-backed event logger. Output goes to stdout for
// container environments.
func Init(serviceName string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	l := &Logger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment(),
	}
	defaultLogger = l
	return l
}

// NewWithZap wraps an existing zap logger. The caller owns the zap
// lifecycle; Sync on the returned Logger still flushes it.
func NewWithZap(z *zap.Logger, serviceName string) *Logger {
	return &Logger{
		zapLogger:   z,
		serviceName: serviceName,
		environment: environment(),
	}
}

// Default returns the package-level logger, initializing a basic one if
// Init was never called (tests).
func Default() *Logger {
	if defaultLogger == nil {
		return Init("career-compass-backend")
	}
	return defaultLogger
}

// Transition records a state-machine transition for one identity.
func (l *Logger) Transition(component, userID, from, to string) {
	if l == nil || l.zapLogger == nil {
		return
	}
	l.zapLogger.Info("state_transition",
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("component", component),
		zap.String("user_id", userID),
		zap.String("from", from),
		zap.String("to", to),
	)
}

// Failure records an error by taxonomy kind. Every failure path reports
// exactly once.
func (l *Logger) Failure(component, userID, kind string, err error) {
	if l == nil || l.zapLogger == nil {
		return
	}
	fields := []zap.Field{
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("component", component),
		zap.String("user_id", userID),
		zap.String("kind", kind),
	}
	if err != nil {
		fields = append(fields, zap.Error(err))
	}
	l.zapLogger.Warn("workflow_error", fields...)
}

// Latency records the duration of one external operation.
func (l *Logger) Latency(component, op string, d time.Duration) {
	if l == nil || l.zapLogger == nil {
		return
	}
	l.zapLogger.Info("operation_latency",
		zap.String("service", l.serviceName),
		zap.String("env", l.environment),
		zap.String("component", component),
		zap.String("op", op),
		zap.Duration("duration", d),
	)
}

// Sync flushes buffered entries. Called on shutdown.
func (l *Logger) Sync() {
	if l != nil && l.zapLogger != nil {
		_ = l.zapLogger.Sync()
	}
}

func environment() string {
	if env := os.Getenv("APP_ENV"); env != "" {
		return env
	}
	if os.Getenv("GIN_MODE") == "release" {
		return "production"
	}
	return "development"
}
