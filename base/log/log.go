package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Fields to be added to a logger
type Fields map[string]interface{}

// Logger carries the sugared logger and the accumulated key/value pairs
type Logger struct {
	logger *zap.SugaredLogger
	fields []interface{}
}

var (
	level            = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	zapSugaredLogger *zap.SugaredLogger
)

func init() {
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	zapLogger, _ := cfg.Build(zap.AddCallerSkip(1))
	zapSugaredLogger = zapLogger.Sugar()
}

// SetLevel changes the minimum level of every logger, e.g. "debug" or "warn".
// Unknown names leave the level untouched.
func SetLevel(name string) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return
	}
	level.SetLevel(l)
}

// Log returns an empty field logger
func Log() Logger {
	return Logger{
		logger: zapSugaredLogger,
		fields: []interface{}{},
	}
}

// WithField add a key/value pair to its fields
func (l Logger) WithField(key string, value interface{}) Logger {
	fields := make([]interface{}, 0, len(l.fields)+2)
	fields = append(fields, l.fields...)
	l.fields = append(fields, key, value)
	return l
}

// WithFields add multiple key/value pairs to its fields
func (l Logger) WithFields(kvs Fields) Logger {
	for k, v := range kvs {
		l = l.WithField(k, v)
	}
	return l
}

// WithErr is a shortcut of WithField("err", err)
func (l Logger) WithErr(err error) Logger {
	return l.WithField("err", err)
}

func (l Logger) Debug(args ...interface{}) {
	l.logger.With(l.fields...).Debug(args...)
}

func (l Logger) Info(args ...interface{}) {
	l.logger.With(l.fields...).Info(args...)
}

func (l Logger) Warn(args ...interface{}) {
	l.logger.With(l.fields...).Warn(args...)
}

func (l Logger) Error(args ...interface{}) {
	l.logger.With(l.fields...).Error(args...)
}

func (l Logger) Panic(args ...interface{}) {
	l.logger.With(l.fields...).Panic(args...)
}
