package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New returns a production logger for env "production"/"prod" and a
// development logger otherwise.
func New(env string) (*zap.Logger, error) {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "production", "prod":
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// OrNop guards optional logger arguments.
func OrNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
