// Package obslog wires this module's structured logging facade:
// go-logr/logr as the interface every service accepts, backed by zapr
// over a zap.Logger at process wiring time. Logging happens at the
// point an underlying failure is converted to a ServiceError:
// error-level logs carry the cause as a structured field, info-level
// rejections carry the name of the offending input field.
package obslog

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
)

// New builds a production zap.Logger and adapts it to logr.Logger.
func New() (logr.Logger, error) {
	zl, err := zap.NewProduction()
	if err != nil {
		return logr.Discard(), err
	}
	return zapr.NewLogger(zl), nil
}

// NewDevelopment builds a development zap.Logger (human-readable,
// console-encoded) adapted to logr.Logger. Intended for cmd/credentiald
// when run outside a production deployment.
func NewDevelopment() (logr.Logger, error) {
	zl, err := zap.NewDevelopment()
	if err != nil {
		return logr.Discard(), err
	}
	return zapr.NewLogger(zl), nil
}

// LogInternal logs an Internal-category failure at error level with its
// cause attached as a structured field.
func LogInternal(log logr.Logger, op string, err error) {
	log.Error(err, "internal failure", "op", op)
}

// LogBadInput logs a BadInput-category rejection at info level, naming
// the offending field.
func LogBadInput(log logr.Logger, op, field string, err error) {
	log.Info("rejected input", "op", op, "field", field, "reason", err.Error())
}
