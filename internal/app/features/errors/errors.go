package errors

import (
	"net/http"

	"github.com/pathlabhq/pathlab/internal/app/system/respond"
	"go.uber.org/zap"
)

// ErrorLogger pairs structured logging with an envelope error response so
// handlers report failures in one call. The log message is for operators;
// the user message is what goes over the wire.
type ErrorLogger struct {
	log *zap.Logger
}

// NewErrorLogger constructs an ErrorLogger.
func NewErrorLogger(logger *zap.Logger) *ErrorLogger {
	return &ErrorLogger{log: logger}
}

// LogServerError logs err at error level and writes a 500.
func (e *ErrorLogger) LogServerError(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log.Error(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	if userMsg == "" {
		userMsg = "Server error"
	}
	respond.Error(w, http.StatusInternalServerError, userMsg)
}

// LogBadRequest logs err at warn level and writes a 400.
func (e *ErrorLogger) LogBadRequest(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log.Warn(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	RenderBadRequest(w, r, userMsg)
}

// LogConflict logs err at warn level and writes a 409.
func (e *ErrorLogger) LogConflict(w http.ResponseWriter, r *http.Request, logMsg string, err error, userMsg string) {
	e.log.Warn(logMsg,
		zap.Error(err),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
	)
	RenderConflict(w, r, userMsg)
}
