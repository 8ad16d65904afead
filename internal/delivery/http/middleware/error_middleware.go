package middleware

import (
	"log/slog"
	"net/http"
	"time"

	deliverycontext "inventory/internal/delivery/context"
	domainerrors "inventory/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
	now    func() time.Time
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
		now:    time.Now,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	envelope := m.envelope(err, c)
	envelope.RequestID = deliverycontext.GetRequestID(c)

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(envelope.Status)
	} else {
		writeErr = c.JSON(envelope.Status, envelope)
	}
	if writeErr != nil {
		m.logger.Error("Failed to write error response", slog.Any("error", writeErr))
	}
}

func (m *ErrorMiddleware) envelope(err error, c echo.Context) domainerrors.ErrorEnvelope {
	var validationErr *domainerrors.ValidationError
	if errors.As(err, &validationErr) {
		env := m.newEnvelope(validationErr.HTTPCode(), validationErr.Message())
		env.Code = validationErr.ErrorCode()
		env.Errors = validationErr.Fields()

		return env
	}

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			m.logUnhandled(err, c)
		}

		env := m.newEnvelope(appErr.HTTPCode(), appErr.Message())
		env.Code = appErr.ErrorCode()

		return env
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		// Binder failures carry the decoding error as Internal.
		if httpErr.Code == http.StatusBadRequest && httpErr.Internal != nil {
			env := m.newEnvelope(domainerrors.ErrMalformedRequest.HTTPCode(), domainerrors.ErrMalformedRequest.Message())
			env.Code = domainerrors.ErrMalformedRequest.ErrorCode()

			return env
		}

		if httpErr.Code >= http.StatusInternalServerError {
			m.logUnhandled(err, c)
		}

		message, ok := httpErr.Message.(string)
		if !ok {
			message = http.StatusText(httpErr.Code)
		}

		return m.newEnvelope(httpErr.Code, message)
	}

	m.logUnhandled(err, c)

	env := m.newEnvelope(domainerrors.ErrInternalError.HTTPCode(), domainerrors.ErrInternalError.Message())
	env.Code = domainerrors.ErrInternalError.ErrorCode()

	return env
}

func (m *ErrorMiddleware) newEnvelope(status int, message string) domainerrors.ErrorEnvelope {
	return domainerrors.ErrorEnvelope{
		Timestamp: m.now().UTC(),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
	}
}

func (m *ErrorMiddleware) logUnhandled(err error, c echo.Context) {
	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)
}
