package server

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	apperrors "infoco/internal/errors"
	"infoco/internal/validation"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// requestLogger tags every request with an id and logs it once the response is written
func requestLogger(logger *log.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()

			id := req.Header.Get(echo.HeaderXRequestID)
			if id == "" {
				id = uuid.NewString()
			}
			c.Response().Header().Set(echo.HeaderXRequestID, id)

			if err := next(c); err != nil {
				c.Error(err)
			}

			status := c.Response().Status
			entry := logger.WithFields(log.Fields{
				"request_id": id,
				"method":     req.Method,
				"path":       req.URL.Path,
				"status":     status,
				"latency":    time.Since(start).String(),
			})
			if status >= http.StatusInternalServerError {
				entry.Warn("request failed")
			} else {
				entry.Info("request")
			}
			return nil
		}
	}
}

// errorHandler writes {"error", "code"} bodies with a status derived from the error type
func errorHandler(logger *log.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorBody(err)
		if apperrors.ShouldLogError(err) && status >= http.StatusInternalServerError {
			logger.WithFields(apperrors.Fields(err)).WithError(err).Error("request error")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.WithError(err).Error("failed to write error response")
		}
	}
}

func errorBody(err error) (int, errorResponse) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
		return he.Code, errorResponse{Error: message, Code: fmt.Sprintf("HTTP_%d", he.Code)}
	}

	return statusFor(err), errorResponse{
		Error: userMessage(err),
		Code:  apperrors.GetErrorCode(err),
	}
}

func statusFor(err error) int {
	if validation.IsValidationError(err) {
		return http.StatusBadRequest
	}
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch appErr.Type {
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeInvalidInput:
		return http.StatusBadRequest
	case apperrors.ErrorTypeNotFound:
		return http.StatusNotFound
	case apperrors.ErrorTypeExternalService:
		return http.StatusBadGateway
	case apperrors.ErrorTypeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func userMessage(err error) string {
	if !apperrors.IsAppError(err) {
		var ve *validation.ValidationError
		if errors.As(err, &ve) {
			return ve.GetUserFriendlyMessage()
		}
		return "An unexpected error occurred. Please try again."
	}
	return apperrors.GetUserMessage(err)
}
