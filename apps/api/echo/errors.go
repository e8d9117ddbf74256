package echoapi

import (
	"fmt"
	"net/http"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/acadbase/academia/core"
)

const internalErrorMsg = "internal server error"

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that converts
// any error into the uniform envelope. signalShutdown is called whenever a
// core.shutdown error is caught so the server can stop gracefully.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message string

		switch origErr := errors.Cause(err).(type) {
		case *core.ValidationError:
			code = http.StatusBadRequest
			message = validationErrorMessage(origErr)
		case validator.ValidationErrors:
			// report the first failing field only
			code = http.StatusBadRequest
			message = origErr[0].Translate(translator)
		case *core.AuthError:
			code = http.StatusUnauthorized
			message = origErr.Error()
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = fmt.Sprintf("%v", origErr.Message)
		default: // any other error is a store/server error
			code = http.StatusInternalServerError
			message = internalErrorMsg

			reqID := ctx.Response().Header().Get(echo.HeaderXRequestID)
			logger.Error(internalErrorMsg, errors.Wrap(err, internalErrorMsg),
				map[string]interface{}{
					"request_id": reqID,
					"method":     ctx.Request().Method,
					"path":       ctx.Request().URL.Path,
				})

			// shutting down...
			if core.IsShutdown(err) {
				signalShutdown()
			}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = respondError(ctx, code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}

func validationErrorMessage(vErr *core.ValidationError) string {
	if vErr.Err != nil {
		return vErr.Error()
	}
	parts := make([]string, 0, len(vErr.Fields))
	for _, fErr := range vErr.Fields {
		parts = append(parts, fErr.Field+": "+fErr.Error)
	}
	return strings.Join(parts, "; ")
}
