package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/institut/core"
	"github.com/trezcool/institut/core/catalog"
	"github.com/trezcool/institut/core/reservation"
)

var (
	errFormationNotFound      = echo.NewHTTPError(http.StatusNotFound, "formation introuvable")
	errReservationUnavailable = echo.NewHTTPError(http.StatusForbidden, "la réservation en ligne n'est pas disponible pour cette formation")
	errInvalidTransition      = echo.NewHTTPError(http.StatusConflict, "étape du formulaire invalide")
	errSubmissionFailed       = echo.NewHTTPError(http.StatusServiceUnavailable, "votre demande n'a pas pu être enregistrée, veuillez réessayer")
)

// domainHTTPError maps the sentinel errors of the core packages to HTTP errors.
func domainHTTPError(cause error) (*echo.HTTPError, bool) {
	switch cause {
	case catalog.ErrFormationNotFound:
		return errFormationNotFound, true
	case reservation.ErrReservationUnavailable:
		return errReservationUnavailable, true
	case reservation.ErrInvalidTransition:
		return errInvalidTransition, true
	}
	return nil, false
}

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that knows how to handle our errors.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		cause := errors.Cause(err)
		if herr, ok := domainHTTPError(cause); ok {
			cause = herr
		}

		switch origErr := cause.(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				message = origErr.FieldErrors()
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		case *reservation.SubmissionError:
			code = errSubmissionFailed.Code
			message = errSubmissionFailed.Message
			logger.Error("lead submission failed", errors.Wrap(origErr.Err, "submitting lead"), map[string]interface{}{
				"path": ctx.Request().URL.Path,
			})
		default: // any other error is a server error
			code = http.StatusInternalServerError
			msg := http.StatusText(http.StatusInternalServerError)
			message = msg
			if ctx.Echo().Debug {
				message = err.Error()
			}
			logger.Error(msg, errors.Wrap(err, msg), map[string]interface{}{"path": ctx.Request().URL.Path})
		}

		if m, ok := message.(string); ok {
			message = echo.Map{"error": m}
		}

		// Send response
		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead { // Issue #608
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, message)
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
