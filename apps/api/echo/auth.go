package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/acadbase/academia/core"
	"github.com/acadbase/academia/core/account"
)

var (
	contextPersonKey = "personID"

	errMissingToken      = core.NewAuthError("Token is missing!")
	errPersonNotFoundCtx = errors.New("person id not found in echo.Context")
)

// tokenMiddleware verifies the Authorization header (with or without a
// "Bearer " prefix) and stores the subject id in the request context.
func tokenMiddleware(tokens *account.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			raw := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if raw == "" {
				return errMissingToken
			}
			personID, err := tokens.Verify(raw)
			if err != nil {
				return core.NewAuthError(err.Error())
			}
			ctx.Set(contextPersonKey, personID)
			return next(ctx)
		}
	}
}

func contextPersonID(ctx echo.Context) (int, error) {
	if id, ok := ctx.Get(contextPersonKey).(int); ok {
		return id, nil
	}
	return 0, errPersonNotFoundCtx
}

// roleMiddleware resolves the requested role for the context subject on
// every request; membership is checked against the store, not the token.
func roleMiddleware(svc *account.Service, role account.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			personID, err := contextPersonID(ctx)
			if err != nil {
				return errors.Wrap(err, "getting context person")
			}
			if err := svc.ResolveRole(ctx.Request().Context(), personID, role); err != nil {
				return err
			}
			return next(ctx)
		}
	}
}
