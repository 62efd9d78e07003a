package echoapi

import (
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/institut/core/catalog"
)

const ctxFormationKey = "formation"

var errFormationNotFoundInCtx = errors.New("formation not found in echo.Context")

// formationMiddleware loads the formation of the `:id` path param into the context.
func formationMiddleware(svc catalog.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			f, err := svc.GetFormation(ctx.Request().Context(), ctx.Param("id"))
			if err != nil {
				return errors.Wrap(err, "getting formation")
			}
			ctx.Set(ctxFormationKey, f)
			return next(ctx)
		}
	}
}

func getContextFormation(ctx echo.Context) (catalog.Formation, error) {
	f, ok := ctx.Get(ctxFormationKey).(catalog.Formation)
	if !ok {
		return catalog.Formation{}, errFormationNotFoundInCtx
	}
	return f, nil
}
