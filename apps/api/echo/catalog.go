package echoapi

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/institut/core/catalog"
	"github.com/trezcool/institut/core/reservation"
)

type catalogApi struct {
	svc catalog.Service
	now func() time.Time
}

func registerCatalogAPI(g, fg *echo.Group, deps ServerDeps) {
	api := catalogApi{
		svc: deps.CatalogSvc,
		now: deps.Now,
	}

	g.GET("/catalog", api.view)
	g.GET("/countries", api.countries)

	fg.GET("", api.retrieve)
	fg.GET("/quote", api.quote)
	fg.GET("/start-dates", api.startDates)
}

// Handlers

// view renders the catalog page: ?mode=standard|online&categoryId=&themeId=&ordering=[-]formationId|name
func (api *catalogApi) view(ctx echo.Context) error {
	mode := catalog.ParseMode(ctx.QueryParam("mode"))
	view, err := api.svc.View(ctx.Request().Context(), mode, ctx.QueryParams())
	if err != nil {
		return errors.Wrap(err, "viewing catalog")
	}
	return ctx.JSON(http.StatusOK, view)
}

func (api *catalogApi) retrieve(ctx echo.Context) error {
	f, err := getContextFormation(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, f)
}

// quote prices a formation: online formations get the monthly breakdown,
// in-person ones the per-person price with and without lodging.
func (api *catalogApi) quote(ctx echo.Context) error {
	var q participantsQuery
	if err := q.Bind(ctx); err != nil {
		return err
	}
	f, err := getContextFormation(ctx)
	if err != nil {
		return err
	}

	if f.IsOnline {
		return ctx.JSON(http.StatusOK, reservation.QuoteOnlineOffer(f.PricePerMonth, f.DurationMonths, q.Participants))
	}
	return ctx.JSON(http.StatusOK, InPersonQuote{
		Participants:   q.Participants,
		WithLodging:    reservation.QuoteInPersonOffer(f.PriceWithLodging, q.Participants),
		WithoutLodging: reservation.QuoteInPersonOffer(f.PriceWithoutLodging, q.Participants),
	})
}

func (api *catalogApi) startDates(ctx echo.Context) error {
	f, err := getContextFormation(ctx)
	if err != nil {
		return err
	}
	if !f.IsOnline {
		return ctx.JSON(http.StatusOK, []reservation.StartWindow{})
	}
	windows := reservation.StartWindows(api.now(), reservation.DefaultStartDateCount, reservation.ParseDuration(f.DurationMonths))
	return ctx.JSON(http.StatusOK, windows)
}

func (api *catalogApi) countries(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, reservation.Countries)
}
