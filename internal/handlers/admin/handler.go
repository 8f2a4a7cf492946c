package admin

import (
	"net/http"

	"hotel/infras/otel"
	adminService "hotel/internal/domains/admin/service"
	statisticsService "hotel/internal/domains/statistics/service"
	"hotel/shared/constant"
	"hotel/shared/failure"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	admin      adminService.Admin
	statistics statisticsService.Statistics
	otel       otel.Otel
}

func New(admin adminService.Admin, statistics statisticsService.Statistics, otel otel.Otel) Handler {
	return Handler{
		admin:      admin,
		statistics: statistics,
		otel:       otel,
	}
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Get("/statistics", handler.GetStatistics)
	router.Get("/me", handler.GetProfile)
}

// GetStatistics aggregates bookings, occupancy and revenue.
// @Summary Booking statistics
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[model.Statistics]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/statistics [get]
// @Security BearerAuth
func (handler *Handler) GetStatistics(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStatistics")
	defer scope.End()

	res, err := handler.statistics.Get(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to compute statistics")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetProfile returns the authenticated admin.
// @Summary Current admin
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Data[dto.AdminResponse]
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/me [get]
// @Security BearerAuth
func (handler *Handler) GetProfile(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfile")
	defer scope.End()

	adminID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if adminID == "" {
		response.WithError(writer, failure.Unauthorized("missing admin identity"))

		return
	}

	res, err := handler.admin.Profile(ctx, adminID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("adminId", adminID).Msg("failed to get admin profile")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}
