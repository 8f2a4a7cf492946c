package booking

import (
	"net/http"

	"hotel/infras/otel"
	availabilityService "hotel/internal/domains/availability/service"
	"hotel/internal/domains/booking/model/dto"
	"hotel/internal/domains/booking/service"
	"hotel/shared/constant"
	gDto "hotel/shared/dto"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service      service.Booking
	availability availabilityService.Availability
	otel         otel.Otel
}

func New(service service.Booking, availability availabilityService.Availability, otel otel.Otel) Handler {
	return Handler{
		service:      service,
		availability: availability,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/booked-dates-by-type", handler.GetBookedDatesByType)
		routerGroup.Get("/fully-booked-dates", handler.GetFullyBookedDates)
	})
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetAdminBookings)
		routerGroup.Delete("/{id}", handler.DeleteBooking)
	})
}

// CreateBooking books a room for a half-open date range.
// @Summary Create a booking
// @Description The range is [startDate, endDate): a stay may start on the day another one checks out.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("roomId", req.RoomID).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created " + res.ID)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBookings lists bookings with their room, newest first, without guest details.
// @Summary List bookings
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[[]dto.PublicBookingResponse]
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	res, err := handler.service.List(ctx, gDto.QueryParams{})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, dto.ToPublic(res))
}

// GetBookedDatesByType returns the days on which every room of a type is taken.
// @Summary Fully booked dates for a room type
// @Tags Booking
// @Produce json
// @Param typeKey query string true "Room type key"
// @Success 200 {object} response.Data[dto.BookedDatesResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/booked-dates-by-type [get]
func (handler *Handler) GetBookedDatesByType(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookedDatesByType")
	defer scope.End()

	typeKey := request.URL.Query().Get(constant.RequestParamTypeKey)

	dates, err := handler.availability.BookedDatesByType(ctx, typeKey)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("typeKey", typeKey).Msg("failed to get booked dates")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, dto.BookedDatesResponse{BookedDates: dates})
}

// GetFullyBookedDates returns the days on which the whole hotel is taken.
// @Summary Fully booked dates across all room types
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dto.FullyBookedDatesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/bookings/fully-booked-dates [get]
func (handler *Handler) GetFullyBookedDates(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetFullyBookedDates")
	defer scope.End()

	dates, err := handler.availability.FullyBookedDates(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get fully booked dates")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, dto.FullyBookedDatesResponse{FullyBookedDates: dates})
}

// GetAdminBookings lists bookings with room and room type.
// @Summary List bookings (admin)
// @Tags Admin
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination and sorting"
// @Success 200 {object} response.Data[[]dto.BookingResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetAdminBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAdminBookings")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, false)

	res, err := handler.service.List(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list bookings")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteBooking removes a booking and frees its dates.
// @Summary Delete a booking
// @Tags Admin
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/bookings/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("id", id).Msg("failed to delete booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking deleted " + id)

	response.WithMessage(writer, http.StatusOK, "Booking deleted successfully")
}
