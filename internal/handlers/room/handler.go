package room

import (
	"net/http"

	"hotel/infras/otel"
	availabilityDto "hotel/internal/domains/availability/model/dto"
	availabilityService "hotel/internal/domains/availability/service"
	"hotel/internal/domains/room/model/dto"
	"hotel/internal/domains/room/service"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service      service.Room
	availability availabilityService.Availability
	otel         otel.Otel
}

func New(service service.Room, availability availabilityService.Availability, otel otel.Otel) Handler {
	return Handler{
		service:      service,
		availability: availability,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/rooms", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRooms)
		routerGroup.Get("/availability", handler.GetAvailability)
		routerGroup.Get("/{id}", handler.GetRoom)
	})
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Post("/rooms", handler.CreateRoom)
}

// GetRooms lists every room together with its room type.
// @Summary List rooms
// @Tags Room
// @Produce json
// @Success 200 {object} response.Data[[]dto.RoomResponse]
// @Failure 500 {object} response.Error
// @Router /v1/rooms [get]
func (handler *Handler) GetRooms(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRooms")
	defer scope.End()

	res, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list rooms")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetRoom returns one room together with its room type.
// @Summary Get a room
// @Tags Room
// @Produce json
// @Param id path string true "Room ID"
// @Success 200 {object} response.Data[dto.RoomResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/{id} [get]
func (handler *Handler) GetRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoom")
	defer scope.End()

	id := chi.URLParam(request, constant.RequestParamID)

	room, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("roomId", id).Msg("failed to get room")

		response.WithError(writer, err)

		return
	}

	res := dto.RoomResponse{}
	res.FromDetail(room)

	response.WithJSON(writer, http.StatusOK, res)
}

// GetAvailability reports, per room type, how many rooms are free for the whole stay.
// @Summary Room availability for a date range
// @Description Dates are calendar days; endDate is the checkout day and is not occupied.
// @Tags Room
// @Produce json
// @Param startDate query string true "Check-in date (YYYY-MM-DD)"
// @Param endDate query string true "Checkout date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[availabilityDto.RangeAvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/rooms/availability [get]
func (handler *Handler) GetAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailability")
	defer scope.End()

	query := request.URL.Query()
	req := availabilityDto.AvailabilityRequest{
		StartDate: query.Get(constant.RequestParamStartDate),
		EndDate:   query.Get(constant.RequestParamEndDate),
	}

	res, err := handler.availability.RangeAvailability(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("startDate", req.StartDate).Str("endDate", req.EndDate).Msg("failed to compute availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateRoom adds a room to an existing room type.
// @Summary Create a room
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomRequest true "Create Room Request"
// @Success 201 {object} response.Data[dto.RoomResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/rooms [post]
// @Security BearerAuth
func (handler *Handler) CreateRoom(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoom")
	defer scope.End()

	req := dto.CreateRoomRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room created " + res.RoomNumber)

	response.WithJSON(writer, http.StatusCreated, res)
}
