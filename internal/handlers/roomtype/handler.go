package roomtype

import (
	"net/http"

	"hotel/infras/otel"
	"hotel/internal/domains/roomtype/model/dto"
	"hotel/internal/domains/roomtype/service"
	"hotel/shared/constant"
	"hotel/shared/validator"
	"hotel/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.RoomType
	otel    otel.Otel
}

func New(service service.RoomType, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/room-types", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetRoomTypes)
		routerGroup.Get("/{typeKey}", handler.GetRoomType)
	})
}

func (handler *Handler) AdminRouter(router chi.Router) {
	router.Post("/room-types", handler.CreateRoomType)
}

// GetRoomTypes lists every room type.
// @Summary List room types
// @Tags RoomType
// @Produce json
// @Success 200 {object} response.Data[[]dto.RoomTypeResponse]
// @Failure 500 {object} response.Error
// @Router /v1/room-types [get]
func (handler *Handler) GetRoomTypes(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomTypes")
	defer scope.End()

	res, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list room types")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetRoomType returns one room type by its key.
// @Summary Get a room type
// @Tags RoomType
// @Produce json
// @Param typeKey path string true "Room type key"
// @Success 200 {object} response.Data[dto.RoomTypeResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/room-types/{typeKey} [get]
func (handler *Handler) GetRoomType(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRoomType")
	defer scope.End()

	typeKey := chi.URLParam(request, constant.RequestParamTypeKey)

	roomType, err := handler.service.GetByTypeKey(ctx, typeKey)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("typeKey", typeKey).Msg("failed to get room type")

		response.WithError(writer, err)

		return
	}

	res := dto.RoomTypeResponse{}
	res.FromModel(roomType)

	response.WithJSON(writer, http.StatusOK, res)
}

// CreateRoomType adds a room type to the catalog.
// @Summary Create a room type
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.CreateRoomTypeRequest true "Create Room Type Request"
// @Success 201 {object} response.Data[dto.RoomTypeResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/room-types [post]
// @Security BearerAuth
func (handler *Handler) CreateRoomType(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRoomType")
	defer scope.End()

	req := dto.CreateRoomTypeRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create room type")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Room type created " + res.TypeKey)

	response.WithJSON(writer, http.StatusCreated, res)
}
