package manage_services

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/barberflow/internal/api/handlers"
	"github.com/m04kA/barberflow/internal/service/catalog"
	"github.com/m04kA/barberflow/internal/service/catalog/models"
)

const (
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidRequest   = "некорректный формат запроса"
	msgInvalidInput     = "укажите название, цену не меньше 0 и длительность больше 0 минут"
	msgServiceNotFound  = "услуга не найдена"
	msgServiceInUse     = "на услугу есть бронирования, отключите ее вместо удаления"
)

// Handler каталог услуг в админке (только администратор)
type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// List GET /api/v1/admin/services
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	services, err := h.service.ListAllServices(r.Context())
	if err != nil {
		h.respondError(w, "GET /admin/services", 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, services)
}

// Create POST /api/v1/admin/services
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var body models.ServiceRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("POST /admin/services - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	service, err := h.service.CreateService(r.Context(), &body)
	if err != nil {
		h.respondError(w, "POST /admin/services", 0, err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, service)
}

// Update PUT /api/v1/admin/services/{serviceId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := h.serviceID(w, r)
	if !ok {
		return
	}

	var body models.ServiceRequest
	if err := handlers.DecodeJSON(r, &body); err != nil {
		h.logger.Warn("PUT /admin/services/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	service, err := h.service.UpdateService(r.Context(), serviceID, &body)
	if err != nil {
		h.respondError(w, "PUT /admin/services/{id}", serviceID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, service)
}

// Delete DELETE /api/v1/admin/services/{serviceId}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	serviceID, ok := h.serviceID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteService(r.Context(), serviceID); err != nil {
		h.respondError(w, "DELETE /admin/services/{id}", serviceID, err)
		return
	}

	handlers.RespondNoContent(w)
}

func (h *Handler) serviceID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	serviceID, err := strconv.ParseInt(mux.Vars(r)["serviceId"], 10, 64)
	if err != nil || serviceID <= 0 {
		h.logger.Warn("/admin/services/{id} - Invalid service ID: %q", mux.Vars(r)["serviceId"])
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return 0, false
	}
	return serviceID, true
}

func (h *Handler) respondError(w http.ResponseWriter, route string, serviceID int64, err error) {
	switch {
	case errors.Is(err, catalog.ErrServiceNotFound):
		handlers.RespondNotFound(w, msgServiceNotFound)

	case errors.Is(err, catalog.ErrServiceInUse):
		handlers.RespondConflict(w, msgServiceInUse)

	case errors.Is(err, catalog.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidInput)

	default:
		h.logger.Error("%s - Failed: service_id=%d, error=%v", route, serviceID, err)
		handlers.RespondInternalError(w)
	}
}
