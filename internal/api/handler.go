package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/vendas-realtime/internal/domain/dto"
	"github.com/guttosm/vendas-realtime/internal/service"
)

const cacheClearedMessage = "Cache limpo com sucesso"

// Handler provides HTTP handlers for the sales endpoints.
//
// Responsibilities:
//   - Read query parameters and hand them to the service for validation
//   - Translate service results into response DTOs
//   - Push failures onto the Gin context so middleware.ErrorHandler maps them
//     to a status code
type Handler struct {
	svc service.SalesService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.SalesService): Service that validates dates, reads the cache and queries the database.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.SalesService) *Handler {
	return &Handler{svc: svc}
}

// GetVendas handles GET /vendas-realtime.
//
// Query Parameters:
//   - data (string, optional): single day, YYYY-MM-DD.
//   - data_inicio, data_fim (string, optional): inclusive day range; both or neither.
//
// With no parameter the current day in the configured timezone is used.
//
// Responses:
//   - 200: dto.VendasResponse with fonte "cache" or "database".
//   - 400: invalid or inconsistent dates.
//   - 502: the database query failed.
//
// GetVendas godoc
// @Summary      Sales aggregated by store
// @Description  Returns total quantity and total value per store for a day or a date range. Results are cached for a few minutes.
// @Tags         vendas
// @Produce      json
// @Security     SecretKey
// @Param        data         query     string  false  "Single day in YYYY-MM-DD" example(2025-09-12)
// @Param        data_inicio  query     string  false  "Range start in YYYY-MM-DD" example(2025-09-01)
// @Param        data_fim     query     string  false  "Range end in YYYY-MM-DD" example(2025-09-12)
// @Success      200          {object}  dto.VendasResponse  "Success"
// @Failure      400          {object}  dto.ErrorResponse   "Invalid date parameters"
// @Failure      401          {object}  dto.ErrorResponse   "Unauthorized"
// @Failure      500          {object}  dto.ErrorResponse   "Internal Error"
// @Failure      502          {object}  dto.ErrorResponse   "Database unavailable"
// @Router       /vendas-realtime [get]
func (h *Handler) GetVendas(c *gin.Context) {
	dr, err := h.svc.ResolveDateRange(service.DateParams{
		Data:       c.Query("data"),
		DataInicio: c.Query("data_inicio"),
		DataFim:    c.Query("data_fim"),
	})
	if err != nil {
		_ = c.Error(err)
		return
	}

	res, err := h.svc.GetSales(c.Request.Context(), dr)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.NewVendasResponse(res))
}

// ClearCache handles DELETE /cache.
//
// Responses:
//   - 200: dto.CacheClearedResponse with the number of keys removed.
//   - 500: Redis could not be reached.
//
// ClearCache godoc
// @Summary      Clear cached sales
// @Description  Removes every cached sales result. Calling it on an empty cache is not an error.
// @Tags         vendas
// @Produce      json
// @Security     SecretKey
// @Success      200  {object}  dto.CacheClearedResponse  "Success"
// @Failure      401  {object}  dto.ErrorResponse         "Unauthorized"
// @Failure      500  {object}  dto.ErrorResponse         "Cache unavailable"
// @Router       /cache [delete]
func (h *Handler) ClearCache(c *gin.Context) {
	removed, err := h.svc.InvalidateCache(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.CacheClearedResponse{
		Message:         cacheClearedMessage,
		ChavesRemovidas: removed,
	})
}
