package dto

import (
	"time"

	"github.com/guttosm/vendas-realtime/internal/domain/models"
)

// VendaItem is one store line of the GET /vendas-realtime response.
type VendaItem struct {
	Codigo          string  `json:"codigo" example:"001"`
	Loja            string  `json:"loja" example:"Loja Centro"`
	TotalQuantidade float64 `json:"total_quantidade" example:"15"`
	VendaTotal      float64 `json:"venda_total" example:"150.5"`
}

// VendasResponse represents the JSON structure returned by GET /vendas-realtime.
//
// Field names follow the public API contract and are independent of the
// internal models.QueryResult.
type VendasResponse struct {
	DataConsulta   string      `json:"data_consulta" example:"2025-09-12T14:03:00-03:00"`
	PeriodoInicio  string      `json:"periodo_inicio" example:"2025-09-12 00:00:00"`
	PeriodoFim     string      `json:"periodo_fim" example:"2025-09-12 23:59:59"`
	TotalRegistros int         `json:"total_registros" example:"2"`
	Fonte          string      `json:"fonte" example:"database" enums:"cache,database"`
	Vendas         []VendaItem `json:"vendas"`
}

// NewVendasResponse maps a QueryResult onto the API contract.
func NewVendasResponse(res *models.QueryResult) VendasResponse {
	vendas := make([]VendaItem, 0, len(res.Rows))
	for _, row := range res.Rows {
		vendas = append(vendas, VendaItem{
			Codigo:          row.StoreCode,
			Loja:            row.StoreName,
			TotalQuantidade: row.TotalQuantity,
			VendaTotal:      row.TotalValue.InexactFloat64(),
		})
	}

	return VendasResponse{
		DataConsulta:   res.QueryTimestamp.Format(time.RFC3339),
		PeriodoInicio:  res.PeriodStart.Format(models.PeriodLayout),
		PeriodoFim:     res.PeriodEnd.Format(models.PeriodLayout),
		TotalRegistros: res.RecordCount,
		Fonte:          string(res.Source),
		Vendas:         vendas,
	}
}

// CacheClearedResponse is returned by DELETE /cache.
type CacheClearedResponse struct {
	Message         string `json:"message" example:"Cache limpo com sucesso"`
	ChavesRemovidas int64  `json:"chaves_removidas" example:"3"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status    string `json:"status" example:"healthy"`
	Timestamp string `json:"timestamp" example:"2025-09-12T14:03:00-03:00"`
	Redis     string `json:"redis" example:"connected" enums:"connected,disconnected"`
	Database  string `json:"database" example:"connected" enums:"connected,disconnected"`
}
