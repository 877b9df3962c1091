package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/guttosm/vendas-realtime/internal/domain/errs"
	"github.com/guttosm/vendas-realtime/internal/domain/models"
	"github.com/shopspring/decimal"
)

// finishedStatus marks sale items that were completed at the register.
const finishedStatus = "F"

// SalesRepository defines the read-only contract over the sales database.
type SalesRepository interface {
	// SalesByStore sums quantity and value of finished sale items per store
	// for r, ordered by store code ascending. No sales yields an empty slice.
	SalesByStore(ctx context.Context, r models.DateRange) ([]models.StoreSales, error)
}

type salesRepository struct {
	db *sql.DB
}

func NewSalesRepository(db *sql.DB) SalesRepository {
	return &salesRepository{db: db}
}

// salesByStoreQuery builds the grouped aggregation for r.
//
// The upper bound is exclusive at the next midnight so items stamped within
// the last second (sub-second precision) of the range are still counted.
func salesByStoreQuery(r models.DateRange) (string, []interface{}, error) {
	return squirrel.
		Select(
			"u.codigo",
			"u.nome AS loja",
			"SUM(iv.quantidade) AS total_quantidade",
			"SUM(iv.valortotal) AS venda_total",
		).
		From("itemvenda iv").
		LeftJoin("unidadenegocio u ON u.id = iv.unidadenegocioid").
		Where(squirrel.GtOrEq{"iv.datahora": r.Start.Format(models.PeriodLayout)}).
		Where(squirrel.Lt{"iv.datahora": r.EndExclusive().Format(models.PeriodLayout)}).
		Where(squirrel.Eq{"iv.status": finishedStatus}).
		GroupBy("u.codigo", "u.nome").
		OrderBy("u.codigo ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
}

// SalesByStore runs the aggregation on a pooled connection. Any failure is
// returned as *errs.UpstreamError and no partial rows are returned.
func (r *salesRepository) SalesByStore(ctx context.Context, dr models.DateRange) (out []models.StoreSales, err error) {
	start := time.Now()
	defer func() { observeQuery(start, err) }()

	query, args, err := salesByStoreQuery(dr)
	if err != nil {
		return nil, errs.NewUpstream("build sales query", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errs.NewUpstream("query sales", err)
	}
	defer rows.Close()

	out = make([]models.StoreSales, 0)
	for rows.Next() {
		row, scanErr := scanStoreSales(rows)
		if scanErr != nil {
			return nil, errs.NewUpstream("scan sales row", scanErr)
		}
		out = append(out, row)
	}
	if err = rows.Err(); err != nil {
		return nil, errs.NewUpstream("iterate sales rows", err)
	}

	return out, nil
}

func scanStoreSales(rows *sql.Rows) (models.StoreSales, error) {
	var (
		code     sql.NullString
		name     sql.NullString
		quantity sql.NullFloat64
		value    decimal.NullDecimal
	)
	if err := rows.Scan(&code, &name, &quantity, &value); err != nil {
		return models.StoreSales{}, fmt.Errorf("scan: %w", err)
	}

	// Items without a matching store come back with NULL code/name.
	s := models.StoreSales{
		StoreCode: code.String,
		StoreName: name.String,
	}
	if quantity.Valid {
		s.TotalQuantity = quantity.Float64
	}
	if value.Valid {
		s.TotalValue = value.Decimal
	}
	return s, nil
}
