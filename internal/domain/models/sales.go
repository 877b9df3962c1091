package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodLayout is the wall-clock layout used for period boundaries, both in
// SQL parameters and in API responses.
const PeriodLayout = "2006-01-02 15:04:05"

// DateRange is an inclusive span of calendar days.
//
// Start is the first day at 00:00:00 and End the last day at 23:59:59, both in
// the deployment timezone. Start is never after End.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDayRange returns the inclusive range covering the calendar days of
// first and last in loc.
func NewDayRange(first, last time.Time, loc *time.Location) DateRange {
	first = first.In(loc)
	last = last.In(loc)
	return DateRange{
		Start: time.Date(first.Year(), first.Month(), first.Day(), 0, 0, 0, 0, loc),
		End:   time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, 0, loc),
	}
}

// EndExclusive is the first instant after the range (next day 00:00:00).
func (r DateRange) EndExclusive() time.Time {
	return r.End.Add(time.Second)
}

// Source tells where the rows of a QueryResult were read from.
type Source string

const (
	SourceCache    Source = "cache"
	SourceDatabase Source = "database"
)

// StoreSales is the aggregate of finished sale items for one store.
type StoreSales struct {
	StoreCode     string
	StoreName     string
	TotalQuantity float64
	TotalValue    decimal.Decimal
}

// QueryResult is the outcome of a sales query for one range.
type QueryResult struct {
	QueryTimestamp time.Time
	PeriodStart    time.Time
	PeriodEnd      time.Time
	RecordCount    int
	Source         Source
	Rows           []StoreSales
}

// NewQueryResult builds a result with RecordCount derived from rows. A nil
// rows slice is normalized to an empty one.
func NewQueryResult(queriedAt time.Time, r DateRange, source Source, rows []StoreSales) *QueryResult {
	if rows == nil {
		rows = []StoreSales{}
	}
	return &QueryResult{
		QueryTimestamp: queriedAt,
		PeriodStart:    r.Start,
		PeriodEnd:      r.End,
		RecordCount:    len(rows),
		Source:         source,
		Rows:           rows,
	}
}
