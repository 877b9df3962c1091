package service

import (
	"testing"
	"time"

	"github.com/guttosm/vendas-realtime/internal/domain/errs"
	"github.com/guttosm/vendas-realtime/internal/domain/models"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	return loc
}

func TestResolve_TableDriven(t *testing.T) {
	loc := saoPaulo(t)
	// 01:30 UTC on the 13th is still the 12th in São Paulo
	clock := clockwork.NewFakeClockAt(time.Date(2025, 9, 13, 1, 30, 0, 0, time.UTC))
	resolver := NewDateRangeResolver(loc, clock)

	cases := []struct {
		name      string
		params    DateParams
		wantStart string
		wantEnd   string
		wantField string
	}{
		{name: "default is today in zone", params: DateParams{}, wantStart: "2025-09-12 00:00:00", wantEnd: "2025-09-12 23:59:59"},
		{name: "single day", params: DateParams{Data: "2025-01-31"}, wantStart: "2025-01-31 00:00:00", wantEnd: "2025-01-31 23:59:59"},
		{name: "range", params: DateParams{DataInicio: "2025-01-01", DataFim: "2025-01-31"}, wantStart: "2025-01-01 00:00:00", wantEnd: "2025-01-31 23:59:59"},
		{name: "range of one day", params: DateParams{DataInicio: "2025-02-10", DataFim: "2025-02-10"}, wantStart: "2025-02-10 00:00:00", wantEnd: "2025-02-10 23:59:59"},
		{name: "surrounding spaces", params: DateParams{Data: " 2025-03-03 "}, wantStart: "2025-03-03 00:00:00", wantEnd: "2025-03-03 23:59:59"},
		{name: "inicio after fim", params: DateParams{DataInicio: "2025-02-02", DataFim: "2025-02-01"}, wantField: "data_inicio"},
		{name: "malformed data", params: DateParams{Data: "12/09/2025"}, wantField: "data"},
		{name: "impossible date", params: DateParams{Data: "2025-02-30"}, wantField: "data"},
		{name: "malformed fim", params: DateParams{DataInicio: "2025-02-01", DataFim: "2025-2-3"}, wantField: "data_fim"},
		{name: "data with range", params: DateParams{Data: "2025-02-01", DataInicio: "2025-02-01", DataFim: "2025-02-02"}, wantField: "data"},
		{name: "data with inicio only", params: DateParams{Data: "2025-02-01", DataInicio: "2025-02-01"}, wantField: "data"},
		{name: "inicio without fim", params: DateParams{DataInicio: "2025-02-01"}, wantField: "data_fim"},
		{name: "fim without inicio", params: DateParams{DataFim: "2025-02-01"}, wantField: "data_inicio"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := resolver.Resolve(tc.params)
			if tc.wantField != "" {
				require.Error(t, err)
				var verr *errs.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, tc.wantField, verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantStart, r.Start.Format(models.PeriodLayout))
			assert.Equal(t, tc.wantEnd, r.End.Format(models.PeriodLayout))
			assert.Equal(t, loc, r.Start.Location())
		})
	}
}

// Every day of a year resolves to its own [00:00:00, 23:59:59] span, both as
// a single date and as a one-day range.
func TestResolve_EveryDayOfYear(t *testing.T) {
	loc := saoPaulo(t)
	resolver := NewDateRangeResolver(loc, clockwork.NewFakeClock())

	for d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC); d.Year() == 2024; d = d.AddDate(0, 0, 1) {
		day := d.Format(DateLayout)

		single, err := resolver.Resolve(DateParams{Data: day})
		require.NoError(t, err, day)
		assert.Equal(t, day+" 00:00:00", single.Start.Format(models.PeriodLayout))
		assert.Equal(t, day+" 23:59:59", single.End.Format(models.PeriodLayout))

		ranged, err := resolver.Resolve(DateParams{DataInicio: day, DataFim: day})
		require.NoError(t, err, day)
		assert.True(t, single.Start.Equal(ranged.Start) && single.End.Equal(ranged.End), day)
		assert.False(t, single.Start.After(single.End), day)
	}
}

func TestNewDateRangeResolver_Defaults(t *testing.T) {
	r := NewDateRangeResolver(nil, nil)
	assert.Equal(t, time.UTC, r.Location())

	got, err := r.Resolve(DateParams{})
	require.NoError(t, err)
	today := time.Now().UTC().Format(DateLayout)
	assert.Equal(t, today, got.Start.Format(DateLayout))
}
