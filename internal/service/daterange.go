package service

import (
	"strings"
	"time"

	"github.com/guttosm/vendas-realtime/internal/domain/errs"
	"github.com/guttosm/vendas-realtime/internal/domain/models"
	"github.com/jonboulle/clockwork"
)

// DateLayout is the accepted format of the date query parameters.
const DateLayout = time.DateOnly

// DateParams are the raw date query parameters of a request. Empty strings
// mean "not given".
type DateParams struct {
	Data       string // single day
	DataInicio string // first day of a range
	DataFim    string // last day of a range
}

// DateRangeResolver turns DateParams into a validated models.DateRange.
//
// The deployment timezone lives here and nowhere else: "today" and the
// day boundaries of explicit dates are both computed in loc.
type DateRangeResolver struct {
	loc   *time.Location
	clock clockwork.Clock
}

// NewDateRangeResolver builds a resolver for loc. A nil clock uses the real one.
func NewDateRangeResolver(loc *time.Location, clock clockwork.Clock) *DateRangeResolver {
	if loc == nil {
		loc = time.UTC
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &DateRangeResolver{loc: loc, clock: clock}
}

// Location returns the timezone ranges are resolved in.
func (d *DateRangeResolver) Location() *time.Location { return d.loc }

// Resolve applies the resolution rules:
//   - nothing given: today;
//   - data: that day;
//   - data_inicio and data_fim: from the first to the last day, inclusive.
//
// Returns *errs.ValidationError for malformed dates, for data combined with
// a range bound, for a range with only one bound, or for inicio after fim.
func (d *DateRangeResolver) Resolve(p DateParams) (models.DateRange, error) {
	p.Data = strings.TrimSpace(p.Data)
	p.DataInicio = strings.TrimSpace(p.DataInicio)
	p.DataFim = strings.TrimSpace(p.DataFim)

	hasRange := p.DataInicio != "" || p.DataFim != ""

	switch {
	case p.Data != "" && hasRange:
		return models.DateRange{}, errs.NewValidation("data", "cannot be combined with data_inicio/data_fim")

	case p.Data != "":
		day, err := d.parse("data", p.Data)
		if err != nil {
			return models.DateRange{}, err
		}
		return models.NewDayRange(day, day, d.loc), nil

	case hasRange:
		if p.DataInicio == "" {
			return models.DateRange{}, errs.NewValidation("data_inicio", "required when data_fim is given")
		}
		if p.DataFim == "" {
			return models.DateRange{}, errs.NewValidation("data_fim", "required when data_inicio is given")
		}
		first, err := d.parse("data_inicio", p.DataInicio)
		if err != nil {
			return models.DateRange{}, err
		}
		last, err := d.parse("data_fim", p.DataFim)
		if err != nil {
			return models.DateRange{}, err
		}
		if first.After(last) {
			return models.DateRange{}, errs.NewValidation("data_inicio", "must not be after data_fim")
		}
		return models.NewDayRange(first, last, d.loc), nil

	default:
		today := d.clock.Now()
		return models.NewDayRange(today, today, d.loc), nil
	}
}

func (d *DateRangeResolver) parse(field, value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, d.loc)
	if err != nil {
		return time.Time{}, errs.NewValidation(field, "invalid format, expected YYYY-MM-DD")
	}
	return t, nil
}
