package underwriting

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"hotel_underwriting/pkg/core/staffing"
	"hotel_underwriting/pkg/core/valuation"
	"hotel_underwriting/pkg/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled()) //nolint:gochecknoglobals

// dealCheck holds the deal fields checked at the API edge. The engine itself
// accepts any deal and reports gaps as diagnostics.
type dealCheck struct {
	Name          string  `validate:"required,max=200"`
	Rooms         int     `validate:"gte=0,lte=100000"`
	PurchasePrice float64 `validate:"gte=0"`
	HorizonYears  int     `validate:"gte=0,lte=50"`
	TaxRatePct    float64 `validate:"gte=0,lte=100"`
	OccupancyPct  float64 `validate:"gte=0,lte=100"`
	ExitStrategy  string  `validate:"omitempty,oneof=SALE REFINANCE HOLD_FOREVER"`
	LTCPct        float64 `validate:"gte=0,lte=100"`
}

func checkDeal(d *models.Deal) error {
	if d == nil {
		return badRequest("deal body is required")
	}
	c := dealCheck{
		Name:          d.Name,
		Rooms:         d.Property.Rooms,
		PurchasePrice: d.Property.PurchasePrice,
	}
	if d.Rooms != nil {
		c.OccupancyPct = d.Rooms.OccupancyPct
	}
	if a := d.Assumptions; a != nil {
		c.HorizonYears = a.HorizonYears
		c.TaxRatePct = a.TaxRatePct
		c.ExitStrategy = string(a.Exit.Strategy)
		if a.Financing != nil {
			c.LTCPct = a.Financing.LTCPct
		}
	}
	if err := validate.Struct(c); err != nil {
		return validationError(err)
	}
	return nil
}

type portfolioRequest struct {
	Deals []*models.Deal `json:"deals" validate:"required,min=1,max=500"`
}

type irrRequest struct {
	Flows           []float64 `json:"flows" validate:"required,min=2"`
	DiscountRatePct *float64  `json:"discount_rate_pct" validate:"omitempty,gt=-100"`
}

type irrResponse struct {
	IRR *float64             `json:"irr"`
	DCF *valuation.DCFResult `json:"dcf,omitempty"`
}

func validationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return badRequest(err.Error())
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "oneof":
			msgs = append(msgs, fe.Field()+" must be one of "+fe.Param())
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
	}
	return badRequest(strings.Join(msgs, "; "))
}

// staffingQuery reads ?year=, ?rooms_sold=, ?treatments= and repeated
// ?covers=Meal:count parameters.
func staffingQuery(q map[string][]string, defaultYear int) (int, staffing.Overrides, error) {
	year := defaultYear
	var ov staffing.Overrides

	if v := first(q, "year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil || y < 0 {
			return 0, ov, badRequest("year must be a non-negative integer")
		}
		year = y
	}
	if v := first(q, "rooms_sold"); v != "" {
		f, err := parseVolume(v)
		if err != nil {
			return 0, ov, badRequest("rooms_sold: " + err.Error())
		}
		ov.RoomsSoldPerDay = &f
	}
	if v := first(q, "treatments"); v != "" {
		f, err := parseVolume(v)
		if err != nil {
			return 0, ov, badRequest("treatments: " + err.Error())
		}
		ov.TreatmentsPerDay = &f
	}
	for _, c := range q["covers"] {
		meal, count, ok := strings.Cut(c, ":")
		if !ok || strings.TrimSpace(meal) == "" {
			return 0, ov, badRequest("covers must look like Meal:count")
		}
		f, err := parseVolume(count)
		if err != nil {
			return 0, ov, badRequest("covers " + meal + ": " + err.Error())
		}
		if ov.CoversPerDay == nil {
			ov.CoversPerDay = map[string]float64{}
		}
		ov.CoversPerDay[strings.TrimSpace(meal)] = f
	}
	return year, ov, nil
}

func parseVolume(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f < 0 {
		return 0, errors.New("must be a non-negative number")
	}
	return f, nil
}

func first(q map[string][]string, key string) string {
	if v := q[key]; len(v) > 0 {
		return v[0]
	}
	return ""
}
