package server

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// seriesQuery holds the query parameters of /api/series and /api/records.
type seriesQuery struct {
	Mode   string `json:"mode" validate:"omitempty,oneof=monthly yearly weekly"`
	Window int    `json:"window" validate:"omitempty,min=1,max=31"`
}

// chartQuery holds the query parameters of /api/chart.
type chartQuery struct {
	seriesQuery
	Kind   string  `json:"kind" validate:"omitempty,oneof=line progress bar compact"`
	Series string  `json:"series" validate:"omitempty,oneof=steps completed leads"`
	Width  float64 `json:"width" validate:"omitempty,gt=0,lte=10000"`
	Height float64 `json:"height" validate:"omitempty,gt=0,lte=10000"`
}

// newValidator reports field errors under their query parameter names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func parseSeriesQuery(values url.Values) (seriesQuery, error) {
	q := seriesQuery{Mode: values.Get("mode")}
	if raw := values.Get("window"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return q, fmt.Errorf("window: %q is not an integer", raw)
		}
		q.Window = n
	}
	return q, nil
}

func parseChartQuery(values url.Values) (chartQuery, error) {
	base, err := parseSeriesQuery(values)
	if err != nil {
		return chartQuery{}, err
	}
	q := chartQuery{
		seriesQuery: base,
		Kind:        values.Get("kind"),
		Series:      values.Get("series"),
	}
	if q.Width, err = parseDimension(values, "width"); err != nil {
		return q, err
	}
	if q.Height, err = parseDimension(values, "height"); err != nil {
		return q, err
	}
	return q, nil
}

func parseDimension(values url.Values, name string) (float64, error) {
	raw := values.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", name, raw)
	}
	return v, nil
}

// validationMessage flattens validator errors into a single line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s: failed '%s=%s' validation", fe.Field(), fe.Tag(), fe.Param()))
		} else {
			msgs = append(msgs, fmt.Sprintf("%s: failed '%s' validation", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
