// Package validation checks inbound generation payloads. All violations are
// reported together so clients see every problem in one response.
package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"server/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// report fields by their json names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type itineraryPayload struct {
	StartCity string `json:"startCity" validate:"required"`
	EndCity   string `json:"endCity" validate:"required"`
	StartDate string `json:"startDate" validate:"required"`
	EndDate   string `json:"endDate" validate:"required"`
}

// ValidateItinerary reports whether the request is acceptable for the
// generation gateway. Cities are trimmed before checking so whitespace-only
// values fail; dates only need to be present at this layer. Pure function.
func ValidateItinerary(req domain.ItineraryRequest) (bool, []string) {
	payload := itineraryPayload{
		StartCity: strings.TrimSpace(req.StartCity),
		EndCity:   strings.TrimSpace(req.EndCity),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}

	err := validate.Struct(payload)
	if err == nil {
		return true, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return false, []string{"invalid request"}
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fe.Field()+" is required")
	}
	return false, msgs
}
