package validation

import (
	"slices"
	"testing"

	"server/internal/domain"
)

func TestValidateItinerary(t *testing.T) {
	tests := []struct {
		name     string
		req      domain.ItineraryRequest
		wantOK   bool
		wantErrs []string
	}{
		{
			name: "complete request",
			req: domain.ItineraryRequest{
				StartCity: "Chennai",
				EndCity:   "Mumbai",
				StartDate: "2026-01-23T04:30:00Z",
				EndDate:   "2026-01-26T10:00:00Z",
			},
			wantOK: true,
		},
		{
			name: "missing cities and dates",
			req: domain.ItineraryRequest{
				StartCity: "",
				EndCity:   "Mumbai",
				StartDate: "",
			},
			wantErrs: []string{
				"startCity is required",
				"startDate is required",
				"endDate is required",
			},
		},
		{
			name: "whitespace-only cities",
			req: domain.ItineraryRequest{
				StartCity: "   ",
				EndCity:   "\t",
				StartDate: "2026-01-23",
				EndDate:   "2026-01-26",
			},
			wantErrs: []string{
				"startCity is required",
				"endCity is required",
			},
		},
		{
			name:   "empty request reports every field",
			req:    domain.ItineraryRequest{},
			wantOK: false,
			wantErrs: []string{
				"startCity is required",
				"endCity is required",
				"startDate is required",
				"endDate is required",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, errs := ValidateItinerary(tc.req)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v (errs: %v)", ok, tc.wantOK, errs)
			}
			if tc.wantOK {
				if len(errs) != 0 {
					t.Fatalf("errs = %v, want none", errs)
				}
				return
			}
			if len(errs) != len(tc.wantErrs) {
				t.Fatalf("errs = %v, want %v", errs, tc.wantErrs)
			}
			for _, want := range tc.wantErrs {
				if !slices.Contains(errs, want) {
					t.Errorf("errs = %v, missing %q", errs, want)
				}
			}
		})
	}
}
