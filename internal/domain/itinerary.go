package domain

import "encoding/json"

// ItineraryRequest is the inbound generation payload. It is validated and
// forwarded to the provider, never persisted.
type ItineraryRequest struct {
	StartCity string `json:"startCity"`
	EndCity   string `json:"endCity"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// Draft is the provider's structured itinerary output, passed through to the
// client verbatim.
type Draft = json.RawMessage
