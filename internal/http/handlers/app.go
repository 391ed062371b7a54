// Package handlers implements the route handlers of the itinerary edge API.
// Each handler walks its fixed step sequence and stops at the first failing
// step; every failure maps to exactly one error code and status.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/quota"
	"server/internal/rbac"
)

// Gateway is the generation-provider seam consumed by the itinerary route.
type Gateway interface {
	CreateItinerary(ctx context.Context, req domain.ItineraryRequest) (domain.Draft, error)
}

// App bundles the pipeline components behind the routes. All fields are
// injected so handler tests run with in-memory stand-ins.
type App struct {
	Logger      zerolog.Logger
	Roles       *rbac.Store
	Quota       *quota.Ledger
	Gateway     Gateway
	StoreDriver string
}

func NewApp(logger zerolog.Logger, roles *rbac.Store, ledger *quota.Ledger, gateway Gateway, storeDriver string) *App {
	return &App{
		Logger:      logger,
		Roles:       roles,
		Quota:       ledger,
		Gateway:     gateway,
		StoreDriver: storeDriver,
	}
}

func (a *App) json(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, status int, code string) {
	a.json(w, status, map[string]string{"error": code})
}

// internalError logs the cause and answers with an opaque 500. Store
// unavailability is fatal for the request, never silently defaulted.
func (a *App) internalError(w http.ResponseWriter, r *http.Request, err error) {
	a.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	a.error(w, http.StatusInternalServerError, "internal")
}

// NotFound answers every unmatched route.
func (a *App) NotFound(w http.ResponseWriter, _ *http.Request) {
	a.error(w, http.StatusNotFound, "not_found")
}
