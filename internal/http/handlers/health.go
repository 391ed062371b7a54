package handlers

import "net/http"

// Health is unconditional: it never touches the store or the provider.
func (a *App) Health(w http.ResponseWriter, _ *http.Request) {
	a.json(w, http.StatusOK, map[string]any{"ok": true, "store": a.StoreDriver})
}
