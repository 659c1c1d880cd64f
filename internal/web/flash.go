// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
)

// flashCookie carries flash messages across a redirect. It is written
// before redirecting and consumed (and cleared) on the next page load.
const flashCookie = "pdf2tex_flash"

// setFlashes stores flashes in the flash cookie.
func setFlashes(w http.ResponseWriter, flashes []Flash) {
	if len(flashes) == 0 {
		return
	}
	data, err := json.Marshal(flashes)
	if err != nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.URLEncoding.EncodeToString(data),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlashes returns any pending flash messages and clears the cookie.
// A malformed cookie is silently discarded.
func popFlashes(w http.ResponseWriter, r *http.Request) []Flash {
	cookie, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	data, err := base64.URLEncoding.DecodeString(cookie.Value)
	if err != nil {
		return nil
	}
	var flashes []Flash
	if err := json.Unmarshal(data, &flashes); err != nil {
		return nil
	}
	return flashes
}
