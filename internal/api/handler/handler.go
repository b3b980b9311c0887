// Package handler provides HTTP handlers for the ClimateGuard API.
package handler

import (
	"net/http"
	"strconv"
)

// queryInt parses an integer query parameter, falling back to def and
// clamping to [0, max]. max <= 0 means no upper bound.
func queryInt(r *http.Request, name string, def, max int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return def
	}
	if max > 0 && v > max {
		return max
	}
	return v
}
