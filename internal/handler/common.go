package handler // handler implements the HTTP layer over the service and repository packages

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/brightwood-pta/portal/internal/model"
)

// getUserID extracts the user_id claim from echo.Context as uint64.  The JWT
// middleware stores claims untyped, and numeric JWT claims decode as float64,
// so several representations are accepted.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// currentRole returns the role claim, or "" when the caller is anonymous.
func currentRole(c echo.Context) string {
	if role, ok := c.Get("role").(string); ok {
		return role
	}
	return ""
}

// isElevated reports whether the caller holds an admin or editor profile.
func isElevated(c echo.Context) bool {
	switch currentRole(c) {
	case model.RoleAdmin, model.RoleEditor:
		return true
	}
	return false
}

// queryID parses a numeric query parameter, returning 0 when absent or
// malformed.
func queryID(c echo.Context, name string) uint64 {
	n, err := strconv.ParseUint(c.QueryParam(name), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// paramID parses the :id path parameter, returning 0 when malformed.
func paramID(c echo.Context) uint64 {
	n, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// queryFlag interprets ?name=true|1 style query flags.
func queryFlag(c echo.Context, name string) bool {
	switch c.QueryParam(name) {
	case "true", "1":
		return true
	}
	return false
}
