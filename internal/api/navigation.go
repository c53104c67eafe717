package api

import (
	"strings"

	"hotelier/internal/models"
)

// Resolution is the outcome of routing a user to a path. A disallowed path
// never errors: the user is redirected and nothing leaks about why.
type Resolution struct {
	Allowed    bool   `json:"allowed"`
	RedirectTo string `json:"redirect_to,omitempty"`
}

const (
	RouteLogin     = "/login"
	RouteSignup    = "/signup"
	RouteAdminHome = "/admin/dashboard"
	RouteGuestHome = "/guest/dashboard"
)

var adminRoutes = map[string]bool{
	RouteAdminHome:         true,
	"/admin/rooms":         true,
	"/admin/guests":        true,
	"/admin/book-requests": true,
	"/admin/maintenance":   true,
	"/admin/analytics":     true,
}

var guestRoutes = map[string]bool{
	RouteGuestHome:       true,
	"/guest/profile":     true,
	"/guest/book-room":   true,
	"/guest/bookings":    true,
	"/guest/my-room":     true,
	"/guest/maintenance": true,
	"/guest/food-order":  true,
	"/guest/orders":      true,
}

func roleHome(role models.Role) string {
	if role == models.RoleAdmin {
		return RouteAdminHome
	}
	return RouteGuestHome
}

// ResolveRoute decides whether a user may land on a logical route. It is a
// pure function of role, authentication state and path.
func ResolveRoute(role models.Role, authenticated bool, path string) Resolution {
	public := path == "/" || path == RouteLogin || path == RouteSignup

	if !authenticated {
		if public {
			return Resolution{Allowed: true}
		}
		return Resolution{RedirectTo: RouteLogin}
	}

	// Signed-in users never see the public pages; they go home.
	if public {
		return Resolution{RedirectTo: roleHome(role)}
	}

	switch {
	case strings.HasPrefix(path, "/admin/"):
		if role == models.RoleAdmin && adminRoutes[path] {
			return Resolution{Allowed: true}
		}
	case strings.HasPrefix(path, "/guest/"):
		if role == models.RoleGuest && guestRoutes[path] {
			return Resolution{Allowed: true}
		}
	}

	return Resolution{RedirectTo: roleHome(role)}
}
