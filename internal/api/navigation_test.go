package api

import (
	"testing"

	"hotelier/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestResolveRoute(t *testing.T) {
	tests := []struct {
		name          string
		role          models.Role
		authenticated bool
		path          string
		want          Resolution
	}{
		{"anonymous on root", "", false, "/", Resolution{Allowed: true}},
		{"anonymous on login", "", false, RouteLogin, Resolution{Allowed: true}},
		{"anonymous on signup", "", false, RouteSignup, Resolution{Allowed: true}},
		{"anonymous on guest page", "", false, "/guest/bookings", Resolution{RedirectTo: RouteLogin}},
		{"anonymous on admin page", "", false, "/admin/rooms", Resolution{RedirectTo: RouteLogin}},

		{"guest on login goes home", models.RoleGuest, true, RouteLogin, Resolution{RedirectTo: RouteGuestHome}},
		{"admin on root goes home", models.RoleAdmin, true, "/", Resolution{RedirectTo: RouteAdminHome}},

		{"guest on own dashboard", models.RoleGuest, true, RouteGuestHome, Resolution{Allowed: true}},
		{"guest on food order", models.RoleGuest, true, "/guest/food-order", Resolution{Allowed: true}},
		{"guest on admin page redirected silently", models.RoleGuest, true, "/admin/rooms", Resolution{RedirectTo: RouteGuestHome}},

		{"admin on own dashboard", models.RoleAdmin, true, RouteAdminHome, Resolution{Allowed: true}},
		{"admin on book requests", models.RoleAdmin, true, "/admin/book-requests", Resolution{Allowed: true}},
		{"admin on guest page redirected silently", models.RoleAdmin, true, "/guest/bookings", Resolution{RedirectTo: RouteAdminHome}},

		{"unknown path goes home", models.RoleGuest, true, "/guest/unknown", Resolution{RedirectTo: RouteGuestHome}},
		{"unprefixed path goes home", models.RoleAdmin, true, "/settings", Resolution{RedirectTo: RouteAdminHome}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRoute(tt.role, tt.authenticated, tt.path))
		})
	}
}
