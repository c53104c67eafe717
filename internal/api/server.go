package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"hotelier/internal/config"
	"hotelier/internal/models"
	"hotelier/internal/service"
	"hotelier/internal/session"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Sessions    *session.Manager
	Profiles    *service.ProfileService
	Rooms       *service.RoomService
	Bookings    *service.BookingService
	Maintenance *service.MaintenanceService
	Menu        *service.MenuService
	Orders      *service.OrderService
	Analytics   *service.AnalyticsService
}

type Server struct {
	cfg         config.ServerConfig
	server      *http.Server
	logger      *zerolog.Logger
	limiter     *signinLimiter
	sessions    *session.Manager
	profiles    *service.ProfileService
	rooms       *service.RoomService
	bookings    *service.BookingService
	maintenance *service.MaintenanceService
	menu        *service.MenuService
	orders      *service.OrderService
	analytics   *service.AnalyticsService
}

func NewServer(cfg *config.Config, svc Services, logger *zerolog.Logger) *Server {
	s := &Server{
		cfg:         cfg.Server,
		logger:      logger,
		limiter:     newSigninLimiter(cfg.RateLimit),
		sessions:    svc.Sessions,
		profiles:    svc.Profiles,
		rooms:       svc.Rooms,
		bookings:    svc.Bookings,
		maintenance: svc.Maintenance,
		menu:        svc.Menu,
		orders:      svc.Orders,
		analytics:   svc.Analytics,
	}

	mux := http.NewServeMux()
	s.routes(mux)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           requestLogger(logger, corsHandler.Handler(mux)),
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	// Auth.
	mux.HandleFunc("POST /api/v1/auth/signup", s.handleSignUp)
	mux.HandleFunc("POST /api/v1/auth/signin", s.handleSignIn)
	mux.HandleFunc("POST /api/v1/auth/signout", s.handleSignOut)
	mux.HandleFunc("GET /api/v1/auth/session", s.handleSession)
	mux.HandleFunc("GET /api/v1/navigate", s.handleNavigate)

	// Guest surface.
	guest := func(h http.HandlerFunc) http.HandlerFunc { return s.requireRole(models.RoleGuest, h) }
	mux.HandleFunc("GET /api/v1/guest/rooms", guest(s.handleSearchRooms))
	mux.HandleFunc("POST /api/v1/guest/bookings", guest(s.handleRequestBooking))
	mux.HandleFunc("GET /api/v1/guest/bookings", guest(s.handleMyBookings))
	mux.HandleFunc("GET /api/v1/guest/my-room", guest(s.handleMyRoom))
	mux.HandleFunc("GET /api/v1/guest/profile", guest(s.handleGetProfile))
	mux.HandleFunc("PUT /api/v1/guest/profile", guest(s.handleUpdateProfile))
	mux.HandleFunc("POST /api/v1/guest/maintenance", guest(s.handleOpenMaintenance))
	mux.HandleFunc("GET /api/v1/guest/maintenance", guest(s.handleMyMaintenance))
	mux.HandleFunc("GET /api/v1/guest/menu", guest(s.handleGuestMenu))
	mux.HandleFunc("POST /api/v1/guest/orders", guest(s.handlePlaceOrder))
	mux.HandleFunc("GET /api/v1/guest/orders", guest(s.handleMyOrders))
	mux.HandleFunc("POST /api/v1/guest/orders/{id}/cancel", guest(s.handleCancelOrder))

	// Admin surface.
	admin := func(h http.HandlerFunc) http.HandlerFunc { return s.requireRole(models.RoleAdmin, h) }
	mux.HandleFunc("POST /api/v1/admin/rooms", admin(s.handleCreateRoom))
	mux.HandleFunc("GET /api/v1/admin/rooms", admin(s.handleListRooms))
	mux.HandleFunc("GET /api/v1/admin/rooms/{id}", admin(s.handleGetRoom))
	mux.HandleFunc("PUT /api/v1/admin/rooms/{id}", admin(s.handleUpdateRoom))
	mux.HandleFunc("DELETE /api/v1/admin/rooms/{id}", admin(s.handleDeleteRoom))
	mux.HandleFunc("PATCH /api/v1/admin/rooms/{id}/status", admin(s.handleSetRoomStatus))
	mux.HandleFunc("GET /api/v1/admin/guests", admin(s.handleListGuests))
	mux.HandleFunc("GET /api/v1/admin/bookings", admin(s.handleListBookings))
	mux.HandleFunc("POST /api/v1/admin/bookings/{id}/approve", admin(s.handleApproveBooking))
	mux.HandleFunc("POST /api/v1/admin/bookings/{id}/reject", admin(s.handleRejectBooking))
	mux.HandleFunc("GET /api/v1/admin/maintenance", admin(s.handleListMaintenance))
	mux.HandleFunc("PATCH /api/v1/admin/maintenance/{id}", admin(s.handleAdvanceMaintenance))
	mux.HandleFunc("POST /api/v1/admin/menu", admin(s.handleCreateMenuItem))
	mux.HandleFunc("GET /api/v1/admin/menu", admin(s.handleAdminMenu))
	mux.HandleFunc("PUT /api/v1/admin/menu/{id}", admin(s.handleUpdateMenuItem))
	mux.HandleFunc("DELETE /api/v1/admin/menu/{id}", admin(s.handleDeleteMenuItem))
	mux.HandleFunc("GET /api/v1/admin/orders", admin(s.handleListOrders))
	mux.HandleFunc("PATCH /api/v1/admin/orders/{id}", admin(s.handleAdvanceOrder))
	mux.HandleFunc("PATCH /api/v1/admin/orders/{id}/payment", admin(s.handleSetOrderPayment))
	mux.HandleFunc("GET /api/v1/admin/analytics", admin(s.handleAnalytics))
	mux.HandleFunc("GET /api/v1/admin/analytics/export", admin(s.handleAnalyticsExport))
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("http api listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler exposes the configured handler for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}
