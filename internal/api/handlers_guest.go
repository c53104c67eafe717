package api

import (
	"net/http"
	"strconv"
	"time"

	"hotelier/internal/models"
	"hotelier/internal/service"
)

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse(models.DateLayout, raw)
}

func (s *Server) handleSearchRooms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	checkIn, err := parseDate(query.Get("check_in"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid check_in; expected YYYY-MM-DD")
		return
	}
	checkOut, err := parseDate(query.Get("check_out"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid check_out; expected YYYY-MM-DD")
		return
	}
	guests, _ := strconv.Atoi(query.Get("guests"))

	rooms, err := s.rooms.SearchAvailable(r.Context(), checkIn, checkOut, guests)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": rooms})
}

func (s *Server) handleRequestBooking(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RoomID         int64  `json:"room_id"`
		CheckIn        string `json:"check_in"`
		CheckOut       string `json:"check_out"`
		NumberOfGuests int    `json:"number_of_guests"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	checkIn, err := parseDate(body.CheckIn)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid check_in; expected YYYY-MM-DD")
		return
	}
	checkOut, err := parseDate(body.CheckOut)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid check_out; expected YYYY-MM-DD")
		return
	}
	if body.NumberOfGuests < 1 {
		body.NumberOfGuests = 1
	}

	guest := profileFrom(r.Context())
	booking, err := s.bookings.RequestBooking(r.Context(), guest.ID, body.RoomID, checkIn, checkOut, body.NumberOfGuests)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, booking)
}

func (s *Server) handleMyBookings(w http.ResponseWriter, r *http.Request) {
	guest := profileFrom(r.Context())
	bookings, err := s.bookings.ListByGuest(r.Context(), guest.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": bookings})
}

// handleMyRoom returns the room of the guest's current approved stay.
func (s *Server) handleMyRoom(w http.ResponseWriter, r *http.Request) {
	guest := profileFrom(r.Context())
	stay, err := s.bookings.CurrentStay(r.Context(), guest.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if stay == nil {
		writeError(w, http.StatusNotFound, "no active stay")
		return
	}

	room, err := s.rooms.GetRoom(r.Context(), stay.RoomID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"room": room, "booking": stay})
}

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, profileFrom(r.Context()))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var body struct {
		FullName string `json:"full_name"`
		Phone    string `json:"phone"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	guest := profileFrom(r.Context())
	profile, err := s.profiles.UpdateProfile(r.Context(), guest.ID, body.FullName, body.Phone)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleOpenMaintenance(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RoomID      int64  `json:"room_id"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Priority    string `json:"priority"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	guest := profileFrom(r.Context())
	if body.RoomID == 0 {
		// Default to the room of the current stay.
		stay, err := s.bookings.CurrentStay(r.Context(), guest.ID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if stay == nil {
			writeError(w, http.StatusBadRequest, "room_id is required without an active stay")
			return
		}
		body.RoomID = stay.RoomID
	}

	req := &models.MaintenanceRequest{
		RoomID:      body.RoomID,
		GuestID:     guest.ID,
		Title:       body.Title,
		Description: body.Description,
		Priority:    body.Priority,
	}
	if err := s.maintenance.OpenRequest(r.Context(), req); err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

func (s *Server) handleMyMaintenance(w http.ResponseWriter, r *http.Request) {
	guest := profileFrom(r.Context())
	requests, err := s.maintenance.ListByGuest(r.Context(), guest.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"requests": requests})
}

func (s *Server) handleGuestMenu(w http.ResponseWriter, r *http.Request) {
	items, err := s.menu.ListItems(r.Context(), true)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handlePlaceOrder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Items         []service.OrderLine `json:"items"`
		PaymentMethod string              `json:"payment_method"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	guest := profileFrom(r.Context())
	order, err := s.orders.PlaceOrder(r.Context(), guest.ID, body.Items, body.PaymentMethod)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, order)
}

func (s *Server) handleMyOrders(w http.ResponseWriter, r *http.Request) {
	guest := profileFrom(r.Context())
	orders, err := s.orders.ListByGuest(r.Context(), guest.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (s *Server) handleCancelOrder(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}
	var body struct {
		Version int64 `json:"version"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	guest := profileFrom(r.Context())
	order, err := s.orders.CancelOwn(r.Context(), guest.ID, id, body.Version)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}
