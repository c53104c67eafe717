package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"hotelier/internal/domain"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"
)

type AnalyticsService struct {
	repo       domain.Repository
	exportPath string
	logger     *zerolog.Logger
}

func NewAnalyticsService(repo domain.Repository, exportPath string, logger *zerolog.Logger) *AnalyticsService {
	return &AnalyticsService{repo: repo, exportPath: exportPath, logger: logger}
}

// DashboardStats aggregates the admin dashboard counters in one pass.
func (s *AnalyticsService) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	var err error
	if stats.RoomsByStatus, err = s.repo.CountRoomsByStatus(ctx); err != nil {
		return nil, err
	}
	if stats.BookingsByStatus, err = s.repo.CountBookingsByStatus(ctx); err != nil {
		return nil, err
	}
	if stats.OrdersByStatus, err = s.repo.CountOrdersByStatus(ctx); err != nil {
		return nil, err
	}
	if stats.MaintenanceByPrio, err = s.repo.CountOpenMaintenanceByPriority(ctx); err != nil {
		return nil, err
	}
	for _, count := range stats.MaintenanceByPrio {
		stats.OpenMaintenance += count
	}
	if stats.TotalGuests, err = s.repo.CountProfilesByRole(ctx, models.RoleGuest); err != nil {
		return nil, err
	}
	if stats.ApprovedRevenue, err = s.repo.SumApprovedRevenue(ctx); err != nil {
		return nil, err
	}
	if stats.DeliveredFoodAmount, err = s.repo.SumDeliveredOrderAmount(ctx); err != nil {
		return nil, err
	}
	return stats, nil
}

// ExportBookings writes an xlsx report of bookings in the range and returns
// the file path.
func (s *AnalyticsService) ExportBookings(ctx context.Context, start, end time.Time) (string, error) {
	if err := os.MkdirAll(s.exportPath, 0o755); err != nil {
		return "", fmt.Errorf("error creating export directory: %v", err)
	}

	bookings, err := s.repo.ListBookingsByDateRange(ctx, start, end)
	if err != nil {
		return "", fmt.Errorf("error getting bookings: %v", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheetName = "Bookings"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		return "", fmt.Errorf("error creating sheet: %v", err)
	}
	f.SetActiveSheet(index)

	_ = f.SetCellValue(sheetName, "A1", fmt.Sprintf("Period: %s - %s",
		start.Format(models.DateLayout), end.Format(models.DateLayout)))
	_ = f.MergeCell(sheetName, "A1", "H1")
	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	_ = f.SetCellStyle(sheetName, "A1", "A1", titleStyle)

	headers := []string{"ID", "Room", "Guest", "Check-in", "Check-out", "Guests", "Status", "Total"}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(sheetName, cell, header)
		_ = f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	rooms := make(map[int64]string)
	for i, booking := range bookings {
		row := i + 3
		number, ok := rooms[booking.RoomID]
		if !ok {
			if room, err := s.repo.GetRoom(ctx, booking.RoomID); err == nil {
				number = room.Number
			}
			rooms[booking.RoomID] = number
		}

		_ = f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), booking.ID)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), number)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), booking.GuestID)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), booking.CheckIn.Format(models.DateLayout))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), booking.CheckOut.Format(models.DateLayout))
		_ = f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), booking.NumberOfGuests)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), booking.Status)
		_ = f.SetCellValue(sheetName, fmt.Sprintf("H%d", row), booking.TotalPrice)

		if styleID, err := statusRowStyle(f, booking.Status); err == nil {
			_ = f.SetCellStyle(sheetName, fmt.Sprintf("G%d", row), fmt.Sprintf("G%d", row), styleID)
		}
	}

	_ = f.SetColWidth(sheetName, "A", "A", 8)
	_ = f.SetColWidth(sheetName, "B", "E", 14)
	_ = f.SetColWidth(sheetName, "F", "H", 10)
	_ = f.DeleteSheet("Sheet1")

	fileName := fmt.Sprintf("bookings_%s_to_%s.xlsx",
		start.Format(models.DateLayout), end.Format(models.DateLayout))
	filePath := filepath.Join(s.exportPath, fileName)

	if err := f.SaveAs(filePath); err != nil {
		return "", fmt.Errorf("error saving file: %v", err)
	}

	s.logger.Info().Str("file_path", filePath).Msg("bookings export created")
	return filePath, nil
}

func statusRowStyle(f *excelize.File, status string) (int, error) {
	var color string
	switch status {
	case models.BookingApproved:
		color = "#C6EFCE"
	case models.BookingPending:
		color = "#FFEB9C"
	default:
		color = "#FFC7CE"
	}
	return f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
	})
}
