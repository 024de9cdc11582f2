// Package report renders the admin summary report as a PDF document.
package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"hostel-management-backend/internal/model"
	"hostel-management-backend/internal/store"
)

// Summary is the data set rendered into a report.
type Summary struct {
	GeneratedAt      time.Time
	Stats            *store.DashboardStats
	RecentBookings   []model.Booking
	RecentComplaints []model.Complaint
}

// BuildPDF renders the summary into a PDF and returns its bytes.
func BuildPDF(s Summary) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Hostel Management Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, "Hostel Management Report", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 8, "Generated "+s.GeneratedAt.Format("2006-01-02 15:04 MST"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeStats(pdf, s.Stats)
	writeBookings(pdf, s.RecentBookings)
	writeComplaints(pdf, s.RecentComplaints)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF report: %w", err)
	}
	return buf.Bytes(), nil
}

func sectionHeader(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
}

func writeStats(pdf *fpdf.Fpdf, stats *store.DashboardStats) {
	sectionHeader(pdf, "Overview")

	rows := []struct {
		label string
		value string
	}{
		{"Students", fmt.Sprintf("%d", stats.TotalStudents)},
		{"Rooms (available/total)", fmt.Sprintf("%d / %d", stats.AvailableRooms, stats.TotalRooms)},
		{"Bookings (requested/total)", fmt.Sprintf("%d / %d", stats.RequestedBookings, stats.TotalBookings)},
		{"Complaints (open/total)", fmt.Sprintf("%d / %d", stats.OpenComplaints, stats.TotalComplaints)},
		{"Feedback entries", fmt.Sprintf("%d", stats.TotalFeedback)},
		{"Revenue", fmt.Sprintf("%.2f", stats.TotalRevenue)},
	}
	for _, r := range rows {
		pdf.CellFormat(70, 7, r.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 7, r.value, "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func writeBookings(pdf *fpdf.Fpdf, bookings []model.Booking) {
	sectionHeader(pdf, "Recent Bookings")
	if len(bookings) == 0 {
		pdf.CellFormat(0, 7, "none", "", 1, "L", false, 0, "")
		pdf.Ln(4)
		return
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(15, 7, "ID", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Room", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Check-in", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Check-out", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Status", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Amount", "1", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	for _, b := range bookings {
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", b.ID), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, b.Room.RoomNumber, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, b.CheckInDate.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, b.CheckOutDate.Format("2006-01-02"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, string(b.Status), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%.2f", b.TotalAmount), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func writeComplaints(pdf *fpdf.Fpdf, complaints []model.Complaint) {
	sectionHeader(pdf, "Recent Complaints")
	if len(complaints) == 0 {
		pdf.CellFormat(0, 7, "none", "", 1, "L", false, 0, "")
		return
	}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(15, 7, "ID", "1", 0, "L", false, 0, "")
	pdf.CellFormat(70, 7, "Title", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 7, "Category", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Priority", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Status", "1", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	for _, c := range complaints {
		title := c.Title
		if len(title) > 40 {
			title = title[:37] + "..."
		}
		pdf.CellFormat(15, 7, fmt.Sprintf("%d", c.ID), "1", 0, "L", false, 0, "")
		pdf.CellFormat(70, 7, title, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, string(c.Category), "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, string(c.Priority), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, string(c.Status), "1", 1, "L", false, 0, "")
	}
}
