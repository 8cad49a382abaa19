package dashboard

import (
	"context"
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize"

	"vetclinic/internal/access"
	"vetclinic/internal/domain/booking"
)

const bookingsSheet = "Bookings"

var bookingColumns = []string{
	"Booking Number", "Date", "Time", "Status", "Customer", "Phone", "Branch ID",
	"Animal", "Animal Type", "Heads", "Vaccination", "Price", "Discount", "Total", "Paid", "Payment Method",
}

// ExportBookings writes the bookings in scope matching f as an xlsx workbook.
func (s *Service) ExportBookings(ctx context.Context, scope access.Scope, f booking.ListFilter, w io.Writer) (int, error) {
	list, err := s.bookings.Export(ctx, scope, f)
	if err != nil {
		return 0, err
	}
	file := BookingsWorkbook(list)
	if err := file.Write(w); err != nil {
		return 0, fmt.Errorf("write workbook: %w", err)
	}
	return len(list), nil
}

// BookingsWorkbook lays out one header row and one row per booking.
func BookingsWorkbook(list []booking.Booking) *excelize.File {
	file := excelize.NewFile()
	idx := file.NewSheet(bookingsSheet)
	file.DeleteSheet("Sheet1")
	file.SetActiveSheet(idx)

	for i, h := range bookingColumns {
		file.SetCellValue(bookingsSheet, cell(i, 1), h)
	}
	for r, b := range list {
		row := r + 2
		values := []any{
			b.BookingNumber,
			b.AppointmentDate,
			b.AppointmentTime,
			string(b.Status),
			b.CustomerName,
			b.CustomerPhone,
			b.BranchID,
			b.Animal.Name,
			b.Animal.Type,
			b.Animal.Count,
			b.Vaccination.NameEn,
			b.Price,
			b.Discount,
			b.TotalAmount,
			b.Paid,
			b.PaymentMethod,
		}
		for i, v := range values {
			file.SetCellValue(bookingsSheet, cell(i, row), v)
		}
	}
	return file
}

func cell(col, row int) string {
	return fmt.Sprintf("%s%d", excelize.ToAlphaString(col), row)
}
