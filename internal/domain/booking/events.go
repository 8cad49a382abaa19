package booking

import (
	"fmt"

	"vetclinic/internal/domain/notification"
)

var customerChannels = []notification.Channel{notification.ChannelInApp, notification.ChannelWhatsApp}

func eventData(b *Booking) map[string]any {
	return map[string]any{
		"bookingId":       b.ID,
		"bookingNumber":   b.BookingNumber,
		"branchId":        b.BranchID,
		"appointmentDate": b.AppointmentDate,
		"appointmentTime": b.AppointmentTime,
		"status":          string(b.Status),
	}
}

func audience(b *Booking) ([]int64, []int64) {
	var users []int64
	if b.DoctorID != nil {
		users = append(users, *b.DoctorID)
	}
	return users, []int64{b.CustomerID}
}

func createdEvent(b *Booking) notification.Event {
	users, customers := audience(b)
	return notification.Event{
		Type:  notification.TypeBookingCreated,
		Title: "Booking received",
		Body: fmt.Sprintf("Booking %s for %s on %s at %s has been received.",
			b.BookingNumber, b.Vaccination.NameEn, b.AppointmentDate, b.AppointmentTime),
		UserIDs:     users,
		CustomerIDs: customers,
		Data:        eventData(b),
		Channels:    customerChannels,
	}
}

func statusEvent(b *Booking) notification.Event {
	users, customers := audience(b)
	e := notification.Event{
		UserIDs:     users,
		CustomerIDs: customers,
		Data:        eventData(b),
		Channels:    customerChannels,
	}
	switch b.Status {
	case StatusConfirmed:
		e.Type = notification.TypeBookingConfirmed
		e.Title = "Booking confirmed"
		e.Body = fmt.Sprintf("Booking %s is confirmed for %s at %s.", b.BookingNumber, b.AppointmentDate, b.AppointmentTime)
	case StatusCancelled:
		e.Type = notification.TypeBookingCancelled
		e.Title = "Booking cancelled"
		e.Body = fmt.Sprintf("Booking %s was cancelled: %s", b.BookingNumber, b.CancelReason)
	case StatusCompleted:
		e.Type = notification.TypeBookingCompleted
		e.Title = "Vaccination completed"
		e.Body = fmt.Sprintf("Booking %s is completed. Thank you for visiting.", b.BookingNumber)
		e.UserIDs = nil
	default:
		e.Type = notification.TypeBookingCreated
		e.Title = "Booking updated"
		e.Body = fmt.Sprintf("Booking %s is now %s.", b.BookingNumber, b.Status)
	}
	return e
}

func reminderEvent(b *Booking) notification.Event {
	return notification.Event{
		Type:  notification.TypeBookingReminder,
		Title: "Appointment reminder",
		Body: fmt.Sprintf("Reminder: %s for %s tomorrow at %s (booking %s).",
			b.Vaccination.NameEn, b.Animal.Name, b.AppointmentTime, b.BookingNumber),
		CustomerIDs: []int64{b.CustomerID},
		Data:        eventData(b),
		Channels:    customerChannels,
	}
}
