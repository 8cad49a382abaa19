package booking

type CreateBookingRequest struct {
	CustomerID      int64  `json:"customerId" validate:"required,gt=0"`
	BranchID        int64  `json:"branchId" validate:"required,gt=0"`
	DoctorID        *int64 `json:"doctorId" validate:"omitempty,gt=0"`
	AnimalID        int64  `json:"animalId" validate:"required,gt=0"`
	VaccinationID   int64  `json:"vaccinationId" validate:"required,gt=0"`
	AppointmentDate string `json:"appointmentDate" validate:"required,datetime=2006-01-02"`
	AppointmentTime string `json:"appointmentTime" validate:"required,hhmm"`
	OfferID         *int64 `json:"offerId" validate:"omitempty,gt=0"`
	PaymentMethod   string `json:"paymentMethod" validate:"omitempty,oneof=cash card transfer"`
	Notes           string `json:"notes" validate:"omitempty,max=2000"`
}

// CustomerBookingRequest is what the mobile app sends; the customer comes from the path.
type CustomerBookingRequest struct {
	BranchID        int64  `json:"branchId" validate:"required,gt=0"`
	DoctorID        *int64 `json:"doctorId" validate:"omitempty,gt=0"`
	AnimalID        int64  `json:"animalId" validate:"required,gt=0"`
	VaccinationID   int64  `json:"vaccinationId" validate:"required,gt=0"`
	AppointmentDate string `json:"appointmentDate" validate:"required,datetime=2006-01-02"`
	AppointmentTime string `json:"appointmentTime" validate:"required,hhmm"`
	OfferID         *int64 `json:"offerId" validate:"omitempty,gt=0"`
	Notes           string `json:"notes" validate:"omitempty,max=2000"`
}

type UpdateBookingRequest struct {
	BranchID        *int64   `json:"branchId" validate:"omitempty,gt=0"`
	DoctorID        *int64   `json:"doctorId" validate:"omitempty,gt=0"`
	AppointmentDate *string  `json:"appointmentDate" validate:"omitempty,datetime=2006-01-02"`
	AppointmentTime *string  `json:"appointmentTime" validate:"omitempty,hhmm"`
	Price           *float64 `json:"price" validate:"omitempty,gte=0"`
	Paid            *bool    `json:"paid"`
	PaymentMethod   *string  `json:"paymentMethod" validate:"omitempty,oneof=cash card transfer"`
	Notes           *string  `json:"notes" validate:"omitempty,max=2000"`
}

// onlyNotes reports whether the request touches nothing but notes.
func (r *UpdateBookingRequest) onlyNotes() bool {
	return r.BranchID == nil && r.DoctorID == nil && r.AppointmentDate == nil &&
		r.AppointmentTime == nil && r.Price == nil && r.Paid == nil && r.PaymentMethod == nil
}

type UpdateStatusRequest struct {
	Status        string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
	CancelReason  string `json:"cancelReason" validate:"omitempty,max=1000"`
	Paid          *bool  `json:"paid"`
	PaymentMethod string `json:"paymentMethod" validate:"omitempty,oneof=cash card transfer"`
}

type CancelRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=1000"`
}

type ListFilter struct {
	Status     string
	BranchID   *int64
	DoctorID   *int64
	CustomerID *int64
	DateFrom   string
	DateTo     string
	Search     string
	Page       int
	Limit      int
}

type Availability struct {
	BranchID  int64    `json:"branchId"`
	DoctorID  *int64   `json:"doctorId,omitempty"`
	Date      string   `json:"date"`
	Closed    bool     `json:"closed"`
	Slots     []string `json:"slots"`
	Booked    []string `json:"booked"`
	Available []string `json:"available"`
}
