package consultation

type CreateConsultationRequest struct {
	CustomerID    int64   `json:"customerId" validate:"required,gt=0"`
	DoctorID      int64   `json:"doctorId" validate:"required,gt=0"`
	AnimalID      int64   `json:"animalId" validate:"required,gt=0"`
	Type          string  `json:"type" validate:"required,oneof=phone video"`
	ScheduledDate string  `json:"scheduledDate" validate:"required,datetime=2006-01-02"`
	ScheduledTime string  `json:"scheduledTime" validate:"required,hhmm"`
	Duration      int     `json:"duration" validate:"omitempty,gte=5,lte=240"`
	Reason        string  `json:"reason" validate:"omitempty,max=2000"`
	Price         float64 `json:"price" validate:"gte=0"`
	Notes         string  `json:"notes" validate:"omitempty,max=2000"`
}

type CustomerConsultationRequest struct {
	DoctorID      int64  `json:"doctorId" validate:"required,gt=0"`
	AnimalID      int64  `json:"animalId" validate:"required,gt=0"`
	Type          string `json:"type" validate:"required,oneof=phone video"`
	ScheduledDate string `json:"scheduledDate" validate:"required,datetime=2006-01-02"`
	ScheduledTime string `json:"scheduledTime" validate:"required,hhmm"`
	Reason        string `json:"reason" validate:"omitempty,max=2000"`
}

type UpdateConsultationRequest struct {
	DoctorID      *int64   `json:"doctorId" validate:"omitempty,gt=0"`
	Type          *string  `json:"type" validate:"omitempty,oneof=phone video"`
	ScheduledDate *string  `json:"scheduledDate" validate:"omitempty,datetime=2006-01-02"`
	ScheduledTime *string  `json:"scheduledTime" validate:"omitempty,hhmm"`
	Duration      *int     `json:"duration" validate:"omitempty,gte=5,lte=240"`
	Reason        *string  `json:"reason" validate:"omitempty,max=2000"`
	Price         *float64 `json:"price" validate:"omitempty,gte=0"`
	Paid          *bool    `json:"paid"`
	Notes         *string  `json:"notes" validate:"omitempty,max=2000"`
}

type MedicationInput struct {
	Name      string `json:"name" validate:"required,max=255"`
	Dosage    string `json:"dosage" validate:"omitempty,max=255"`
	Frequency string `json:"frequency" validate:"omitempty,max=255"`
	Duration  string `json:"duration" validate:"omitempty,max=255"`
}

type UpdateStatusRequest struct {
	Status       string            `json:"status" validate:"required,oneof=scheduled in_progress completed cancelled"`
	Diagnosis    string            `json:"diagnosis" validate:"omitempty,max=5000"`
	Treatment    string            `json:"treatment" validate:"omitempty,max=5000"`
	Medications  []MedicationInput `json:"medications" validate:"omitempty,dive"`
	CancelReason string            `json:"cancelReason" validate:"omitempty,max=1000"`
}

func (r *UpdateStatusRequest) outcome() Outcome {
	out := Outcome{Diagnosis: r.Diagnosis, Treatment: r.Treatment}
	for _, m := range r.Medications {
		out.Medications = append(out.Medications, Medication(m))
	}
	return out
}

type CancelRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=1000"`
}

type ListFilter struct {
	Status     string
	Type       string
	DoctorID   *int64
	CustomerID *int64
	DateFrom   string
	DateTo     string
	Search     string
	Page       int
	Limit      int
}
