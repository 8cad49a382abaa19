package dashboard

type BookingStats struct {
	Total     int64 `json:"total"`
	Today     int64 `json:"today"`
	Pending   int64 `json:"pending"`
	Confirmed int64 `json:"confirmed"`
	Completed int64 `json:"completed"`
	Cancelled int64 `json:"cancelled"`
}

type RevenueStats struct {
	Total     float64 `json:"total"`
	ThisMonth float64 `json:"thisMonth"`
}

type ConsultationStats struct {
	Total      int64 `json:"total"`
	Scheduled  int64 `json:"scheduled"`
	InProgress int64 `json:"inProgress"`
	Completed  int64 `json:"completed"`
	Cancelled  int64 `json:"cancelled"`
}

type Stats struct {
	Bookings      BookingStats      `json:"bookings"`
	Revenue       RevenueStats      `json:"revenue"`
	Customers     int64             `json:"customers"`
	Consultations ConsultationStats `json:"consultations"`
}

// Share is one slice of a distribution chart.
type Share struct {
	Key     string `json:"key"`
	Count   int64  `json:"count"`
	Percent int    `json:"percent"`
}

type BranchRevenue struct {
	BranchID   int64   `json:"branchId"`
	BranchName string  `json:"branchName"`
	Bookings   int64   `json:"bookings"`
	Revenue    float64 `json:"revenue"`
	Percent    int     `json:"percent"`
}

type AnimalShare struct {
	Type     string `json:"type"`
	Bookings int64  `json:"bookings"`
	Animals  int64  `json:"animals"`
	Percent  int    `json:"percent"`
}

type Period string

const (
	PeriodDay   Period = "day"
	PeriodMonth Period = "month"
)

type TrendPoint struct {
	Label     string  `json:"label"`
	Bookings  int64   `json:"bookings"`
	Completed int64   `json:"completed"`
	Cancelled int64   `json:"cancelled"`
	Revenue   float64 `json:"revenue"`
}
