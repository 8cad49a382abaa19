package dashboard

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/jinzhu/now"

	"vetclinic/internal/access"
	"vetclinic/internal/domain/booking"
	"vetclinic/internal/domain/consultation"
)

const dateLayout = "2006-01-02"

// Percent is round(part/total*100), 0 when total is 0.
func Percent(part, total float64) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(part / total * 100))
}

type BookingExporter interface {
	Export(ctx context.Context, scope access.Scope, f booking.ListFilter) ([]booking.Booking, error)
}

type Service struct {
	repo     *Repository
	bookings BookingExporter
	loc      *time.Location
	now      func() time.Time
}

func NewService(repo *Repository, bookings BookingExporter, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, bookings: bookings, loc: loc, now: time.Now}
}

func (s *Service) clock() *now.Now {
	return now.With(s.now().In(s.loc))
}

func (s *Service) Stats(ctx context.Context, scope access.Scope) (*Stats, error) {
	counts, err := s.repo.BookingStatusCounts(ctx, scope)
	if err != nil {
		return nil, err
	}
	c := s.clock()
	today, err := s.repo.BookingsOn(ctx, scope, c.Format(dateLayout))
	if err != nil {
		return nil, err
	}
	total, err := s.repo.Revenue(ctx, scope, "", "")
	if err != nil {
		return nil, err
	}
	month, err := s.repo.Revenue(ctx, scope,
		c.BeginningOfMonth().Format(dateLayout), c.EndOfMonth().Format(dateLayout))
	if err != nil {
		return nil, err
	}
	customers, err := s.repo.ActiveCustomers(ctx)
	if err != nil {
		return nil, err
	}
	cons, err := s.repo.ConsultationStatusCounts(ctx, scope)
	if err != nil {
		return nil, err
	}

	st := &Stats{
		Bookings: BookingStats{
			Total:     sum(counts),
			Today:     today,
			Pending:   counts[string(booking.StatusPending)],
			Confirmed: counts[string(booking.StatusConfirmed)],
			Completed: counts[string(booking.StatusCompleted)],
			Cancelled: counts[string(booking.StatusCancelled)],
		},
		Revenue:   RevenueStats{Total: round2(total), ThisMonth: round2(month)},
		Customers: customers,
		Consultations: ConsultationStats{
			Total:      sum(cons),
			Scheduled:  cons[string(consultation.StatusScheduled)],
			InProgress: cons[string(consultation.StatusInProgress)],
			Completed:  cons[string(consultation.StatusCompleted)],
			Cancelled:  cons[string(consultation.StatusCancelled)],
		},
	}
	return st, nil
}

// StatusDistribution lists every booking status, including empty ones, in lifecycle order.
func (s *Service) StatusDistribution(ctx context.Context, scope access.Scope) ([]Share, error) {
	counts, err := s.repo.BookingStatusCounts(ctx, scope)
	if err != nil {
		return nil, err
	}
	keys := []string{
		string(booking.StatusPending), string(booking.StatusConfirmed),
		string(booking.StatusCompleted), string(booking.StatusCancelled),
	}
	return shares(keys, counts), nil
}

func (s *Service) ConsultationStatusDistribution(ctx context.Context, scope access.Scope) ([]Share, error) {
	counts, err := s.repo.ConsultationStatusCounts(ctx, scope)
	if err != nil {
		return nil, err
	}
	keys := []string{
		string(consultation.StatusScheduled), string(consultation.StatusInProgress),
		string(consultation.StatusCompleted), string(consultation.StatusCancelled),
	}
	return shares(keys, counts), nil
}

func (s *Service) RevenueByBranch(ctx context.Context, scope access.Scope) ([]BranchRevenue, error) {
	rows, err := s.repo.RevenueByBranch(ctx, scope)
	if err != nil {
		return nil, err
	}
	var total float64
	for _, r := range rows {
		total += r.Revenue
	}
	for i := range rows {
		rows[i].Revenue = round2(rows[i].Revenue)
		rows[i].Percent = Percent(rows[i].Revenue, total)
	}
	if rows == nil {
		rows = []BranchRevenue{}
	}
	return rows, nil
}

// AnimalTypeDistribution counts non-cancelled bookings and vaccinated heads per species.
func (s *Service) AnimalTypeDistribution(ctx context.Context, scope access.Scope) ([]AnimalShare, error) {
	animals, err := s.repo.NonCancelledAnimals(ctx, scope)
	if err != nil {
		return nil, err
	}
	byType := map[string]*AnimalShare{}
	for _, a := range animals {
		t := a.Type
		if t == "" {
			t = "other"
		}
		sh, ok := byType[t]
		if !ok {
			sh = &AnimalShare{Type: t}
			byType[t] = sh
		}
		sh.Bookings++
		heads := a.Count
		if heads < 1 {
			heads = 1
		}
		sh.Animals += int64(heads)
	}

	out := make([]AnimalShare, 0, len(byType))
	for _, sh := range byType {
		sh.Percent = Percent(float64(sh.Bookings), float64(len(animals)))
		out = append(out, *sh)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Bookings != out[j].Bookings {
			return out[i].Bookings > out[j].Bookings
		}
		return out[i].Type < out[j].Type
	})
	return out, nil
}

// Trends buckets bookings by appointment day or month over the last `points` buckets, oldest first.
func (s *Service) Trends(ctx context.Context, scope access.Scope, period Period, points int) ([]TrendPoint, error) {
	if points <= 0 {
		points = defaultPoints(period)
	}
	var (
		labels []string
		from   time.Time
		to     time.Time
		key    func(date string) string
	)
	c := s.clock()
	switch period {
	case PeriodDay:
		if points > 90 {
			return nil, ErrInvalidPoints
		}
		from = c.BeginningOfDay().AddDate(0, 0, -(points - 1))
		to = c.EndOfDay()
		for i := 0; i < points; i++ {
			labels = append(labels, from.AddDate(0, 0, i).Format(dateLayout))
		}
		key = func(date string) string { return date }
	case PeriodMonth:
		if points > 24 {
			return nil, ErrInvalidPoints
		}
		from = c.BeginningOfMonth().AddDate(0, -(points - 1), 0)
		to = c.EndOfMonth()
		for i := 0; i < points; i++ {
			labels = append(labels, from.AddDate(0, i, 0).Format("2006-01"))
		}
		key = func(date string) string {
			if len(date) < 7 {
				return date
			}
			return date[:7]
		}
	default:
		return nil, ErrInvalidPeriod
	}

	list, err := s.repo.BookingsBetween(ctx, scope, from.Format(dateLayout), to.Format(dateLayout))
	if err != nil {
		return nil, err
	}

	out := make([]TrendPoint, len(labels))
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		out[i] = TrendPoint{Label: l}
		index[l] = i
	}
	for _, b := range list {
		i, ok := index[key(b.AppointmentDate)]
		if !ok {
			continue
		}
		p := &out[i]
		p.Bookings++
		switch b.Status {
		case booking.StatusCompleted:
			p.Completed++
			if b.Paid {
				p.Revenue += b.TotalAmount
			}
		case booking.StatusCancelled:
			p.Cancelled++
		}
	}
	for i := range out {
		out[i].Revenue = round2(out[i].Revenue)
	}
	return out, nil
}

func defaultPoints(p Period) int {
	if p == PeriodMonth {
		return 6
	}
	return 7
}

func shares(keys []string, counts map[string]int64) []Share {
	total := float64(sum(counts))
	out := make([]Share, 0, len(keys))
	for _, k := range keys {
		out = append(out, Share{Key: k, Count: counts[k], Percent: Percent(float64(counts[k]), total)})
	}
	return out
}

func sum(m map[string]int64) int64 {
	var n int64
	for _, v := range m {
		n += v
	}
	return n
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
