package offer

import (
	"context"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

const dateLayout = "2006-01-02"

type Service struct {
	repo  *Repository
	loc   *time.Location
	clock func() time.Time
}

func NewService(repo *Repository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc, clock: time.Now}
}

// List returns every offer with its current status, optionally only those in status.
func (s *Service) List(ctx context.Context, status string) ([]Offer, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	at := s.clock()
	out := make([]Offer, 0, len(list))
	for i := range list {
		list[i].withStatus(at)
		if status == "" || string(list[i].Computed) == status {
			out = append(out, list[i])
		}
	}
	return out, nil
}

// ActiveOffers is the public catalogue of offers usable right now.
func (s *Service) ActiveOffers(ctx context.Context) ([]Offer, error) {
	at := s.clock()
	list, err := s.repo.ListCurrent(ctx, at)
	if err != nil {
		return nil, err
	}
	out := make([]Offer, 0, len(list))
	for i := range list {
		if list[i].withStatus(at).Computed == StatusActive {
			out = append(out, list[i])
		}
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Offer, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return o.withStatus(s.clock()), nil
}

func (s *Service) Create(ctx context.Context, req *CreateOfferRequest) (*Offer, error) {
	start, end, err := s.period(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	o := &Offer{
		Title:         strings.TrimSpace(req.Title),
		TitleAr:       strings.TrimSpace(req.TitleAr),
		Description:   req.Description,
		DiscountType:  DiscountType(req.DiscountType),
		DiscountValue: req.DiscountValue,
		StartDate:     start,
		EndDate:       end,
		UsageLimit:    req.UsageLimit,
		MinAmount:     req.MinAmount,
		MaxDiscount:   req.MaxDiscount,
	}
	o.Activate()
	if err := validateDiscount(o); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}
	return o.withStatus(s.clock()), nil
}

func (s *Service) Update(ctx context.Context, id int64, req *UpdateOfferRequest) (*Offer, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		o.Title = strings.TrimSpace(*req.Title)
	}
	if req.TitleAr != nil {
		o.TitleAr = strings.TrimSpace(*req.TitleAr)
	}
	if req.Description != nil {
		o.Description = *req.Description
	}
	if req.DiscountType != nil {
		o.DiscountType = DiscountType(*req.DiscountType)
	}
	if req.DiscountValue != nil {
		o.DiscountValue = *req.DiscountValue
	}
	if req.StartDate != nil || req.EndDate != nil {
		startStr, endStr := o.StartDate.In(s.loc).Format(dateLayout), o.EndDate.In(s.loc).Format(dateLayout)
		if req.StartDate != nil {
			startStr = *req.StartDate
		}
		if req.EndDate != nil {
			endStr = *req.EndDate
		}
		start, end, err := s.period(startStr, endStr)
		if err != nil {
			return nil, err
		}
		o.StartDate, o.EndDate = start, end
	}
	// Zero clears a limit.
	if req.UsageLimit != nil {
		o.UsageLimit = req.UsageLimit
		if *req.UsageLimit == 0 {
			o.UsageLimit = nil
		}
	}
	if req.MinAmount != nil {
		o.MinAmount = *req.MinAmount
	}
	if req.MaxDiscount != nil {
		o.MaxDiscount = req.MaxDiscount
		if *req.MaxDiscount == 0 {
			o.MaxDiscount = nil
		}
	}
	if req.IsActive != nil {
		if *req.IsActive {
			o.Activate()
		} else {
			o.Deactivate()
		}
	}

	if err := validateDiscount(o); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, o); err != nil {
		return nil, err
	}
	return o.withStatus(s.clock()), nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Quote computes the discount without consuming a use.
func (s *Service) Quote(ctx context.Context, id int64, amount float64) (*ApplyResult, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	d, err := o.Discount(amount, s.clock())
	if err != nil {
		return nil, err
	}
	return &ApplyResult{
		OfferID:     o.ID,
		Amount:      amount,
		Discount:    d,
		FinalAmount: round2(amount - d),
	}, nil
}

// Apply quotes the discount and consumes exactly one use.
func (s *Service) Apply(ctx context.Context, id int64, amount float64) (*ApplyResult, error) {
	res, err := s.Quote(ctx, id, amount)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Consume(ctx, id); err != nil {
		return nil, err
	}
	return res, nil
}

// Release gives back a use taken by Apply when the caller's own write failed.
func (s *Service) Release(ctx context.Context, id int64) error {
	return s.repo.Release(ctx, id)
}

// period parses an inclusive day range in the clinic timezone.
func (s *Service) period(start, end string) (time.Time, time.Time, error) {
	sd, err := time.ParseInLocation(dateLayout, start, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	ed, err := time.ParseInLocation(dateLayout, end, s.loc)
	if err != nil {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	if ed.Before(sd) {
		return time.Time{}, time.Time{}, ErrInvalidPeriod
	}
	return now.With(sd).BeginningOfDay(), now.With(ed).EndOfDay(), nil
}

func validateDiscount(o *Offer) error {
	switch o.DiscountType {
	case DiscountPercentage:
		if o.DiscountValue <= 0 || o.DiscountValue > 100 {
			return ErrInvalidDiscount
		}
	case DiscountFixed:
		if o.DiscountValue <= 0 {
			return ErrInvalidDiscount
		}
	default:
		return ErrInvalidDiscount
	}
	return nil
}
