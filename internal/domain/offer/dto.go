package offer

type CreateOfferRequest struct {
	Title         string   `json:"title" validate:"required,max=255"`
	TitleAr       string   `json:"titleAr" validate:"omitempty,max=255"`
	Description   string   `json:"description" validate:"omitempty,max=2000"`
	DiscountType  string   `json:"discountType" validate:"required,oneof=percentage fixed"`
	DiscountValue float64  `json:"discountValue" validate:"required,gt=0"`
	StartDate     string   `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate       string   `json:"endDate" validate:"required,datetime=2006-01-02"`
	UsageLimit    *int     `json:"usageLimit" validate:"omitempty,gte=1"`
	MinAmount     float64  `json:"minAmount" validate:"gte=0"`
	MaxDiscount   *float64 `json:"maxDiscount" validate:"omitempty,gt=0"`
}

type UpdateOfferRequest struct {
	Title         *string  `json:"title" validate:"omitempty,max=255"`
	TitleAr       *string  `json:"titleAr" validate:"omitempty,max=255"`
	Description   *string  `json:"description" validate:"omitempty,max=2000"`
	DiscountType  *string  `json:"discountType" validate:"omitempty,oneof=percentage fixed"`
	DiscountValue *float64 `json:"discountValue" validate:"omitempty,gt=0"`
	StartDate     *string  `json:"startDate" validate:"omitempty,datetime=2006-01-02"`
	EndDate       *string  `json:"endDate" validate:"omitempty,datetime=2006-01-02"`
	UsageLimit    *int     `json:"usageLimit" validate:"omitempty,gte=0"`
	MinAmount     *float64 `json:"minAmount" validate:"omitempty,gte=0"`
	MaxDiscount   *float64 `json:"maxDiscount" validate:"omitempty,gte=0"`
	IsActive      *bool    `json:"isActive"`
}

type ApplyRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
}

type ApplyResult struct {
	OfferID     int64   `json:"offerId"`
	Amount      float64 `json:"amount"`
	Discount    float64 `json:"discount"`
	FinalAmount float64 `json:"finalAmount"`
}
