package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Name  string `json:"name" validate:"required,min=2"`
	Phone string `json:"phone" validate:"required,saphone"`
	Time  string `json:"time" validate:"omitempty,hhmm"`
	Kind  string `json:"kind" validate:"omitempty,oneof=a b"`
}

func TestValidate_OK(t *testing.T) {
	errs := Validate(sampleRequest{Name: "Ali", Phone: "0512345678", Time: "09:30", Kind: "a"})
	assert.Nil(t, errs)
}

func TestValidate_FieldErrorsUseJSONNames(t *testing.T) {
	errs := Validate(sampleRequest{Name: "A", Phone: "12345", Time: "25:00", Kind: "z"})
	require.Len(t, errs, 4)

	fields := map[string]string{}
	for _, e := range errs {
		fields[e.Field] = e.Message
	}
	assert.Equal(t, "must be at least 2", fields["name"])
	assert.Contains(t, fields["phone"], "Saudi mobile")
	assert.Contains(t, fields["time"], "HH:MM")
	assert.Contains(t, fields["kind"], "one of")
}

func TestSaudiMobile(t *testing.T) {
	cases := map[string]bool{
		"0512345678":    true,
		"+966512345678": true,
		"966512345678":  true,
		"0412345678":    false,
		"051234567":     false,
		"05123456789":   false,
		"+966412345678": false,
	}
	for phone, want := range cases {
		assert.Equal(t, want, IsSaudiMobile(phone), phone)
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "0512345678", NormalizePhone("+966512345678"))
	assert.Equal(t, "0512345678", NormalizePhone("966512345678"))
	assert.Equal(t, "0512345678", NormalizePhone(" 0512345678 "))
}
