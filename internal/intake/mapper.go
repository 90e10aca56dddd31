// Package intake turns operator-entered form fields plus a chosen map point
// into a scored, appendable customer record.
package intake

import (
	"github.com/google/uuid"

	"github.com/cris-labs/cris/internal/mapspec"
	"github.com/cris-labs/cris/internal/model"
)

// MonthsAssumed is the fixed horizon used to derive total charges for a brand
// new customer.
const MonthsAssumed = 12

// FieldSet is everything the intake form collects: all customer attributes
// except status, prediction, and avatar, which the system assigns.
type FieldSet struct {
	ID               string              `json:"customer_id,omitempty"` // blank = generate
	Gender           model.Gender        `json:"gender"`
	Age              int                 `json:"age"`
	Married          model.YesNo         `json:"married"`
	Dependents       int                 `json:"dependents"`
	Referrals        int                 `json:"referrals"`
	Offer            model.Offer         `json:"offer"`
	Contract         model.Contract      `json:"contract"`
	MonthlyCharge    float64             `json:"monthly_charge"`
	TenureMonths     int                 `json:"tenure_months"`
	PhoneService     model.YesNo         `json:"phone_service"`
	MultipleLines    model.YesNo         `json:"multiple_lines"`
	InternetService  model.YesNo         `json:"internet_service"`
	InternetType     model.InternetType  `json:"internet_type"`
	OnlineSecurity   model.YesNo         `json:"online_security"`
	OnlineBackup     model.YesNo         `json:"online_backup"`
	DeviceProtection model.YesNo         `json:"device_protection"`
	TechSupport      model.YesNo         `json:"tech_support"`
	StreamingTV      model.YesNo         `json:"streaming_tv"`
	StreamingMovies  model.YesNo         `json:"streaming_movies"`
	StreamingMusic   model.YesNo         `json:"streaming_music"`
	PaperlessBilling model.YesNo         `json:"paperless_billing"`
	UnlimitedData    model.YesNo         `json:"unlimited_data"`
	PaymentMethod    model.PaymentMethod `json:"payment_method"`
}

// BuildRecord maps the form fields and chosen location onto a customer record.
// A missing location is the dominant real-world failure and comes back as a
// ValidationError, never a crash. The result is unscored; callers must obtain
// a prediction before the record can be appended.
//
// Derived fields: total charges assume the first MonthsAssumed months at the
// entered monthly charge; refunds, extra data charges, and the average-usage
// columns default to zero because a brand-new customer has no billing history.
// A known approximation, inherited from the model's training data, not a bug.
func BuildRecord(fields FieldSet, location *mapspec.Coordinate) (*model.Customer, error) {
	if location == nil {
		return nil, model.Invalid("Location", "please select a location on the map")
	}

	id := fields.ID
	if id == "" {
		id = uuid.New().String()
	}

	lat, lon := location.Lat, location.Lon
	c := &model.Customer{
		ID:               id,
		Gender:           fields.Gender,
		Age:              fields.Age,
		Married:          fields.Married,
		Dependents:       fields.Dependents,
		Latitude:         &lat,
		Longitude:        &lon,
		Referrals:        fields.Referrals,
		TenureMonths:     fields.TenureMonths,
		Offer:            fields.Offer,
		PhoneService:     fields.PhoneService,
		MultipleLines:    fields.MultipleLines,
		InternetService:  fields.InternetService,
		InternetType:     fields.InternetType,
		OnlineSecurity:   fields.OnlineSecurity,
		OnlineBackup:     fields.OnlineBackup,
		DeviceProtection: fields.DeviceProtection,
		TechSupport:      fields.TechSupport,
		UnlimitedData:    fields.UnlimitedData,
		StreamingTV:      fields.StreamingTV,
		StreamingMovies:  fields.StreamingMovies,
		StreamingMusic:   fields.StreamingMusic,
		Contract:         fields.Contract,
		PaperlessBilling: fields.PaperlessBilling,
		PaymentMethod:    fields.PaymentMethod,
		MonthlyCharge:    fields.MonthlyCharge,
		TotalCharges:     fields.MonthlyCharge * MonthsAssumed,

		// No billing history yet.
		TotalRefunds:           0,
		TotalExtraDataCharges:  0,
		AvgMonthlyLongDistance: 0,
		AvgMonthlyGBDownload:   0,

		// Premium tech support mirrors the tech support flag at signup.
		PremiumTechSupport: fields.TechSupport,

		// Forced, whatever the form says.
		Status: model.StatusJoined,
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}
