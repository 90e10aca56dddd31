package intake

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cris-labs/cris/internal/mapspec"
	"github.com/cris-labs/cris/internal/model"
)

func validFields() FieldSet {
	return FieldSet{
		ID:               "NEW-1",
		Gender:           model.GenderFemale,
		Age:              30,
		Married:          model.No,
		Dependents:       0,
		Referrals:        0,
		Offer:            model.OfferNone,
		Contract:         model.ContractMonthToMonth,
		MonthlyCharge:    24.0,
		TenureMonths:     12,
		PhoneService:     model.Yes,
		MultipleLines:    model.No,
		InternetService:  model.Yes,
		InternetType:     model.InternetDSL,
		OnlineSecurity:   model.No,
		OnlineBackup:     model.No,
		DeviceProtection: model.No,
		TechSupport:      model.Yes,
		StreamingTV:      model.No,
		StreamingMovies:  model.No,
		StreamingMusic:   model.No,
		PaperlessBilling: model.Yes,
		UnlimitedData:    model.Yes,
		PaymentMethod:    model.PayMailedCheck,
	}
}

func location() *mapspec.Coordinate {
	return &mapspec.Coordinate{Lat: 12.0, Lon: -8.0}
}

func TestBuildRecordRequiresLocation(t *testing.T) {
	_, err := BuildRecord(validFields(), nil)
	require.Error(t, err)
	assert.True(t, model.IsValidation(err))
	assert.Contains(t, err.Error(), "select a location")
}

func TestBuildRecord(t *testing.T) {
	c, err := BuildRecord(validFields(), location())
	require.NoError(t, err)

	assert.Equal(t, "NEW-1", c.ID)
	assert.Equal(t, model.StatusJoined, c.Status)
	require.NotNil(t, c.Latitude)
	require.NotNil(t, c.Longitude)
	assert.Equal(t, 12.0, *c.Latitude)
	assert.Equal(t, -8.0, *c.Longitude)
	assert.False(t, c.Scored())
}

func TestBuildRecordDerivedCharges(t *testing.T) {
	for _, charge := range []float64{0, 0.01, 24.0, 99.99, 100.0} {
		fields := validFields()
		fields.MonthlyCharge = charge
		c, err := BuildRecord(fields, location())
		require.NoError(t, err)
		assert.Equal(t, charge*12, c.TotalCharges)
	}
}

func TestBuildRecordZeroHistoryDefaults(t *testing.T) {
	c, err := BuildRecord(validFields(), location())
	require.NoError(t, err)

	assert.Zero(t, c.TotalRefunds)
	assert.Zero(t, c.TotalExtraDataCharges)
	assert.Zero(t, c.AvgMonthlyLongDistance)
	assert.Zero(t, c.AvgMonthlyGBDownload)
}

func TestBuildRecordMirrorsTechSupport(t *testing.T) {
	fields := validFields()
	fields.TechSupport = model.Yes
	c, err := BuildRecord(fields, location())
	require.NoError(t, err)
	assert.Equal(t, model.Yes, c.PremiumTechSupport)

	fields.TechSupport = model.No
	c, err = BuildRecord(fields, location())
	require.NoError(t, err)
	assert.Equal(t, model.No, c.PremiumTechSupport)
}

func TestBuildRecordGeneratesID(t *testing.T) {
	fields := validFields()
	fields.ID = ""
	c, err := BuildRecord(fields, location())
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
}

func TestBuildRecordValidatesFields(t *testing.T) {
	fields := validFields()
	fields.Age = 12
	_, err := BuildRecord(fields, location())
	require.Error(t, err)
	assert.True(t, model.IsValidation(err))
	assert.Contains(t, err.Error(), "Age")
}
