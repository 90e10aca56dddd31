package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(f float64) *float64 { return &f }

func validCustomer() Customer {
	return Customer{
		ID:                 "C-1001",
		Gender:             GenderFemale,
		Age:                34,
		Married:            Yes,
		Dependents:         1,
		Latitude:           ptr(36.5),
		Longitude:          ptr(-119.2),
		Referrals:          2,
		TenureMonths:       12,
		Offer:              OfferNone,
		PhoneService:       Yes,
		MultipleLines:      No,
		InternetService:    Yes,
		InternetType:       InternetFiber,
		OnlineSecurity:     No,
		OnlineBackup:       No,
		DeviceProtection:   Yes,
		TechSupport:        No,
		UnlimitedData:      Yes,
		StreamingTV:        Yes,
		StreamingMovies:    No,
		StreamingMusic:     No,
		Contract:           ContractMonthToMonth,
		PaperlessBilling:   Yes,
		PaymentMethod:      PayCreditCard,
		MonthlyCharge:      24.0,
		TotalCharges:       288.0,
		PremiumTechSupport: No,
		Status:             StatusStayed,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Customer)
		wantErr string
	}{
		{
			name:   "valid record",
			mutate: func(c *Customer) {},
		},
		{
			name:    "empty id",
			mutate:  func(c *Customer) { c.ID = "" },
			wantErr: "Customer ID",
		},
		{
			name:    "age below minimum",
			mutate:  func(c *Customer) { c.Age = 17 },
			wantErr: "Age",
		},
		{
			name:    "age above maximum",
			mutate:  func(c *Customer) { c.Age = 101 },
			wantErr: "Age",
		},
		{
			name:    "unknown gender",
			mutate:  func(c *Customer) { c.Gender = "Other" },
			wantErr: "Gender",
		},
		{
			name:    "unknown status",
			mutate:  func(c *Customer) { c.Status = "Returned" },
			wantErr: "Customer Status",
		},
		{
			name:    "latitude without longitude",
			mutate:  func(c *Customer) { c.Longitude = nil },
			wantErr: "Latitude/Longitude",
		},
		{
			name:    "monthly charge above cap",
			mutate:  func(c *Customer) { c.MonthlyCharge = 100.5 },
			wantErr: "Monthly Charge",
		},
		{
			name:    "tenure above cap",
			mutate:  func(c *Customer) { c.TenureMonths = 25 },
			wantErr: "Tenure in Months",
		},
		{
			name:    "probability above one",
			mutate:  func(c *Customer) { c.PredictedLabel = StatusChurned; c.PredictionProbability = ptr(1.2) },
			wantErr: "Prediction Probability",
		},
		{
			name:    "predicted label cannot be Joined",
			mutate:  func(c *Customer) { c.PredictedLabel = StatusJoined; c.PredictionProbability = ptr(0.5) },
			wantErr: "Predicted Label",
		},
		{
			name: "joined with prediction is valid",
			mutate: func(c *Customer) {
				c.Status = StatusJoined
				c.PredictedLabel = StatusStayed
				c.PredictionProbability = ptr(0.82)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCustomer()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsValidation(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateForAppend(t *testing.T) {
	existing := map[string]bool{"C-1001": true}

	t.Run("duplicate id", func(t *testing.T) {
		c := validCustomer()
		err := c.ValidateForAppend(existing)
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Contains(t, err.Error(), "already exists")
	})

	t.Run("missing location", func(t *testing.T) {
		c := validCustomer()
		c.ID = "C-2002"
		c.Latitude, c.Longitude = nil, nil
		err := c.ValidateForAppend(existing)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "location is required")
	})

	t.Run("joined without prediction", func(t *testing.T) {
		c := validCustomer()
		c.ID = "C-3003"
		c.Status = StatusJoined
		err := c.ValidateForAppend(existing)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing its prediction")
	})

	t.Run("fresh id with location", func(t *testing.T) {
		c := validCustomer()
		c.ID = "C-2002"
		assert.NoError(t, c.ValidateForAppend(existing))
	})
}

func TestFeaturesExcludesIdentityAndPrediction(t *testing.T) {
	c := validCustomer()
	c.PredictedLabel = StatusStayed
	c.PredictionProbability = ptr(0.9)

	raw, err := json.Marshal(c.Features())
	require.NoError(t, err)

	var keys map[string]any
	require.NoError(t, json.Unmarshal(raw, &keys))

	assert.NotContains(t, keys, "Customer ID")
	assert.NotContains(t, keys, "Customer Status")
	assert.NotContains(t, keys, "Predicted Label")
	assert.NotContains(t, keys, "Prediction Probability")
	assert.Equal(t, float64(34), keys["Age"])
	assert.Equal(t, "Fiber Optic", keys["Internet Type"])
}

func TestScored(t *testing.T) {
	c := validCustomer()
	assert.False(t, c.Scored())

	c.PredictedLabel = StatusChurned
	assert.False(t, c.Scored())

	c.PredictionProbability = ptr(0.7)
	assert.True(t, c.Scored())
}
