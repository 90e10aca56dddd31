package model

// Validate checks every field-level invariant on the record. ID uniqueness is
// a roster-level invariant and is checked by the store at append time.
func (c *Customer) Validate() error {
	if c.ID == "" {
		return Invalid("Customer ID", "must not be empty")
	}
	if !c.Gender.Valid() {
		return Invalid("Gender", "unknown value %q", c.Gender)
	}
	if c.Age < MinAge || c.Age > MaxAge {
		return Invalid("Age", "%d outside range %d-%d", c.Age, MinAge, MaxAge)
	}
	if !c.Married.Valid() {
		return Invalid("Married", "unknown value %q", c.Married)
	}
	if c.Dependents < 0 || c.Dependents > MaxDependents {
		return Invalid("Number of Dependents", "%d outside range 0-%d", c.Dependents, MaxDependents)
	}
	if c.Referrals < 0 || c.Referrals > MaxReferrals {
		return Invalid("Number of Referrals", "%d outside range 0-%d", c.Referrals, MaxReferrals)
	}
	if c.TenureMonths < 0 || c.TenureMonths > MaxTenureMonths {
		return Invalid("Tenure in Months", "%d outside range 0-%d", c.TenureMonths, MaxTenureMonths)
	}
	if !c.Offer.Valid() {
		return Invalid("Offer", "unknown value %q", c.Offer)
	}
	if !c.InternetType.Valid() {
		return Invalid("Internet Type", "unknown value %q", c.InternetType)
	}
	if !c.Contract.Valid() {
		return Invalid("Contract", "unknown value %q", c.Contract)
	}
	if !c.PaymentMethod.Valid() {
		return Invalid("Payment Method", "unknown value %q", c.PaymentMethod)
	}
	if c.MonthlyCharge < 0 || c.MonthlyCharge > MaxMonthlyCharge {
		return Invalid("Monthly Charge", "%.2f outside range 0-%.0f", c.MonthlyCharge, MaxMonthlyCharge)
	}
	for _, f := range []struct {
		name string
		val  YesNo
	}{
		{"Married", c.Married},
		{"Phone Service", c.PhoneService},
		{"Multiple Lines", c.MultipleLines},
		{"Internet Service", c.InternetService},
		{"Online Security", c.OnlineSecurity},
		{"Online Backup", c.OnlineBackup},
		{"Device Protection Plan", c.DeviceProtection},
		{"Tech Support", c.TechSupport},
		{"Unlimited Data", c.UnlimitedData},
		{"Streaming TV", c.StreamingTV},
		{"Streaming Movies", c.StreamingMovies},
		{"Streaming Music", c.StreamingMusic},
		{"Paperless Billing", c.PaperlessBilling},
		{"Premium Tech Support", c.PremiumTechSupport},
	} {
		if !f.val.Valid() {
			return Invalid(f.name, "unknown value %q", f.val)
		}
	}
	if !c.Status.Valid() {
		return Invalid("Customer Status", "unknown value %q", c.Status)
	}
	if (c.Latitude == nil) != (c.Longitude == nil) {
		return Invalid("Latitude/Longitude", "coordinates must be set together")
	}
	if c.PredictedLabel != "" && c.PredictedLabel != StatusStayed && c.PredictedLabel != StatusChurned {
		return Invalid("Predicted Label", "unknown value %q", c.PredictedLabel)
	}
	if p := c.PredictionProbability; p != nil && (*p < 0 || *p > 1) {
		return Invalid("Prediction Probability", "%.4f outside range [0,1]", *p)
	}
	return nil
}

// ValidateForAppend adds the invariants the store enforces before persisting:
// the record must carry a location, its ID must not collide, and a Joined
// record (always the product of intake) must already be scored.
func (c *Customer) ValidateForAppend(existingIDs map[string]bool) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if !c.HasLocation() {
		return Invalid("Latitude/Longitude", "location is required before a record can be saved")
	}
	if c.Status == StatusJoined && !c.Scored() {
		return Invalid("Customer Status", "Joined record is missing its prediction")
	}
	if existingIDs[c.ID] {
		return Invalid("Customer ID", "%q already exists in the roster", c.ID)
	}
	return nil
}
