// Package model defines the customer record, its closed enumerations, and the
// feature row consumed by the churn model.
package model

// Status represents a customer's lifecycle state.
type Status string

const (
	StatusStayed  Status = "Stayed"
	StatusChurned Status = "Churned"
	StatusJoined  Status = "Joined"
)

// Statuses lists every valid customer status.
var Statuses = []Status{StatusStayed, StatusChurned, StatusJoined}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusStayed, StatusChurned, StatusJoined:
		return true
	}
	return false
}

// Gender is a closed enumeration.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// Valid reports whether g is a known gender value.
func (g Gender) Valid() bool { return g == GenderMale || g == GenderFemale }

// YesNo is the two-valued flag used by the marital and service columns.
type YesNo string

const (
	Yes YesNo = "Yes"
	No  YesNo = "No"
)

// Valid reports whether y is Yes or No.
func (y YesNo) Valid() bool { return y == Yes || y == No }

// Offer is the promotional offer a customer signed up under.
type Offer string

const (
	OfferNone Offer = "None"
	OfferA    Offer = "Offer A"
	OfferB    Offer = "Offer B"
	OfferC    Offer = "Offer C"
	OfferD    Offer = "Offer D"
)

// Valid reports whether o is a known offer.
func (o Offer) Valid() bool {
	switch o {
	case OfferNone, OfferA, OfferB, OfferC, OfferD:
		return true
	}
	return false
}

// Contract is the contract term.
type Contract string

const (
	ContractMonthToMonth Contract = "Month-to-Month"
	ContractOneYear      Contract = "One Year"
	ContractTwoYear      Contract = "Two Year"
)

// Valid reports whether c is a known contract term.
func (c Contract) Valid() bool {
	switch c {
	case ContractMonthToMonth, ContractOneYear, ContractTwoYear:
		return true
	}
	return false
}

// InternetType is the internet service technology.
type InternetType string

const (
	InternetDSL   InternetType = "DSL"
	InternetFiber InternetType = "Fiber Optic"
	InternetNone  InternetType = "None"
)

// Valid reports whether it is a known internet type.
func (it InternetType) Valid() bool {
	switch it {
	case InternetDSL, InternetFiber, InternetNone:
		return true
	}
	return false
}

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PayBankWithdrawal PaymentMethod = "Bank Withdrawal"
	PayCreditCard     PaymentMethod = "Credit Card"
	PayMailedCheck    PaymentMethod = "Mailed Check"
)

// Valid reports whether p is a known payment method.
func (p PaymentMethod) Valid() bool {
	switch p {
	case PayBankWithdrawal, PayCreditCard, PayMailedCheck:
		return true
	}
	return false
}

// Numeric field bounds.
const (
	MinAge           = 18
	MaxAge           = 100
	MaxDependents    = 10
	MaxReferrals     = 20
	MaxTenureMonths  = 24
	MaxMonthlyCharge = 100.0
)

// Customer is one row of the roster. Field order matches the durable table's
// column order; csv tags carry the exact header names.
type Customer struct {
	ID                     string        `csv:"Customer ID" json:"customer_id"`
	Gender                 Gender        `csv:"Gender" json:"gender"`
	Age                    int           `csv:"Age" json:"age"`
	Married                YesNo         `csv:"Married" json:"married"`
	Dependents             int           `csv:"Number of Dependents" json:"dependents"`
	Latitude               *float64      `csv:"Latitude" json:"latitude,omitempty"`
	Longitude              *float64      `csv:"Longitude" json:"longitude,omitempty"`
	Referrals              int           `csv:"Number of Referrals" json:"referrals"`
	TenureMonths           int           `csv:"Tenure in Months" json:"tenure_months"`
	Offer                  Offer         `csv:"Offer" json:"offer"`
	PhoneService           YesNo         `csv:"Phone Service" json:"phone_service"`
	MultipleLines          YesNo         `csv:"Multiple Lines" json:"multiple_lines"`
	InternetService        YesNo         `csv:"Internet Service" json:"internet_service"`
	InternetType           InternetType  `csv:"Internet Type" json:"internet_type"`
	OnlineSecurity         YesNo         `csv:"Online Security" json:"online_security"`
	OnlineBackup           YesNo         `csv:"Online Backup" json:"online_backup"`
	DeviceProtection       YesNo         `csv:"Device Protection Plan" json:"device_protection"`
	TechSupport            YesNo         `csv:"Tech Support" json:"tech_support"`
	UnlimitedData          YesNo         `csv:"Unlimited Data" json:"unlimited_data"`
	StreamingTV            YesNo         `csv:"Streaming TV" json:"streaming_tv"`
	StreamingMovies        YesNo         `csv:"Streaming Movies" json:"streaming_movies"`
	StreamingMusic         YesNo         `csv:"Streaming Music" json:"streaming_music"`
	Contract               Contract      `csv:"Contract" json:"contract"`
	PaperlessBilling       YesNo         `csv:"Paperless Billing" json:"paperless_billing"`
	PaymentMethod          PaymentMethod `csv:"Payment Method" json:"payment_method"`
	MonthlyCharge          float64       `csv:"Monthly Charge" json:"monthly_charge"`
	TotalCharges           float64       `csv:"Total Charges" json:"total_charges"`
	TotalRefunds           float64       `csv:"Total Refunds" json:"total_refunds"`
	TotalExtraDataCharges  float64       `csv:"Total Extra Data Charges" json:"total_extra_data_charges"`
	AvgMonthlyLongDistance float64       `csv:"Avg Monthly Long Distance Charges" json:"avg_monthly_long_distance_charges"`
	AvgMonthlyGBDownload   float64       `csv:"Avg Monthly GB Download" json:"avg_monthly_gb_download"`
	PremiumTechSupport     YesNo         `csv:"Premium Tech Support" json:"premium_tech_support"`
	Status                 Status        `csv:"Customer Status" json:"status"`
	PredictedLabel         Status        `csv:"Predicted Label" json:"predicted_label,omitempty"`
	PredictionProbability  *float64      `csv:"Prediction Probability" json:"prediction_probability,omitempty"`
}

// HasLocation reports whether both coordinates are present. A customer without
// a location is a valid record; placing it on a map is the map builder's call.
func (c *Customer) HasLocation() bool {
	return c.Latitude != nil && c.Longitude != nil
}

// Scored reports whether the customer carries a model prediction.
func (c *Customer) Scored() bool {
	return c.PredictedLabel != "" && c.PredictionProbability != nil
}
