package model

// FeatureRow is the exact input the churn model scores: every customer column
// except the identifier, status, prediction, and avatar fields. JSON keys match
// the training column names.
type FeatureRow struct {
	Gender                 Gender        `json:"Gender"`
	Age                    int           `json:"Age"`
	Married                YesNo         `json:"Married"`
	Dependents             int           `json:"Number of Dependents"`
	Latitude               *float64      `json:"Latitude"`
	Longitude              *float64      `json:"Longitude"`
	Referrals              int           `json:"Number of Referrals"`
	TenureMonths           int           `json:"Tenure in Months"`
	Offer                  Offer         `json:"Offer"`
	PhoneService           YesNo         `json:"Phone Service"`
	MultipleLines          YesNo         `json:"Multiple Lines"`
	InternetService        YesNo         `json:"Internet Service"`
	InternetType           InternetType  `json:"Internet Type"`
	OnlineSecurity         YesNo         `json:"Online Security"`
	OnlineBackup           YesNo         `json:"Online Backup"`
	DeviceProtection       YesNo         `json:"Device Protection Plan"`
	TechSupport            YesNo         `json:"Tech Support"`
	UnlimitedData          YesNo         `json:"Unlimited Data"`
	StreamingTV            YesNo         `json:"Streaming TV"`
	StreamingMovies        YesNo         `json:"Streaming Movies"`
	StreamingMusic         YesNo         `json:"Streaming Music"`
	Contract               Contract      `json:"Contract"`
	PaperlessBilling       YesNo         `json:"Paperless Billing"`
	PaymentMethod          PaymentMethod `json:"Payment Method"`
	MonthlyCharge          float64       `json:"Monthly Charge"`
	TotalCharges           float64       `json:"Total Charges"`
	TotalRefunds           float64       `json:"Total Refunds"`
	TotalExtraDataCharges  float64       `json:"Total Extra Data Charges"`
	AvgMonthlyLongDistance float64       `json:"Avg Monthly Long Distance Charges"`
	AvgMonthlyGBDownload   float64       `json:"Avg Monthly GB Download"`
	PremiumTechSupport     YesNo         `json:"Premium Tech Support"`
}

// Features extracts the model input from the record.
func (c *Customer) Features() FeatureRow {
	return FeatureRow{
		Gender:                 c.Gender,
		Age:                    c.Age,
		Married:                c.Married,
		Dependents:             c.Dependents,
		Latitude:               c.Latitude,
		Longitude:              c.Longitude,
		Referrals:              c.Referrals,
		TenureMonths:           c.TenureMonths,
		Offer:                  c.Offer,
		PhoneService:           c.PhoneService,
		MultipleLines:          c.MultipleLines,
		InternetService:        c.InternetService,
		InternetType:           c.InternetType,
		OnlineSecurity:         c.OnlineSecurity,
		OnlineBackup:           c.OnlineBackup,
		DeviceProtection:       c.DeviceProtection,
		TechSupport:            c.TechSupport,
		UnlimitedData:          c.UnlimitedData,
		StreamingTV:            c.StreamingTV,
		StreamingMovies:        c.StreamingMovies,
		StreamingMusic:         c.StreamingMusic,
		Contract:               c.Contract,
		PaperlessBilling:       c.PaperlessBilling,
		PaymentMethod:          c.PaymentMethod,
		MonthlyCharge:          c.MonthlyCharge,
		TotalCharges:           c.TotalCharges,
		TotalRefunds:           c.TotalRefunds,
		TotalExtraDataCharges:  c.TotalExtraDataCharges,
		AvgMonthlyLongDistance: c.AvgMonthlyLongDistance,
		AvgMonthlyGBDownload:   c.AvgMonthlyGBDownload,
		PremiumTechSupport:     c.PremiumTechSupport,
	}
}
