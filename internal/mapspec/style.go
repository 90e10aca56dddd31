package mapspec

import (
	"fmt"

	"github.com/cris-labs/cris/internal/model"
)

// Style computes a marker's color and popup for one record. Pure function of
// (record, mode); include is false when the record must not appear at all.
//
// Default mode: green for Stayed, light blue for Joined, red for Churned
// (Churned has highest precedence). Probability overlay: Churned records are
// excluded outright, the rest are red when the model predicts churn and green
// otherwise. Unscored records cannot be styled in overlay mode.
func Style(c *model.Customer, showProbability bool) (color Color, popup []string, include bool) {
	if showProbability {
		if c.Status == model.StatusChurned || !c.Scored() {
			return "", nil, false
		}
		color = ColorGreen
		if c.PredictedLabel == model.StatusChurned {
			color = ColorRed
		}
		popup = []string{
			fmt.Sprintf("ID: %s", c.ID),
			fmt.Sprintf("Current Status: %s", c.Status),
			fmt.Sprintf("Status Predicted: %s", c.PredictedLabel),
			fmt.Sprintf("Churn Probability: %.2f", *c.PredictionProbability),
		}
		return color, popup, true
	}

	switch c.Status {
	case model.StatusChurned:
		color = ColorRed
	case model.StatusJoined:
		color = ColorLightBlue
	case model.StatusStayed:
		color = ColorGreen
	default:
		// Unknown statuses are a validation failure upstream; render neutral
		// rather than invent a rule here.
		color = ColorLightBlue
	}
	popup = []string{
		fmt.Sprintf("ID: %s", c.ID),
		fmt.Sprintf("Age: %d", c.Age),
		fmt.Sprintf("Gender: %s", c.Gender),
		fmt.Sprintf("Status: %s", c.Status),
		fmt.Sprintf("Monthly Charge: %.2f€", c.MonthlyCharge),
	}
	return color, popup, true
}
