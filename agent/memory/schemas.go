package memory

// Structured record schemas the extraction oracle fills. Field names are the
// wire contract for stored memories; changing one invalidates persisted data.

// Profile holds general facts about the user that persist across assistant
// types. Patch-only: there is exactly one profile per user.
type Profile struct {
	Name        string   `json:"name,omitempty"`
	Location    string   `json:"location,omitempty"`
	Job         string   `json:"job,omitempty"`
	Connections []string `json:"connections,omitempty"`
	Interests   []string `json:"interests,omitempty"`
}

type Transaction struct {
	TransactionType string   `json:"transaction_type"` // income or expense
	Amount          float64  `json:"amount"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	Date            string   `json:"date"` // YYYY-MM-DD
	PaymentMethod   string   `json:"payment_method,omitempty"`
	Merchant        string   `json:"merchant,omitempty"`
	Tags            []string `json:"tags,omitempty"`
}

type Budget struct {
	Category       string  `json:"category"`
	LimitAmount    float64 `json:"limit_amount"`
	Period         string  `json:"period"` // weekly, monthly or yearly
	AlertThreshold float64 `json:"alert_threshold,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

type Goal struct {
	GoalName      string  `json:"goal_name"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
	TargetDate    string  `json:"target_date,omitempty"`
	Priority      string  `json:"priority,omitempty"`
	Notes         string  `json:"notes,omitempty"`
}

type RecurringPayment struct {
	Name            string  `json:"name"`
	Amount          float64 `json:"amount"`
	Frequency       string  `json:"frequency"` // daily, weekly, monthly or yearly
	Category        string  `json:"category"`
	NextPaymentDate string  `json:"next_payment_date"`
	PaymentMethod   string  `json:"payment_method,omitempty"`
	AutoPay         bool    `json:"auto_pay"`
	Notes           string  `json:"notes,omitempty"`
}
