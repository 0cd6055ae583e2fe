package usagetracker

// QuotaResponse модель ответа сервиса учёта квот
type QuotaResponse struct {
	SalonID   int64 `json:"salon_id"`
	HasQuota  bool  `json:"has_quota"`
	Used      int   `json:"used"`
	Limit     int   `json:"limit"`
	Unlimited bool  `json:"unlimited"`
}
