package storage

type Vendor struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	LeadTimeDays int    `json:"lead_time_days"`
}
