package prize

import "time"

type PrizeResponse struct {
	ID       int    `json:"id"`
	Icon     string `json:"icon"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
	Color    string `json:"color"`
	IsActive bool   `json:"isActive"`
}

// PatchPrizeRequest changes only the fields that are present.
type PatchPrizeRequest struct {
	Quantity *int  `json:"quantity"`
	IsActive *bool `json:"isActive"`
}

type BatchPatchItem struct {
	ID       int   `json:"id"`
	Quantity *int  `json:"quantity"`
	IsActive *bool `json:"isActive"`
}

type BatchPatchRequest struct {
	Prizes []BatchPatchItem `json:"prizes"`
}

type PrizeAwardResponse struct {
	PrizeID   int     `json:"prize_id"`
	Name      string  `json:"name"`
	Count     int     `json:"count"`
	Frequency float64 `json:"frequency"`
}

type StatsResponse struct {
	TotalSpins  int                  `json:"total_spins"`
	Awards      []PrizeAwardResponse `json:"awards"`
	LastAwardAt *time.Time           `json:"last_award_at,omitempty"`
}
