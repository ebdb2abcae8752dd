package dtos

type StatsResponse struct {
	Clicks    int64    `json:"clicks"`
	UniqueIPs []string `json:"unique_ips"`
}
