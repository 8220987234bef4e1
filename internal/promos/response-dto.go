package promos

type PaginatedPromos struct {
	Promos     []PromoCode `json:"promos"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int         `json:"total_pages"`
}
