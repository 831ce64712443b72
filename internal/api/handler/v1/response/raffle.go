package response

import "github.com/rifas-online/rifas-api/internal/domain"

type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

type RaffleListResponse struct {
	Data       []domain.Raffle `json:"data"`
	Pagination Pagination      `json:"pagination"`
}

type AvailableNumbersResponse struct {
	AvailableNumbers []int `json:"availableNumbers"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
