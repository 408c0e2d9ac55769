// Package dto defines the JSON shapes of API requests and responses.
package dto

import (
	"github.com/intelvestor/gateway/internal/model"
)

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HoldingResponse is one portfolio position.
type HoldingResponse struct {
	Symbol        string  `json:"symbol"`
	Quantity      int     `json:"quantity"`
	PurchasePrice float64 `json:"purchasePrice"`
}

// PortfolioResponse is the body of GET /api/portfolio.
type PortfolioResponse struct {
	Holdings   []HoldingResponse `json:"holdings"`
	TotalValue float64           `json:"totalValue"`
}

// UserResponse is the user record as served to clients.
type UserResponse struct {
	ID          string         `json:"id"`
	Email       string         `json:"email"`
	Name        string         `json:"name"`
	Watchlist   []string       `json:"watchlist"`
	Preferences map[string]any `json:"preferences"`
}

// ToPortfolioResponse converts a Portfolio model to PortfolioResponse DTO.
func ToPortfolioResponse(p *model.Portfolio) *PortfolioResponse {
	holdings := make([]HoldingResponse, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		holdings = append(holdings, HoldingResponse{
			Symbol:        h.Symbol,
			Quantity:      h.Quantity,
			PurchasePrice: h.PurchasePrice.InexactFloat64(),
		})
	}
	return &PortfolioResponse{
		Holdings:   holdings,
		TotalValue: p.TotalValue.InexactFloat64(),
	}
}

// ToUserResponse converts a User model to UserResponse DTO.
// Nil collections are served as [] and {}.
func ToUserResponse(u *model.User) *UserResponse {
	watchlist := u.Watchlist
	if watchlist == nil {
		watchlist = []string{}
	}
	prefs := u.Preferences
	if prefs == nil {
		prefs = map[string]any{}
	}
	return &UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Watchlist:   watchlist,
		Preferences: prefs,
	}
}
