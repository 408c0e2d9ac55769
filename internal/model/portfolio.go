package model

import "github.com/shopspring/decimal"

// Holding is a position in a user's portfolio.
type Holding struct {
	Symbol        string
	Quantity      int
	PurchasePrice decimal.Decimal
}

// Portfolio is a set of holdings. TotalValue is left at zero; valuation
// happens on the client with live prices.
type Portfolio struct {
	Holdings   []Holding
	TotalValue decimal.Decimal
}
