package service

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/intelvestor/gateway/internal/model"
)

// DemoPortfolio serves a fixed set of sample holdings until holdings are
// persisted per user.
type DemoPortfolio struct{}

// Holdings returns the sample holdings.
func (DemoPortfolio) Holdings(ctx context.Context) ([]model.Holding, error) {
	return []model.Holding{
		{Symbol: "AXISBANK", Quantity: 10, PurchasePrice: decimal.NewFromInt(1100)},
		{Symbol: "RELIANCE", Quantity: 5, PurchasePrice: decimal.NewFromInt(2400)},
	}, nil
}
