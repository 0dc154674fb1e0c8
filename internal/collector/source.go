package collector

import (
	"context"

	"SIPPlanner/internal/model"
)

// Source provides daily closing prices for a set of companies.
type Source interface {
	FetchCloses(ctx context.Context) (*model.PriceTable, error)
	Name() string
}
