package repository

import (
	"context"
	"errors"
	"testing"

	"Tickfunds/internal/domain/models"
	domrepo "Tickfunds/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadCatalog()
	require.NoError(t, err)
	return c
}

func TestLoadCatalogParsesEmbeddedData(t *testing.T) {
	c := loadCatalog(t)
	ctx := context.Background()

	funds, err := c.Funds(ctx)
	require.NoError(t, err)
	assert.Len(t, funds, 10)
	assert.Equal(t, "fund-1", funds[0].ID)
	assert.Equal(t, "Axis Bluechip Fund", funds[0].Name)
	assert.NotEmpty(t, funds[0].Holdings)
	assert.NotEmpty(t, c.FundHouses())
	assert.Contains(t, c.RiskLevels(), models.RiskVeryHigh)

	quiz := c.RiskQuiz()
	assert.Len(t, quiz.Questions(), 12)
	cats := quiz.Categories()
	require.Len(t, cats, 5)
	assert.Equal(t, 100.0, cats[len(cats)-1].MaxPercent)

	assert.Len(t, c.Products(), 3)
	assert.Len(t, c.PledgeableHoldings(), 5)
	assert.Len(t, c.Bonds(), 5)
	assert.Len(t, c.BondBaskets(), 2)
	assert.Len(t, c.FixedDeposits(), 5)
	assert.Len(t, c.Prices(), 2)
	assert.Len(t, c.Transactions(), 4)
	assert.Len(t, c.Orders(), 5)
	assert.Len(t, c.AssetClasses(), 5)
	assert.NotEmpty(t, c.Loans())
}

func TestCatalogFundLookup(t *testing.T) {
	c := loadCatalog(t)

	f, err := c.Fund(context.Background(), "fund-3")
	require.NoError(t, err)
	assert.Equal(t, "HDFC Flexi Cap Fund", f.Name)

	_, err = c.Fund(context.Background(), "nope")
	assert.True(t, errors.Is(err, domrepo.ErrNotFound))
}

func TestCatalogReturnsCopies(t *testing.T) {
	c := loadCatalog(t)
	funds, _ := c.Funds(context.Background())
	funds[0].Name = "mutated"

	again, _ := c.Funds(context.Background())
	assert.Equal(t, "Axis Bluechip Fund", again[0].Name)
}
