package repository

import (
	"context"
	"embed"
	"fmt"

	"Tickfunds/internal/domain/models"
	domrepo "Tickfunds/internal/domain/repository"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Catalog serves the static mock data. It is read-only after LoadCatalog.
type Catalog struct {
	funds      []models.Fund
	fundIndex  map[string]int
	fundHouses []string
	riskLevels []string
	categories []string

	questions      []models.RiskQuestion
	riskCategories []models.RiskCategory

	loanProducts []models.LoanProduct
	pledgeable   []models.PledgeableHolding

	bonds   []models.Bond
	baskets []models.BondBasket
	fds     []models.FixedDeposit

	prices       []models.MetalPrice
	metals       []models.MetalHolding
	transactions []models.GoldTransaction

	orders []models.Order

	classes []models.AssetClass
	loans   []models.LoanPosition
}

var (
	_ domrepo.FundCatalog        = (*Catalog)(nil)
	_ domrepo.LoanCatalog        = (*Catalog)(nil)
	_ domrepo.FixedIncomeCatalog = (*Catalog)(nil)
	_ domrepo.GoldCatalog        = (*Catalog)(nil)
	_ domrepo.OrderCatalog       = (*Catalog)(nil)
	_ domrepo.PortfolioCatalog   = (*Catalog)(nil)
)

// LoadCatalog parses the embedded YAML files.
func LoadCatalog() (*Catalog, error) {
	c := &Catalog{}

	var funds struct {
		Funds      []models.Fund `yaml:"funds"`
		FundHouses []string      `yaml:"fundHouses"`
		RiskLevels []string      `yaml:"riskLevels"`
		Categories []string      `yaml:"categories"`
	}
	var risk struct {
		Questions  []models.RiskQuestion `yaml:"questions"`
		Categories []models.RiskCategory `yaml:"categories"`
	}
	var loans struct {
		Products   []models.LoanProduct       `yaml:"products"`
		Pledgeable []models.PledgeableHolding `yaml:"pledgeable"`
	}
	var fixed struct {
		Bonds   []models.Bond         `yaml:"bonds"`
		Baskets []models.BondBasket   `yaml:"baskets"`
		FDs     []models.FixedDeposit `yaml:"fds"`
	}
	var gold struct {
		Prices       []models.MetalPrice      `yaml:"prices"`
		Holdings     []models.MetalHolding    `yaml:"holdings"`
		Transactions []models.GoldTransaction `yaml:"transactions"`
	}
	var orders struct {
		Orders []models.Order `yaml:"orders"`
	}
	var portfolio struct {
		Classes []models.AssetClass   `yaml:"classes"`
		Loans   []models.LoanPosition `yaml:"loans"`
	}

	files := []struct {
		name string
		dest interface{}
	}{
		{"funds.yaml", &funds},
		{"risk.yaml", &risk},
		{"loans.yaml", &loans},
		{"fixed_income.yaml", &fixed},
		{"gold.yaml", &gold},
		{"orders.yaml", &orders},
		{"portfolio.yaml", &portfolio},
	}
	for _, f := range files {
		if err := readData(f.name, f.dest); err != nil {
			return nil, err
		}
	}

	c.funds = funds.Funds
	c.fundHouses = funds.FundHouses
	c.riskLevels = funds.RiskLevels
	c.categories = funds.Categories
	c.fundIndex = make(map[string]int, len(c.funds))
	for i, f := range c.funds {
		if _, dup := c.fundIndex[f.ID]; dup {
			return nil, fmt.Errorf("duplicate fund id %q", f.ID)
		}
		c.fundIndex[f.ID] = i
	}

	c.questions = risk.Questions
	c.riskCategories = risk.Categories
	if len(c.riskCategories) == 0 {
		return nil, fmt.Errorf("risk.yaml: no categories")
	}

	c.loanProducts = loans.Products
	c.pledgeable = loans.Pledgeable
	c.bonds, c.baskets, c.fds = fixed.Bonds, fixed.Baskets, fixed.FDs
	c.prices, c.metals, c.transactions = gold.Prices, gold.Holdings, gold.Transactions
	c.orders = orders.Orders
	c.classes, c.loans = portfolio.Classes, portfolio.Loans
	return c, nil
}

func readData(name string, dest interface{}) error {
	b, err := dataFS.ReadFile("data/" + name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// Funds returns a copy of the fund list in catalog order.
func (c *Catalog) Funds(_ context.Context) ([]models.Fund, error) {
	return append([]models.Fund(nil), c.funds...), nil
}

func (c *Catalog) Fund(_ context.Context, id string) (*models.Fund, error) {
	i, ok := c.fundIndex[id]
	if !ok {
		return nil, fmt.Errorf("fund %q: %w", id, domrepo.ErrNotFound)
	}
	f := c.funds[i]
	return &f, nil
}

func (c *Catalog) FundHouses() []string { return append([]string(nil), c.fundHouses...) }

func (c *Catalog) RiskLevels() []string { return append([]string(nil), c.riskLevels...) }

// Categories returns the fund categories. RiskCategories is the quiz equivalent.
func (c *Catalog) Categories() []string { return append([]string(nil), c.categories...) }

func (c *Catalog) Products() []models.LoanProduct {
	return append([]models.LoanProduct(nil), c.loanProducts...)
}

func (c *Catalog) PledgeableHoldings() []models.PledgeableHolding {
	return append([]models.PledgeableHolding(nil), c.pledgeable...)
}

func (c *Catalog) Bonds() []models.Bond { return append([]models.Bond(nil), c.bonds...) }

func (c *Catalog) BondBaskets() []models.BondBasket {
	return append([]models.BondBasket(nil), c.baskets...)
}

func (c *Catalog) FixedDeposits() []models.FixedDeposit {
	return append([]models.FixedDeposit(nil), c.fds...)
}

func (c *Catalog) Prices() []models.MetalPrice { return append([]models.MetalPrice(nil), c.prices...) }

func (c *Catalog) Holdings() []models.MetalHolding {
	return append([]models.MetalHolding(nil), c.metals...)
}

func (c *Catalog) Transactions() []models.GoldTransaction {
	return append([]models.GoldTransaction(nil), c.transactions...)
}

func (c *Catalog) Orders() []models.Order { return append([]models.Order(nil), c.orders...) }

func (c *Catalog) AssetClasses() []models.AssetClass {
	return append([]models.AssetClass(nil), c.classes...)
}

func (c *Catalog) Loans() []models.LoanPosition { return append([]models.LoanPosition(nil), c.loans...) }

// RiskQuiz exposes the quiz through domrepo.RiskCatalog, whose Categories
// clashes with the fund category list.
func (c *Catalog) RiskQuiz() domrepo.RiskCatalog { return riskQuiz{c} }

type riskQuiz struct{ c *Catalog }

func (r riskQuiz) Questions() []models.RiskQuestion {
	return append([]models.RiskQuestion(nil), r.c.questions...)
}

func (r riskQuiz) Categories() []models.RiskCategory {
	return append([]models.RiskCategory(nil), r.c.riskCategories...)
}
