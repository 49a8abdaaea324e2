package database

import (
	_ "embed"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/demo.yaml
var demoFixtures []byte

// Fixtures is the demo data set loaded by the seed command. Suppliers and
// categories are referenced from products by their three-digit code.
type Fixtures struct {
	Suppliers  []SupplierFixture `yaml:"suppliers"`
	Categories []CodeNameFixture `yaml:"categories"`
	Users      []UserFixture     `yaml:"users"`
	Customers  []CustomerFixture `yaml:"customers"`
	Products   []ProductFixture  `yaml:"products"`
}

type SupplierFixture struct {
	Code    string `yaml:"code"`
	Name    string `yaml:"name"`
	TaxID   string `yaml:"tax_id"`
	Contact string `yaml:"contact"`
	Phone   string `yaml:"phone"`
	Address string `yaml:"address"`
	Sector  string `yaml:"sector"`
}

type CodeNameFixture struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

type UserFixture struct {
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Username  string `yaml:"username"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	Role      string `yaml:"role"`
}

type CustomerFixture struct {
	Name        string `yaml:"name"`
	Surname     string `yaml:"surname"`
	TaxID       string `yaml:"tax_id"`
	Phone       string `yaml:"phone"`
	Address     string `yaml:"address"`
	CreditLimit int64  `yaml:"credit_limit"`
}

// ProductFixture prices are whole pesos
type ProductFixture struct {
	Name          string `yaml:"name"`
	Supplier      string `yaml:"supplier"`
	Category      string `yaml:"category"`
	Brand         string `yaml:"brand"`
	PurchasePrice int64  `yaml:"purchase_price"`
	SalePrice     int64  `yaml:"sale_price"`
	Stock         int    `yaml:"stock"`
	ExpiresAt     string `yaml:"expires_at"`
}

// Expiry parses the optional expiry date
func (p ProductFixture) Expiry() (*time.Time, error) {
	if p.ExpiresAt == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", p.ExpiresAt)
	if err != nil {
		return nil, fmt.Errorf("product %q: invalid expires_at: %w", p.Name, err)
	}
	return &t, nil
}

// DemoFixtures returns the embedded demo data set
func DemoFixtures() (*Fixtures, error) {
	return ParseFixtures(demoFixtures)
}

// ParseFixtures decodes a fixtures document and checks product references
func ParseFixtures(data []byte) (*Fixtures, error) {
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}

	suppliers := make(map[string]bool, len(f.Suppliers))
	for _, s := range f.Suppliers {
		suppliers[s.Code] = true
	}
	categories := make(map[string]bool, len(f.Categories))
	for _, c := range f.Categories {
		categories[c.Code] = true
	}
	for _, p := range f.Products {
		if !suppliers[p.Supplier] {
			return nil, fmt.Errorf("product %q references unknown supplier %q", p.Name, p.Supplier)
		}
		if !categories[p.Category] {
			return nil, fmt.Errorf("product %q references unknown category %q", p.Name, p.Category)
		}
		if _, err := p.Expiry(); err != nil {
			return nil, err
		}
	}
	return &f, nil
}
