package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/yuyitos-api/internal/application/service"
	"github.com/sangkips/yuyitos-api/internal/infrastructure/database"
	"github.com/sangkips/yuyitos-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// SeedReport counts what a fixtures run created and skipped
type SeedReport struct {
	Created int
	Skipped int
}

func (r *SeedReport) track(err error, what string) error {
	switch {
	case err == nil:
		r.Created++
		return nil
	case apperror.IsKind(err, apperror.KindConflict):
		r.Skipped++
		log.Debug().Str("record", what).Msg("already present, skipped")
		return nil
	default:
		return fmt.Errorf("seed %s: %w", what, err)
	}
}

// SeedFixtures loads f through the services so product codes are generated
// the same way as in the API. Records that already exist are skipped;
// products are only created for suppliers created in this run.
func SeedFixtures(ctx context.Context, svcs *Services, f *database.Fixtures) (SeedReport, error) {
	var report SeedReport

	freshSuppliers := make(map[string]bool, len(f.Suppliers))
	for _, s := range f.Suppliers {
		_, err := svcs.Supplier.CreateSupplier(ctx, &service.SupplierInput{
			Code:    s.Code,
			Name:    s.Name,
			TaxID:   s.TaxID,
			Contact: s.Contact,
			Phone:   s.Phone,
			Address: s.Address,
			Sector:  s.Sector,
		})
		freshSuppliers[s.Code] = err == nil
		if err := report.track(err, "supplier "+s.Code); err != nil {
			return report, err
		}
	}

	for _, c := range f.Categories {
		_, err := svcs.Category.CreateCategory(ctx, &service.CreateCategoryInput{Code: c.Code, Name: c.Name})
		if err := report.track(err, "category "+c.Code); err != nil {
			return report, err
		}
	}

	for _, u := range f.Users {
		_, err := svcs.User.CreateUser(ctx, &service.CreateUserInput{
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Username:  u.Username,
			Email:     u.Email,
			Password:  u.Password,
			Role:      u.Role,
		})
		if err := report.track(err, "user "+u.Email); err != nil {
			return report, err
		}
	}

	for _, c := range f.Customers {
		_, err := svcs.Customer.CreateCustomer(ctx, &service.CustomerInput{
			Name:        c.Name,
			Surname:     c.Surname,
			TaxID:       c.TaxID,
			Phone:       c.Phone,
			Address:     c.Address,
			CreditLimit: decimal.NewFromInt(c.CreditLimit),
		})
		if err := report.track(err, "customer "+c.TaxID); err != nil {
			return report, err
		}
	}

	for _, p := range f.Products {
		if !freshSuppliers[p.Supplier] {
			report.Skipped++
			continue
		}
		supplier, err := svcs.Supplier.GetSupplierByCode(ctx, p.Supplier)
		if err != nil {
			return report, err
		}
		category, err := svcs.Category.GetCategoryByCode(ctx, p.Category)
		if err != nil {
			return report, err
		}
		expiry, err := p.Expiry()
		if err != nil {
			return report, err
		}

		product, err := svcs.Product.CreateProduct(ctx, &service.CreateProductInput{
			Name:          p.Name,
			SupplierID:    supplier.ID,
			CategoryID:    category.ID,
			PurchasePrice: decimal.NewFromInt(p.PurchasePrice),
			SalePrice:     decimal.NewFromInt(p.SalePrice),
			Brand:         p.Brand,
			Stock:         p.Stock,
			ExpiresAt:     expiry,
		})
		if err := report.track(err, "product "+p.Name); err != nil {
			return report, err
		}
		if product != nil {
			log.Info().Str("code", product.Code).Str("name", product.Name).Msg("product seeded")
		}
	}

	return report, nil
}
