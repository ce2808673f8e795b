package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"finadvisor/internal/model"
)

// CatalogRepository reads the product table the seeder maintains. The store
// loads it once at startup; nothing mutates it afterwards.
type CatalogRepository struct {
	DB *pgxpool.Pool
}

func (r *CatalogRepository) LoadAll(ctx context.Context) ([]model.Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT name, strategy, risk_level, lockup, lockup_days,
		       annual_return, min_investment, min_amount,
		       COALESCE(redemption_fee, ''), advantage
		FROM advisor_products
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query advisor_products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(
			&p.Name, &p.Strategy, &p.RiskLevel, &p.Lockup, &p.LockupDays,
			&p.AnnualReturn, &p.MinInvestment, &p.MinAmount,
			&p.RedemptionFee, &p.Advantage,
		); err != nil {
			return nil, fmt.Errorf("scan advisor_products: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("advisor_products is empty")
	}
	return products, nil
}
