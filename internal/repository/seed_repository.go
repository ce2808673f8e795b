package repository

import (
	"database/sql"

	"finadvisor/internal/model"
)

// SeedRepository writes catalog rows from the loader. Products are keyed by
// name; re-running the loader updates rows in place.
type SeedRepository struct {
	DB *sql.DB
}

func (r *SeedRepository) EnsureTable() error {
	_, err := r.DB.Exec(`
		CREATE TABLE IF NOT EXISTS advisor_products (
			id             SERIAL PRIMARY KEY,
			name           TEXT UNIQUE NOT NULL,
			strategy       TEXT NOT NULL,
			risk_level     TEXT NOT NULL,
			lockup         TEXT NOT NULL,
			lockup_days    INT NOT NULL,
			annual_return  DOUBLE PRECISION NOT NULL,
			min_investment TEXT NOT NULL,
			min_amount     DOUBLE PRECISION NOT NULL,
			redemption_fee TEXT,
			advantage      TEXT NOT NULL
		)
	`)
	return err
}

func (r *SeedRepository) Save(p model.Product) error {
	var exists bool
	err := r.DB.QueryRow("SELECT EXISTS(SELECT 1 FROM advisor_products WHERE name = $1)", p.Name).Scan(&exists)
	if err != nil {
		return err
	}

	fee := sql.NullString{String: p.RedemptionFee, Valid: p.RedemptionFee != ""}
	if exists {
		_, err = r.DB.Exec(`
			UPDATE advisor_products
			SET strategy = $1, risk_level = $2, lockup = $3, lockup_days = $4,
			    annual_return = $5, min_investment = $6, min_amount = $7,
			    redemption_fee = $8, advantage = $9
			WHERE name = $10
		`, p.Strategy, p.RiskLevel, p.Lockup, p.LockupDays,
			p.AnnualReturn, p.MinInvestment, p.MinAmount, fee, p.Advantage, p.Name)
	} else {
		_, err = r.DB.Exec(`
			INSERT INTO advisor_products
			(name, strategy, risk_level, lockup, lockup_days,
			 annual_return, min_investment, min_amount, redemption_fee, advantage)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, p.Name, p.Strategy, p.RiskLevel, p.Lockup, p.LockupDays,
			p.AnnualReturn, p.MinInvestment, p.MinAmount, fee, p.Advantage)
	}

	return err
}
