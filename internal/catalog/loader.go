package catalog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"finadvisor/internal/model"
)

// Column contract with the catalog source. Header names are part of the
// interface; a source missing any of them is rejected at load.
var requiredColumns = []string{
	"产品名称", "产品策略", "风险级别", "封闭期",
	"历史年化收益", "起投金额", "赎回费", "产品优势",
}

// LoadFile reads the catalog CSV at path. Load errors are returned to the
// caller; queries never surface them (main degrades to Unavailable).
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()

	products, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return New(products), nil
}

// ParseCSV decodes catalog rows. Malformed rows abort the whole load with a
// row-numbered error rather than being skipped.
func ParseCSV(r io.Reader) ([]model.Product, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("catalog missing column %q", name)
		}
	}

	var products []model.Product
	row := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		row++
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		p, err := parseRow(record, col)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		products = append(products, p)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("catalog has no product rows")
	}
	return products, nil
}

func parseRow(record []string, col map[string]int) (model.Product, error) {
	field := func(name string) string { return record[col[name]] }

	p := model.Product{
		Name:          field("产品名称"),
		Strategy:      field("产品策略"),
		RiskLevel:     field("风险级别"),
		Lockup:        field("封闭期"),
		MinInvestment: field("起投金额"),
		RedemptionFee: field("赎回费"),
		Advantage:     field("产品优势"),
	}
	if p.Name == "" {
		return model.Product{}, fmt.Errorf("empty 产品名称")
	}

	var err error
	if p.LockupDays, err = model.ParsePeriodDays(p.Lockup); err != nil {
		return model.Product{}, fmt.Errorf("封闭期: %w", err)
	}
	if p.AnnualReturn, err = model.ParseReturnRate(field("历史年化收益")); err != nil {
		return model.Product{}, fmt.Errorf("历史年化收益: %w", err)
	}
	if p.MinAmount, err = model.ParseAmountYuan(p.MinInvestment); err != nil {
		return model.Product{}, fmt.Errorf("起投金额: %w", err)
	}
	return p, nil
}
