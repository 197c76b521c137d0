package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"finbot/domain"
)

type catalogFile struct {
	Banks []struct {
		ID        string  `yaml:"id"`
		Name      string  `yaml:"name"`
		Rate      float64 `yaml:"rate"`
		MinAmount float64 `yaml:"min_amount"`
	} `yaml:"banks"`
}

// DefaultCatalog returns the built-in reference catalog. Order matters:
// comparisons and bank menus follow it.
func DefaultCatalog() []domain.Bank {
	return []domain.Bank{
		{ID: "nbu", Name: "NBU", AnnualRate: 18.5, MinAmount: 1_000_000},
		{ID: "kapitalbank", Name: "Kapitalbank", AnnualRate: 17.0, MinAmount: 500_000},
		{ID: "ipoteka", Name: "Ipoteka bank", AnnualRate: 16.5, MinAmount: 1_000_000},
		{ID: "xalq", Name: "Xalq banki", AnnualRate: 15.0, MinAmount: 500_000},
		{ID: "agro", Name: "Agrobank", AnnualRate: 14.5, MinAmount: 1_000_000},
	}
}

// LoadCatalog reads a bank catalog from a YAML file, falling back to the
// built-in catalog when no path is configured.
func LoadCatalog(path string) ([]domain.Bank, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read bank catalog: %w", err)
	}

	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse bank catalog: %w", err)
	}
	if len(file.Banks) == 0 {
		return nil, fmt.Errorf("bank catalog %s has no banks", path)
	}

	seen := make(map[string]bool, len(file.Banks))
	banks := make([]domain.Bank, 0, len(file.Banks))
	for _, b := range file.Banks {
		if b.ID == "" || b.Name == "" {
			return nil, fmt.Errorf("bank catalog %s: every bank needs an id and a name", path)
		}
		if seen[b.ID] {
			return nil, fmt.Errorf("bank catalog %s: duplicate bank id %q", path, b.ID)
		}
		seen[b.ID] = true
		if b.Rate < 0 || b.MinAmount < 0 {
			return nil, fmt.Errorf("bank catalog %s: bank %q has negative values", path, b.ID)
		}
		banks = append(banks, domain.Bank{
			ID:         b.ID,
			Name:       b.Name,
			AnnualRate: b.Rate,
			MinAmount:  b.MinAmount,
		})
	}
	return banks, nil
}
