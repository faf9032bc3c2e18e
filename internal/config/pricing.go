package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arganhr/backoffice/internal/domain/clients"
	"github.com/arganhr/backoffice/internal/platform/logger"
)

// TierPricing carries the default commercial terms applied when a client
// or contract is created without explicit figures. Amounts in pence.
type TierPricing struct {
	MonthlyRetainer int64 `yaml:"monthly_retainer"`
	InclusiveHours  int64 `yaml:"inclusive_hours"`
	HourlyRate      int64 `yaml:"hourly_rate"`
	DailyRate       int64 `yaml:"daily_rate"`
	MileageRate     int64 `yaml:"mileage_rate"`
	OvernightRate   int64 `yaml:"overnight_rate"`
}

type Pricing struct {
	Tiers map[string]TierPricing `yaml:"tiers"`
}

func defaultPricing() Pricing {
	return Pricing{
		Tiers: map[string]TierPricing{
			clients.ServiceTierTier1: {
				MonthlyRetainer: 45000,
				InclusiveHours:  8,
				HourlyRate:      9500,
				DailyRate:       65000,
				MileageRate:     45,
				OvernightRate:   12500,
			},
			clients.ServiceTierDocOnly: {
				MonthlyRetainer: 15000,
				HourlyRate:      11000,
				DailyRate:       75000,
				MileageRate:     45,
				OvernightRate:   12500,
			},
			clients.ServiceTierAdHoc: {
				HourlyRate:      12500,
				DailyRate:       85000,
				MileageRate:     45,
				OvernightRate:   12500,
			},
		},
	}
}

// LoadPricing reads tier defaults from path when set, falling back to the
// compiled-in table. Unknown tiers in the file are rejected.
func LoadPricing(path string, log *logger.Logger) (Pricing, error) {
	pricing := defaultPricing()
	if path == "" {
		return pricing, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Pricing{}, fmt.Errorf("read pricing file: %w", err)
	}
	var loaded Pricing
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		return Pricing{}, fmt.Errorf("parse pricing file: %w", err)
	}
	for tier, tp := range loaded.Tiers {
		if !clients.ValidServiceTier(tier) {
			return Pricing{}, fmt.Errorf("pricing file names unknown tier %q", tier)
		}
		pricing.Tiers[tier] = tp
	}
	if log != nil {
		log.Info("Loaded tier pricing overrides", "path", path, "tiers", len(loaded.Tiers))
	}
	return pricing, nil
}

// ForTier returns the defaults for tier, or a zero struct when unknown.
func (p Pricing) ForTier(tier string) TierPricing {
	return p.Tiers[tier]
}
