package config

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/stagebooks-dev/stagebooks/internal/model"
	"github.com/stagebooks-dev/stagebooks/internal/payroll"
)

// FileName is the default config file name in a stagebooks directory.
const FileName = "stagebooks.yaml"

// Config represents the top-level stagebooks.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Payroll  PayrollConfig  `yaml:"payroll"`
	Tax      TaxConfig      `yaml:"tax"`
	Export   ExportConfig   `yaml:"export"`
	Server   ServerConfig   `yaml:"server"`
	Log      LogConfig      `yaml:"log"`
}

// BusinessConfig identifies the company.
type BusinessConfig struct {
	Name       string `yaml:"name"`
	Currency   string `yaml:"currency"`
	ExportedBy string `yaml:"exported_by"`
}

// PayrollConfig holds the payroll rate table. Rates are fractions, so 9%
// is 0.09.
type PayrollConfig struct {
	EmployerContribution decimal.Decimal            `yaml:"employer_contribution"`
	PensionRate          decimal.Decimal            `yaml:"pension_rate"`
	DisabilityRate       decimal.Decimal            `yaml:"disability_rate"`
	SicknessRate         decimal.Decimal            `yaml:"sickness_rate"`
	HealthRate           decimal.Decimal            `yaml:"health_rate"`
	TaxFreeMonthly       decimal.Decimal            `yaml:"tax_free_monthly"`
	AnnualThreshold      decimal.Decimal            `yaml:"annual_threshold"`
	LowerPIT             decimal.Decimal            `yaml:"lower_pit"`
	UpperPIT             decimal.Decimal            `yaml:"upper_pit"`
	B2BFlat              decimal.Decimal            `yaml:"b2b_flat"`
	Ryczalt              map[string]decimal.Decimal `yaml:"ryczalt"`
	ZUSTiers             map[string]decimal.Decimal `yaml:"zus_tiers"`
}

// TaxConfig controls the CIT estimate.
type TaxConfig struct {
	CITSmall      decimal.Decimal `yaml:"cit_small"`
	CITStandard   decimal.Decimal `yaml:"cit_standard"`
	SmallBusiness bool            `yaml:"small_business"`
}

// ExportConfig controls where exports are written.
type ExportConfig struct {
	Dir        string        `yaml:"dir"`
	PDFTimeout time.Duration `yaml:"pdf_timeout"`
}

// ServerConfig controls the HTTP API.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// LogConfig controls logging output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or text
}

// Load reads a stagebooks.yaml file from disk. Sections missing from the
// file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(businessName string) *Config {
	cit := payroll.DefaultCITRates()
	return &Config{
		Business: BusinessConfig{
			Name:       businessName,
			Currency:   "PLN",
			ExportedBy: "stagebooks",
		},
		Payroll: FromRates(payroll.DefaultRates()),
		Tax: TaxConfig{
			CITSmall:      cit.Small,
			CITStandard:   cit.Standard,
			SmallBusiness: true,
		},
		Export: ExportConfig{
			Dir:        "exports",
			PDFTimeout: 30 * time.Second,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// FromRates converts a payroll rate table to its config form.
func FromRates(r payroll.Rates) PayrollConfig {
	ryczalt := make(map[string]decimal.Decimal, len(r.Ryczalt))
	for k, v := range r.Ryczalt {
		ryczalt[string(k)] = v
	}
	tiers := make(map[string]decimal.Decimal, len(r.ZUSTiers))
	for k, v := range r.ZUSTiers {
		tiers[string(k)] = v
	}
	return PayrollConfig{
		EmployerContribution: r.EmployerContribution,
		PensionRate:          r.PensionRate,
		DisabilityRate:       r.DisabilityRate,
		SicknessRate:         r.SicknessRate,
		HealthRate:           r.HealthRate,
		TaxFreeMonthly:       r.TaxFreeMonthly,
		AnnualThreshold:      r.AnnualThreshold,
		LowerPIT:             r.LowerPIT,
		UpperPIT:             r.UpperPIT,
		B2BFlat:              r.B2BFlat,
		Ryczalt:              ryczalt,
		ZUSTiers:             tiers,
	}
}

// Rates converts the config form back to a payroll rate table.
func (p PayrollConfig) Rates() payroll.Rates {
	ryczalt := make(map[model.ServiceCategory]decimal.Decimal, len(p.Ryczalt))
	for k, v := range p.Ryczalt {
		ryczalt[model.ServiceCategory(k)] = v
	}
	tiers := make(map[model.ZUSTier]decimal.Decimal, len(p.ZUSTiers))
	for k, v := range p.ZUSTiers {
		tiers[model.ZUSTier(k)] = v
	}
	return payroll.Rates{
		EmployerContribution: p.EmployerContribution,
		PensionRate:          p.PensionRate,
		DisabilityRate:       p.DisabilityRate,
		SicknessRate:         p.SicknessRate,
		HealthRate:           p.HealthRate,
		TaxFreeMonthly:       p.TaxFreeMonthly,
		AnnualThreshold:      p.AnnualThreshold,
		LowerPIT:             p.LowerPIT,
		UpperPIT:             p.UpperPIT,
		B2BFlat:              p.B2BFlat,
		Ryczalt:              ryczalt,
		ZUSTiers:             tiers,
	}
}

// Calculator returns a payroll calculator using the configured rates.
func (c *Config) Calculator() payroll.Calculator {
	return payroll.Calculator{
		Rates: c.Payroll.Rates(),
		CIT:   payroll.CITRates{Small: c.Tax.CITSmall, Standard: c.Tax.CITStandard},
	}
}
