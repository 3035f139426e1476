package model

import "github.com/shopspring/decimal"

// PayrollType is the Polish contract type a staff member is paid under.
type PayrollType string

const (
	PayrollUoP PayrollType = "UoP" // umowa o pracę (employment)
	PayrollUoD PayrollType = "UoD" // umowa o dzieło (civil contract)
	PayrollB2B PayrollType = "B2B"
)

// B2BTaxForm selects how a B2B contractor's income tax is estimated.
type B2BTaxForm string

const (
	TaxFormFlat        B2BTaxForm = "flat"
	TaxFormProgressive B2BTaxForm = "progressive"
	TaxFormRyczalt     B2BTaxForm = "ryczalt"
)

// ZUSTier is the B2B social-security contribution tier.
type ZUSTier string

const (
	ZUSFull         ZUSTier = "full"
	ZUSPreferential ZUSTier = "preferential"
	ZUSMinimal      ZUSTier = "minimal"
)

// ServiceCategory selects the ryczałt (lump-sum) rate for B2B income.
type ServiceCategory string

const (
	ServiceIT           ServiceCategory = "it"
	ServiceGeneral      ServiceCategory = "services"
	ServiceProfessional ServiceCategory = "professional"
)

// StaffMember is a person on the crew or office payroll.
type StaffMember struct {
	Base            `yaml:",inline"`
	Name            string          `json:"name" yaml:"name"`
	Role            string          `json:"role" yaml:"role"`
	PayrollType     PayrollType     `json:"payrollType" yaml:"payroll_type"`
	RateAmount      decimal.Decimal `json:"rateAmount" yaml:"rate_amount"` // monthly gross
	Currency        string          `json:"currency" yaml:"currency"`
	TaxForm         B2BTaxForm      `json:"taxForm,omitempty" yaml:"tax_form,omitempty"`
	ZUSTier         ZUSTier         `json:"zusTier,omitempty" yaml:"zus_tier,omitempty"`
	ServiceCategory ServiceCategory `json:"serviceCategory,omitempty" yaml:"service_category,omitempty"`
	Email           string          `json:"email,omitempty" yaml:"email,omitempty"`
}

// StaffAssignment links a staff member to an event by id.
type StaffAssignment struct {
	Base    `yaml:",inline"`
	StaffID string          `json:"staffId" yaml:"staff_id"`
	EventID string          `json:"eventId" yaml:"event_id"`
	Role    string          `json:"role" yaml:"role"`
	Hours   decimal.Decimal `json:"hours" yaml:"hours"`
}
