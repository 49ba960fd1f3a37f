package paycalc

import "math"

type Country string

const (
	CountryUganda     Country = "UG"
	CountryKenya      Country = "KE"
	CountryTanzania   Country = "TZ"
	CountryRwanda     Country = "RW"
	CountrySouthSudan Country = "SS"
)

type RuleKind string

const (
	RuleFixed       RuleKind = "fixed"
	RulePercentage  RuleKind = "percentage"
	RuleProgressive RuleKind = "progressive"
)

type BracketKind string

const (
	// BracketMarginal taxes the portion of gross falling inside the band.
	BracketMarginal BracketKind = "marginal"
	// BracketFixedCharge levies a flat amount when gross falls inside the
	// band, replacing the running total (NHIF-style sliding scales).
	BracketFixedCharge BracketKind = "fixed_charge"
)

// Bracket is one band of a progressive rule. Max is math.Inf(1) for the
// open-ended top band. The kind decides which of Rate or Amount applies.
type Bracket struct {
	Kind   BracketKind
	Min    float64
	Max    float64
	Rate   float64
	Amount float64
}

// Rule is a single statutory deduction. Rules with Mandatory false stay in
// the table for reference but are skipped by the engine. EmployerOnly rules
// accumulate into employer contributions and never reduce employee net pay.
type Rule struct {
	Name         string
	Kind         RuleKind
	Mandatory    bool
	EmployerOnly bool

	// fixed
	Amount float64

	// percentage; Cap > 0 limits the pensionable base the rate applies to.
	Rate float64
	Cap  float64

	// progressive
	Brackets []Bracket
	// Relief is subtracted after bracket computation, floored at zero.
	Relief float64
}

// UgandaNSSFCeiling caps the pensionable pay the employee-side NSSF rate
// applies to.
const UgandaNSSFCeiling = 1_200_000

// KenyaPersonalRelief is the flat monthly PAYE relief.
const KenyaPersonalRelief = 2_400

func marginal(min, max, rate float64) Bracket {
	return Bracket{Kind: BracketMarginal, Min: min, Max: max, Rate: rate}
}

func fixedCharge(min, max, amount float64) Bracket {
	return Bracket{Kind: BracketFixedCharge, Min: min, Max: max, Amount: amount}
}

var countryRules = map[Country][]Rule{
	CountryUganda: {
		{
			Name: "PAYE", Kind: RuleProgressive, Mandatory: true,
			Brackets: []Bracket{
				marginal(0, 235_000, 0),
				marginal(235_000, 335_000, 0.10),
				marginal(335_000, 410_000, 0.20),
				marginal(410_000, 10_000_000, 0.30),
				marginal(10_000_000, math.Inf(1), 0.40),
			},
		},
		{Name: "NSSF", Kind: RulePercentage, Mandatory: true, Rate: 0.05, Cap: UgandaNSSFCeiling},
		{Name: "NSSF Employer", Kind: RulePercentage, Mandatory: true, EmployerOnly: true, Rate: 0.10},
		{Name: "Local Service Tax", Kind: RuleFixed, Mandatory: false, Amount: 100_000},
	},
	CountryKenya: {
		{
			Name: "PAYE", Kind: RuleProgressive, Mandatory: true,
			Relief: KenyaPersonalRelief,
			Brackets: []Bracket{
				marginal(0, 24_000, 0.10),
				marginal(24_000, 32_333, 0.25),
				marginal(32_333, math.Inf(1), 0.30),
			},
		},
		{
			Name: "NHIF", Kind: RuleProgressive, Mandatory: true,
			Brackets: []Bracket{
				fixedCharge(0, 6_000, 150),
				fixedCharge(6_000, 12_000, 300),
				fixedCharge(12_000, 20_000, 400),
				fixedCharge(20_000, 30_000, 600),
				fixedCharge(30_000, 50_000, 850),
				fixedCharge(50_000, 100_000, 1_200),
				fixedCharge(100_000, math.Inf(1), 1_700),
			},
		},
		{Name: "NSSF", Kind: RulePercentage, Mandatory: true, Rate: 0.06},
	},
	CountryTanzania: {
		{
			Name: "PAYE", Kind: RuleProgressive, Mandatory: true,
			Brackets: []Bracket{
				marginal(0, 270_000, 0),
				marginal(270_000, 520_000, 0.08),
				marginal(520_000, 760_000, 0.20),
				marginal(760_000, 1_000_000, 0.25),
				marginal(1_000_000, math.Inf(1), 0.30),
			},
		},
		{Name: "NSSF", Kind: RulePercentage, Mandatory: true, Rate: 0.10},
		{Name: "NSSF Employer", Kind: RulePercentage, Mandatory: true, EmployerOnly: true, Rate: 0.10},
	},
	CountryRwanda: {
		{
			Name: "PAYE", Kind: RuleProgressive, Mandatory: true,
			Brackets: []Bracket{
				marginal(0, 60_000, 0),
				marginal(60_000, 100_000, 0.20),
				marginal(100_000, math.Inf(1), 0.30),
			},
		},
		{Name: "RSSB Pension", Kind: RulePercentage, Mandatory: true, Rate: 0.03},
		{Name: "RSSB Pension Employer", Kind: RulePercentage, Mandatory: true, EmployerOnly: true, Rate: 0.05},
	},
	CountrySouthSudan: {
		{
			Name: "PIT", Kind: RuleProgressive, Mandatory: true,
			Brackets: []Bracket{
				marginal(0, 2_000, 0),
				marginal(2_000, 5_000, 0.05),
				marginal(5_000, 10_000, 0.10),
				marginal(10_000, 15_000, 0.15),
				marginal(15_000, math.Inf(1), 0.20),
			},
		},
		{Name: "NSIF", Kind: RulePercentage, Mandatory: true, Rate: 0.08},
		{Name: "NSIF Employer", Kind: RulePercentage, Mandatory: true, EmployerOnly: true, Rate: 0.17},
	},
}

// RulesFor returns the ordered statutory rule list for a country, or
// ErrUnsupportedCountry. Callers must treat the slice as read-only.
func RulesFor(country Country) ([]Rule, error) {
	rules, ok := countryRules[country]
	if !ok {
		return nil, ErrUnsupportedCountry
	}
	return rules, nil
}

// SupportedCountries lists the countries with statutory rule tables.
func SupportedCountries() []Country {
	return []Country{CountryUganda, CountryKenya, CountryTanzania, CountryRwanda, CountrySouthSudan}
}
