package paycalc

import "fmt"

// Calculate runs the full statutory calculation for one employee. It is
// deterministic: identical input always produces identical output.
func Calculate(input Input) (Result, error) {
	baseGross, err := baseGrossPay(input)
	if err != nil {
		return Result{}, err
	}

	result := Result{
		Deductions: map[string]float64{},
		Breakdown:  []BreakdownLine{},
	}

	// Benefits are taxable, so they join gross before any rule runs.
	grossPay := baseGross
	for _, item := range input.LineItems {
		if item.Type != LineItemBenefit {
			continue
		}
		grossPay += item.Amount
		result.Breakdown = append(result.Breakdown, BreakdownLine{
			Description: item.Name,
			Amount:      item.Amount,
			Kind:        BreakdownAddition,
		})
	}
	result.GrossPay = grossPay

	switch input.Classification {
	case ClassificationExpatriate:
		tax := grossPay * ExpatriateFlatRate
		result.TotalDeductions += tax
		result.Deductions["PAYE"] = tax
		result.Breakdown = append(result.Breakdown, BreakdownLine{
			Description: "PAYE (expatriate flat rate)",
			Amount:      tax,
			Kind:        BreakdownDeduction,
		})
	case ClassificationLocal:
		rules, err := RulesFor(input.Country)
		if err != nil {
			return Result{}, fmt.Errorf("country %q: %w", input.Country, err)
		}
		for _, rule := range rules {
			if !rule.Mandatory {
				continue
			}
			amount := ruleAmount(rule, grossPay)
			if amount == 0 {
				continue
			}
			if rule.EmployerOnly {
				result.EmployerContributions += amount
				continue
			}
			result.TotalDeductions += amount
			result.Deductions[rule.Name] = amount
			result.Breakdown = append(result.Breakdown, BreakdownLine{
				Description: rule.Name,
				Amount:      amount,
				Kind:        BreakdownDeduction,
			})
		}
	default:
		return Result{}, fmt.Errorf("invalid employee classification %q", input.Classification)
	}

	var allowances float64
	for _, item := range input.LineItems {
		if item.Type != LineItemDeduction {
			continue
		}
		result.TotalDeductions += item.Amount
		result.Breakdown = append(result.Breakdown, BreakdownLine{
			Description: item.Name,
			Amount:      item.Amount,
			Kind:        BreakdownDeduction,
		})
	}
	for _, item := range input.LineItems {
		if item.Type != LineItemAllowance {
			continue
		}
		allowances += item.Amount
		result.Breakdown = append(result.Breakdown, BreakdownLine{
			Description: item.Name,
			Amount:      item.Amount,
			Kind:        BreakdownAddition,
		})
	}
	if input.BenefitDeductions > 0 {
		result.TotalDeductions += input.BenefitDeductions
		result.Breakdown = append(result.Breakdown, BreakdownLine{
			Description: "Benefit deductions",
			Amount:      input.BenefitDeductions,
			Kind:        BreakdownDeduction,
		})
	}

	result.NetPay = grossPay + allowances - result.TotalDeductions

	return result, nil
}

func baseGrossPay(input Input) (float64, error) {
	switch input.PayType {
	case PayTypeHourly:
		return input.HoursWorked * input.PayRate, nil
	case PayTypePieceRate:
		return input.PiecesCompleted * input.PayRate, nil
	case PayTypeSalary:
		return input.PayRate, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidPayType, input.PayType)
	}
}

func ruleAmount(rule Rule, grossPay float64) float64 {
	switch rule.Kind {
	case RuleFixed:
		return rule.Amount
	case RulePercentage:
		base := grossPay
		if rule.Cap > 0 && base > rule.Cap {
			base = rule.Cap
		}
		return base * rule.Rate
	case RuleProgressive:
		return progressiveAmount(rule, grossPay)
	}
	return 0
}

func progressiveAmount(rule Rule, grossPay float64) float64 {
	var total float64
	for _, bracket := range rule.Brackets {
		switch bracket.Kind {
		case BracketMarginal:
			if grossPay <= bracket.Min {
				continue
			}
			upper := grossPay
			if upper > bracket.Max {
				upper = bracket.Max
			}
			total += (upper - bracket.Min) * bracket.Rate
		case BracketFixedCharge:
			// Sliding-scale band: the flat charge for the band gross
			// falls into replaces the running total.
			if grossPay >= bracket.Min && grossPay < bracket.Max {
				total = bracket.Amount
			}
		}
	}

	total -= rule.Relief
	if total < 0 {
		total = 0
	}
	return total
}
