package invoice

import (
	"fmt"
	"math"

	"github.com/mmynk/dentaldesk/internal/models"
)

const basisPoints = 10000

// CoverageRate is the fraction of the subtotal covered by insurance, in basis points
// (1500 = 15%).
type CoverageRate int64

// DefaultCoverageRate is the clinic's flat 15% insurance coverage.
const DefaultCoverageRate CoverageRate = 1500

// CoverageRateFromFraction converts a fraction such as 0.15 to a CoverageRate.
func CoverageRateFromFraction(f float64) (CoverageRate, error) {
	if math.IsNaN(f) || f < 0 || f > 1 {
		return 0, fmt.Errorf("coverage rate %v must be between 0 and 1", f)
	}
	return CoverageRate(math.Round(f * basisPoints)), nil
}

// Fraction returns the rate as a fraction (0.15 for 15%).
func (r CoverageRate) Fraction() float64 {
	return float64(r) / basisPoints
}

// Percent returns the rate as a whole-number percentage for labels, e.g. 15.
func (r CoverageRate) Percent() int64 {
	return (int64(r) + 50) / 100
}

// dollarBasis converts cents x basis points to whole dollars.
const dollarBasis = 100 * basisPoints

// Deduction returns subtotal x rate rounded half-up to whole dollars
// ($85.00 at 15% deducts $13.00).
// Subtotals are never negative, so half-up and half-away-from-zero agree.
func (r CoverageRate) Deduction(subtotal models.Money) models.Money {
	dollars := (int64(subtotal)*int64(r) + dollarBasis/2) / dollarBasis
	return models.Dollars(dollars)
}

// Totals is the derived state of an invoice. It is never stored.
type Totals struct {
	// Subtotal is the sum of UnitPrice x Quantity over all line items.
	Subtotal models.Money

	// InsuranceDeduction is the covered share of Subtotal.
	InsuranceDeduction models.Money

	// Total is what the patient owes: Subtotal - InsuranceDeduction.
	Total models.Money

	// Units is the number of procedure units across all line items.
	Units int
}

// ComputeTotals derives totals from line items. It reads items only and gives the same
// result for the same input every time.
func ComputeTotals(items []models.LineItem, rate CoverageRate) Totals {
	var t Totals
	for _, li := range items {
		t.Subtotal += li.Amount()
		t.Units += li.Quantity
	}
	t.InsuranceDeduction = rate.Deduction(t.Subtotal)
	t.Total = t.Subtotal - t.InsuranceDeduction
	return t
}
