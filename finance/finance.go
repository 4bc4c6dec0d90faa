// Package finance derives display-ready figures from raw ledger
// amounts. Everything here is pure: no caching, no state, integer
// arithmetic until the final human-readable value.
package finance

import (
	"fmt"
	"math/big"
)

// DecimalExponent is the ledger's decimal exponent: one display unit
// is 10^18 smallest units.
const DecimalExponent = 18

// BpsDenominator converts basis points to a fraction.
const BpsDenominator = 10000

var unitDivisor = new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(DecimalExponent), nil))

// ToDisplayUnit converts a smallest-unit amount to display units.
func ToDisplayUnit(amount *big.Int) float64 {
	if amount == nil {
		return 0
	}
	f, _ := new(big.Float).Quo(new(big.Float).SetInt(amount), unitDivisor).Float64()
	return f
}

// FormatAmount renders a smallest-unit amount with 4 fractional
// digits, the precision used for per-donation and per-fee figures.
func FormatAmount(amount *big.Int) string {
	if amount == nil {
		return "0.0000"
	}
	return new(big.Float).Quo(new(big.Float).SetInt(amount), unitDivisor).Text('f', 4)
}

// ProgressPercent returns raised/goal as a percentage clamped to
// [0, 100]. A zero goal yields 0; over-funding is visually capped while
// the underlying amounts stay uncapped.
func ProgressPercent(raised, goal *big.Int) float64 {
	if goal == nil || goal.Sign() <= 0 || raised == nil || raised.Sign() < 0 {
		return 0
	}
	ratio, _ := new(big.Float).Quo(new(big.Float).SetInt(raised), new(big.Float).SetInt(goal)).Float64()
	pct := ratio * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// FormatPercent renders an aggregate percentage with 2 fractional
// digits.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}

// PlatformFee computes amount * feeRateBps / 10000 in smallest units,
// rounding toward zero. Exact integer arithmetic; no float loss.
func PlatformFee(amount *big.Int, feeRateBps int64) *big.Int {
	if amount == nil || amount.Sign() <= 0 || feeRateBps <= 0 {
		return new(big.Int)
	}
	fee := new(big.Int).Mul(amount, big.NewInt(feeRateBps))
	return fee.Div(fee, big.NewInt(BpsDenominator))
}

// NetAmount is what the campaign receives after the platform fee.
// PlatformFee + NetAmount always equals the original amount exactly.
func NetAmount(amount *big.Int, feeRateBps int64) *big.Int {
	if amount == nil {
		return new(big.Int)
	}
	return new(big.Int).Sub(amount, PlatformFee(amount, feeRateBps))
}

// USDEquivalent converts a display-unit amount with the given rate.
// ok is false when the rate is unavailable; callers must omit the
// figure entirely rather than show $0.00.
func USDEquivalent(displayAmount, priceRate float64) (usd float64, ok bool) {
	if priceRate <= 0 {
		return 0, false
	}
	return displayAmount * priceRate, true
}

// FormatUSD renders the approximate USD suffix for a display amount,
// or an empty string when the rate is unknown.
func FormatUSD(displayAmount, priceRate float64) string {
	usd, ok := USDEquivalent(displayAmount, priceRate)
	if !ok {
		return ""
	}
	return fmt.Sprintf(" (~$%.2f)", usd)
}
