package recon

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal digits amounts are rendered with.
const AmountScale = 3

// ZeroAmount is rendered for amounts that are present but not numeric.
const ZeroAmount = json.Number("0.000")

// RoundAmount rounds d half-to-even at AmountScale digits.
func RoundAmount(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixedBank(AmountScale))
}

// RoundAmountString parses raw and rounds it, falling back to ZeroAmount.
func RoundAmountString(raw string) json.Number {
	d, err := decimal.NewFromString(amountReplacer.Replace(raw))
	if err != nil {
		return ZeroAmount
	}
	return RoundAmount(d)
}

func renderAmount(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return RoundAmount(*d)
}
