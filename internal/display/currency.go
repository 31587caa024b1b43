// Package display formats amounts for the customer facing screens.
package display

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CurrencySymbol 金額一律為最小貨幣單位（越南盾無小數）
const CurrencySymbol = "₫"

var printer = message.NewPrinter(language.Vietnamese)

// FormatCurrency 例如 112000 -> "112.000 ₫"
func FormatCurrency(amount int64) string {
	return printer.Sprintf("%d %s", amount, CurrencySymbol)
}

// FormatDiscount 折扣顯示為負數，例如 5000 -> "-5.000 ₫"
func FormatDiscount(amount int64) string {
	if amount < 0 {
		amount = -amount
	}
	return "-" + FormatCurrency(amount)
}
