// Package format renders monetary amounts stored in cents.
package format

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders cents as a US dollar string, e.g. 123456 -> "$1,234.56".
// Negative amounts keep their sign in front of the symbol.
func FormatCurrency(cents int64) string {
	sign := ""
	abs := uint64(cents)
	if cents < 0 {
		sign = "-"
		// two's complement negation, valid for math.MinInt64 too
		abs = ^abs + 1
	}
	return sign + "$" + printer.Sprintf("%d", abs/100) + fmt.Sprintf(".%02d", abs%100)
}

// ToMajorUnits converts cents to dollars as a plain number.
func ToMajorUnits(cents int64) float64 {
	return decimal.New(cents, -2).InexactFloat64()
}
