// Package currency formats payroll amounts for display and print.
// Currency is applied at formatting time only; amounts carry no unit.
package currency

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

type Formatter struct {
	unit    currency.Unit
	printer *message.Printer
}

// NewFormatter builds a formatter for an ISO 4217 code and a BCP 47 locale such as "en" or "id".
func NewFormatter(code, locale string) (*Formatter, error) {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return nil, fmt.Errorf("invalid currency code %q: %w", code, err)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return &Formatter{unit: unit, printer: message.NewPrinter(tag)}, nil
}

func (f *Formatter) Code() string {
	return f.unit.String()
}

// Format renders amount rounded to cents with the locale's grouping and decimal separator.
// Digits come from the decimal text, so large amounts keep every digit.
func (f *Formatter) Format(amount decimal.Decimal) string {
	symbol := f.printer.Sprint(currency.Symbol(f.unit))

	text := amount.Round(2).StringFixed(2)
	sign := ""
	if strings.HasPrefix(text, "-") {
		sign = "-"
		text = text[1:]
	}
	whole, cents, _ := strings.Cut(text, ".")
	if strings.Trim(whole, "0") == "" && strings.Trim(cents, "0") == "" {
		sign = ""
	}
	return symbol + " " + sign + f.group(whole) + f.decimalSeparator() + cents
}

func (f *Formatter) group(whole string) string {
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return whole
	}
	return f.printer.Sprint(number.Decimal(n))
}

func (f *Formatter) decimalSeparator() string {
	half := f.printer.Sprint(number.Decimal(0.5, number.Scale(1)))
	return strings.TrimSuffix(strings.TrimPrefix(half, "0"), "5")
}
