// Package format renders prices and amount cells for comparison output.
package format

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/comparison-cli/internal/model"
)

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"INR": "₹",
	"KRW": "₩",
	"RUB": "₽",
	"TRY": "₺",
	"BRL": "R$",
	"CAD": "CA$",
	"AUD": "A$",
	"NZD": "NZ$",
	"MXN": "MX$",
	"CHF": "CHF",
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
	"PLN": "zł",
	"ZAR": "R",
	"SGD": "S$",
	"HKD": "HK$",
	"ILS": "₪",
	"UAH": "₴",
}

// CurrencySymbol returns the display symbol for an ISO currency code.
// Lookup is case-insensitive; unknown codes are echoed back unchanged.
func CurrencySymbol(code string) string {
	if code == "" {
		return ""
	}
	if sym, ok := currencySymbols[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return sym
	}
	return code
}

var printer = message.NewPrinter(language.English)

// FormatMoney groups thousands and keeps two decimals, dropping a ".00" tail.
func FormatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0"
	}
	cents := math.Round(v * 100)
	if cents == 0 {
		return "0"
	}
	if math.Mod(cents, 100) == 0 {
		return printer.Sprintf("%.0f", cents/100)
	}
	return printer.Sprintf("%.2f", cents/100)
}

// FormatAmount renders the value of an amount cell.
func FormatAmount(cf model.CompetitorFeature) string {
	amount := strings.TrimSpace(string(cf.Amount))
	if amount == "" {
		return ""
	}
	switch unit := cf.EffectiveUnit(); unit {
	case model.UnitCurrency:
		n, err := strconv.ParseFloat(amount, 64)
		if err != nil {
			return amount
		}
		return FormatMoney(n)
	case model.UnitCustom:
		return amount
	default:
		return amount + " " + string(unit)
	}
}
