package organization

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/swifthomes-api/internal/domain"
	"github.com/jhoicas/swifthomes-api/internal/domain/entity"
)

// FormatAmount formatea amount en la moneda de la organización: símbolo, separador de miles
// y la escala estándar de la moneda (ej: USD 1234.5 → "$ 1,234.50", JPY 1234.56 → "¥ 1,235").
// Trabaja sobre el decimal, sin pasar por float64.
func FormatAmount(org *entity.Organization, amount decimal.Decimal) (string, error) {
	code := "USD"
	if org != nil && org.Currency != "" {
		code = org.Currency
	}
	unit, err := currency.ParseISO(code)
	if err != nil {
		return "", fmt.Errorf("%w: moneda %q", domain.ErrInvalidInput, code)
	}
	scale, _ := currency.Standard.Rounding(unit)

	fixed := amount.Abs().StringFixed(int32(scale))
	intDigits, frac, _ := strings.Cut(fixed, ".")
	whole, err := decimal.NewFromString(intDigits)
	if err != nil || !whole.IsInteger() || whole.BigInt().BitLen() > 63 {
		return "", fmt.Errorf("%w: monto fuera de rango", domain.ErrInvalidInput)
	}

	p := message.NewPrinter(language.English)
	var b strings.Builder
	b.WriteString(p.Sprint(currency.Symbol(unit)))
	b.WriteByte(' ')
	// el redondeo puede dejar -0.00: el signo sale del texto ya fijado
	if amount.Sign() < 0 && strings.Trim(fixed, "0.") != "" {
		b.WriteByte('-')
	}
	b.WriteString(p.Sprintf("%d", whole.IntPart()))
	if frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	return b.String(), nil
}
