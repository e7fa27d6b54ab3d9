package ledger

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatMoney renders an amount with two decimals and thousands separators,
// e.g. 12345.678 -> "12,345.68". Grouping is done on the integer part so
// the decimal amount is never rounded through a float.
func FormatMoney(d decimal.Decimal) string {
	r := d.Round(2)
	sign := ""
	if r.IsNegative() {
		sign = "-"
	}
	abs := r.Abs()
	whole := abs.Truncate(0)
	frac := abs.Sub(whole).StringFixed(2)[1:] // ".68"
	return sign + humanize.Comma(whole.IntPart()) + frac
}

// FormatElapsed renders seconds as HH:MM:SS.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
}
