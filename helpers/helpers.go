package helpers

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mdp/qrterminal/v3"
	"github.com/muesli/gamut"
	"github.com/shopspring/decimal"
)

// addrPrefixLen is how much of a recipient address the history table shows.
const addrPrefixLen = 20

// TruncateAddr shortens an address for table display: a fixed prefix plus an
// ellipsis.
func TruncateAddr(addr string) string {
	if len(addr) <= addrPrefixLen {
		return addr
	}
	return addr[:addrPrefixLen] + "..."
}

// FormatAmount renders an amount with exactly 6 fractional digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(6)
}

// EpochLabel renders a transaction's finality column: "Epoch N" once
// finalized, "Pending" while unconfirmed.
func EpochLabel(epoch *int64) string {
	if epoch == nil {
		return "Pending"
	}
	return fmt.Sprintf("Epoch %d", *epoch)
}

// ParseAmount validates and parses a user-entered amount. It must parse as a
// decimal and be strictly positive.
func ParseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid amount")
	}
	if d.Sign() <= 0 {
		return decimal.Decimal{}, fmt.Errorf("amount must be greater than 0")
	}
	return d, nil
}

// QRString renders text as a half-block terminal QR code.
func QRString(text string) string {
	var b strings.Builder
	qrterminal.GenerateWithConfig(text, qrterminal.Config{
		Level:      qrterminal.L,
		Writer:     &b,
		HalfBlocks: true,
		QuietZone:  1,
	})
	return b.String()
}

// FadeString creates a gradient colored string
func FadeString(s string, firstColor string, lastColor string) string {
	blends := gamut.Blends(lipgloss.Color(firstColor), lipgloss.Color(lastColor), len(s))
	return rainbow(lipgloss.NewStyle(), s, blends)
}

func rainbow(baseStyle lipgloss.Style, str string, colors []color.Color) string {
	var result string
	for i, c := range str {
		col, _ := colorful.MakeColor(colors[i%len(colors)])
		result += baseStyle.Foreground(lipgloss.Color(col.Hex())).Render(string(c))
	}
	return result
}

// Max returns the maximum of two integers
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Min returns the minimum of two integers
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
