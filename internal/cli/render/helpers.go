package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/fatih/color"
	"github.com/trebuchet-org/tokendeploy/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// FormatError formats an error with the error icon. Errors that carry a
// deployment stage are prefixed with it.
func FormatError(err error) string {
	msg := err.Error()
	if stage := domain.StageOf(err); stage != "" {
		// The stage leads the line, so the staged error prints only its detail
		var staged interface {
			error
			Detail() string
		}
		if errors.As(err, &staged) {
			msg = strings.Replace(msg, staged.Error(), staged.Detail(), 1)
		}
		msg = fmt.Sprintf("%s failed: %s", Title(string(stage)), msg)
	} else if len(msg) > 0 {
		msg = strings.ToUpper(msg[:1]) + msg[1:]
	}
	return color.New(color.FgRed).Sprintf("❌ %s", msg)
}

// FormatWarning formats a warning message with the warning icon
func FormatWarning(message string) string {
	return color.New(color.FgYellow).Sprintf("⚠️  %s", message)
}

// FormatSuccess formats a success message with the success icon
func FormatSuccess(message string) string {
	return color.New(color.FgGreen).Sprintf("✅ %s", message)
}

// Title title-cases a dash or underscore separated identifier
func Title(s string) string {
	s = strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return cases.Title(language.English).String(s)
}

// FormatNumber prints n with thousands separators
func FormatNumber(n uint64) string {
	return printer.Sprintf("%d", n)
}

// FormatBigInt prints n with thousands separators
func FormatBigInt(n *big.Int) string {
	if n == nil {
		return "0"
	}
	if n.IsUint64() {
		return FormatNumber(n.Uint64())
	}
	digits := n.String()
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
