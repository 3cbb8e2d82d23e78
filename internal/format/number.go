package format

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Locale describes how monetary amounts are written and read.
// It is constructed from config and injected wherever text is
// parsed or rendered, so tests can swap in alternate locales.
type Locale struct {
	Tag            string
	CurrencySymbol string
	CurrencyCode   string
	GroupSep       string
	DecimalSep     string
}

// LocaleCL is the default Chilean locale (es-CL, CLP).
func LocaleCL() Locale {
	return Locale{
		Tag:            "es-CL",
		CurrencySymbol: "$",
		CurrencyCode:   "CLP",
		GroupSep:       ".",
		DecimalSep:     ",",
	}
}

// Formatter converts between human-entered localized text and
// canonical float values.
type Formatter struct {
	locale  Locale
	printer *message.Printer
	codeRe  *regexp.Regexp
}

// NewFormatter creates a formatter for the given locale.
func NewFormatter(loc Locale) *Formatter {
	tag, err := language.Parse(loc.Tag)
	if err != nil {
		tag = language.Spanish
	}

	var codeRe *regexp.Regexp
	if loc.CurrencyCode != "" {
		codeRe = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(loc.CurrencyCode))
	}

	return &Formatter{
		locale:  loc,
		printer: message.NewPrinter(tag),
		codeRe:  codeRe,
	}
}

// Locale returns the formatter's locale.
func (f *Formatter) Locale() Locale {
	return f.locale
}

// ParseNumber converts free-form localized numeric text to a float.
// Whitespace, the currency symbol, and the currency code are stripped,
// group separators removed, and the decimal separator converted to a
// point. Anything that still does not parse yields 0: the caller must
// never crash on partial input, so this function fails safe and never
// reports an error.
func (f *Formatter) ParseNumber(s string) float64 {
	if strings.TrimSpace(s) == "" {
		return 0
	}

	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)

	if f.locale.CurrencySymbol != "" {
		cleaned = strings.ReplaceAll(cleaned, f.locale.CurrencySymbol, "")
	}
	if f.codeRe != nil {
		cleaned = f.codeRe.ReplaceAllString(cleaned, "")
	}
	if f.locale.GroupSep != "" {
		cleaned = strings.ReplaceAll(cleaned, f.locale.GroupSep, "")
	}
	if f.locale.DecimalSep != "" {
		cleaned = strings.ReplaceAll(cleaned, f.locale.DecimalSep, ".")
	}

	n, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return n
}

// Number formats n with locale grouping and 0-2 fraction digits,
// without a currency symbol.
func (f *Formatter) Number(n float64) string {
	return f.printer.Sprint(number.Decimal(n,
		number.MaxFractionDigits(2),
		number.MinFractionDigits(0),
	))
}

// Currency formats n as a localized currency string with the narrow
// symbol prefixed.
func (f *Formatter) Currency(n float64) string {
	if n < 0 {
		return "-" + f.locale.CurrencySymbol + f.Number(-n)
	}
	return f.locale.CurrencySymbol + f.Number(n)
}
