package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"resincalc/internal/config"
	"resincalc/internal/recipe"
)

const dateLayout = "2006-01-02 15:04:05 -0700"

// dottedThousands matches "1.000" and "12.500.000", which a decimal-comma
// locale prints for whole numbers.
var dottedThousands = regexp.MustCompile(`^[+-]?\d{1,3}(\.\d{3})+$`)

// quantityFormatter rounds and renders masses for display.
type quantityFormatter struct {
	printer      *message.Printer
	precision    int
	unit         string
	decimalComma bool
}

func newQuantityFormatter(display config.Display, precision int) quantityFormatter {
	if precision < 0 {
		precision = display.Precision
	}
	tag, err := language.Parse(display.Locale)
	if err != nil {
		tag = language.English
	}
	printer := message.NewPrinter(tag)
	return quantityFormatter{
		printer:      printer,
		precision:    precision,
		unit:         display.Unit,
		decimalComma: strings.Contains(printer.Sprint(number.Decimal(1.5)), ","),
	}
}

// decimal rounds half away from zero before formatting; number.Decimal alone
// would round half to even.
func (f quantityFormatter) decimal(v float64, precision int) string {
	rounded := recipe.Round(v, precision)
	return f.printer.Sprint(number.Decimal(rounded, number.Scale(precision)))
}

func (f quantityFormatter) mass(v float64) string {
	s := f.decimal(v, f.precision)
	if f.unit == "" {
		return s
	}
	return s + " " + f.unit
}

func (f quantityFormatter) parts(v float64) string {
	return f.printer.Sprint(number.Decimal(v))
}

func (f quantityFormatter) percent(share float64) string {
	return f.decimal(share*100, 1) + "%"
}

// parseQuantity reads a quantity written the way the formatter prints
// numbers. A decimal-comma locale takes "250,5" as well as "250.5" but
// refuses "1.000", which it would print for one thousand. Other locales
// refuse any comma, since "2,500" there means two and a half thousand.
func (f quantityFormatter) parseQuantity(arg string) (float64, error) {
	value := strings.TrimSpace(arg)
	switch {
	case strings.Contains(value, ","):
		if !f.decimalComma {
			return 0, fmt.Errorf("invalid quantity %q: use \".\" as the decimal separator and no digit grouping", arg)
		}
		if strings.Count(value, ",") > 1 || strings.Contains(value, ".") {
			return 0, fmt.Errorf("invalid quantity %q: digit grouping is not supported", arg)
		}
		value = strings.Replace(value, ",", ".", 1)
	case f.decimalComma && dottedThousands.MatchString(value):
		return 0, fmt.Errorf("invalid quantity %q: ambiguous, write it without grouping or with a decimal comma", arg)
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q", arg)
	}
	return v, nil
}

func formatDate(t time.Time, ok bool) string {
	if !ok {
		return "unknown"
	}
	return t.Format(dateLayout)
}
