package service

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

/* =========================
   Dates
========================= */

// Spreadsheet serial dates count days from 1899-12-30.
var serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

const (
	minSerial = 1
	maxSerial = 2958465 // 9999-12-31
)

// Day-first layouts come before month-first ones so 03/04/2025 reads as 3 April.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"2/1/2006",
	"1/2/2006",
	"2-1-2006",
	"2.1.2006",
	"2 Jan 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"2-Jan-2006",
	"2-Jan-06",
}

var numericPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

// ParseDate accepts ISO and common locale strings, or a spreadsheet serial number.
// The result is UTC.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is empty")
	}
	if numericPattern.MatchString(s) {
		return fromSerial(s)
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", raw)
}

func fromSerial(s string) (time.Time, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < minSerial || f > maxSerial {
		return time.Time{}, fmt.Errorf("unrecognised date %q", s)
	}
	days := math.Floor(f)
	secs := math.Round((f - days) * 86400)
	return serialEpoch.AddDate(0, 0, int(days)).Add(time.Duration(secs) * time.Second), nil
}

/* =========================
   Numbers
========================= */

var moneyStripper = strings.NewReplacer(",", "", " ", "", "\u00a0", "", "₦", "", "$", "", "£", "", "€", "", "₵", "")

// ParseAmount reads "1,250.50", "₦300", "NGN 300". ok is false for empty cells.
func ParseAmount(raw string) (amount decimal.Decimal, ok bool, err error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Zero, false, nil
	}
	s = moneyStripper.Replace(s)
	s = strings.TrimLeft(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz")
	if s == "" || s == "-" {
		return decimal.Zero, false, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, true, fmt.Errorf("invalid number %q", raw)
	}
	return d, true, nil
}

// Larger counts are typos; IntPart would also wrap past int64.
var maxQuantity = decimal.NewFromInt(math.MaxInt32)

// ParseQuantity reads a whole, non-negative count. "3.0" is 3.
func ParseQuantity(raw string) (int, error) {
	d, ok, err := ParseAmount(raw)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("quantity is empty")
	}
	if d.IsNegative() || !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("invalid quantity %q", raw)
	}
	if d.GreaterThan(maxQuantity) {
		return 0, fmt.Errorf("quantity %q is too large", raw)
	}
	return int(d.IntPart()), nil
}
