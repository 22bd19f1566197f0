package forms

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	dateLayout = "2006-01-02"

	// minOperatorName is the shortest operator name the stock flows accept.
	minOperatorName = 2

	maxItemNameLen = 200
	maxTagsLen     = 1_000
	maxNoteLen     = 500
)

// numberProblem classifies a numeric text field.
type numberProblem int

const (
	numberOK numberProblem = iota
	numberEmpty
	numberNotNumeric
	numberNotFinite
	numberNegative
	numberFraction
	numberTooLarge
)

// parseCount reads a non-negative whole number the way a browser number
// field would hand it over: surrounding space is ignored and exponent
// notation is allowed, but the value must be finite and integral.
func parseCount(s string) (int, numberProblem) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, numberEmpty
	}
	// Hex floats and digit separators parse in Go but not in a browser.
	if strings.ContainsAny(s, "xX_") {
		return 0, numberNotNumeric
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 0, numberTooLarge
		}
		return 0, numberNotNumeric
	}
	switch {
	case math.IsNaN(f) || math.IsInf(f, 0):
		return 0, numberNotFinite
	case f < 0:
		return 0, numberNegative
	case f != math.Trunc(f):
		return 0, numberFraction
	case f > math.MaxInt32:
		return 0, numberTooLarge
	}
	return int(f), numberOK
}

// validDate reports whether s is a calendar date in YYYY-MM-DD form.
func validDate(s string) bool {
	_, err := time.Parse(dateLayout, strings.TrimSpace(s))
	return err == nil
}

// blank reports whether s is empty once surrounding space is removed.
func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func tooShort(s string, min int) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) < min
}

func tooLong(s string, max int) bool {
	return utf8.RuneCountInString(s) > max
}

// validID reports whether s parses as a UUID.
func validID(s string) bool {
	_, err := uuid.Parse(strings.TrimSpace(s))
	return err == nil
}

// mustID parses an id already checked by validID.
func mustID(s string) uuid.UUID {
	id, _ := uuid.Parse(strings.TrimSpace(s))
	return id
}

// optional returns nil for blank text, else the trimmed text.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
