package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Violation names an offending field and the reason it was rejected.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Violations collects failures in evaluation order. An empty list means the
// candidate passed.
type Violations []Violation

func (v Violations) Empty() bool { return len(v) == 0 }

// Add appends a violation for field.
func (v *Violations) Add(field, reason string) {
	*v = append(*v, Violation{Field: field, Reason: reason})
}

// Fields returns the offending field names, in evaluation order.
func (v Violations) Fields() []string {
	fields := make([]string, 0, len(v))
	for _, violation := range v {
		fields = append(fields, violation.Field)
	}
	return fields
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Postal codes of 5 or 6 digits; covers both rule sets seen in the wild.
	pincodePattern = regexp.MustCompile(`^[0-9]{5,6}$`)
)

// Required flags values that are empty after trimming.
func Required(field, value string, v *Violations) {
	if strings.TrimSpace(value) == "" {
		v.Add(field, "is required")
	}
}

// Email flags values that do not look like an email address. Empty values are
// left to Required.
func Email(field, value string, v *Violations) {
	if value = strings.TrimSpace(value); value != "" && !emailPattern.MatchString(value) {
		v.Add(field, "must be a valid email address")
	}
}

// Pincode flags postal codes that are not 5 or 6 digits.
func Pincode(field, value string, v *Violations) {
	if value = strings.TrimSpace(value); value != "" && !pincodePattern.MatchString(value) {
		v.Add(field, "must be a 5 or 6 digit postal code")
	}
}

// MinLen flags trimmed values shorter than min characters. Empty values are
// left to Required.
func MinLen(field, value string, min int, v *Violations) {
	if value = strings.TrimSpace(value); value != "" && utf8.RuneCountInString(value) < min {
		v.Add(field, fmt.Sprintf("must be at least %d characters", min))
	}
}

// MaxLen flags trimmed values longer than max characters. Length is counted
// in runes, so multibyte text is not penalized for its encoding.
func MaxLen(field, value string, max int, v *Violations) {
	if utf8.RuneCountInString(strings.TrimSpace(value)) > max {
		v.Add(field, fmt.Sprintf("must be at most %d characters", max))
	}
}

// PositiveFloat flags values that are not strictly positive.
func PositiveFloat(field string, value float64, v *Violations) {
	if value <= 0 {
		v.Add(field, "must be positive")
	}
}

// MinInt flags values below min.
func MinInt(field string, value, min int, v *Violations) {
	if value < min {
		v.Add(field, fmt.Sprintf("must be at least %d", min))
	}
}
