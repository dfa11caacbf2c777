package task

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// ValidationError describes invalid user input for a single field. It is
// meant to be shown next to the offending input, not treated as a failure.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

// ValidateDate checks that s is empty or a parseable calendar date.
func ValidateDate(field, s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := ParseDate(s); err != nil {
		return &ValidationError{Field: field, Message: fmt.Sprintf("invalid date %q; expected YYYY-MM-DD", s)}
	}
	return nil
}

// ValidateDateRange checks a start/end pair entered by the user. Either side
// may be empty. When both are set the end must not be before the start; the
// error is reported against the end field.
func ValidateDateRange(startField, start, endField, end string) error {
	if err := ValidateDate(startField, start); err != nil {
		return err
	}
	if err := ValidateDate(endField, end); err != nil {
		return err
	}
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return nil
	}

	s, _ := ParseDate(start)
	e, _ := ParseDate(end)
	if s.After(e) {
		return &ValidationError{Field: endField, Message: "end date must not be before start date"}
	}
	return nil
}

// Validate checks the criteria for values a filter form should reject:
// unknown status, unknown progress bucket, malformed or inverted dates.
// ApplyFilters tolerates all of these; Validate exists so input can be
// rejected before it gets there.
func (c FilterCriteria) Validate() error {
	if c.Status != "" && !c.Status.IsValid() {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", c.Status)}
	}
	if !c.Progress.IsValid() {
		return &ValidationError{Field: "progress", Message: fmt.Sprintf("unknown progress bucket %q", c.Progress)}
	}
	return ValidateDateRange("dateFrom", c.DateFrom, "dateTo", c.DateTo)
}

// Fingerprint returns a stable 64-bit hash of the criteria. Equal criteria
// always produce equal fingerprints. Each field is length-prefixed, so
// moving bytes between fields changes the input to the hash.
func (c FilterCriteria) Fingerprint() uint64 {
	d := xxhash.New()
	var n [binary.MaxVarintLen64]byte
	for _, part := range []string{c.Search, string(c.Status), string(c.Progress), c.DateFrom, c.DateTo} {
		_, _ = d.Write(n[:binary.PutUvarint(n[:], uint64(len(part)))])
		_, _ = d.WriteString(part)
	}
	return d.Sum64()
}
