package enums

import "fmt"

// BusinessStatus represents the canonical business_status enum in Postgres.
type BusinessStatus string

const (
	BusinessStatusActive   BusinessStatus = "active"
	BusinessStatusInactive BusinessStatus = "inactive"
	BusinessStatusArchived BusinessStatus = "archived"
)

var validBusinessStatuses = []BusinessStatus{
	BusinessStatusActive,
	BusinessStatusInactive,
	BusinessStatusArchived,
}

// String implements fmt.Stringer.
func (s BusinessStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known BusinessStatus.
func (s BusinessStatus) IsValid() bool {
	for _, candidate := range validBusinessStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseBusinessStatus converts raw input into a BusinessStatus.
func ParseBusinessStatus(value string) (BusinessStatus, error) {
	for _, candidate := range validBusinessStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid business status %q", value)
}
