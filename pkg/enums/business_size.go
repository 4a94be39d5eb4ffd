package enums

import "fmt"

// BusinessSize buckets a business by headcount.
type BusinessSize string

const (
	BusinessSizeSmall  BusinessSize = "small"
	BusinessSizeMedium BusinessSize = "medium"
	BusinessSizeLarge  BusinessSize = "large"
)

var validBusinessSizes = []BusinessSize{
	BusinessSizeSmall,
	BusinessSizeMedium,
	BusinessSizeLarge,
}

var businessSizeLabels = map[BusinessSize]string{
	BusinessSizeSmall:  "Small (1 - 10 employees)",
	BusinessSizeMedium: "Medium (10 - 50 employees)",
	BusinessSizeLarge:  "Large (50+ employees)",
}

// String implements fmt.Stringer.
func (s BusinessSize) String() string {
	return string(s)
}

// Label returns the human-readable employee range shown in the UI.
func (s BusinessSize) Label() string {
	if label, ok := businessSizeLabels[s]; ok {
		return label
	}
	return string(s)
}

// IsValid reports whether the value is a known BusinessSize.
func (s BusinessSize) IsValid() bool {
	for _, candidate := range validBusinessSizes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseBusinessSize converts raw input into a BusinessSize.
func ParseBusinessSize(value string) (BusinessSize, error) {
	for _, candidate := range validBusinessSizes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid business size %q", value)
}
