package enums

import "fmt"

// Industry is the onboarding vocabulary for a business vertical. Values are
// stored verbatim, matching what the frontend presents.
type Industry string

const (
	IndustryTechnology           Industry = "Technology"
	IndustryHealthcare           Industry = "Healthcare"
	IndustryEcommerce            Industry = "E-commerce"
	IndustryFinance              Industry = "Finance"
	IndustryEducation            Industry = "Education"
	IndustryRealEstate           Industry = "Real Estate"
	IndustryManufacturing        Industry = "Manufacturing"
	IndustryRetail               Industry = "Retail"
	IndustryHospitality          Industry = "Hospitality"
	IndustryConsulting           Industry = "Consulting"
	IndustryMarketingAdvertising Industry = "Marketing & Advertising"
	IndustryMediaEntertainment   Industry = "Media & Entertainment"
	IndustryFoodBeverage         Industry = "Food & Beverage"
	IndustryProfessionalServices Industry = "Professional Services"
	IndustryOther                Industry = "Other"
)

var validIndustries = []Industry{
	IndustryTechnology,
	IndustryHealthcare,
	IndustryEcommerce,
	IndustryFinance,
	IndustryEducation,
	IndustryRealEstate,
	IndustryManufacturing,
	IndustryRetail,
	IndustryHospitality,
	IndustryConsulting,
	IndustryMarketingAdvertising,
	IndustryMediaEntertainment,
	IndustryFoodBeverage,
	IndustryProfessionalServices,
	IndustryOther,
}

// String implements fmt.Stringer.
func (i Industry) String() string {
	return string(i)
}

// IsValid reports whether the value is a known Industry.
func (i Industry) IsValid() bool {
	for _, candidate := range validIndustries {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseIndustry converts raw input into an Industry.
func ParseIndustry(value string) (Industry, error) {
	for _, candidate := range validIndustries {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid industry %q", value)
}
