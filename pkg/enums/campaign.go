package enums

import "fmt"

// CampaignStatus represents the canonical campaign_status enum in Postgres.
type CampaignStatus string

const (
	CampaignStatusDraft    CampaignStatus = "draft"
	CampaignStatusActive   CampaignStatus = "active"
	CampaignStatusPaused   CampaignStatus = "paused"
	CampaignStatusArchived CampaignStatus = "archived"
)

var validCampaignStatuses = []CampaignStatus{
	CampaignStatusDraft,
	CampaignStatusActive,
	CampaignStatusPaused,
	CampaignStatusArchived,
}

// String implements fmt.Stringer.
func (s CampaignStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known CampaignStatus.
func (s CampaignStatus) IsValid() bool {
	for _, candidate := range validCampaignStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseCampaignStatus converts raw input into a CampaignStatus.
func ParseCampaignStatus(value string) (CampaignStatus, error) {
	for _, candidate := range validCampaignStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid campaign status %q", value)
}

// ConversionGoal is the optimization target a campaign group is bought for.
type ConversionGoal string

const (
	ConversionGoalWebsiteTraffic ConversionGoal = "website-traffic"
	ConversionGoalBrandAwareness ConversionGoal = "brand-awareness"
	ConversionGoalOnlineLeads    ConversionGoal = "online-leads"
	ConversionGoalOnlineSales    ConversionGoal = "online-sales"
)

var validConversionGoals = []ConversionGoal{
	ConversionGoalWebsiteTraffic,
	ConversionGoalBrandAwareness,
	ConversionGoalOnlineLeads,
	ConversionGoalOnlineSales,
}

// String implements fmt.Stringer.
func (g ConversionGoal) String() string {
	return string(g)
}

// IsValid reports whether the value is a known ConversionGoal.
func (g ConversionGoal) IsValid() bool {
	for _, candidate := range validConversionGoals {
		if candidate == g {
			return true
		}
	}
	return false
}

// ParseConversionGoal converts raw input into a ConversionGoal.
func ParseConversionGoal(value string) (ConversionGoal, error) {
	for _, candidate := range validConversionGoals {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid conversion goal %q", value)
}
