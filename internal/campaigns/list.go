package campaigns

import (
	pkgpagination "github.com/admaster-ai/admaster-backend/pkg/pagination"
)

// ListParams narrows an owner-scoped campaign listing.
type ListParams struct {
	pkgpagination.Params
}

// ListResult is the payload for campaign listings.
type ListResult struct {
	Items  []CampaignDTO `json:"items"`
	Cursor string        `json:"cursor"`
}

type listQuery struct {
	ownerExternalID string
	limit           int
	cursor          *pkgpagination.Cursor
}
