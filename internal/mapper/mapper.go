// Package mapper holds the pure transformations from JobAdder ads to content
// store job documents. Everything here is deterministic: the same ad always
// yields the same document, including its ID and rich text block keys.
package mapper

import (
	"fmt"
	"strconv"
	"strings"

	"zenpeople/internal/domain/entity"
)

// IDPrefix marks documents as ATS-sourced and eligible for automated
// reconciliation.
const IDPrefix = "jobadder"

// DocumentType is the content store schema type for job postings.
const DocumentType = "job"

// DocumentID derives the content store document ID for an ad.
func DocumentID(adID int) string {
	return fmt.Sprintf("%s-%d", IDPrefix, adID)
}

// IsSyncID reports whether a document ID carries the sync prefix.
func IsSyncID(id string) bool {
	return strings.HasPrefix(id, IDPrefix+"-")
}

// AdIDFromDocumentID recovers the ad ID from a sync-prefixed document ID.
// Returns 0 and false for IDs that do not carry the prefix.
func AdIDFromDocumentID(id string) (int, bool) {
	if !IsSyncID(id) {
		return 0, false
	}
	adID, err := strconv.Atoi(strings.TrimPrefix(id, IDPrefix+"-"))
	if err != nil {
		return 0, false
	}
	return adID, true
}

// MapAdToDocument converts an ad to its job document. Unrecognized work
// types leave the employment type unset rather than failing the whole ad;
// the raw value remains observable through MapWorkType for logging.
func MapAdToDocument(ad entity.Ad) entity.JobDocument {
	doc := entity.JobDocument{
		ID:         DocumentID(ad.AdID),
		Type:       DocumentType,
		Title:      ad.Title,
		Slug:       entity.Slug{Type: "slug", Current: Slugify(ad.Title)},
		IsActive:   true,
		SourceAdID: ad.AdID,
		Summary:    ad.Summary,
		City:       ad.Location,
		Salary:     ad.Salary,
	}

	if doc.Summary == "" && len(ad.BulletPoints) > 0 {
		doc.Summary = strings.Join(ad.BulletPoints, " ")
	}

	if workType := MapWorkType(ad.WorkType); workType.Known {
		doc.EmploymentType = workType.Value
	}

	doc.RoleDesc = HTMLToBlocks(ad.Description)

	return doc
}
