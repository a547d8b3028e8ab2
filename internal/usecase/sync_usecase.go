package usecase

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"zenpeople/internal/config"
	"zenpeople/internal/infrastructure/jobadder"
	"zenpeople/internal/infrastructure/sanity"
	"zenpeople/internal/mapper"
)

// SyncResult reports what a full sync did.
type SyncResult struct {
	Synced  int `json:"synced"`
	Removed int `json:"removed"`
}

// SyncUsecase reconciles the job board's active ads with the content
// store's sync-prefixed job documents.
type SyncUsecase interface {
	// SyncAll upserts a document for every active ad, then deletes
	// sync-prefixed documents whose source ad is gone. Upserts
	// happen-before the stale diff, so an ad re-upserted in this pass is
	// never deleted as stale.
	SyncAll(ctx context.Context) (*SyncResult, error)

	// SyncOne upserts the document for a single ad.
	SyncOne(ctx context.Context, adID int) error

	// RemoveOne flags the document for an expired ad inactive. Soft
	// delete keeps public URLs for the slug alive.
	RemoveOne(ctx context.Context, adID int) error
}

type syncUsecase struct {
	config *config.Config
	ats    jobadder.Client
	store  sanity.Client
	logger *zap.Logger
}

func NewSyncUsecase(cfg *config.Config, ats jobadder.Client, store sanity.Client, logger *zap.Logger) SyncUsecase {
	return &syncUsecase{
		config: cfg,
		ats:    ats,
		store:  store,
		logger: logger,
	}
}

func (u *syncUsecase) SyncAll(ctx context.Context) (*SyncResult, error) {
	u.logger.Info("Starting full job sync")

	ads, err := u.ats.ListAds(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch active ads: %w", err)
	}

	active := make(map[string]bool, len(ads))
	mutations := make([]sanity.Mutation, 0, len(ads))
	for _, ad := range ads {
		doc := mapper.MapAdToDocument(ad)
		active[doc.ID] = true
		mutations = append(mutations, sanity.CreateOrReplace(doc))

		if workType := mapper.MapWorkType(ad.WorkType); !workType.Known && workType.Raw != "" {
			u.logger.Warn("Unmapped work type, employment type omitted",
				zap.Int("ad_id", ad.AdID),
				zap.String("work_type", workType.Raw),
			)
		}
	}

	// Upsert in batches. Any batch failure aborts the whole call; the
	// removal phase is never attempted after a failed upsert.
	for _, batch := range chunk(mutations, u.config.Sync.BatchSize) {
		if err := u.store.Mutate(ctx, batch); err != nil {
			return nil, fmt.Errorf("failed to upsert job documents: %w", err)
		}
	}

	stale, err := u.findStaleDocuments(ctx, active)
	if err != nil {
		return nil, err
	}

	if len(stale) > 0 {
		deletes := make([]sanity.Mutation, 0, len(stale))
		for _, id := range stale {
			deletes = append(deletes, sanity.Delete(id))
		}
		for _, batch := range chunk(deletes, u.config.Sync.BatchSize) {
			if err := u.store.Mutate(ctx, batch); err != nil {
				return nil, fmt.Errorf("failed to remove stale job documents: %w", err)
			}
		}
	}

	result := &SyncResult{Synced: len(ads), Removed: len(stale)}

	u.logger.Info("Full job sync completed",
		zap.Int("synced", result.Synced),
		zap.Int("removed", result.Removed),
	)

	return result, nil
}

// findStaleDocuments returns sync-prefixed document IDs whose source ad is
// no longer active. Queried after the upserts so the diff sees the
// post-upsert state.
func (u *syncUsecase) findStaleDocuments(ctx context.Context, active map[string]bool) ([]string, error) {
	var existing []string
	query := `*[_type == $type && string::startsWith(_id, $prefix)]._id`
	params := map[string]interface{}{
		"type":   mapper.DocumentType,
		"prefix": mapper.IDPrefix + "-",
	}
	if err := u.store.Query(ctx, query, params, &existing); err != nil {
		return nil, fmt.Errorf("failed to query existing job documents: %w", err)
	}

	var stale []string
	for _, id := range existing {
		if !active[id] {
			stale = append(stale, id)
		}
	}
	return stale, nil
}

func (u *syncUsecase) SyncOne(ctx context.Context, adID int) error {
	u.logger.Info("Syncing single job ad", zap.Int("ad_id", adID))

	ad, err := u.ats.GetAd(ctx, adID)
	if err != nil {
		if errors.Is(err, jobadder.ErrAdNotFound) {
			// The ad vanished between the webhook and now; the next
			// full sync reconciles it.
			u.logger.Warn("Ad no longer exists upstream, skipping sync", zap.Int("ad_id", adID))
			return nil
		}
		return fmt.Errorf("failed to fetch ad %d: %w", adID, err)
	}

	doc := mapper.MapAdToDocument(*ad)
	if err := u.store.Mutate(ctx, []sanity.Mutation{sanity.CreateOrReplace(doc)}); err != nil {
		return fmt.Errorf("failed to upsert job document %s: %w", doc.ID, err)
	}

	u.logger.Info("Job document upserted",
		zap.Int("ad_id", adID),
		zap.String("document_id", doc.ID),
	)

	return nil
}

func (u *syncUsecase) RemoveOne(ctx context.Context, adID int) error {
	docID := mapper.DocumentID(adID)

	u.logger.Info("Flagging job document inactive",
		zap.Int("ad_id", adID),
		zap.String("document_id", docID),
	)

	patch := sanity.PatchSet(docID, map[string]interface{}{"isActive": false})
	if err := u.store.Mutate(ctx, []sanity.Mutation{patch}); err != nil {
		return fmt.Errorf("failed to flag job document %s inactive: %w", docID, err)
	}

	return nil
}

// chunk splits mutations into batches of at most size.
func chunk(mutations []sanity.Mutation, size int) [][]sanity.Mutation {
	if size <= 0 {
		size = 50
	}
	var batches [][]sanity.Mutation
	for start := 0; start < len(mutations); start += size {
		end := start + size
		if end > len(mutations) {
			end = len(mutations)
		}
		batches = append(batches, mutations[start:end])
	}
	return batches
}
