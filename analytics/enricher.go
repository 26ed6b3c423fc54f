// api/analytics/enricher.go
package analytics

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"brightfolio/api/models"
)

// ContentResolver looks up a single content item in the collection matching
// its type. Implemented by the Postgres content store; faked in tests.
type ContentResolver interface {
	GetContentByID(ctx context.Context, contentType, contentID string) (*models.ContentInfo, error)
}

// enrichConcurrency bounds the lookup fan-out. Lists are capped at the
// top-content limit so a small pool is plenty.
const enrichConcurrency = 4

// EnrichTopContent resolves titles and slugs for an already-ranked list of
// content items. Lookups run concurrently; a failed or unpublished item is
// logged and dropped without disturbing the rest of the list. Output keeps
// the input ranking order.
func EnrichTopContent(ctx context.Context, resolver ContentResolver, items []ContentViews) []models.TopContentItem {
	resolved := make([]*models.ContentInfo, len(items))

	var g errgroup.Group
	g.SetLimit(enrichConcurrency)
	for i, item := range items {
		g.Go(func() error {
			info, err := resolver.GetContentByID(ctx, item.Type, item.ID)
			if err != nil {
				log.Printf("Enrichment lookup failed for %s/%s: %v", item.Type, item.ID, err)
				return nil
			}
			resolved[i] = info
			return nil
		})
	}
	g.Wait()

	enriched := make([]models.TopContentItem, 0, len(items))
	for i, item := range items {
		info := resolved[i]
		if info == nil || info.Status != "published" {
			continue
		}
		enriched = append(enriched, models.TopContentItem{
			Type:  item.Type,
			ID:    item.ID,
			Views: item.Views,
			Title: info.Title,
			Slug:  info.Slug,
		})
	}
	return enriched
}

// EnrichTrending resolves titles for a ranked trending list under the same
// contract as EnrichTopContent: concurrent, bounded, unpublished or failed
// items dropped, ranking order preserved.
func EnrichTrending(ctx context.Context, resolver ContentResolver, items []models.TrendingItem) []models.TrendingItem {
	resolved := make([]*models.ContentInfo, len(items))

	var g errgroup.Group
	g.SetLimit(enrichConcurrency)
	for i, item := range items {
		g.Go(func() error {
			info, err := resolver.GetContentByID(ctx, item.Type, item.ID)
			if err != nil {
				log.Printf("Enrichment lookup failed for %s/%s: %v", item.Type, item.ID, err)
				return nil
			}
			resolved[i] = info
			return nil
		})
	}
	g.Wait()

	enriched := make([]models.TrendingItem, 0, len(items))
	for i, item := range items {
		info := resolved[i]
		if info == nil || info.Status != "published" {
			continue
		}
		item.Title = info.Title
		item.Slug = info.Slug
		enriched = append(enriched, item)
	}
	return enriched
}
