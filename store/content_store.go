// api/store/content_store.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"brightfolio/api/models"
)

// ContentStore reads the four content collections backing the site. The
// collections disagree on their label column (title vs name) and on whether
// a slug exists; GetContentByID normalizes all of them into ContentInfo.
type ContentStore struct {
	db *sql.DB
}

func NewContentStore(db *sql.DB) *ContentStore {
	return &ContentStore{db: db}
}

// GetContentByID looks up a single item in the collection matching
// contentType. Returns an error for unknown types and missing rows; the
// caller decides whether that is fatal.
func (s *ContentStore) GetContentByID(ctx context.Context, contentType, contentID string) (*models.ContentInfo, error) {
	var query string
	hasSlug := true

	switch contentType {
	case models.ContentTypeBlogPost:
		query = `SELECT title, slug, status FROM blog_posts WHERE id = $1;`
	case models.ContentTypeCaseStudy:
		query = `SELECT title, slug, status FROM case_studies WHERE id = $1;`
	case models.ContentTypeProject:
		query = `SELECT name, slug, status FROM projects WHERE id = $1;`
	case models.ContentTypeResource:
		query = `SELECT name, status FROM resources WHERE id = $1;`
		hasSlug = false
	default:
		return nil, fmt.Errorf("unknown content type '%s'", contentType)
	}

	info := &models.ContentInfo{}
	var err error
	if hasSlug {
		var slug sql.NullString
		err = s.db.QueryRowContext(ctx, query, contentID).Scan(&info.Title, &slug, &info.Status)
		info.Slug = slug.String
	} else {
		err = s.db.QueryRowContext(ctx, query, contentID).Scan(&info.Title, &info.Status)
	}
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s '%s' not found", contentType, contentID)
		}
		return nil, fmt.Errorf("failed to look up %s '%s': %w", contentType, contentID, err)
	}

	return info, nil
}
