package app

import (
	"context"

	"memeverse/domain"
)

// CatalogService fetches the full meme catalog from a remote listing API.
// The API has no pagination or filtering; callers derive every named
// subset (trending, new, classic, search) from the returned list.
type CatalogService interface {
	// Memes returns the full catalog, in API order.
	Memes(ctx context.Context) ([]domain.Meme, error)
}
