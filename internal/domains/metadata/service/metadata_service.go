package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"itemize/internal/domains/metadata"
	"itemize/internal/infrastructure/cache"
)

const cacheTTL = 24 * time.Hour

type metadataService struct {
	repo    metadata.Repository
	fetcher metadata.Fetcher
	cache   *cache.RedisCache
}

// NewMetadataService wires the lookup chain: redis cache, then the
// postgres row (unique per URL), then the Fetcher.
func NewMetadataService(repo metadata.Repository, fetcher metadata.Fetcher, redisCache *cache.RedisCache) metadata.Service {
	return &metadataService{
		repo:    repo,
		fetcher: fetcher,
		cache:   redisCache,
	}
}

func (s *metadataService) GetOrFetch(ctx context.Context, url string) (*metadata.PageMetadata, error) {
	cacheKey := "metadata:url:" + url

	if s.cache != nil {
		var cached metadata.PageMetadata
		found, err := s.cache.Get(ctx, cacheKey, &cached)
		if err != nil {
			// Cache trouble is not fatal; fall through to postgres.
			log.Warn().Err(err).Str("url", url).Msg("metadata cache read failed")
		} else if found {
			return &cached, nil
		}
	}

	m, err := s.repo.FindByURL(ctx, url)
	if err != nil {
		return nil, err
	}

	if m == nil {
		m, err = s.fetcher.Fetch(ctx, url)
		if err != nil || m == nil {
			return nil, metadata.ErrUnprocessable
		}
		if err := s.repo.Create(ctx, m); err != nil {
			return nil, err
		}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, m, cacheTTL); err != nil {
			log.Warn().Err(err).Str("url", url).Msg("metadata cache write failed")
		}
	}

	return m, nil
}

func (s *metadataService) GetImage(ctx context.Context, imageID int64) (*metadata.MetadataImage, error) {
	return s.repo.GetImage(ctx, imageID)
}
