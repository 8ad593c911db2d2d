package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"itemize/internal/domains/metadata"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) metadata.Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) FindByURL(ctx context.Context, url string) (*metadata.PageMetadata, error) {
	query := `SELECT m.id, m.url, m.title, m.description, m.site_name, m.price, m.currency, m.image_url, m.image_id,
			i.mime, i.source_image_url
		FROM page_metadata m
		LEFT JOIN metadata_images i ON i.id = m.image_id
		WHERE m.url = $1`
	var (
		m    metadata.PageMetadata
		mime *string
		src  *string
	)
	err := r.pool.QueryRow(ctx, query, url).Scan(
		&m.ID, &m.URL, &m.Title, &m.Description, &m.SiteName, &m.Price, &m.Currency, &m.ImageURL, &m.ImageID,
		&mime, &src)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find page metadata: %w", err)
	}
	if m.ImageID != nil {
		m.Image = &metadata.MetadataImage{ID: *m.ImageID, Mime: mime, SourceImageURL: src}
	}
	return &m, nil
}

func (r *postgresRepository) Create(ctx context.Context, m *metadata.PageMetadata) error {
	query := `INSERT INTO page_metadata (url, title, description, site_name, price, currency, image_url, image_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (url) DO UPDATE SET url = EXCLUDED.url
		RETURNING id`
	err := r.pool.QueryRow(ctx, query,
		m.URL, m.Title, m.Description, m.SiteName, m.Price, m.Currency, m.ImageURL, m.ImageID).
		Scan(&m.ID)
	if err != nil {
		return fmt.Errorf("failed to create page metadata: %w", err)
	}
	return nil
}

func (r *postgresRepository) GetImage(ctx context.Context, imageID int64) (*metadata.MetadataImage, error) {
	query := `SELECT id, mime, data, source_image_url FROM metadata_images WHERE id = $1`
	var img metadata.MetadataImage
	err := r.pool.QueryRow(ctx, query, imageID).Scan(&img.ID, &img.Mime, &img.Data, &img.SourceImageURL)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, metadata.ErrImageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load metadata image: %w", err)
	}
	return &img, nil
}
