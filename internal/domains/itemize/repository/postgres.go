package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"itemize/internal/domains/itemize"
	"itemize/internal/domains/metadata"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) itemize.Repository {
	return &postgresRepository{pool: pool}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *postgresRepository) Create(ctx context.Context, it *itemize.Itemize) error {
	query := `INSERT INTO itemizes (user_id, name, slug, description, public)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`
	err := r.pool.QueryRow(ctx, query, it.UserID, it.Name, it.Slug, it.Description, it.Public).
		Scan(&it.ID, &it.CreatedAt, &it.UpdatedAt)
	if err != nil {
		// unique(user_id, slug)
		if isUniqueViolation(err) {
			return itemize.ErrItemizeExists
		}
		return fmt.Errorf("failed to create itemize: %w", err)
	}
	it.Links = []itemize.Link{}
	return nil
}

func (r *postgresRepository) ListByUser(ctx context.Context, userID uuid.UUID, publicOnly bool) ([]itemize.Itemize, error) {
	query := `SELECT id, user_id, name, slug, description, public, created_at, updated_at
		FROM itemizes WHERE user_id = $1`
	if publicOnly {
		query += ` AND public`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list itemizes: %w", err)
	}
	defer rows.Close()

	var items []itemize.Itemize
	for rows.Next() {
		var it itemize.Itemize
		if err := rows.Scan(&it.ID, &it.UserID, &it.Name, &it.Slug, &it.Description, &it.Public,
			&it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan itemize: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list itemizes: %w", err)
	}

	for i := range items {
		links, err := r.loadLinks(ctx, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].Links = links
	}
	return items, nil
}

func (r *postgresRepository) GetBySlug(ctx context.Context, userID uuid.UUID, slug string) (*itemize.Itemize, error) {
	query := `SELECT id, user_id, name, slug, description, public, created_at, updated_at
		FROM itemizes WHERE user_id = $1 AND slug = $2`
	var it itemize.Itemize
	err := r.pool.QueryRow(ctx, query, userID, slug).Scan(
		&it.ID, &it.UserID, &it.Name, &it.Slug, &it.Description, &it.Public, &it.CreatedAt, &it.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, itemize.ErrItemizeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get itemize: %w", err)
	}

	it.Links, err = r.loadLinks(ctx, it.ID)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *postgresRepository) Update(ctx context.Context, itemizeID int64, ch itemize.ItemizeChanges) error {
	setClauses := []string{}
	args := []interface{}{itemizeID}
	idx := 2
	if ch.Name != nil {
		setClauses = append(setClauses, fmt.Sprintf("name=$%d", idx))
		args = append(args, *ch.Name)
		idx++
	}
	if ch.Slug != nil {
		setClauses = append(setClauses, fmt.Sprintf("slug=$%d", idx))
		args = append(args, *ch.Slug)
		idx++
	}
	if ch.Description.Set {
		setClauses = append(setClauses, fmt.Sprintf("description=$%d", idx))
		args = append(args, ch.Description.Ptr())
		idx++
	}
	if ch.Public != nil {
		setClauses = append(setClauses, fmt.Sprintf("public=$%d", idx))
		args = append(args, *ch.Public)
		idx++
	}
	if len(setClauses) == 0 {
		return nil
	}
	query := fmt.Sprintf(`UPDATE itemizes SET %s, updated_at=NOW() WHERE id=$1`,
		strings.Join(setClauses, ", "))
	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return itemize.ErrItemizeExists
		}
		return fmt.Errorf("failed to update itemize: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return itemize.ErrItemizeNotFound
	}
	return nil
}

func (r *postgresRepository) AddLink(ctx context.Context, itemizeID int64, url string, pageMetadataID int64) (*itemize.Link, error) {
	query := `INSERT INTO links (itemize_id, url, page_metadata_id)
		VALUES ($1, $2, $3) RETURNING id`
	var linkID int64
	if err := r.pool.QueryRow(ctx, query, itemizeID, url, pageMetadataID).Scan(&linkID); err != nil {
		return nil, fmt.Errorf("failed to add link: %w", err)
	}
	return r.GetLink(ctx, itemizeID, linkID)
}

const linkColumns = `l.id, l.itemize_id, l.url, l.created_at,
		m.id, m.url, m.title, m.description, m.site_name, m.price, m.currency, m.image_url, m.image_id,
		i.source_image_url,
		o.id, o.title, o.description, o.site_name, o.price, o.currency, o.image_url`

const linkJoins = `FROM links l
		JOIN page_metadata m ON m.id = l.page_metadata_id
		LEFT JOIN metadata_images i ON i.id = m.image_id
		LEFT JOIN page_metadata_overrides o ON o.id = l.page_metadata_override_id`

func scanLink(row pgx.Row) (*itemize.Link, error) {
	var (
		l          itemize.Link
		md         metadata.PageMetadata
		sourceURL  *string
		overrideID *int64
		ov         metadata.PageMetadataOverride
	)
	err := row.Scan(
		&l.ID, &l.ItemizeID, &l.URL, &l.CreatedAt,
		&md.ID, &md.URL, &md.Title, &md.Description, &md.SiteName, &md.Price, &md.Currency, &md.ImageURL, &md.ImageID,
		&sourceURL,
		&overrideID, &ov.Title, &ov.Description, &ov.SiteName, &ov.Price, &ov.Currency, &ov.ImageURL)
	if err != nil {
		return nil, err
	}
	if md.ImageID != nil {
		md.Image = &metadata.MetadataImage{ID: *md.ImageID, SourceImageURL: sourceURL}
	}
	l.PageMetadata = &md
	if overrideID != nil {
		ov.ID = *overrideID
		l.Override = &ov
	}
	return &l, nil
}

func (r *postgresRepository) loadLinks(ctx context.Context, itemizeID int64) ([]itemize.Link, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE l.itemize_id = $1 ORDER BY l.id`, linkColumns, linkJoins)
	rows, err := r.pool.Query(ctx, query, itemizeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load links: %w", err)
	}
	defer rows.Close()

	links := []itemize.Link{}
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan link: %w", err)
		}
		links = append(links, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load links: %w", err)
	}
	return links, nil
}

func (r *postgresRepository) GetLink(ctx context.Context, itemizeID, linkID int64) (*itemize.Link, error) {
	query := fmt.Sprintf(`SELECT %s %s WHERE l.itemize_id = $1 AND l.id = $2`, linkColumns, linkJoins)
	l, err := scanLink(r.pool.QueryRow(ctx, query, itemizeID, linkID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, itemize.ErrLinkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get link: %w", err)
	}
	return l, nil
}

func (r *postgresRepository) DeleteLink(ctx context.Context, itemizeID, linkID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var overrideID *int64
	err = tx.QueryRow(ctx,
		`DELETE FROM links WHERE itemize_id = $1 AND id = $2 RETURNING page_metadata_override_id`,
		itemizeID, linkID).Scan(&overrideID)
	if errors.Is(err, pgx.ErrNoRows) {
		return itemize.ErrLinkNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	if overrideID != nil {
		if _, err := tx.Exec(ctx, `DELETE FROM page_metadata_overrides WHERE id = $1`, *overrideID); err != nil {
			return fmt.Errorf("failed to delete override: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func (r *postgresRepository) UpsertOverride(ctx context.Context, linkID int64, ch itemize.OverrideChanges) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var overrideID *int64
	err = tx.QueryRow(ctx,
		`SELECT page_metadata_override_id FROM links WHERE id = $1 FOR UPDATE`, linkID).
		Scan(&overrideID)
	if errors.Is(err, pgx.ErrNoRows) {
		return itemize.ErrLinkNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock link: %w", err)
	}

	if overrideID == nil {
		// First edit of this link: create the override record lazily.
		var id int64
		err = tx.QueryRow(ctx,
			`INSERT INTO page_metadata_overrides (title, description, site_name, price, currency, image_url)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			ch.Title.Ptr(), ch.Description.Ptr(), ch.SiteName.Ptr(),
			ch.Price.Ptr(), ch.Currency.Ptr(), ch.ImageURL.Ptr()).Scan(&id)
		if err != nil {
			return fmt.Errorf("failed to create override: %w", err)
		}
		if _, err := tx.Exec(ctx,
			`UPDATE links SET page_metadata_override_id = $2 WHERE id = $1`, linkID, id); err != nil {
			return fmt.Errorf("failed to attach override: %w", err)
		}
		return tx.Commit(ctx)
	}

	setClauses := []string{}
	args := []interface{}{*overrideID}
	idx := 2
	if ch.Title.Set {
		setClauses = append(setClauses, fmt.Sprintf("title=$%d", idx))
		args = append(args, ch.Title.Ptr())
		idx++
	}
	if ch.Description.Set {
		setClauses = append(setClauses, fmt.Sprintf("description=$%d", idx))
		args = append(args, ch.Description.Ptr())
		idx++
	}
	if ch.SiteName.Set {
		setClauses = append(setClauses, fmt.Sprintf("site_name=$%d", idx))
		args = append(args, ch.SiteName.Ptr())
		idx++
	}
	if ch.Price.Set {
		setClauses = append(setClauses, fmt.Sprintf("price=$%d", idx))
		args = append(args, ch.Price.Ptr())
		idx++
	}
	if ch.Currency.Set {
		setClauses = append(setClauses, fmt.Sprintf("currency=$%d", idx))
		args = append(args, ch.Currency.Ptr())
		idx++
	}
	if ch.ImageURL.Set {
		setClauses = append(setClauses, fmt.Sprintf("image_url=$%d", idx))
		args = append(args, ch.ImageURL.Ptr())
		idx++
	}
	if len(setClauses) == 0 {
		return tx.Commit(ctx)
	}
	query := fmt.Sprintf(`UPDATE page_metadata_overrides SET %s WHERE id=$1`,
		strings.Join(setClauses, ", "))
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update override: %w", err)
	}
	return tx.Commit(ctx)
}
