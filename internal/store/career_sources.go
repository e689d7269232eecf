package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"internwatch/internal/resolve"
)

// SourceCache memoizes resolved career sources between runs so repeated
// runs skip the domain-guessing dance. Entries older than TTL are treated
// as misses: career pages move.
type SourceCache struct {
	db  *DB
	ttl time.Duration
}

func NewSourceCache(db *DB, ttl time.Duration) *SourceCache {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &SourceCache{db: db, ttl: ttl}
}

func (c *SourceCache) Get(ctx context.Context, company string) (resolve.CareerSource, bool, error) {
	key := normalizeCompanyKey(company)
	if key == "" {
		return resolve.CareerSource{}, false, nil
	}

	var url, platform, fetchedAt string
	err := c.db.Pool.QueryRowContext(ctx,
		`SELECT url, platform, fetched_at FROM career_sources WHERE company = ? LIMIT 1;`,
		key,
	).Scan(&url, &platform, &fetchedAt)

	if err == sql.ErrNoRows {
		return resolve.CareerSource{}, false, nil
	}
	if err != nil {
		return resolve.CareerSource{}, false, err
	}

	if t, perr := time.Parse(time.RFC3339, fetchedAt); perr != nil || time.Since(t) > c.ttl {
		return resolve.CareerSource{}, false, nil
	}

	return resolve.CareerSource{
		URL:      url,
		Platform: resolve.Platform(platform),
		Verified: true,
	}, true, nil
}

func (c *SourceCache) Put(ctx context.Context, company string, src resolve.CareerSource) error {
	key := normalizeCompanyKey(company)
	if key == "" || !src.Verified || src.URL == "" {
		return nil
	}

	_, err := c.db.Pool.ExecContext(ctx, `
INSERT INTO career_sources(company, url, platform, fetched_at)
VALUES(?,?,?,?)
ON CONFLICT(company) DO UPDATE SET
  url = excluded.url,
  platform = excluded.platform,
  fetched_at = excluded.fetched_at;
`, key, src.URL, string(src.Platform), time.Now().UTC().Format(time.RFC3339))

	return err
}

func normalizeCompanyKey(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Join(strings.Fields(s), " ")
	return strings.ToLower(s)
}
