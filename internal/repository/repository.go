// Package repository implements the storage.Store contract on PostgreSQL
// through database/sql and the pgx stdlib driver.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/atinyakov/go-link-service/internal/storage"
)

const schema = `
CREATE TABLE IF NOT EXISTS principals (
	id UUID PRIMARY KEY,
	email TEXT NOT NULL,
	role TEXT NOT NULL DEFAULT 'user',
	active BOOLEAN NOT NULL DEFAULT TRUE,
	max_links INT NOT NULL DEFAULT 20,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS links (
	id UUID PRIMARY KEY,
	short_code TEXT NOT NULL UNIQUE,
	destination_url TEXT NOT NULL,
	owner_id UUID NOT NULL,
	click_count BIGINT NOT NULL DEFAULT 0,
	active BOOLEAN NOT NULL DEFAULT TRUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	last_clicked_at TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS links_owner_idx ON links (owner_id);

CREATE TABLE IF NOT EXISTS clicks (
	id UUID PRIMARY KEY,
	link_id UUID NOT NULL REFERENCES links (id) ON DELETE CASCADE,
	ts TIMESTAMPTZ NOT NULL DEFAULT now(),
	client_ip TEXT NOT NULL DEFAULT '',
	user_agent_raw TEXT NOT NULL DEFAULT '',
	browser_family TEXT NOT NULL DEFAULT '',
	platform_family TEXT NOT NULL DEFAULT '',
	referrer TEXT NOT NULL DEFAULT 'Direct'
);
CREATE INDEX IF NOT EXISTS clicks_link_ts_idx ON clicks (link_id, ts DESC);

CREATE TABLE IF NOT EXISTS audit_log (
	id UUID PRIMARY KEY,
	action TEXT NOT NULL,
	actor_id TEXT NOT NULL DEFAULT '',
	actor_email TEXT NOT NULL DEFAULT '',
	details JSONB,
	client_ip TEXT NOT NULL DEFAULT '',
	user_agent TEXT NOT NULL DEFAULT '',
	ts TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS audit_log_ts_idx ON audit_log (ts DESC);
CREATE INDEX IF NOT EXISTS audit_log_actor_idx ON audit_log (actor_id);
`

// InitDB opens the connection pool and makes sure the schema exists.
func InitDB(dsn string, logger *zap.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	logger.Info("database connected and schema ready")
	return db, nil
}

// Repository is the PostgreSQL storage.Store implementation.
type Repository struct {
	db     *sql.DB
	logger *zap.Logger
}

func New(db *sql.DB, logger *zap.Logger) *Repository {
	return &Repository{db: db, logger: logger}
}

// InsertLink relies on the unique index on short_code: a duplicate code is
// rejected atomically by the store and reported as storage.ErrCodeTaken so the
// caller can regenerate. There is deliberately no prior existence check.
func (r *Repository) InsertLink(ctx context.Context, link storage.LinkRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO links (id, short_code, destination_url, owner_id, click_count, active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7);`,
		link.ID, link.ShortCode, link.DestinationURL, link.OwnerID, link.ClickCount, link.Active, link.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return storage.ErrCodeTaken
		}
		return err
	}
	return nil
}

const linkColumns = `id, short_code, destination_url, owner_id, click_count, active, created_at, last_clicked_at`

func scanLink(row interface{ Scan(...any) error }) (*storage.LinkRecord, error) {
	var link storage.LinkRecord
	var lastClicked sql.NullTime

	err := row.Scan(&link.ID, &link.ShortCode, &link.DestinationURL, &link.OwnerID,
		&link.ClickCount, &link.Active, &link.CreatedAt, &lastClicked)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}

	if lastClicked.Valid {
		t := lastClicked.Time
		link.LastClickedAt = &t
	}
	return &link, nil
}

func collectLinks(rows *sql.Rows) ([]storage.LinkRecord, error) {
	links := make([]storage.LinkRecord, 0)
	for rows.Next() {
		link, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, *link)
	}
	return links, rows.Err()
}

func (r *Repository) FindLinkByCode(ctx context.Context, code string) (*storage.LinkRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+linkColumns+` FROM links WHERE short_code = $1;`, code)
	return scanLink(row)
}

func (r *Repository) FindLinkByID(ctx context.Context, id string) (*storage.LinkRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+linkColumns+` FROM links WHERE id = $1;`, id)
	return scanLink(row)
}

func (r *Repository) FindLinksByOwner(ctx context.Context, ownerID string, limit, offset int) ([]storage.LinkRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+linkColumns+` FROM links WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`,
		ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectLinks(rows)
}

func (r *Repository) CountLinksByOwner(ctx context.Context, ownerID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM links WHERE owner_id = $1;`, ownerID).Scan(&n)
	return n, err
}

func (r *Repository) SearchLinks(ctx context.Context, query string, limit, offset int) ([]storage.LinkRecord, int64, error) {
	pattern := "%" + query + "%"

	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM links WHERE destination_url ILIKE $1 OR short_code ILIKE $1;`,
		pattern).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+linkColumns+` FROM links
		 WHERE destination_url ILIKE $1 OR short_code ILIKE $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`,
		pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	links, err := collectLinks(rows)
	return links, total, err
}

// DeleteLink removes the link row; associated clicks go with it through the
// ON DELETE CASCADE constraint.
func (r *Repository) DeleteLink(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM links WHERE id = $1;`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *Repository) SetLinkActive(ctx context.Context, id string, active bool) (*storage.LinkRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE links SET active = $2 WHERE id = $1 RETURNING `+linkColumns+`;`,
		id, active)
	return scanLink(row)
}

// IncrementClickCount bumps the counter in place. The increment happens inside
// the store, never as a read-modify-write in the application, so concurrent
// clicks on a popular link cannot lose updates.
func (r *Repository) IncrementClickCount(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE links SET click_count = click_count + 1, last_clicked_at = now() WHERE id = $1;`, id)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// InsertClicks writes a batch of click events in one transaction. Batches come
// from the click worker, never directly from request handlers.
func (r *Repository) InsertClicks(ctx context.Context, clicks []storage.ClickRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	for _, c := range clicks {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO clicks (id, link_id, ts, client_ip, user_agent_raw, browser_family, platform_family, referrer)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
			c.ID, c.LinkID, c.Timestamp, c.ClientIP, c.UserAgentRaw, c.BrowserFamily, c.PlatformFamily, c.Referrer)
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error("click batch rollback failed", zap.Error(rbErr))
			}
			return err
		}
	}

	return tx.Commit()
}

func (r *Repository) RecentClicks(ctx context.Context, linkID string, limit int) ([]storage.ClickRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, link_id, ts, client_ip, user_agent_raw, browser_family, platform_family, referrer
		 FROM clicks WHERE link_id = $1 ORDER BY ts DESC LIMIT $2;`,
		linkID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	clicks := make([]storage.ClickRecord, 0)
	for rows.Next() {
		var c storage.ClickRecord
		if err := rows.Scan(&c.ID, &c.LinkID, &c.Timestamp, &c.ClientIP,
			&c.UserAgentRaw, &c.BrowserFamily, &c.PlatformFamily, &c.Referrer); err != nil {
			return nil, err
		}
		clicks = append(clicks, c)
	}
	return clicks, rows.Err()
}

func (r *Repository) CountClicks(ctx context.Context, linkID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM clicks WHERE link_id = $1;`, linkID).Scan(&n)
	return n, err
}

func (r *Repository) ClicksByBrowser(ctx context.Context, linkID string) ([]storage.BrowserCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT browser_family, count(*) FROM clicks WHERE link_id = $1
		 GROUP BY browser_family ORDER BY count(*) DESC, browser_family ASC;`,
		linkID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := make([]storage.BrowserCount, 0)
	for rows.Next() {
		var b storage.BrowserCount
		if err := rows.Scan(&b.Browser, &b.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, b)
	}
	return buckets, rows.Err()
}

func (r *Repository) ClicksByDay(ctx context.Context, linkID string, days int) ([]storage.DayCount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT to_char(ts AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day, count(*)
		 FROM clicks WHERE link_id = $1 AND ts >= now() - make_interval(days => $2)
		 GROUP BY day ORDER BY day ASC;`,
		linkID, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	buckets := make([]storage.DayCount, 0)
	for rows.Next() {
		var d storage.DayCount
		if err := rows.Scan(&d.Day, &d.Count); err != nil {
			return nil, err
		}
		buckets = append(buckets, d)
	}
	return buckets, rows.Err()
}

func (r *Repository) InsertAudit(ctx context.Context, entry storage.AuditRecord) error {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO audit_log (id, action, actor_id, actor_email, details, client_ip, user_agent, ts)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`,
		entry.ID, entry.Action, entry.ActorID, entry.ActorEmail, details,
		entry.ClientIP, entry.UserAgent, entry.Timestamp)
	return err
}

func (r *Repository) FindAudit(ctx context.Context, actorID string, limit, offset int) ([]storage.AuditRecord, int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM audit_log WHERE $1 = '' OR actor_id = $1;`,
		actorID).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, action, actor_id, actor_email, details, client_ip, user_agent, ts
		 FROM audit_log WHERE $1 = '' OR actor_id = $1
		 ORDER BY ts DESC LIMIT $2 OFFSET $3;`,
		actorID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	entries := make([]storage.AuditRecord, 0)
	for rows.Next() {
		var e storage.AuditRecord
		var details []byte
		if err := rows.Scan(&e.ID, &e.Action, &e.ActorID, &e.ActorEmail, &details,
			&e.ClientIP, &e.UserAgent, &e.Timestamp); err != nil {
			return nil, 0, err
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &e.Details); err != nil {
				r.logger.Warn("undecodable audit details", zap.String("id", e.ID), zap.Error(err))
			}
		}
		entries = append(entries, e)
	}
	return entries, total, rows.Err()
}

const principalColumns = `id, email, role, active, max_links, created_at`

func scanPrincipal(row interface{ Scan(...any) error }) (*storage.PrincipalRecord, error) {
	var p storage.PrincipalRecord
	err := row.Scan(&p.ID, &p.Email, &p.Role, &p.Active, &p.MaxLinks, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repository) InsertPrincipal(ctx context.Context, p storage.PrincipalRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO principals (id, email, role, active, max_links, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET email = EXCLUDED.email;`,
		p.ID, p.Email, p.Role, p.Active, p.MaxLinks, p.CreatedAt)
	return err
}

func (r *Repository) FindPrincipal(ctx context.Context, id string) (*storage.PrincipalRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+principalColumns+` FROM principals WHERE id = $1;`, id)
	return scanPrincipal(row)
}

func (r *Repository) SearchPrincipals(ctx context.Context, query string, limit, offset int) ([]storage.PrincipalRecord, int64, error) {
	pattern := "%" + query + "%"

	var total int64
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM principals WHERE email ILIKE $1;`, pattern).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+principalColumns+` FROM principals WHERE email ILIKE $1
		 ORDER BY created_at DESC LIMIT $2 OFFSET $3;`,
		pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	principals := make([]storage.PrincipalRecord, 0)
	for rows.Next() {
		var p storage.PrincipalRecord
		if err := rows.Scan(&p.ID, &p.Email, &p.Role, &p.Active, &p.MaxLinks, &p.CreatedAt); err != nil {
			return nil, 0, err
		}
		principals = append(principals, p)
	}
	return principals, total, rows.Err()
}

func (r *Repository) SetPrincipalActive(ctx context.Context, id string, active bool) (*storage.PrincipalRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE principals SET active = $2 WHERE id = $1 RETURNING `+principalColumns+`;`,
		id, active)
	return scanPrincipal(row)
}

func (r *Repository) SetPrincipalRole(ctx context.Context, id, role string) (*storage.PrincipalRecord, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE principals SET role = $2 WHERE id = $1 RETURNING `+principalColumns+`;`,
		id, role)
	return scanPrincipal(row)
}

func (r *Repository) Totals(ctx context.Context) (*storage.Stats, error) {
	var s storage.Stats
	err := r.db.QueryRowContext(ctx,
		`SELECT
		 (SELECT count(*) FROM links),
		 (SELECT count(*) FROM clicks),
		 (SELECT count(*) FROM principals);`).
		Scan(&s.TotalLinks, &s.TotalClicks, &s.TotalPrincipals)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *Repository) PingContext(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
