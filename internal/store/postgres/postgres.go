// Package postgres persists scan records in PostgreSQL, one table per
// platform plus a shared recent_scans timestamp table.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/MOYARU/mas/internal/report"
	"github.com/MOYARU/mas/internal/store"
)

var tables = map[store.Platform]string{
	store.PlatformAndroid: "static_scans_android",
	store.PlatformIOS:     "static_scans_ios",
	store.PlatformWindows: "static_scans_windows",
}

func Open(ctx context.Context, url string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the scan tables when they are missing. Deployments
// with restricted DB users run migrations out of band and skip this.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				md5             text PRIMARY KEY,
				file_name       text NOT NULL,
				app_name        text NOT NULL DEFAULT '',
				package_id      text NOT NULL DEFAULT '',
				version_name    text NOT NULL DEFAULT '',
				code_analysis   jsonb,
				binary_analysis jsonb,
				extra           jsonb
			)`, table))
		if err != nil {
			return fmt.Errorf("create %s: %w", table, err)
		}
	}
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS recent_scans (
			md5 text PRIMARY KEY,
			ts  timestamptz NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("create recent_scans: %w", err)
	}
	return nil
}

type Store struct {
	pool     *pgxpool.Pool
	platform store.Platform
	table    string
}

func NewStore(pool *pgxpool.Pool, platform store.Platform) (*Store, error) {
	table, ok := tables[platform]
	if !ok {
		return nil, fmt.Errorf("unknown platform %q", platform)
	}
	return &Store{pool: pool, platform: platform, table: table}, nil
}

func (s *Store) Platform() store.Platform { return s.platform }

func (s *Store) FindByHash(ctx context.Context, hash string) (*store.ScanRecord, error) {
	row := s.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT file_name, app_name, package_id, version_name,
		       code_analysis, binary_analysis, extra
		FROM %s
		WHERE md5 = $1`, s.table), hash)

	var (
		rec        store.ScanRecord
		codeJSON   []byte
		binaryJSON []byte
		extraJSON  []byte
	)
	err := row.Scan(&rec.FileName, &rec.AppName, &rec.PackageID, &rec.VersionName,
		&codeJSON, &binaryJSON, &extraJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find scan record: %w", err)
	}

	rec.Platform = s.platform
	if rec.CodeAnalysis, err = decodeFindings(codeJSON); err != nil {
		return nil, fmt.Errorf("decode code_analysis for %s: %w", hash, err)
	}
	if rec.BinaryAnalysis, err = decodeFindings(binaryJSON); err != nil {
		return nil, fmt.Errorf("decode binary_analysis for %s: %w", hash, err)
	}
	if len(extraJSON) > 0 {
		if err := json.Unmarshal(extraJSON, &rec.Extra); err != nil {
			return nil, fmt.Errorf("decode extra for %s: %w", hash, err)
		}
	}
	return &rec, nil
}

func (s *Store) Save(ctx context.Context, hash string, rec *store.ScanRecord) error {
	codeJSON, err := json.Marshal(rec.CodeAnalysis)
	if err != nil {
		return fmt.Errorf("encode code_analysis: %w", err)
	}
	binaryJSON, err := json.Marshal(rec.BinaryAnalysis)
	if err != nil {
		return fmt.Errorf("encode binary_analysis: %w", err)
	}
	extraJSON, err := json.Marshal(rec.Extra)
	if err != nil {
		return fmt.Errorf("encode extra: %w", err)
	}

	_, err = s.pool.Exec(ctx, fmt.Sprintf(`
		INSERT INTO %s (md5, file_name, app_name, package_id, version_name,
		                code_analysis, binary_analysis, extra)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8::jsonb)
		ON CONFLICT (md5) DO UPDATE SET
			file_name = EXCLUDED.file_name,
			app_name = EXCLUDED.app_name,
			package_id = EXCLUDED.package_id,
			version_name = EXCLUDED.version_name,
			code_analysis = EXCLUDED.code_analysis,
			binary_analysis = EXCLUDED.binary_analysis,
			extra = EXCLUDED.extra`, s.table),
		hash, rec.FileName, rec.AppName, rec.PackageID, rec.VersionName,
		string(codeJSON), string(binaryJSON), string(extraJSON))
	if err != nil {
		return fmt.Errorf("save scan record: %w", err)
	}
	return nil
}

func decodeFindings(raw []byte) (map[string]report.Finding, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out map[string]report.Finding
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// RecentScans reads and updates the shared timestamp table.
type RecentScans struct {
	pool *pgxpool.Pool
}

func NewRecentScans(pool *pgxpool.Pool) *RecentScans {
	return &RecentScans{pool: pool}
}

func (r *RecentScans) Timestamp(ctx context.Context, hash string) (time.Time, error) {
	var ts time.Time
	err := r.pool.QueryRow(ctx,
		`SELECT ts FROM recent_scans WHERE md5 = $1`, hash).Scan(&ts)
	if errors.Is(err, pgx.ErrNoRows) {
		return time.Time{}, store.ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("fetch scan timestamp: %w", err)
	}
	return ts, nil
}

func (r *RecentScans) Touch(ctx context.Context, hash string) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO recent_scans (md5, ts) VALUES ($1, now())
		ON CONFLICT (md5) DO UPDATE SET ts = now()`, hash)
	if err != nil {
		return fmt.Errorf("update scan timestamp: %w", err)
	}
	return nil
}
