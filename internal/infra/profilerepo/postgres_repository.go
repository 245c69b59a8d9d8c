package profilerepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/yanqian/skinfit/internal/domain/profile"
	"github.com/yanqian/skinfit/pkg/util"
)

const table = "skin_profiles"

const schema = `
CREATE TABLE IF NOT EXISTS skin_profiles (
	id                BIGSERIAL PRIMARY KEY,
	name              TEXT        NOT NULL,
	age               INTEGER     NOT NULL,
	skin_type         TEXT        NOT NULL,
	conditions        TEXT[]      NOT NULL DEFAULT '{}',
	routine_frequency TEXT        NOT NULL,
	created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// PostgresRepository persists profiles in Postgres.
type PostgresRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// NewPostgresRepository creates a new repository over db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// EnsureSchema creates the profiles table when missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create %s: %w", table, err)
	}
	return nil
}

// Create inserts a profile row and returns it with its id.
func (r *PostgresRepository) Create(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = util.NowUTC()
	}
	conditions := make(pq.StringArray, len(p.Conditions))
	for i, c := range p.Conditions {
		conditions[i] = string(c)
	}

	query, args, err := r.sb.Insert(table).
		Columns("name", "age", "skin_type", "conditions", "routine_frequency", "created_at").
		Values(p.Name, p.Age, string(p.SkinType), conditions, string(p.Frequency), p.CreatedAt).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return profile.Profile{}, fmt.Errorf("build insert: %w", err)
	}

	var created time.Time
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&p.ID, &created); err != nil {
		return profile.Profile{}, fmt.Errorf("insert profile: %w", err)
	}
	p.CreatedAt = created.UTC()
	return p, nil
}

// CountBySkinType aggregates stored profiles per skin type.
func (r *PostgresRepository) CountBySkinType(ctx context.Context) ([]profile.Count, error) {
	query, args, err := r.sb.Select("skin_type", "COUNT(*)").
		From(table).
		GroupBy("skin_type").
		OrderBy("COUNT(*) DESC", "skin_type").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count profiles: %w", err)
	}
	defer rows.Close()

	out := []profile.Count{}
	for rows.Next() {
		var c profile.Count
		if err := rows.Scan(&c.Label, &c.Count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

var _ profile.Repository = (*PostgresRepository)(nil)
