package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/brightsprout/kinderportal/internal/data/pgxutil"
	domainauth "github.com/brightsprout/kinderportal/internal/domain/auth"
	"github.com/brightsprout/kinderportal/internal/domain/model"
)

// MemberRepo provides database operations for site members.
type MemberRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewMemberRepo creates a new MemberRepo with real time provider.
func NewMemberRepo(db *sql.DB) *MemberRepo {
	return &MemberRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

const memberColumns = `id, email, name, password_hash, role, status, created_at, updated_at`

const (
	memberGetByEmailQuery = `
		SELECT ` + memberColumns + `
		FROM members
		WHERE email = $1`

	memberGetByIDQuery = `
		SELECT ` + memberColumns + `
		FROM members
		WHERE id = $1`
)

// GetByEmail retrieves a member by email (case-insensitive).
func (r *MemberRepo) GetByEmail(ctx context.Context, email string) (*model.Member, error) {
	return r.getByQuery(ctx, memberGetByEmailQuery, "failed to get member by email",
		strings.ToLower(strings.TrimSpace(email)))
}

// GetByID retrieves a member by ID.
func (r *MemberRepo) GetByID(ctx context.Context, id string) (*model.Member, error) {
	return r.getByQuery(ctx, memberGetByIDQuery, "failed to get member by ID", id)
}

// Activate flips a pending member to active. Returns true when a row changed.
func (r *MemberRepo) Activate(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, execErr := conn.Exec(ctx,
			`UPDATE members SET status = $1, updated_at = $2 WHERE id = $3 AND status = $4`,
			domainauth.StatusActive, r.timeProvider.Now().UTC(), id, domainauth.StatusPending)
		if execErr != nil {
			return execErr
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to activate member: %w", err)
	}
	return rows > 0, nil
}

// ListPending returns members awaiting activation, oldest first.
func (r *MemberRepo) ListPending(ctx context.Context, limit, offset int) ([]model.Member, error) {
	if limit <= 0 {
		limit = 50
	}
	offset = max(offset, 0)

	var members []model.Member
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx,
			"SELECT "+memberColumns+" FROM members WHERE status = $1 ORDER BY created_at ASC LIMIT $2 OFFSET $3",
			domainauth.StatusPending, limit, offset)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		members, collectErr = pgx.CollectRows(rows, pgx.RowToStructByName[model.Member])
		return collectErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pending members: %w", err)
	}
	return members, nil
}

func (r *MemberRepo) getByQuery(ctx context.Context, q, errMsg string, args ...any) (*model.Member, error) {
	var member model.Member
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, q, args...)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		member, collectErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Member])
		return collectErr
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &member, nil
}
