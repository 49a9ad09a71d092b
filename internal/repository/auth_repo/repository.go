package auth_repo

import (
	"context"
	"errors"

	"prize_wheel/internal/model"
	"prize_wheel/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table          = "admin_sessions"
	colSessionID   = "session_id"
	colAdminID     = "admin_id"
	colRefreshHash = "refresh_hash"
	colExpiredTime = "expired_time"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewAuthRepository(dbc *pgxpool.Pool) repository.AuthRepository {
	return &repo{
		dbc: dbc,
	}
}

// CreateSession - stores a session (ID, AdminID, RefreshHash, ExpiresAt)
func (r *repo) CreateSession(ctx context.Context, session *model.Session) error {
	query := sq.Insert(table).
		Columns(colSessionID, colAdminID, colRefreshHash, colExpiredTime).
		Values(session.ID, session.AdminID, session.RefreshHash, session.ExpiresAt).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

func (r *repo) GetSession(ctx context.Context, sessionID string) (*model.Session, error) {
	query := sq.Select(colSessionID, colAdminID, colRefreshHash, colExpiredTime).
		From(table).
		Where(sq.Eq{colSessionID: sessionID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var s model.Session
	err = r.dbc.QueryRow(ctx, sqlStr, args...).Scan(&s.ID, &s.AdminID, &s.RefreshHash, &s.ExpiresAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrSessionNotFound
		}
		return nil, err
	}

	return &s, nil
}

// DeleteSession - removes the session; deleting an unknown id is not an error
func (r *repo) DeleteSession(ctx context.Context, sessionID string) error {
	query := sq.Delete(table).
		Where(sq.Eq{colSessionID: sessionID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.dbc.Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// GetAdminBySessionID - admin (ID, Name, Login, Password) owning the session
func (r *repo) GetAdminBySessionID(ctx context.Context, sessionID string) (*model.Admin, error) {
	query := sq.Select("a.id", "a.name", "a.login", "a.password_hash").
		From(table + " s").
		Join("admins a ON s." + colAdminID + " = a.id").
		Where(sq.Eq{"s." + colSessionID: sessionID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var admin model.Admin
	err = r.dbc.QueryRow(ctx, sqlStr, args...).Scan(&admin.ID, &admin.Name, &admin.Login, &admin.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrSessionNotFound
		}
		return nil, err
	}

	return &admin, nil
}
