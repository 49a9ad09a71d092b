package admin_repo

import (
	"context"
	"errors"
	"fmt"

	"prize_wheel/internal/model"
	"prize_wheel/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table           = "admins"
	colID           = "id"
	colName         = "name"
	colLogin        = "login"
	colPasswordHash = "password_hash"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewAdminRepository(dbc *pgxpool.Pool) repository.AdminRepository {
	return &repo{
		dbc: dbc,
	}
}

// CreateAdmin - creates an admin account and returns its id
func (r *repo) CreateAdmin(ctx context.Context, admin *model.Admin) (int, error) {
	query := sq.Insert(table).
		Columns(colName, colLogin, colPasswordHash).
		Values(admin.Name, admin.Login, admin.Password).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetAdminByLogin - admin with its password hash, by login
func (r *repo) GetAdminByLogin(ctx context.Context, login string) (*model.Admin, error) {
	query := sq.Select(colID, colName, colLogin, colPasswordHash).
		From(table).
		Where(sq.Eq{colLogin: login}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var admin model.Admin
	err = r.dbc.QueryRow(ctx, sqlStr, args...).Scan(&admin.ID, &admin.Name, &admin.Login, &admin.Password)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", repository.ErrAdminNotFound, login)
		}
		return nil, err
	}

	return &admin, nil
}
