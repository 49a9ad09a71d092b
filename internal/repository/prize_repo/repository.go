package prize_repo

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
	table       = "prizes"
	colID       = "id"
	colIcon     = "icon"
	colName     = "name"
	colQuantity = "quantity"
	colColor    = "color"
	colIsActive = `"isActive"`
)

var prizeColumns = []string{colID, colIcon, colName, colQuantity, colColor, colIsActive}

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewPrizeRepository(dbc *pgxpool.Pool) repository.PrizeRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// db returns the transaction bound to ctx, or the pool.
func (r *repo) db(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// GetAll - every prize, ordered by id
func (r *repo) GetAll(ctx context.Context) ([]model.Prize, error) {
	query := sq.Select(prizeColumns...).
		From(table).
		OrderBy(colID).
		PlaceholderFormat(sq.Dollar)

	return r.list(ctx, query)
}

// GetSpinnable - active prizes with stock left, ordered by id
func (r *repo) GetSpinnable(ctx context.Context) ([]model.Prize, error) {
	query := sq.Select(prizeColumns...).
		From(table).
		Where(sq.Eq{colIsActive: true}).
		Where(sq.Gt{colQuantity: 0}).
		OrderBy(colID).
		PlaceholderFormat(sq.Dollar)

	return r.list(ctx, query)
}

func (r *repo) list(ctx context.Context, query sq.SelectBuilder) ([]model.Prize, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prizes := make([]model.Prize, 0)
	for rows.Next() {
		p, err := scanPrize(rows)
		if err != nil {
			return nil, err
		}
		prizes = append(prizes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return prizes, nil
}

func (r *repo) GetByID(ctx context.Context, id int) (*model.Prize, error) {
	query := sq.Select(prizeColumns...).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	p, err := scanPrize(r.db(ctx).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %d", repository.ErrPrizeNotFound, id)
		}
		return nil, err
	}

	return &p, nil
}

// GetQuantity - current stock of one prize
func (r *repo) GetQuantity(ctx context.Context, id int) (int, error) {
	query := sq.Select(colQuantity).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var quantity int
	err = r.db(ctx).QueryRow(ctx, sqlStr, args...).Scan(&quantity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%w: %d", repository.ErrPrizeNotFound, id)
		}
		return 0, err
	}

	return quantity, nil
}

// UpdateQuantity - overwrites the stock of one prize. The caller computes the
// new value; there is no compare-and-set.
func (r *repo) UpdateQuantity(ctx context.Context, id int, quantity int) error {
	query := sq.Update(table).
		Set(colQuantity, quantity).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	return r.exec(ctx, id, query)
}

func (r *repo) UpdateActiveAndQuantity(ctx context.Context, id int, quantity int, active bool) error {
	query := sq.Update(table).
		Set(colQuantity, quantity).
		Set(colIsActive, active).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	return r.exec(ctx, id, query)
}

func (r *repo) exec(ctx context.Context, id int, query sq.UpdateBuilder) error {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.db(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return fmt.Errorf("%w: %d", repository.ErrPrizeNotFound, id)
	}

	return nil
}

func scanPrize(row pgx.Row) (model.Prize, error) {
	var (
		p    model.Prize
		icon *string
	)
	err := row.Scan(&p.ID, &icon, &p.Name, &p.Quantity, &p.Color, &p.IsActive)
	if icon != nil {
		p.Icon = *icon
	}
	return p, err
}
