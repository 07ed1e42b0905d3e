package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gauss2302/agrogame/internal/domain"
	"github.com/gauss2302/agrogame/internal/logger"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SafeRollback rolls back a transaction and logs any error that isn't ErrTxClosed
func SafeRollback(ctx context.Context, tx pgx.Tx) {
	if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		logger.FromContext(ctx).Error("Failed to rollback transaction", "error", err)
	}
}

// isPgError reports whether err carries the given SQLSTATE code
func isPgError(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func scanFarm(row pgx.Row) (*domain.Farm, error) {
	var f domain.Farm
	err := row.Scan(&f.ID, &f.Name, &f.CoinBalance, &f.VirtualHarvestTotal, &f.TotalDelivered, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func scanPlot(row pgx.Row) (*domain.Plot, error) {
	var (
		p     domain.Plot
		crop  *string
		stage string
	)
	if err := row.Scan(&p.ID, &p.FarmID, &p.Position, &crop, &stage, &p.PlantedAt); err != nil {
		return nil, err
	}
	if crop != nil {
		ct := domain.CropType(*crop)
		p.Crop = &ct
	}
	p.Stage = domain.Stage(stage)
	if p.PlantedAt != nil {
		utc := p.PlantedAt.UTC()
		p.PlantedAt = &utc
	}
	return &p, nil
}

func scanOrder(row pgx.Row) (*domain.DeliveryOrder, error) {
	var (
		o      domain.DeliveryOrder
		status string
	)
	err := row.Scan(
		&o.ID, &o.FarmID, &o.Reference, &o.Quantity, &o.VirtualUnitsConsumed, &status,
		&o.Recipient.Name, &o.Recipient.Phone, &o.Recipient.Address, &o.Recipient.Notes,
		&o.ConfirmedAt, &o.ShippedAt, &o.DeliveredAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	o.Status = domain.OrderStatus(status)
	return &o, nil
}

// collect scans every row with scan, closing rows when done
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

// orderMilestones returns the timestamp to stamp for status, if it has one
func orderMilestones(status domain.OrderStatus, at time.Time) (confirmed, shipped, delivered *time.Time) {
	switch status {
	case domain.OrderStatusConfirmed:
		confirmed = &at
	case domain.OrderStatusShipped:
		shipped = &at
	case domain.OrderStatusDelivered:
		delivered = &at
	}
	return confirmed, shipped, delivered
}
