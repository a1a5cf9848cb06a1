package item

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	"github.com/m04kA/ShareIt-BookingService/internal/infra/storage/database"
	"github.com/m04kA/ShareIt-BookingService/pkg/dbmetrics"
	"github.com/m04kA/ShareIt-BookingService/pkg/psqlbuilder"
)

var itemColumns = []string{"id", "name", "description", "available", "owner_id", "request_id"}

// Repository репозиторий вещей
type Repository struct {
	db DBExecutor
	qb psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория вещей
func NewRepository(db DBExecutor, qb psqlbuilder.Builder) *Repository {
	return &Repository{db: db, qb: qb}
}

// Create сохраняет вещь, id назначает БД
func (r *Repository) Create(ctx context.Context, it *domain.Item) (*domain.Item, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Insert("items").
		Columns("name", "description", "available", "owner_id", "request_id").
		Values(it.Name, it.Description, it.Available, it.OwnerID, it.RequestID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	created := *it
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&created.ID); err != nil {
		if database.IsForeignKeyViolation(err) {
			return nil, ErrOwnerNotFound
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return &created, nil
}

// GetByID получает вещь по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	return r.getByID(ctx, id, false)
}

// GetByIDForUpdate получает вещь и блокирует строку до конца транзакции.
// Вне транзакции или в sqlite работает как GetByID.
func (r *Repository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Item, error) {
	return r.getByID(ctx, id, dbmetrics.IsInTransaction(ctx))
}

func (r *Repository) getByID(ctx context.Context, id int64, lock bool) (*domain.Item, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.qb.Select(itemColumns...).
		From("items").
		Where(squirrel.Eq{"id": id})
	if lock {
		selectBuilder = r.qb.ForUpdate(selectBuilder)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	it, err := scanItem(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan item: %w", ErrScanRow, err)
	}

	return it, nil
}

// Update сохраняет изменяемые поля вещи
func (r *Repository) Update(ctx context.Context, it *domain.Item) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Update("items").
		Set("name", it.Name).
		Set("description", it.Description).
		Set("available", it.Available).
		Where(squirrel.Eq{"id": it.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Update - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrItemNotFound
	}

	return nil
}

// ListByOwner вещи владельца по возрастанию id
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64) ([]*domain.Item, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select(itemColumns...).
		From("items").
		Where(squirrel.Eq{"owner_id": ownerID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	items := make([]*domain.Item, 0)
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByOwner - scan item: %w", ErrScanRow, err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByOwner - rows error: %w", ErrScanRow, err)
	}

	return items, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	var (
		it        domain.Item
		requestID sql.NullInt64
	)
	if err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Available, &it.OwnerID, &requestID); err != nil {
		return nil, err
	}
	if requestID.Valid {
		it.RequestID = &requestID.Int64
	}
	return &it, nil
}
