package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	"github.com/m04kA/ShareIt-BookingService/pkg/dbmetrics"
	"github.com/m04kA/ShareIt-BookingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"b.id",
	"b.start_date",
	"b.end_date",
	"b.item_id",
	"b.booker_id",
	"b.status",
	"b.created_at",
	"b.updated_at",
}

var detailsColumns = append(append([]string{}, bookingColumns...),
	"i.name",
	"i.description",
	"i.available",
	"i.owner_id",
	"i.request_id",
	"u.name",
	"u.email",
)

// Repository репозиторий бронирований
type Repository struct {
	db DBExecutor
	qb psqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor, qb psqlbuilder.Builder) *Repository {
	return &Repository{db: db, qb: qb}
}

// Create сохраняет новое бронирование, id назначает БД.
// Если в контексте передана активная транзакция, использует её.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	if !b.Status.IsValid() {
		return nil, fmt.Errorf("%w: Create - status %q", ErrInvalidStatus, b.Status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	created := *b
	created.Start = normalize(b.Start)
	created.End = normalize(b.End)
	created.CreatedAt = normalize(b.CreatedAt)
	created.UpdatedAt = normalize(b.UpdatedAt)

	query, args, err := r.qb.Insert("bookings").
		Columns("start_date", "end_date", "item_id", "booker_id", "status", "created_at", "updated_at").
		Values(created.Start, created.End, created.ItemID, created.BookerID, created.Status, created.CreatedAt, created.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&created.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}

	return &created, nil
}

// GetByID получает бронирование вместе с вещью и арендатором
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.selectDetails().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	details, err := scanDetails(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}

	return details, nil
}

// ListByBooker бронирования арендатора, отсортированные по началу (новые первыми)
func (r *Repository) ListByBooker(ctx context.Context, bookerID int64, cond domain.StateCondition, page domain.Page) ([]*domain.BookingDetails, error) {
	return r.list(ctx, "ListByBooker", squirrel.Eq{"b.booker_id": bookerID}, cond, page)
}

// ListByOwner бронирования вещей владельца, отсортированные по началу (новые первыми)
func (r *Repository) ListByOwner(ctx context.Context, ownerID int64, cond domain.StateCondition, page domain.Page) ([]*domain.BookingDetails, error) {
	return r.list(ctx, "ListByOwner", squirrel.Eq{"i.owner_id": ownerID}, cond, page)
}

func (r *Repository) list(ctx context.Context, op string, subject squirrel.Sqlizer, cond domain.StateCondition, page domain.Page) ([]*domain.BookingDetails, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := r.selectDetails().Where(subject)
	for _, pred := range conditionPredicates(cond) {
		selectBuilder = selectBuilder.Where(pred)
	}

	query, args, err := selectBuilder.
		OrderBy("b.start_date DESC", "b.id DESC").
		Limit(uint64(page.Limit())).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.BookingDetails, 0)
	for rows.Next() {
		details, err := scanDetails(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan booking: %w", ErrScanRow, op, err)
		}
		result = append(result, details)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return result, nil
}

// UpdateStatus меняет статус, если бронирование ещё не подтверждено.
// Проверка и запись выполняются одним UPDATE, поэтому из двух конкурентных
// подтверждений успешным будет только одно.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, updatedAt time.Time) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: UpdateStatus - status %q", ErrInvalidStatus, status)
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Update("bookings").
		Set("status", status).
		Set("updated_at", normalize(updatedAt)).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.StatusApproved}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		exists, err := r.exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrBookingNotFound
		}
		return ErrStatusConflict
	}

	return nil
}

// Delete удаляет бронирование (административная операция)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %w", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %w", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// HasApprovedOverlap есть ли у вещи подтверждённое бронирование,
// пересекающееся с [start, end)
func (r *Repository) HasApprovedOverlap(ctx context.Context, itemID int64, start, end time.Time) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"item_id": itemID, "status": domain.StatusApproved}).
		Where(squirrel.Lt{"start_date": normalize(end)}).
		Where(squirrel.Gt{"end_date": normalize(start)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasApprovedOverlap - build select query: %w", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasApprovedOverlap - scan count: %w", ErrScanRow, err)
	}

	return count > 0, nil
}

// LatestApprovedByItems для каждой вещи подтверждённые бронирования с наибольшим
// началом среди начавшихся не позже now. При равном начале возвращаются все,
// отсортированные по item_id, id.
func (r *Repository) LatestApprovedByItems(ctx context.Context, itemIDs []int64, now time.Time) ([]*domain.Booking, error) {
	return r.approvedEdge(ctx, "LatestApprovedByItems", itemIDs, "MAX", "<=", now)
}

// NextApprovedByItems для каждой вещи подтверждённые бронирования с наименьшим
// началом среди начинающихся не раньше now
func (r *Repository) NextApprovedByItems(ctx context.Context, itemIDs []int64, now time.Time) ([]*domain.Booking, error) {
	return r.approvedEdge(ctx, "NextApprovedByItems", itemIDs, "MIN", ">=", now)
}

// approvedEdge один запрос на весь набор вещей:
// коррелированный подзапрос выбирает крайнее начало для каждой вещи
func (r *Repository) approvedEdge(ctx context.Context, op string, itemIDs []int64, agg, cmp string, now time.Time) ([]*domain.Booking, error) {
	if len(itemIDs) == 0 {
		return []*domain.Booking{}, nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)
	now = instant(now)

	edge := fmt.Sprintf(
		"b.start_date = (SELECT %s(e.start_date) FROM bookings e WHERE e.item_id = b.item_id AND e.status = ? AND e.start_date %s ?)",
		agg, cmp,
	)

	query, args, err := r.qb.Select(bookingColumns...).
		From("bookings b").
		Where(squirrel.Eq{"b.item_id": itemIDs, "b.status": domain.StatusApproved}).
		Where(squirrel.Expr(edge, domain.StatusApproved, now)).
		OrderBy("b.item_id ASC", "b.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %w", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	result := make([]*domain.Booking, 0)
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan booking: %w", ErrScanRow, op, err)
		}
		result = append(result, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return result, nil
}

func (r *Repository) exists(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := r.qb.Select("1").
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %w", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists - scan: %w", ErrScanRow, err)
	}
	return true, nil
}

func (r *Repository) selectDetails() squirrel.SelectBuilder {
	return r.qb.Select(detailsColumns...).
		From("bookings b").
		Join("items i ON i.id = b.item_id").
		Join("users u ON u.id = b.booker_id")
}

// conditionPredicates переводит условие состояния в WHERE
func conditionPredicates(cond domain.StateCondition) []squirrel.Sqlizer {
	preds := make([]squirrel.Sqlizer, 0, 5)
	if cond.StartBefore != nil {
		preds = append(preds, squirrel.Lt{"b.start_date": instant(*cond.StartBefore)})
	}
	if cond.StartAfter != nil {
		preds = append(preds, squirrel.Gt{"b.start_date": instant(*cond.StartAfter)})
	}
	if cond.EndBefore != nil {
		preds = append(preds, squirrel.Lt{"b.end_date": instant(*cond.EndBefore)})
	}
	if cond.EndAfter != nil {
		preds = append(preds, squirrel.Gt{"b.end_date": instant(*cond.EndAfter)})
	}
	if cond.Status != nil {
		preds = append(preds, squirrel.Eq{"b.status": *cond.Status})
	}
	return preds
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	if err := row.Scan(
		&b.ID,
		&b.Start,
		&b.End,
		&b.ItemID,
		&b.BookerID,
		&b.Status,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return nil, err
	}
	normalizeBooking(&b)
	return &b, nil
}

func scanDetails(row rowScanner) (*domain.BookingDetails, error) {
	var (
		d         domain.BookingDetails
		requestID sql.NullInt64
	)
	if err := row.Scan(
		&d.ID,
		&d.Start,
		&d.End,
		&d.ItemID,
		&d.BookerID,
		&d.Status,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.Item.Name,
		&d.Item.Description,
		&d.Item.Available,
		&d.Item.OwnerID,
		&requestID,
		&d.Booker.Name,
		&d.Booker.Email,
	); err != nil {
		return nil, err
	}
	normalizeBooking(&d.Booking)
	d.Item.ID = d.ItemID
	d.Booker.ID = d.BookerID
	if requestID.Valid {
		d.Item.RequestID = &requestID.Int64
	}
	return &d, nil
}

// normalize все времена хранятся в UTC с точностью до секунды
func normalize(t time.Time) time.Time {
	return domain.NormalizeDateTime(t)
}

// instant момент "сейчас" не округляется: бронирование, начавшееся в начале
// текущей секунды, уже текущее, а не будущее
func instant(t time.Time) time.Time {
	return t.UTC()
}

func normalizeBooking(b *domain.Booking) {
	b.Start = b.Start.UTC()
	b.End = b.End.UTC()
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
}
