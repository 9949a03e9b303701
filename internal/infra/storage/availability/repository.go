package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

const tableName = "availability_slots"

var slotColumns = []string{
	"id",
	"user_id",
	"day_of_week",
	"start_time",
	"end_time",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами доступности
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет новый слот
// ID генерируется вызывающей стороной, created_at/updated_at выставляет БД.
// Если в контексте передана активная транзакция, использует её
func (r *Repository) Create(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildInsertQuery(slot)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// GetByID получает слот по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Внутри транзакции блокируем строку до удаления
	query, args, err := buildGetByIDQuery(id, dbmetrics.IsInTransaction(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// GetByUserID получает все слоты пользователя, отсортированные по дню недели и времени начала
func (r *Repository) GetByUserID(ctx context.Context, userID string) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildGetByUserIDQuery(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// GetByUserAndDay получает слоты пользователя на указанный день недели, отсортированные по времени начала
// Внутри транзакции строки блокируются (FOR UPDATE)
func (r *Repository) GetByUserAndDay(ctx context.Context, userID string, day domain.Weekday) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildGetByUserAndDayQuery(userID, day, dbmetrics.IsInTransaction(ctx))
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserAndDay - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserAndDay - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSlots(rows)
}

// LockUserDay берёт advisory lock на пару (пользователь, день недели) до конца транзакции
//
// FOR UPDATE в GetByUserAndDay не защищает от вставки, когда у пользователя ещё нет слотов
// на этот день, поэтому параллельные создания сериализуются этой блокировкой.
// Вызывать можно только внутри транзакции
func (r *Repository) LockUserDay(ctx context.Context, userID string, day domain.Weekday) error {
	tx, ok := dbmetrics.TxFromContext(ctx)
	if !ok {
		return fmt.Errorf("%w: LockUserDay - must be called inside a transaction", ErrTransaction)
	}

	query, args := buildLockUserDayQuery(userID, day)
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: LockUserDay - execute lock: %v", ErrExecQuery, err)
	}

	return nil
}

// Delete удаляет слот
func (r *Repository) Delete(ctx context.Context, id string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := buildDeleteQuery(id)
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

func buildInsertQuery(slot *domain.AvailabilitySlot) (string, []interface{}, error) {
	return psqlbuilder.Insert(tableName).
		Columns("id", "user_id", "day_of_week", "start_time", "end_time").
		Values(slot.ID, slot.UserID, int(slot.DayOfWeek), slot.StartTime, slot.EndTime).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
}

func buildGetByIDQuery(id string, forUpdate bool) (string, []interface{}, error) {
	builder := psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{"id": id})

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	return builder.ToSql()
}

func buildDeleteQuery(id string) (string, []interface{}, error) {
	return psqlbuilder.Delete(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
}

func buildGetByUserIDQuery(userID string) (string, []interface{}, error) {
	return psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("day_of_week ASC", "start_time ASC").
		ToSql()
}

func buildGetByUserAndDayQuery(userID string, day domain.Weekday, forUpdate bool) (string, []interface{}, error) {
	builder := psqlbuilder.Select(slotColumns...).
		From(tableName).
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"day_of_week": int(day)}).
		OrderBy("start_time ASC")

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	return builder.ToSql()
}

func buildLockUserDayQuery(userID string, day domain.Weekday) (string, []interface{}) {
	return "SELECT pg_advisory_xact_lock(hashtext($1))", []interface{}{fmt.Sprintf("%s:%d", userID, int(day))}
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.AvailabilitySlot, error) {
	var slot domain.AvailabilitySlot
	var dayOfWeek int
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.UserID,
		&dayOfWeek,
		&slot.StartTime,
		&slot.EndTime,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.DayOfWeek = domain.Weekday(dayOfWeek)
	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func scanSlots(rows *sql.Rows) ([]*domain.AvailabilitySlot, error) {
	slots := make([]*domain.AvailabilitySlot, 0)

	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
