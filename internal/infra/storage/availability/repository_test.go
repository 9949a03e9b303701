package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func TestBuildInsertQuery(t *testing.T) {
	slot := &domain.AvailabilitySlot{
		ID:        "0b7e4a8e-54f4-4a34-9bd4-6c4a2a0f7a11",
		UserID:    "5d7f3c2a-1111-4e2b-9d1c-2f7b7d6b9e01",
		DayOfWeek: 1,
		StartTime: types.MustTimeOfDay("09:00"),
		EndTime:   types.MustTimeOfDay("17:00"),
	}

	query, args, err := buildInsertQuery(slot)
	require.NoError(t, err)

	assert.Equal(t,
		"INSERT INTO availability_slots (id,user_id,day_of_week,start_time,end_time) VALUES ($1,$2,$3,$4,$5) RETURNING created_at, updated_at",
		query)
	assert.Equal(t, []interface{}{slot.ID, slot.UserID, 1, slot.StartTime, slot.EndTime}, args)
}

func TestBuildGetByUserIDQuery_OrdersByDayAndStart(t *testing.T) {
	query, args, err := buildGetByUserIDQuery("user-1")
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, user_id, day_of_week, start_time, end_time, created_at, updated_at FROM availability_slots WHERE user_id = $1 ORDER BY day_of_week ASC, start_time ASC",
		query)
	assert.Equal(t, []interface{}{"user-1"}, args)
}

func TestBuildGetByIDQuery(t *testing.T) {
	const selectByID = "SELECT id, user_id, day_of_week, start_time, end_time, created_at, updated_at FROM availability_slots WHERE id = $1"

	query, args, err := buildGetByIDQuery("slot-1", false)
	require.NoError(t, err)
	assert.Equal(t, selectByID, query)
	assert.Equal(t, []interface{}{"slot-1"}, args)

	// В транзакции удаления строка блокируется
	query, args, err = buildGetByIDQuery("slot-1", true)
	require.NoError(t, err)
	assert.Equal(t, selectByID+" FOR UPDATE", query)
	assert.Equal(t, []interface{}{"slot-1"}, args)
}

func TestBuildDeleteQuery(t *testing.T) {
	query, args, err := buildDeleteQuery("slot-1")
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM availability_slots WHERE id = $1", query)
	assert.Equal(t, []interface{}{"slot-1"}, args)
}

func TestBuildGetByUserAndDayQuery(t *testing.T) {
	query, args, err := buildGetByUserAndDayQuery("user-1", 3, false)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, user_id, day_of_week, start_time, end_time, created_at, updated_at FROM availability_slots WHERE user_id = $1 AND day_of_week = $2 ORDER BY start_time ASC",
		query)
	assert.Equal(t, []interface{}{"user-1", 3}, args)

	query, _, err = buildGetByUserAndDayQuery("user-1", 3, true)
	require.NoError(t, err)
	assert.True(t, len(query) > len(" FOR UPDATE"))
	assert.Equal(t, " FOR UPDATE", query[len(query)-len(" FOR UPDATE"):])
}

func TestBuildLockUserDayQuery(t *testing.T) {
	query, args := buildLockUserDayQuery("user-1", 5)

	assert.Equal(t, "SELECT pg_advisory_xact_lock(hashtext($1))", query)
	assert.Equal(t, []interface{}{"user-1:5"}, args)
}

func TestLockUserDay_RequiresTransaction(t *testing.T) {
	repo := NewRepository(nil)

	err := repo.LockUserDay(context.Background(), "user-1", 1)
	assert.ErrorIs(t, err, ErrTransaction)
}

type fakeRow struct {
	values []interface{}
	err    error
}

func (r *fakeRow) Scan(dest ...interface{}) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = r.values[i].(string)
		case *int:
			*p = r.values[i].(int)
		case *types.TimeOfDay:
			if err := p.Scan(r.values[i]); err != nil {
				return err
			}
		default:
			// timestamps остаются нулевыми
		}
	}
	return nil
}

func TestScanSlot(t *testing.T) {
	row := &fakeRow{values: []interface{}{"slot-1", "user-1", 2, "09:00", "17:00", time.Time{}, time.Time{}}}

	slot, err := scanSlot(row)
	require.NoError(t, err)

	assert.Equal(t, "slot-1", slot.ID)
	assert.Equal(t, "user-1", slot.UserID)
	assert.Equal(t, domain.Weekday(2), slot.DayOfWeek)
	assert.Equal(t, "09:00", slot.StartTime.String())
	assert.Equal(t, "17:00", slot.EndTime.String())
}

func TestScanSlot_PropagatesError(t *testing.T) {
	scanErr := errors.New("scan failed")

	_, err := scanSlot(&fakeRow{err: scanErr})
	assert.ErrorIs(t, err, scanErr)
}
