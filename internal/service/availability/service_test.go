package availability

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/events"
	slotRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/availability/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const (
	ownerID    = "5d7f3c2a-1111-4e2b-9d1c-2f7b7d6b9e01"
	strangerID = "9a1b2c3d-2222-4e2b-9d1c-2f7b7d6b9e02"
	slotID     = "0b7e4a8e-54f4-4a34-9bd4-6c4a2a0f7a11"
)

type memoryRepo struct {
	slots  map[string]*domain.AvailabilitySlot
	order  []string
	getErr error
}

func newMemoryRepo(slots ...*domain.AvailabilitySlot) *memoryRepo {
	r := &memoryRepo{slots: make(map[string]*domain.AvailabilitySlot)}
	for _, s := range slots {
		r.slots[s.ID] = s
		r.order = append(r.order, s.ID)
	}
	return r
}

func (r *memoryRepo) GetByID(_ context.Context, id string) (*domain.AvailabilitySlot, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	slot, ok := r.slots[id]
	if !ok {
		return nil, slotRepo.ErrSlotNotFound
	}
	return slot, nil
}

func (r *memoryRepo) GetByUserID(_ context.Context, userID string) ([]*domain.AvailabilitySlot, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	result := make([]*domain.AvailabilitySlot, 0)
	for _, id := range r.order {
		if s, ok := r.slots[id]; ok && s.UserID == userID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (r *memoryRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.slots[id]; !ok {
		return slotRepo.ErrSlotNotFound
	}
	delete(r.slots, id)
	return nil
}

type passthroughTx struct {
	modes []string
}

func (tx *passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.modes = append(tx.modes, "read_write")
	return fn(ctx)
}

func (tx *passthroughTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.modes = append(tx.modes, "read_only")
	return fn(ctx)
}

type fakePublisher struct {
	events []events.Event
}

func (p *fakePublisher) Publish(_ context.Context, event events.Event) error {
	p.events = append(p.events, event)
	return nil
}

type fakeMetrics struct {
	results []string
}

func (m *fakeMetrics) IncSlotOperation(operation, result string) {
	m.results = append(m.results, operation+":"+result)
}

func ownedSlot(id string, day domain.Weekday, start, end string) *domain.AvailabilitySlot {
	return &domain.AvailabilitySlot{
		ID:        id,
		UserID:    ownerID,
		DayOfWeek: day,
		StartTime: types.MustTimeOfDay(start),
		EndTime:   types.MustTimeOfDay(end),
	}
}

func newTestService(repo *memoryRepo) (*Service, *fakePublisher, *fakeMetrics) {
	publisher := &fakePublisher{}
	metrics := &fakeMetrics{}
	svc := NewService(repo, &passthroughTx{}, publisher, metrics, logger.NewNop())
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, publisher, metrics
}

func TestFindMySlots(t *testing.T) {
	repo := newMemoryRepo(
		ownedSlot("a", 1, "09:00", "12:00"),
		ownedSlot("b", 1, "13:00", "17:00"),
		&domain.AvailabilitySlot{ID: "c", UserID: strangerID, DayOfWeek: 1, StartTime: 0, EndTime: 60},
	)
	svc, _, _ := newTestService(repo)

	slots, err := svc.FindMySlots(context.Background(), ownerID)
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, "a", slots[0].ID)
	assert.Equal(t, "09:00", slots[0].StartTime)
	assert.Equal(t, "12:00", slots[0].EndTime)
	assert.Equal(t, 1, slots[0].DayOfWeek)
	assert.Equal(t, "b", slots[1].ID)
}

func TestFindMySlots_EmptyIsNotNil(t *testing.T) {
	svc, _, _ := newTestService(newMemoryRepo())

	slots, err := svc.FindMySlots(context.Background(), ownerID)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestFindMySlots_RepositoryError(t *testing.T) {
	repo := newMemoryRepo()
	repo.getErr = errors.New("db down")
	svc, _, _ := newTestService(repo)

	_, err := svc.FindMySlots(context.Background(), ownerID)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestRemove_ByOwner(t *testing.T) {
	repo := newMemoryRepo(ownedSlot(slotID, 2, "09:00", "17:00"))
	svc, publisher, metrics := newTestService(repo)

	resp, err := svc.Remove(context.Background(), ownerID, slotID)
	require.NoError(t, err)
	assert.Equal(t, models.DeleteSuccessMessage, resp.Message)
	assert.Empty(t, repo.slots)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, domain.EventSlotDeleted, publisher.events[0].Type)
	assert.Equal(t, slotID, publisher.events[0].SlotID)
	assert.Equal(t, []string{"delete:ok"}, metrics.results)
}

func TestRemove_TwiceIsNotFound(t *testing.T) {
	repo := newMemoryRepo(ownedSlot(slotID, 2, "09:00", "17:00"))
	svc, _, _ := newTestService(repo)

	_, err := svc.Remove(context.Background(), ownerID, slotID)
	require.NoError(t, err)

	_, err = svc.Remove(context.Background(), ownerID, slotID)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestRemove_ByStrangerIsOwnershipViolation(t *testing.T) {
	repo := newMemoryRepo(ownedSlot(slotID, 2, "09:00", "17:00"))
	svc, publisher, metrics := newTestService(repo)

	_, err := svc.Remove(context.Background(), strangerID, slotID)
	assert.ErrorIs(t, err, ErrOwnershipViolation)
	assert.NotErrorIs(t, err, ErrSlotNotFound)
	assert.Len(t, repo.slots, 1)
	assert.Empty(t, publisher.events)
	assert.Equal(t, []string{"delete:forbidden"}, metrics.results)
}

func TestRemove_InvalidID(t *testing.T) {
	svc, _, _ := newTestService(newMemoryRepo())

	_, err := svc.Remove(context.Background(), ownerID, "42")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRemove_RepositoryError(t *testing.T) {
	repo := newMemoryRepo()
	repo.getErr = errors.New("db down")
	svc, _, _ := newTestService(repo)

	_, err := svc.Remove(context.Background(), ownerID, slotID)
	assert.ErrorIs(t, err, ErrInternal)
}

func TestFindMySlots_RunsReadOnly(t *testing.T) {
	tx := &passthroughTx{}
	svc := NewService(newMemoryRepo(ownedSlot("a", 1, "09:00", "12:00")), tx, &fakePublisher{}, &fakeMetrics{}, logger.NewNop())

	_, err := svc.FindMySlots(context.Background(), ownerID)
	require.NoError(t, err)
	assert.Equal(t, []string{"read_only"}, tx.modes)
}
