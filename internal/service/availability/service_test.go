package availability

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/companion-booking/internal/domain"
	"github.com/m04kA/companion-booking/internal/service/access"
	"github.com/m04kA/companion-booking/internal/service/availability/models"
	"github.com/m04kA/companion-booking/internal/testutil/inmem"
	"github.com/m04kA/companion-booking/pkg/ptr"
)

const companionID = int64(10)

func newTestService(t *testing.T) (*Service, *inmem.Store, *inmem.TxManager) {
	t.Helper()
	store := inmem.NewStore()
	store.SeedCompanion(companionID, 40, "Coffee Date", "City Tour", "Dinner Companion")
	tx := inmem.NewTxManager(store)
	resolver := access.NewResolver(store.Accounts(), store.Verifications(), store.Applications(), inmem.Logger{})
	return NewService(store.SlotRepo(), resolver, tx, inmem.Logger{}), store, tx
}

func slotReq(day, start, end string, services ...string) *models.SlotRequest {
	return &models.SlotRequest{DayOfWeek: day, StartTime: start, EndTime: end, Services: services}
}

func TestAddSlot_RoundTripServices(t *testing.T) {
	svc, _, tx := newTestService(t)
	ctx := context.Background()

	created, err := svc.AddSlot(ctx, companionID, slotReq("Monday", "09:00", "17:00", "Coffee Date", "City Tour"))
	require.NoError(t, err)
	assert.Equal(t, "monday", created.DayOfWeek)
	assert.True(t, created.IsAvailable)
	assert.Equal(t, []string{"slot:10:monday"}, tx.Locks)

	list, err := svc.ListMySlots(ctx, companionID)
	require.NoError(t, err)
	require.Len(t, list.Slots, 1)
	assert.ElementsMatch(t, []string{"City Tour", "Coffee Date"}, list.Slots[0].Services)
}

func TestAddSlot_OverlapReportsConflictingSlot(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddSlot(ctx, companionID, slotReq("monday", "09:00", "12:00", "Coffee Date"))
	require.NoError(t, err)

	_, err = svc.AddSlot(ctx, companionID, slotReq("monday", "11:00", "13:00", "Coffee Date"))
	require.ErrorIs(t, err, domain.ErrSlotOverlap)

	var overlap *domain.SlotOverlapError
	require.True(t, errors.As(err, &overlap))
	assert.Equal(t, "09:00", overlap.Conflicting.StartTime.String())
	assert.Equal(t, "12:00", overlap.Conflicting.EndTime.String())

	// касание концами допустимо, другой день тоже
	_, err = svc.AddSlot(ctx, companionID, slotReq("monday", "12:00", "13:00", "Coffee Date"))
	assert.NoError(t, err)
	_, err = svc.AddSlot(ctx, companionID, slotReq("tuesday", "11:00", "13:00", "Coffee Date"))
	assert.NoError(t, err)
}

func TestAddSlot_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.AddSlot(ctx, companionID, slotReq("monday", "17:00", "09:00", "Coffee Date"))
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = svc.AddSlot(ctx, companionID, slotReq("monday", "09:00", "09:00", "Coffee Date"))
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = svc.AddSlot(ctx, companionID, slotReq("monday", "24:00", "25:00", "Coffee Date"))
	assert.ErrorIs(t, err, domain.ErrInvalidRange)

	_, err = svc.AddSlot(ctx, companionID, slotReq("funday", "09:00", "10:00", "Coffee Date"))
	assert.ErrorIs(t, err, domain.ErrInvalidDayOfWeek)

	// услуга есть в каталоге, но не у компаньона
	_, err = svc.AddSlot(ctx, companionID, slotReq("monday", "09:00", "10:00", "Museum Visit"))
	assert.ErrorIs(t, err, domain.ErrInvalidService)
}

func TestAddSlot_RequiresApprovedCompanion(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.SeedVerifiedClient(1)

	_, err := svc.AddSlot(context.Background(), 1, slotReq("monday", "09:00", "10:00", "Coffee Date"))
	assert.ErrorIs(t, err, domain.ErrRoleNotActive)
}

func TestAddSlot_DayLimit(t *testing.T) {
	svc, store, _ := newTestService(t)
	for i := 0; i < domain.MaxSlotsPerDay; i++ {
		store.PutSlot(domain.AvailabilitySlot{
			CompanionID: companionID,
			DayOfWeek:   domain.Friday,
			StartTime:   "00:00",
			EndTime:     "00:00",
		})
	}

	_, err := svc.AddSlot(context.Background(), companionID, slotReq("friday", "09:00", "10:00", "Coffee Date"))
	assert.ErrorIs(t, err, ErrTooManySlots)
}

func TestUpdateSlot_ExcludesItself(t *testing.T) {
	svc, _, tx := newTestService(t)
	ctx := context.Background()

	first, err := svc.AddSlot(ctx, companionID, slotReq("monday", "09:00", "12:00", "Coffee Date"))
	require.NoError(t, err)
	_, err = svc.AddSlot(ctx, companionID, slotReq("monday", "13:00", "15:00", "Coffee Date"))
	require.NoError(t, err)

	// расширение внутри собственного интервала
	updated, err := svc.UpdateSlot(ctx, companionID, first.ID, slotReq("monday", "08:00", "13:00", "Coffee Date"))
	require.NoError(t, err)
	assert.Equal(t, "08:00", updated.StartTime)

	_, err = svc.UpdateSlot(ctx, companionID, first.ID, slotReq("monday", "08:00", "14:00", "Coffee Date"))
	var overlap *domain.SlotOverlapError
	require.True(t, errors.As(err, &overlap))
	assert.Equal(t, "13:00", overlap.Conflicting.StartTime.String())

	// перенос на другой день блокирует оба дня в отсортированном порядке
	tx.Locks = nil
	_, err = svc.UpdateSlot(ctx, companionID, first.ID, &models.SlotRequest{
		DayOfWeek: "sunday", StartTime: "10:00", EndTime: "11:00",
		IsAvailable: ptr.Ptr(false), Services: []string{"City Tour"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"slot:10:monday", "slot:10:sunday"}, tx.Locks)
}

func TestUpdateSlot_ForeignSlotIsNotFound(t *testing.T) {
	svc, store, _ := newTestService(t)
	store.SeedCompanion(11, 30, "Coffee Date")
	foreign := store.SeedSlot(11, domain.Monday, "09:00", "10:00", "Coffee Date")

	_, err := svc.UpdateSlot(context.Background(), companionID, foreign, slotReq("monday", "09:00", "11:00", "Coffee Date"))
	assert.ErrorIs(t, err, ErrSlotNotFound)

	err = svc.RemoveSlot(context.Background(), companionID, foreign)
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestRemoveSlot(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.AddSlot(ctx, companionID, slotReq("monday", "09:00", "12:00", "Coffee Date"))
	require.NoError(t, err)

	require.NoError(t, svc.RemoveSlot(ctx, companionID, created.ID))
	assert.Empty(t, store.Slots())
	assert.ErrorIs(t, svc.RemoveSlot(ctx, companionID, created.ID), ErrSlotNotFound)
}

// Ни одна последовательность add/update не оставляет пересекающихся слотов в одном дне
func TestSlotSequenceNeverOverlaps(t *testing.T) {
	svc, store, _ := newTestService(t)
	ctx := context.Background()

	requests := []*models.SlotRequest{
		slotReq("monday", "09:00", "11:00", "Coffee Date"),
		slotReq("monday", "10:00", "12:00", "Coffee Date"),
		slotReq("monday", "11:00", "12:00", "Coffee Date"),
		slotReq("monday", "08:00", "09:30", "Coffee Date"),
		slotReq("monday", "07:00", "09:00", "Coffee Date"),
		slotReq("monday", "06:00", "13:00", "Coffee Date"),
	}
	for _, r := range requests {
		_, _ = svc.AddSlot(ctx, companionID, r)
	}

	slots := store.Slots()
	for i := range slots {
		for j := i + 1; j < len(slots); j++ {
			a, b := slots[i], slots[j]
			if a.DayOfWeek != b.DayOfWeek {
				continue
			}
			assert.False(t, a.Overlaps(b.StartTime, b.EndTime), "%s-%s overlaps %s-%s", a.StartTime, a.EndTime, b.StartTime, b.EndTime)
		}
	}
	assert.Len(t, slots, 3)
}
