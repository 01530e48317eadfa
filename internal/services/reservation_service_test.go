package services

import (
	"testing"
	"time"

	"github.com/reserfast/reserfast-api/internal/models"
	"github.com/reserfast/reserfast-api/internal/repository"
	"github.com/reserfast/reserfast-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func menuItemIDs(items []models.MenuItem) []uint64 {
	ids := make([]uint64, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func TestReservationService_EditRecomputesTotal(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})
	customer := env.createCustomer(t, "ana@example.com", "12.345.678-5")
	table := env.createTable(t, "Mesa 1")
	a := env.createMenuItem(t, "Cazuela", 5000)
	b := env.createMenuItem(t, "Mote con huesillo", 3000)

	created, err := env.reservations.CreateReservation(CreateReservationInput{
		CustomerID:  customer.ID,
		Date:        today().AddDate(0, 0, 2),
		TableID:     table.ID,
		MenuItemIDs: []uint64{a.ID, b.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8000), created.Reservation.Total)
	assert.Equal(t, StateActive, created.State)
	require.NotNil(t, created.Table)
	assert.Equal(t, table.ID, created.Table.ID)
	assert.ElementsMatch(t, []uint64{a.ID, b.ID}, menuItemIDs(created.MenuItems))

	edited, err := env.reservations.EditReservation(EditReservationInput{
		ReservationID: created.Reservation.ID,
		CustomerID:    customer.ID,
		Date:          today().AddDate(0, 0, 2),
		TableID:       table.ID,
		MenuItemIDs:   []uint64{a.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5000), edited.Reservation.Total)
	assert.Equal(t, []uint64{a.ID}, menuItemIDs(edited.MenuItems))

	var removed models.ReservationMenuItem
	require.NoError(t, env.db.Where("reservation_id = ? AND menu_item_id = ?", created.Reservation.ID, b.ID).First(&removed).Error)
	assert.False(t, removed.Active)
}

func TestReservationService_TotalUsesCurrentPrices(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})
	customer := env.createCustomer(t, "ana@example.com", "12.345.678-5")
	table := env.createTable(t, "Mesa 1")
	item := env.createMenuItem(t, "Cazuela", 5000)

	created, err := env.reservations.CreateReservation(CreateReservationInput{
		CustomerID:  customer.ID,
		Date:        today(),
		TableID:     table.ID,
		MenuItemIDs: []uint64{item.ID, item.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5000), created.Reservation.Total, "duplicate ids are collapsed")

	_, err = env.catalog.UpdateMenuItem(item.ID, MenuItemInput{
		Title:       item.Title,
		Description: item.Description,
		Category:    item.Category,
		Price:       6000,
	})
	require.NoError(t, err)

	edited, err := env.reservations.EditReservation(EditReservationInput{
		ReservationID: created.Reservation.ID,
		CustomerID:    customer.ID,
		Date:          today(),
		TableID:       table.ID,
		MenuItemIDs:   []uint64{item.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6000), edited.Reservation.Total)
}

func TestReservationService_CancelReleasesTable(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})
	customer := env.createCustomer(t, "ana@example.com", "12.345.678-5")
	table := env.createTable(t, "Mesa 1")
	item := env.createMenuItem(t, "Cazuela", 5000)
	date := today().AddDate(0, 0, 3)

	created, err := env.reservations.CreateReservation(CreateReservationInput{
		CustomerID:  customer.ID,
		Date:        date,
		TableID:     table.ID,
		MenuItemIDs: []uint64{item.ID},
	})
	require.NoError(t, err)

	availability, err := env.reservations.CheckAvailability(table.ID, date, nil)
	require.NoError(t, err)
	assert.False(t, availability.Available)

	availability, err = env.reservations.CheckAvailability(table.ID, date, &created.Reservation.ID)
	require.NoError(t, err)
	assert.True(t, availability.Available)

	require.NoError(t, env.reservations.CancelReservation(created.Reservation.ID, customer.ID))

	availability, err = env.reservations.CheckAvailability(table.ID, date, nil)
	require.NoError(t, err)
	assert.True(t, availability.Available)

	future, past, err := env.reservations.ListReservations(customer.ID)
	require.NoError(t, err)
	assert.Empty(t, future)
	require.Len(t, past, 1)
	assert.Equal(t, StateCancelled, past[0].State)
	require.NotNil(t, past[0].Table, "links survive cancellation")
	assert.Len(t, past[0].MenuItems, 1)

	err = env.reservations.CancelReservation(created.Reservation.ID, customer.ID)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	_, err = env.reservations.EditReservation(EditReservationInput{
		ReservationID: created.Reservation.ID,
		CustomerID:    customer.ID,
		Date:          date,
		TableID:       table.ID,
		MenuItemIDs:   []uint64{item.ID},
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestReservationService_ListPartitionsByDate(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})
	customer := env.createCustomer(t, "ana@example.com", "12.345.678-5")
	table := env.createTable(t, "Mesa 1")
	item := env.createMenuItem(t, "Cazuela", 5000)

	current, err := env.reservations.CreateReservation(CreateReservationInput{
		CustomerID:  customer.ID,
		Date:        today(),
		TableID:     table.ID,
		MenuItemIDs: []uint64{item.ID},
	})
	require.NoError(t, err)

	yesterday := &models.Reservation{
		CustomerID: customer.ID,
		StartDate:  today().AddDate(0, 0, -1),
		Total:      5000,
	}
	require.NoError(t, env.resRepo.Create(yesterday, table.ID, []uint64{item.ID}, repository.WriteOptions{}))

	future, past, err := env.reservations.ListReservations(customer.ID)
	require.NoError(t, err)
	require.Len(t, future, 1)
	assert.Equal(t, current.Reservation.ID, future[0].Reservation.ID)
	assert.Equal(t, StateActive, future[0].State)
	require.Len(t, past, 1)
	assert.Equal(t, yesterday.ID, past[0].Reservation.ID)
	assert.Equal(t, StatePast, past[0].State)

	todays, err := env.reservations.TodaysReservations()
	require.NoError(t, err)
	require.Len(t, todays, 1)
	assert.Equal(t, current.Reservation.ID, todays[0].Reservation.ID)
	require.NotNil(t, todays[0].Customer)
	assert.Equal(t, customer.Email, todays[0].Customer.Email)
}

func TestReservationService_RejectsInvalidRequests(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})
	customer := env.createCustomer(t, "ana@example.com", "12.345.678-5")
	table := env.createTable(t, "Mesa 1")
	item := env.createMenuItem(t, "Cazuela", 5000)
	retired := env.createMenuItem(t, "Charquican", 4500)
	require.NoError(t, env.catalog.DeactivateMenuItem(retired.ID))
	closed := env.createTable(t, "Mesa cerrada")
	require.NoError(t, env.catalog.DeactivateTable(closed.ID))

	tests := []struct {
		name    string
		input   CreateReservationInput
		wantErr error
	}{
		{
			name:    "date in the past",
			input:   CreateReservationInput{CustomerID: customer.ID, Date: today().AddDate(0, 0, -1), TableID: table.ID, MenuItemIDs: []uint64{item.ID}},
			wantErr: ErrDateInPast,
		},
		{
			name:    "no menu items",
			input:   CreateReservationInput{CustomerID: customer.ID, Date: today(), TableID: table.ID},
			wantErr: ErrNoMenuItems,
		},
		{
			name:    "inactive table",
			input:   CreateReservationInput{CustomerID: customer.ID, Date: today(), TableID: closed.ID, MenuItemIDs: []uint64{item.ID}},
			wantErr: ErrTableNotFound,
		},
		{
			name:    "inactive menu item",
			input:   CreateReservationInput{CustomerID: customer.ID, Date: today(), TableID: table.ID, MenuItemIDs: []uint64{item.ID, retired.ID}},
			wantErr: ErrMenuItemUnavailable,
		},
		{
			name:    "unknown menu item",
			input:   CreateReservationInput{CustomerID: customer.ID, Date: today(), TableID: table.ID, MenuItemIDs: []uint64{999}},
			wantErr: ErrMenuItemUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.reservations.CreateReservation(tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	var count int64
	require.NoError(t, env.db.Model(&models.Reservation{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)

	_, err := env.reservations.CheckAvailability(closed.ID, today(), nil)
	assert.ErrorIs(t, err, ErrTableNotFound)
}

func TestReservationService_OverbookingPolicy(t *testing.T) {
	t.Run("rejected by default", func(t *testing.T) {
		env := setupServiceTestEnv(t, ReservationOptions{})
		first := env.createCustomer(t, "ana@example.com", "12.345.678-5")
		second := env.createCustomer(t, "luis@example.com", "11.111.111-1")
		table := env.createTable(t, "Mesa 1")
		item := env.createMenuItem(t, "Cazuela", 5000)

		_, err := env.reservations.CreateReservation(CreateReservationInput{
			CustomerID: first.ID, Date: today(), TableID: table.ID, MenuItemIDs: []uint64{item.ID},
		})
		require.NoError(t, err)

		_, err = env.reservations.CreateReservation(CreateReservationInput{
			CustomerID: second.ID, Date: today(), TableID: table.ID, MenuItemIDs: []uint64{item.ID},
		})
		assert.ErrorIs(t, err, ErrTableUnavailable)
	})

	t.Run("allowed when configured", func(t *testing.T) {
		env := setupServiceTestEnv(t, ReservationOptions{AllowOverbooking: true})
		first := env.createCustomer(t, "ana@example.com", "12.345.678-5")
		second := env.createCustomer(t, "luis@example.com", "11.111.111-1")
		table := env.createTable(t, "Mesa 1")
		item := env.createMenuItem(t, "Cazuela", 5000)

		_, err := env.reservations.CreateReservation(CreateReservationInput{
			CustomerID: first.ID, Date: today(), TableID: table.ID, MenuItemIDs: []uint64{item.ID},
		})
		require.NoError(t, err)

		_, err = env.reservations.CreateReservation(CreateReservationInput{
			CustomerID: second.ID, Date: today(), TableID: table.ID, MenuItemIDs: []uint64{item.ID},
		})
		assert.NoError(t, err)
	})

	t.Run("edit onto a taken table is rejected", func(t *testing.T) {
		env := setupServiceTestEnv(t, ReservationOptions{})
		first := env.createCustomer(t, "ana@example.com", "12.345.678-5")
		second := env.createCustomer(t, "luis@example.com", "11.111.111-1")
		taken := env.createTable(t, "Mesa 1")
		free := env.createTable(t, "Mesa 2")
		item := env.createMenuItem(t, "Cazuela", 5000)

		_, err := env.reservations.CreateReservation(CreateReservationInput{
			CustomerID: first.ID, Date: today(), TableID: taken.ID, MenuItemIDs: []uint64{item.ID},
		})
		require.NoError(t, err)

		mine, err := env.reservations.CreateReservation(CreateReservationInput{
			CustomerID: second.ID, Date: today(), TableID: free.ID, MenuItemIDs: []uint64{item.ID},
		})
		require.NoError(t, err)

		_, err = env.reservations.EditReservation(EditReservationInput{
			ReservationID: mine.Reservation.ID,
			CustomerID:    second.ID,
			Date:          today(),
			TableID:       taken.ID,
			MenuItemIDs:   []uint64{item.ID},
		})
		assert.ErrorIs(t, err, ErrTableUnavailable)

		reloaded, err := env.reservations.GetOwnedReservation(mine.Reservation.ID, second.ID)
		require.NoError(t, err)
		require.NotNil(t, reloaded.Table)
		assert.Equal(t, free.ID, reloaded.Table.ID, "failed edit leaves the table link untouched")
	})
}

func TestReservationService_OwnershipIsEnforced(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})
	owner := env.createCustomer(t, "ana@example.com", "12.345.678-5")
	other := env.createCustomer(t, "luis@example.com", "11.111.111-1")
	table := env.createTable(t, "Mesa 1")
	item := env.createMenuItem(t, "Cazuela", 5000)

	created, err := env.reservations.CreateReservation(CreateReservationInput{
		CustomerID: owner.ID, Date: today(), TableID: table.ID, MenuItemIDs: []uint64{item.ID},
	})
	require.NoError(t, err)

	_, err = env.reservations.GetOwnedReservation(created.Reservation.ID, other.ID)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	err = env.reservations.CancelReservation(created.Reservation.ID, other.ID)
	assert.ErrorIs(t, err, ErrReservationNotFound)

	_, err = env.reservations.EditReservation(EditReservationInput{
		ReservationID: created.Reservation.ID,
		CustomerID:    other.ID,
		Date:          today(),
		TableID:       table.ID,
		MenuItemIDs:   []uint64{item.ID},
	})
	assert.ErrorIs(t, err, ErrReservationNotFound)

	staffView, err := env.reservations.GetReservation(created.Reservation.ID)
	require.NoError(t, err)
	require.NotNil(t, staffView.Customer)
	assert.Equal(t, owner.ID, staffView.Customer.ID)
}

func TestReservationService_TodayFollowsLocation(t *testing.T) {
	santiago, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Skip("time zone database not available")
	}

	// 02:00 UTC is still the previous evening in Santiago.
	now := time.Date(2026, time.March, 10, 2, 0, 0, 0, time.UTC)
	env := setupServiceTestEnv(t, ReservationOptions{
		Location: santiago,
		Now:      func() time.Time { return now },
	})

	assert.Equal(t, "2026-03-09", utils.FormatDate(env.reservations.Today()))
}
