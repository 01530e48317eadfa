package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/reserfast/reserfast-api/internal/models"
	"github.com/reserfast/reserfast-api/internal/repository"
	"github.com/reserfast/reserfast-api/internal/utils"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrDateInPast          = errors.New("reservation date cannot be in the past")
	ErrNoMenuItems         = errors.New("at least one menu item is required")
	ErrMenuItemUnavailable = errors.New("one or more menu items are not available")
	ErrTableUnavailable    = errors.New("table is already reserved on that date")
)

// Reservation state labels shown to customers.
const (
	StateActive    = "Activa"
	StatePast      = "Pasada"
	StateCancelled = "Cancelada"
)

// ReservationOptions configures date handling and conflict policy.
type ReservationOptions struct {
	// AllowOverbooking skips the availability check on create and edit.
	AllowOverbooking bool
	// Location defines the calendar "today" is computed in.
	Location *time.Location
	// Now overrides the clock; time.Now when nil.
	Now func() time.Time
}

// ReservationService handles the reservation workflow.
type ReservationService struct {
	reservationRepo repository.ReservationRepository
	tableRepo       repository.TableRepository
	menuRepo        repository.MenuRepository
	opts            ReservationOptions
}

// NewReservationService creates a new ReservationService.
func NewReservationService(
	reservationRepo repository.ReservationRepository,
	tableRepo repository.TableRepository,
	menuRepo repository.MenuRepository,
	opts ReservationOptions,
) *ReservationService {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ReservationService{
		reservationRepo: reservationRepo,
		tableRepo:       tableRepo,
		menuRepo:        menuRepo,
		opts:            opts,
	}
}

// CreateReservationInput represents a customer booking.
type CreateReservationInput struct {
	CustomerID  uint64
	Date        time.Time
	TableID     uint64
	MenuItemIDs []uint64
}

// EditReservationInput represents a customer changing a booking.
type EditReservationInput struct {
	ReservationID uint64
	CustomerID    uint64
	Date          time.Time
	TableID       uint64
	MenuItemIDs   []uint64
}

// ReservationSummary is a reservation resolved through its active links.
type ReservationSummary struct {
	Reservation models.Reservation
	Customer    *models.Customer
	Table       *models.DiningTable
	MenuItems   []models.MenuItem
	State       string
}

// Availability is the answer to an availability check.
type Availability struct {
	Available bool
	Message   string
	Table     *models.DiningTable
}

// Today returns the current calendar date in the configured location.
func (s *ReservationService) Today() time.Time {
	return utils.Today(s.opts.Now(), s.opts.Location)
}

// CheckAvailability reports whether an active table is free on a date,
// optionally ignoring one reservation.
func (s *ReservationService) CheckAvailability(tableID uint64, date time.Time, excludeReservationID *uint64) (*Availability, error) {
	table, err := s.tableRepo.FindActive(tableID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrTableNotFound
		}
		return nil, fmt.Errorf("failed to find table: %w", err)
	}

	available, err := s.reservationRepo.IsTableAvailable(tableID, utils.DateOf(date), excludeReservationID)
	if err != nil {
		return nil, fmt.Errorf("failed to check availability: %w", err)
	}

	result := &Availability{Available: available, Table: table}
	if available {
		result.Message = fmt.Sprintf("Table %s is available on %s", table.Name, utils.FormatDate(date))
	} else {
		result.Message = fmt.Sprintf("Table %s is already reserved on %s", table.Name, utils.FormatDate(date))
	}
	return result, nil
}

// CreateReservation books a table with the selected menu items.
func (s *ReservationService) CreateReservation(input CreateReservationInput) (*ReservationSummary, error) {
	date := utils.DateOf(input.Date)
	itemIDs, total, err := s.prepare(date, input.TableID, input.MenuItemIDs)
	if err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		CustomerID: input.CustomerID,
		StartDate:  date,
		Total:      total,
	}

	if err := s.reservationRepo.Create(reservation, input.TableID, itemIDs, s.writeOptions()); err != nil {
		if errors.Is(err, repository.ErrTableUnavailable) {
			return nil, ErrTableUnavailable
		}
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}

	return s.load(reservation.ID)
}

// EditReservation changes the date, table and items of an active
// reservation owned by the customer. Links of unchanged items are kept.
func (s *ReservationService) EditReservation(input EditReservationInput) (*ReservationSummary, error) {
	reservation, err := s.reservationRepo.FindActiveOwned(input.ReservationID, input.CustomerID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}

	date := utils.DateOf(input.Date)
	itemIDs, total, err := s.prepare(date, input.TableID, input.MenuItemIDs)
	if err != nil {
		return nil, err
	}

	reservation.StartDate = date
	reservation.Total = total

	if err := s.reservationRepo.Update(reservation, input.TableID, itemIDs, s.writeOptions()); err != nil {
		if errors.Is(err, repository.ErrTableUnavailable) {
			return nil, ErrTableUnavailable
		}
		return nil, fmt.Errorf("failed to update reservation: %w", err)
	}

	return s.load(reservation.ID)
}

// CancelReservation deactivates an active reservation owned by the
// customer. Its links are left as they are.
func (s *ReservationService) CancelReservation(reservationID, customerID uint64) error {
	reservation, err := s.reservationRepo.FindActiveOwned(reservationID, customerID)
	if err != nil {
		if isNotFound(err) {
			return ErrReservationNotFound
		}
		return fmt.Errorf("failed to find reservation: %w", err)
	}

	if err := s.reservationRepo.SetActive(reservation.ID, false); err != nil {
		return fmt.Errorf("failed to cancel reservation: %w", err)
	}
	return nil
}

// GetOwnedReservation returns a reservation of the customer in any state.
func (s *ReservationService) GetOwnedReservation(reservationID, customerID uint64) (*ReservationSummary, error) {
	summary, err := s.load(reservationID)
	if err != nil {
		return nil, err
	}
	if summary.Reservation.CustomerID != customerID {
		return nil, ErrReservationNotFound
	}
	return summary, nil
}

// GetReservation returns any reservation, for staff.
func (s *ReservationService) GetReservation(reservationID uint64) (*ReservationSummary, error) {
	return s.load(reservationID)
}

// ListReservations splits a customer's reservations into upcoming and past.
// Upcoming ones are active and dated today or later; everything else is past.
func (s *ReservationService) ListReservations(customerID uint64) (future, past []ReservationSummary, err error) {
	reservations, err := s.reservationRepo.ListByCustomer(customerID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	today := s.Today()
	future = []ReservationSummary{}
	past = []ReservationSummary{}
	for _, r := range reservations {
		summary := s.summarize(r, today)
		if r.Active && !utils.DateOf(r.StartDate).Before(today) {
			future = append(future, summary)
		} else {
			past = append(past, summary)
		}
	}
	return future, past, nil
}

// TodaysReservations lists the active reservations for today.
func (s *ReservationService) TodaysReservations() ([]ReservationSummary, error) {
	today := s.Today()
	reservations, err := s.reservationRepo.ListActiveOn(today)
	if err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return s.summarizeAll(reservations, today), nil
}

// ListAll returns every reservation, paginated.
func (s *ReservationService) ListAll(params utils.PaginationParams) ([]ReservationSummary, int64, error) {
	reservations, total, err := s.reservationRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list reservations: %w", err)
	}
	return s.summarizeAll(reservations, s.Today()), total, nil
}

// prepare validates a booking request and returns the deduplicated item
// ids with their current total price.
func (s *ReservationService) prepare(date time.Time, tableID uint64, menuItemIDs []uint64) ([]uint64, int64, error) {
	if date.Before(s.Today()) {
		return nil, 0, ErrDateInPast
	}

	itemIDs := uniqueUint64(menuItemIDs)
	if len(itemIDs) == 0 {
		return nil, 0, ErrNoMenuItems
	}

	if _, err := s.tableRepo.FindActive(tableID); err != nil {
		if isNotFound(err) {
			return nil, 0, ErrTableNotFound
		}
		return nil, 0, fmt.Errorf("failed to find table: %w", err)
	}

	items, err := s.menuRepo.FindActiveByIDs(itemIDs)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find menu items: %w", err)
	}
	if len(items) != len(itemIDs) {
		return nil, 0, ErrMenuItemUnavailable
	}

	var total int64
	for _, item := range items {
		total += item.Price
	}
	return itemIDs, total, nil
}

func (s *ReservationService) writeOptions() repository.WriteOptions {
	return repository.WriteOptions{RejectConflicts: !s.opts.AllowOverbooking}
}

func (s *ReservationService) load(id uint64) (*ReservationSummary, error) {
	reservation, err := s.reservationRepo.FindByID(id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}
	summary := s.summarize(*reservation, s.Today())
	return &summary, nil
}

func (s *ReservationService) summarizeAll(reservations []models.Reservation, today time.Time) []ReservationSummary {
	summaries := make([]ReservationSummary, 0, len(reservations))
	for _, r := range reservations {
		summaries = append(summaries, s.summarize(r, today))
	}
	return summaries
}

func (s *ReservationService) summarize(r models.Reservation, today time.Time) ReservationSummary {
	summary := ReservationSummary{
		Reservation: r,
		Customer:    r.Customer,
		MenuItems:   []models.MenuItem{},
		State:       reservationState(r, today),
	}
	for _, link := range r.TableLinks {
		if link.Active && link.Table != nil {
			summary.Table = link.Table
			break
		}
	}
	for _, link := range r.MenuLinks {
		if link.Active && link.MenuItem != nil {
			summary.MenuItems = append(summary.MenuItems, *link.MenuItem)
		}
	}
	return summary
}

func reservationState(r models.Reservation, today time.Time) string {
	switch {
	case !r.Active:
		return StateCancelled
	case utils.DateOf(r.StartDate).Before(today):
		return StatePast
	default:
		return StateActive
	}
}
