package services

import (
	"errors"
	"testing"
	"time"

	"github.com/reserfast/reserfast-api/internal/models"
	"github.com/reserfast/reserfast-api/internal/repository"
	"github.com/reserfast/reserfast-api/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerService_Register(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})

	customer, err := env.customers.Register(RegisterCustomerInput{
		FirstName:       "Ana",
		LastName:        "Rojas",
		RUT:             "12.345.678-5",
		Email:           "  Ana@Example.com ",
		Password:        "secreto",
		PasswordConfirm: "secreto",
	})
	require.NoError(t, err)
	assert.Equal(t, "12345678-5", customer.RUT)
	assert.Equal(t, "ana@example.com", customer.Email)
	assert.True(t, customer.Active)
	assert.NotEqual(t, "secreto", customer.PasswordHash)
	assert.True(t, utils.CheckPassword("secreto", customer.PasswordHash))
}

func TestCustomerService_RegisterRejections(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})
	env.createCustomer(t, "ana@example.com", "12.345.678-5")

	base := RegisterCustomerInput{
		FirstName:       "Luis",
		LastName:        "Bravo",
		RUT:             "11.111.111-1",
		Email:           "luis@example.com",
		Password:        "secreto",
		PasswordConfirm: "secreto",
	}

	tests := []struct {
		name    string
		mutate  func(in *RegisterCustomerInput)
		wantErr error
	}{
		{"duplicate email", func(in *RegisterCustomerInput) { in.Email = "ANA@example.com" }, ErrEmailTaken},
		{"duplicate RUT", func(in *RegisterCustomerInput) { in.RUT = "12345678-5" }, ErrRUTTaken},
		{"invalid RUT", func(in *RegisterCustomerInput) { in.RUT = "12.345.678-9" }, ErrInvalidRUT},
		{"invalid email", func(in *RegisterCustomerInput) { in.Email = "not-an-email" }, ErrInvalidEmail},
		{"short password", func(in *RegisterCustomerInput) { in.Password, in.PasswordConfirm = "abc", "abc" }, ErrPasswordTooShort},
		{"password mismatch", func(in *RegisterCustomerInput) { in.PasswordConfirm = "distinto" }, ErrPasswordMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := base
			tt.mutate(&input)
			_, err := env.customers.Register(input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := env.customers.Register(RegisterCustomerInput{Email: "x@example.com"})
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Contains(t, validation.Fields, "first_name")
	assert.Contains(t, validation.Fields, "rut")
}

func TestCustomerService_Profile(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})
	customer := env.createCustomer(t, "ana@example.com", "12.345.678-5")
	table := env.createTable(t, "Mesa 1")
	item := env.createMenuItem(t, "Cazuela", 5000)

	birth := time.Date(2000, time.March, 11, 0, 0, 0, 0, time.UTC)
	_, err := env.customers.UpdateProfile(customer.ID, UpdateCustomerInput{
		FirstName: "Ana",
		LastName:  "Rojas",
		Email:     "ana@example.com",
		Phone:     "+56 9 1234 5678",
		BirthDate: &birth,
	})
	require.NoError(t, err)

	reservation := &models.Reservation{CustomerID: customer.ID, StartDate: today(), Total: 5000}
	require.NoError(t, env.resRepo.Create(reservation, table.ID, []uint64{item.ID}, repository.WriteOptions{}))
	require.NoError(t, env.resRepo.SetActive(reservation.ID, false))

	profile, err := env.customers.GetProfile(customer.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.Age)
	assert.Equal(t, 25, *profile.Age)
	assert.Equal(t, int64(1), profile.ReservationCount, "cancelled reservations are counted")
	assert.Equal(t, "+56 9 1234 5678", profile.Customer.Phone)
}

func TestCustomerService_ChangePassword(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})
	customer := env.createCustomer(t, "ana@example.com", "12.345.678-5")

	input := UpdateCustomerInput{
		FirstName:          "Ana",
		LastName:           "Rojas",
		Email:              "ana@example.com",
		CurrentPassword:    "incorrecta",
		NewPassword:        "nuevaclave",
		NewPasswordConfirm: "nuevaclave",
	}
	_, err := env.customers.UpdateProfile(customer.ID, input)
	assert.ErrorIs(t, err, ErrCurrentPasswordWrong)

	input.CurrentPassword = "secreto"
	_, err = env.customers.UpdateProfile(customer.ID, input)
	require.NoError(t, err)

	_, err = env.auth.LoginCustomer("ana@example.com", "secreto")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = env.auth.LoginCustomer("ana@example.com", "nuevaclave")
	assert.NoError(t, err)
}

func TestCustomerService_EmailChangeConflict(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})
	env.createCustomer(t, "ana@example.com", "12.345.678-5")
	other := env.createCustomer(t, "luis@example.com", "11.111.111-1")

	_, err := env.customers.UpdateProfile(other.ID, UpdateCustomerInput{
		FirstName: "Luis",
		LastName:  "Bravo",
		Email:     "ana@example.com",
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestCustomerService_DeactivateAndReset(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})
	customer := env.createCustomer(t, "ana@example.com", "12.345.678-5")

	require.NoError(t, env.customers.SetPassword(customer.ID, "reiniciada", "reiniciada"))
	_, err := env.auth.LoginCustomer("ana@example.com", "reiniciada")
	require.NoError(t, err)

	require.NoError(t, env.customers.Deactivate(customer.ID))

	_, err = env.customers.GetProfile(customer.ID)
	assert.ErrorIs(t, err, ErrCustomerNotFound)

	customers, total, err := env.customers.List(utils.PaginationParams{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, customers, 1)
	assert.False(t, customers[0].Active)

	assert.ErrorIs(t, env.customers.Deactivate(999), ErrCustomerNotFound)
}

// failingCustomerRepo delegates reads and fails every write.
type failingCustomerRepo struct {
	repository.CustomerRepository
}

func (failingCustomerRepo) Create(*models.Customer) error { return errors.New("write failed") }
func (failingCustomerRepo) Update(*models.Customer) error { return errors.New("write failed") }

// lateRUTRepo misses the RUT collision on the first check, as a concurrent
// registration would.
type lateRUTRepo struct {
	repository.CustomerRepository
	checks int
}

func (r *lateRUTRepo) RUTTaken(rut string, excludeID uint64) (bool, error) {
	r.checks++
	if r.checks == 1 {
		return false, nil
	}
	return r.CustomerRepository.RUTTaken(rut, excludeID)
}

func TestCustomerService_FailedWriteKeepsPhotos(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})
	customer := env.createCustomer(t, "ana@example.com", "12.345.678-5")

	updated, err := env.customers.UpdateProfile(customer.ID, UpdateCustomerInput{
		FirstName: "Ana", LastName: "Rojas", Email: "ana@example.com",
		Photo: pngUpload("ana.png"),
	})
	require.NoError(t, err)
	photo := updated.PhotoURL
	require.NotEmpty(t, photo)

	broken := NewCustomerService(failingCustomerRepo{CustomerRepository: env.customerRepo}, env.images)

	_, err = broken.UpdateProfile(customer.ID, UpdateCustomerInput{
		FirstName: "Ana", LastName: "Rojas", Email: "ana@example.com",
		Photo: pngUpload("nueva.png"),
	})
	require.Error(t, err)

	stored, err := env.customerRepo.FindByID(customer.ID)
	require.NoError(t, err)
	assert.Equal(t, photo, stored.PhotoURL)
	assert.FileExists(t, fileForURL(env, photo))
	assert.Len(t, storedFiles(t, env, "profiles"), 1)

	_, err = broken.Register(RegisterCustomerInput{
		FirstName: "Luis", LastName: "Bravo", RUT: "11.111.111-1", Email: "luis@example.com",
		Password: "secreto", PasswordConfirm: "secreto",
		Photo: pngUpload("luis.png"),
	})
	require.Error(t, err)
	assert.Len(t, storedFiles(t, env, "profiles"), 1)

	replaced, err := env.customers.UpdateProfile(customer.ID, UpdateCustomerInput{
		FirstName: "Ana", LastName: "Rojas", Email: "ana@example.com",
		Photo: pngUpload("otra.png"),
	})
	require.NoError(t, err)
	assert.NoFileExists(t, fileForURL(env, photo))
	assert.FileExists(t, fileForURL(env, replaced.PhotoURL))
}

func TestCustomerService_RegisterRaceNamesRUT(t *testing.T) {
	env := setupServiceTestEnv(t, ReservationOptions{})
	env.createCustomer(t, "ana@example.com", "12.345.678-5")

	racing := NewCustomerService(&lateRUTRepo{CustomerRepository: env.customerRepo}, env.images)

	_, err := racing.Register(RegisterCustomerInput{
		FirstName:       "Luis",
		LastName:        "Bravo",
		RUT:             "12.345.678-5",
		Email:           "luis@example.com",
		Password:        "secreto",
		PasswordConfirm: "secreto",
	})
	assert.ErrorIs(t, err, ErrRUTTaken)
}
