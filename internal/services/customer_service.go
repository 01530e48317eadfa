package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/reserfast/reserfast-api/internal/constants"
	"github.com/reserfast/reserfast-api/internal/models"
	"github.com/reserfast/reserfast-api/internal/repository"
	"github.com/reserfast/reserfast-api/internal/storage"
	"github.com/reserfast/reserfast-api/internal/utils"
)

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrEmailTaken       = errors.New("email already registered")
	ErrRUTTaken         = errors.New("RUT already registered")
	ErrInvalidRUT       = errors.New("invalid RUT")
	ErrInvalidEmail     = errors.New("invalid email address")
)

// CustomerService handles customer accounts and profiles.
type CustomerService struct {
	customerRepo repository.CustomerRepository
	images       storage.ImageStore
	now          func() time.Time
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo repository.CustomerRepository, images storage.ImageStore) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		images:       images,
		now:          time.Now,
	}
}

// RegisterCustomerInput represents a self-registration request.
type RegisterCustomerInput struct {
	FirstName       string
	MiddleName      string
	LastName        string
	SecondLastName  string
	RUT             string
	Email           string
	Password        string
	PasswordConfirm string
	GenderID        *uint64
	Phone           string
	BirthDate       *time.Time
	Photo           *storage.Upload
}

// UpdateCustomerInput represents a profile edit. Password fields are only
// considered when NewPassword is set.
type UpdateCustomerInput struct {
	FirstName          string
	MiddleName         string
	LastName           string
	SecondLastName     string
	Email              string
	GenderID           *uint64
	Phone              string
	BirthDate          *time.Time
	Photo              *storage.Upload
	CurrentPassword    string
	NewPassword        string
	NewPasswordConfirm string
}

// CustomerProfile is a customer with derived profile data.
type CustomerProfile struct {
	Customer         *models.Customer
	Age              *int
	ReservationCount int64
}

// Register creates an active customer account.
func (s *CustomerService) Register(input RegisterCustomerInput) (*models.Customer, error) {
	fields := fieldErrors{}
	fields.require("first_name", input.FirstName)
	fields.require("last_name", input.LastName)
	fields.require("rut", input.RUT)
	fields.require("email", input.Email)
	if err := fields.err(); err != nil {
		return nil, err
	}

	rut, err := utils.NormalizeRUT(input.RUT)
	if err != nil {
		return nil, ErrInvalidRUT
	}
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if err := checkNewPassword(input.Password, input.PasswordConfirm, constants.MinPasswordLength); err != nil {
		return nil, err
	}

	if taken, err := s.customerRepo.RUTTaken(rut, 0); err != nil {
		return nil, fmt.Errorf("failed to check RUT: %w", err)
	} else if taken {
		return nil, ErrRUTTaken
	}
	if taken, err := s.customerRepo.EmailTaken(email, 0); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		return nil, ErrEmailTaken
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	customer := &models.Customer{
		FirstName:      strings.TrimSpace(input.FirstName),
		MiddleName:     strings.TrimSpace(input.MiddleName),
		LastName:       strings.TrimSpace(input.LastName),
		SecondLastName: strings.TrimSpace(input.SecondLastName),
		RUT:            rut,
		Email:          email,
		PasswordHash:   hash,
		GenderID:       input.GenderID,
		Phone:          strings.TrimSpace(input.Phone),
		BirthDate:      dateOrNil(input.BirthDate),
		Activatable:    models.Activatable{Active: true},
	}

	if input.Photo != nil {
		url, err := s.images.SaveImage("profiles", *input.Photo)
		if err != nil {
			return nil, err
		}
		customer.PhotoURL = url
	}

	if err := s.customerRepo.Create(customer); err != nil {
		discardImage(s.images, customer.PhotoURL)
		if isDuplicate(err) {
			return nil, s.duplicateField(rut, email)
		}
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	return customer, nil
}

// GetProfile returns an active customer's profile.
func (s *CustomerService) GetProfile(customerID uint64) (*CustomerProfile, error) {
	customer, err := s.customerRepo.FindActive(customerID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	count, err := s.customerRepo.CountReservations(customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count reservations: %w", err)
	}

	profile := &CustomerProfile{Customer: customer, ReservationCount: count}
	if customer.BirthDate != nil {
		age := utils.AgeOn(*customer.BirthDate, s.now())
		profile.Age = &age
	}
	return profile, nil
}

// UpdateProfile edits the customer's own profile and optionally the password.
func (s *CustomerService) UpdateProfile(customerID uint64, input UpdateCustomerInput) (*models.Customer, error) {
	customer, err := s.customerRepo.FindActive(customerID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}

	fields := fieldErrors{}
	fields.require("first_name", input.FirstName)
	fields.require("last_name", input.LastName)
	fields.require("email", input.Email)
	if err := fields.err(); err != nil {
		return nil, err
	}

	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if email != customer.Email {
		if taken, err := s.customerRepo.EmailTaken(email, customer.ID); err != nil {
			return nil, fmt.Errorf("failed to check email: %w", err)
		} else if taken {
			return nil, ErrEmailTaken
		}
	}

	if input.NewPassword != "" {
		if !utils.CheckPassword(input.CurrentPassword, customer.PasswordHash) {
			return nil, ErrCurrentPasswordWrong
		}
		if err := checkNewPassword(input.NewPassword, input.NewPasswordConfirm, constants.MinPasswordLength); err != nil {
			return nil, err
		}
		hash, err := utils.HashPassword(input.NewPassword)
		if err != nil {
			return nil, ErrFailedToHashPassword
		}
		customer.PasswordHash = hash
	}

	customer.FirstName = strings.TrimSpace(input.FirstName)
	customer.MiddleName = strings.TrimSpace(input.MiddleName)
	customer.LastName = strings.TrimSpace(input.LastName)
	customer.SecondLastName = strings.TrimSpace(input.SecondLastName)
	customer.Email = email
	customer.GenderID = input.GenderID
	customer.Phone = strings.TrimSpace(input.Phone)
	customer.BirthDate = dateOrNil(input.BirthDate)

	previousPhoto := customer.PhotoURL
	if input.Photo != nil {
		url, err := s.images.SaveImage("profiles", *input.Photo)
		if err != nil {
			return nil, err
		}
		customer.PhotoURL = url
	}

	if err := s.customerRepo.Update(customer); err != nil {
		if customer.PhotoURL != previousPhoto {
			discardImage(s.images, customer.PhotoURL)
		}
		if isDuplicate(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	if customer.PhotoURL != previousPhoto {
		discardImage(s.images, previousPhoto)
	}
	return customer, nil
}

// duplicateField names the unique column a failed insert collided on.
func (s *CustomerService) duplicateField(rut, email string) error {
	taken, err := s.customerRepo.RUTTaken(rut, 0)
	if err != nil {
		utils.Logger.WithError(err).Warn("failed to recheck RUT after duplicate key")
		return ErrEmailTaken
	}
	if taken {
		return ErrRUTTaken
	}
	return ErrEmailTaken
}

// Deactivate soft-deletes a customer account.
func (s *CustomerService) Deactivate(customerID uint64) error {
	if err := s.customerRepo.SetActive(customerID, false); err != nil {
		if isNotFound(err) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to deactivate customer: %w", err)
	}
	return nil
}

// SetPassword replaces a customer's password without the current one.
func (s *CustomerService) SetPassword(customerID uint64, password, confirm string) error {
	customer, err := s.customerRepo.FindByID(customerID)
	if err != nil {
		if isNotFound(err) {
			return ErrCustomerNotFound
		}
		return fmt.Errorf("failed to find customer: %w", err)
	}

	if err := checkNewPassword(password, confirm, constants.MinPasswordLength); err != nil {
		return err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return ErrFailedToHashPassword
	}
	customer.PasswordHash = hash

	if err := s.customerRepo.Update(customer); err != nil {
		return fmt.Errorf("failed to update customer: %w", err)
	}
	return nil
}

// List returns customers in any state, paginated.
func (s *CustomerService) List(params utils.PaginationParams) ([]models.Customer, int64, error) {
	customers, total, err := s.customerRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	return customers, total, nil
}

var validate = validator.New()

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if err := validate.Var(email, "required,email"); err != nil {
		return "", ErrInvalidEmail
	}
	return email, nil
}

func dateOrNil(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := utils.DateOf(*t)
	return &d
}
