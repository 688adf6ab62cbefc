package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// ServiceInterface is the subset consumed by other feature packages.
type ServiceInterface interface {
	GetByID(id int) (User, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) List() []User {
	return s.repo.List()
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

// Register creates a new customer account. Emails are unique; the role is
// always customer regardless of anything the client sends.
func (s *Service) Register(u User) (User, error) {
	if _, err := s.repo.GetByEmail(u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	u.Password = string(hashed)
	u.Role = RoleCustomer
	u.CreatedAt = now
	u.UpdatedAt = now
	return s.repo.Create(u)
}

func (s *Service) Authenticate(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// UpdateProfile applies the provided name/email changes to an existing user.
func (s *Service) UpdateProfile(id int, name, email string) (User, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}
	if name != "" {
		existing.Name = name
	}
	if email != "" && email != existing.Email {
		if _, err := s.repo.GetByEmail(email); err == nil {
			return User{}, ErrEmailExists
		} else if err != ErrNotFound {
			return User{}, err
		}
		existing.Email = email
	}
	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(id, existing)
}

// SetRole changes a user's role (admin back office only).
func (s *Service) SetRole(id int, role string) (User, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return User{}, err
	}
	existing.Role = role
	existing.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	return s.repo.Update(id, existing)
}

func (s *Service) Delete(id int) error {
	return s.repo.Delete(id)
}
