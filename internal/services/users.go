package services

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"soko_market/internal/apperr"
	"soko_market/internal/models"
)

// UserService manages accounts. Passwords are bcrypt-hashed before storage
// and the hash never leaves the service boundary in responses.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type UserInput struct {
	ID       uint   `json:"id"`
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

// UserPatch is a partial update; a new password is re-hashed.
type UserPatch struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, err, "could not hash password")
	}
	return string(hash), nil
}

// Create registers a user. Duplicate name or email is a Conflict. An
// explicit id is honored.
func (s *UserService) Create(in UserInput) (*models.User, error) {
	if !models.ValidRole(in.Role) {
		return nil, apperr.New(apperr.InvalidInput, "unknown role %q", in.Role)
	}

	var existing models.User
	err := s.db.Where("email = ?", in.Email).First(&existing).Error
	if err == nil {
		return nil, apperr.New(apperr.Conflict, "email is duplicated")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.Internal, err, "could not check email")
	}

	hashed, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     in.Name,
		Email:    in.Email,
		Password: hashed,
		Role:     models.Role(in.Role),
	}
	user.ID = in.ID

	if err := s.db.Create(&user).Error; err != nil {
		return nil, classifyWriteErr(err, "user")
	}
	return &user, nil
}

func (s *UserService) FindAll() ([]models.User, error) {
	var users []models.User
	if err := s.db.Find(&users).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "could not fetch users")
	}
	return users, nil
}

// FindRoleUsers lists every user holding one role.
func (s *UserService) FindRoleUsers(role models.Role) ([]models.User, error) {
	var users []models.User
	if err := s.db.Where("role = ?", role).Find(&users).Error; err != nil {
		return nil, apperr.Wrap(apperr.Internal, err, "could not fetch %s users", role)
	}
	return users, nil
}

func (s *UserService) FindOne(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "user %d not found", id)
		}
		return nil, apperr.Wrap(apperr.Internal, err, "could not fetch user %d", id)
	}
	return &user, nil
}

// FindByEmail returns the user including the password hash; used by login
// only, never serialized out.
func (s *UserService) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.NotFound, "email not found")
		}
		return nil, apperr.Wrap(apperr.Internal, err, "could not fetch user")
	}
	return &user, nil
}

// Update applies a partial patch; matching zero records reports NotFound.
func (s *UserService) Update(id uint, patch UserPatch) error {
	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.Password != nil {
		hashed, err := hashPassword(*patch.Password)
		if err != nil {
			return err
		}
		fields["password"] = hashed
	}
	if patch.Role != nil {
		if !models.ValidRole(*patch.Role) {
			return apperr.New(apperr.InvalidInput, "unknown role %q", *patch.Role)
		}
		fields["role"] = models.Role(*patch.Role)
	}
	if len(fields) == 0 {
		return apperr.New(apperr.InvalidInput, "no fields to update")
	}

	res := s.db.Model(&models.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return classifyWriteErr(res.Error, "user")
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "user %d not found", id)
	}
	return nil
}

// Delete removes the user. Orders referencing the user are kept as
// historical records; there is no cascade from users.
func (s *UserService) Delete(id uint) error {
	res := s.db.Unscoped().Delete(&models.User{}, id)
	if res.Error != nil {
		return apperr.Wrap(apperr.Internal, res.Error, "could not delete user %d", id)
	}
	if res.RowsAffected == 0 {
		return apperr.New(apperr.NotFound, "user %d not found", id)
	}
	return nil
}

// VerifyCredentials checks an email/password pair for login.
func (s *UserService) VerifyCredentials(email, password string) (*models.User, error) {
	user, err := s.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperr.New(apperr.Unauthenticated, "wrong credentials")
	}
	return user, nil
}
