package repositories

import (
	"strings"

	"github.com/nikitavr/sociable/internal/models"
	"github.com/nikitavr/sociable/pkg/errors"
	"gorm.io/gorm"
)

// escapeLike neutralizes LIKE wildcards so a search matches them literally
var escapeLike = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser creates a new user. Username uniqueness is enforced by the
// storage constraint; the translated duplicate-key error is the correctness
// mechanism, not a pre-check.
func (r *UserRepository) CreateUser(user *models.User) error {
	result := r.db.Create(user)
	if result.Error == gorm.ErrDuplicatedKey {
		return errors.New(errors.ErrCodeAlreadyExists, "username already taken")
	}
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to create user")
	}
	return nil
}

// GetUserByID retrieves a user by ID
func (r *UserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	result := r.db.First(&user, id)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get user")
	}

	return &user, nil
}

// GetUserByUsername retrieves a user by username
func (r *UserRepository) GetUserByUsername(username string) (*models.User, error) {
	var user models.User
	result := r.db.Where("username = ?", username).First(&user)

	if result.Error == gorm.ErrRecordNotFound {
		return nil, errors.New(errors.ErrCodeNotFound, "user not found")
	}
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to get user")
	}

	return &user, nil
}

// UsernameTaken checks if a username is already registered
func (r *UserRepository) UsernameTaken(username string) (bool, error) {
	var count int64
	result := r.db.Model(&models.User{}).Where("username = ?", username).Count(&count)
	if result.Error != nil {
		return false, errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to check username")
	}
	return count > 0, nil
}

// UpdateAbout updates the user's profile text
func (r *UserRepository) UpdateAbout(userID uint, about string) error {
	if len(about) > models.AboutMaxLength {
		return errors.New(errors.ErrCodeValidation, "about text too long")
	}

	result := r.db.Model(&models.User{}).Where("id = ?", userID).Update("about", about)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update about")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "user not found")
	}
	return nil
}

// UpdateImage stores the user's avatar file reference
func (r *UserRepository) UpdateImage(userID uint, image string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Update("image", image)
	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodeInternalError, "failed to update image")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "user not found")
	}
	return nil
}

// SearchUsers lists users other than the caller, optionally filtered by a
// username substring, paginated
func (r *UserRepository) SearchUsers(callerID uint, query string, page, perPage int) ([]models.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}

	qs := r.db.Model(&models.User{}).Where("id != ?", callerID)
	if query != "" {
		qs = qs.Where("username LIKE ? ESCAPE '\\'", "%"+escapeLike(query)+"%")
	}

	var total int64
	if err := qs.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to count users")
	}

	var users []models.User
	err := qs.Order("username asc").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&users).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, errors.ErrCodeInternalError, "failed to search users")
	}

	return users, total, nil
}
