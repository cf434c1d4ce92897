package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/symposiumhq/symposium-api/internal/models"
)

// UserRepository defines persistence operations for login accounts.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByID(ctx context.Context, id uint) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	GetByEmailAndRole(ctx context.Context, email, role string) (models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	LinkFacultyProfile(ctx context.Context, userID, facultyID uint) (bool, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository instantiates a GORM-backed user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.User{}).Preload("FacultyProfile")
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.baseQuery(ctx).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := r.baseQuery(ctx).First(&user, id).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := r.baseQuery(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) GetByEmailAndRole(ctx context.Context, email, role string) (models.User, error) {
	var user models.User
	if err := r.baseQuery(ctx).
		Where("email = ?", email).
		Where("role = ?", role).
		First(&user).Error; err != nil {
		return models.User{}, err
	}

	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// LinkFacultyProfile attaches a faculty profile to a user only while the user
// has none. The conditional UPDATE keeps concurrent logins from racing each
// other: exactly one wins, the rest observe rows_affected == 0.
func (r *userRepository) LinkFacultyProfile(ctx context.Context, userID, facultyID uint) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Where("faculty_profile_id IS NULL").
		Update("faculty_profile_id", facultyID)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}
