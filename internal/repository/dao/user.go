package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrUserExists   = errors.New("user already exists")
	ErrUserNotFound = errors.New("user not found")
	ErrUserDeleted  = errors.New("user is deleted")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Username string `gorm:"unique;not null"`
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	FirstName     string
	Bio           string
	ProfilePicKey string
	IsAdmin       bool `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
	DeletedAt gorm.DeletedAt
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).Create(&user)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			(strings.Contains(err.Message, "uni_users_username") ||
				strings.Contains(err.Message, "uni_users_email")) {
			return User{}, ErrUserExists
		}

		return User{}, result.Error
	}

	return user, nil
}

// FindByID looks a user up across soft-deleted rows so callers can tell a
// deleted account apart from a missing one.
func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Unscoped().First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	if user.DeletedAt.Valid {
		return User{}, ErrUserDeleted
	}

	return user, nil
}

func (d *UserDAO) FindByUsername(ctx context.Context, username string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Unscoped().First(&user, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	if user.DeletedAt.Valid {
		return User{}, ErrUserDeleted
	}

	return user, nil
}

func (d *UserDAO) FindActiveNonAdmins(ctx context.Context) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Where("is_admin = false").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// UpdateFields applies a partial update. Protected columns are stripped by
// the repository before the map reaches here.
func (d *UserDAO) UpdateFields(ctx context.Context, id uint, changes map[string]interface{}) (User, error) {
	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).Updates(changes)
	if result.Error != nil {
		return User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return User{}, ErrUserNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *UserDAO) UpdatePassword(ctx context.Context, id uint, hashedPassword string) error {
	result := d.db.WithContext(ctx).Model(&User{}).Where("id = ?", id).
		Update("password", hashedPassword)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (d *UserDAO) SoftDelete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// CountActive returns the number of non-deleted users.
func (d *UserDAO) CountActive(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&User{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// FindEventsCounts returns, per user id, how many non-deleted events the
// user created.
func (d *UserDAO) FindEventsCounts(ctx context.Context, ids []uint) (map[uint]int64, error) {
	type row struct {
		CreatorID uint
		Count     int64
	}

	var rows []row
	result := d.db.WithContext(ctx).Model(&Event{}).
		Select("creator_id, COUNT(*) AS count").
		Where("creator_id IN ?", ids).
		Group("creator_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	counts := make(map[uint]int64, len(rows))
	for _, r := range rows {
		counts[r.CreatorID] = r.Count
	}

	return counts, nil
}

// FindAverageRatings returns, per user id, the average rating received,
// rounded to two decimals.
func (d *UserDAO) FindAverageRatings(ctx context.Context, ids []uint) (map[uint]float64, error) {
	type row struct {
		RatedUserID uint
		Average     float64
	}

	var rows []row
	result := d.db.WithContext(ctx).Model(&UserRating{}).
		Select("rated_user_id, ROUND(AVG(rating)::numeric, 2) AS average").
		Where("rated_user_id IN ?", ids).
		Group("rated_user_id").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	averages := make(map[uint]float64, len(rows))
	for _, r := range rows {
		averages[r.RatedUserID] = r.Average
	}

	return averages, nil
}
