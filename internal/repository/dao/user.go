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
	ErrUsernameExists = errors.New("username already taken")
	ErrUserNotFound   = errors.New("user not found")
	ErrTeamNameExists = errors.New("team name already taken")
	ErrTeamNotFound   = errors.New("team not found")
)

type User struct {
	ID uint `gorm:"primaryKey"`

	Username string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Role       string `gorm:"not null;default:member"` // "member", "admin", or "guest"
	Generation string
	TeamID     *uint `gorm:"index"`

	TransportCount int `gorm:"not null;default:0"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Team struct {
	ID uint `gorm:"primaryKey"`

	Name  string `gorm:"unique;not null"`
	Users []User `gorm:"foreignKey:TeamID"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
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
		if isUniqueViolation(result.Error, "uni_users_username") {
			return User{}, ErrUsernameExists
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByUsername(ctx context.Context, username string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).First(&user, "username = ?", username)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByRole(ctx context.Context, role string) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Where("role = ?", role).Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (d *UserDAO) FindAll(ctx context.Context) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Order("id").Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// FindByTeamAndGenerations returns the users a new practice targets.
func (d *UserDAO) FindByTeamAndGenerations(ctx context.Context, teamID uint, generations []string) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).
		Where("team_id = ?", teamID).
		Where("generation IN ?", generations).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (d *UserDAO) DistinctGenerations(ctx context.Context) ([]string, error) {
	var generations []string

	result := d.db.WithContext(ctx).
		Model(&User{}).
		Distinct("generation").
		Where("generation <> ''").
		Order("generation").
		Pluck("generation", &generations)
	if result.Error != nil {
		return nil, result.Error
	}

	return generations, nil
}

func (d *UserDAO) Count(ctx context.Context) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&User{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *UserDAO) Update(ctx context.Context, user User) (User, error) {
	result := d.db.WithContext(ctx).
		Model(&User{ID: user.ID}).
		Select("Username", "Generation", "TeamID", "Password", "Role").
		Updates(user)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_users_username") {
			return User{}, ErrUsernameExists
		}

		return User{}, result.Error
	}
	if result.RowsAffected == 0 {
		return User{}, ErrUserNotFound
	}

	return d.FindByID(ctx, user.ID)
}

func (d *UserDAO) UpdateRole(ctx context.Context, id uint, role string) error {
	result := d.db.WithContext(ctx).Model(&User{ID: id}).Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Delete removes a user together with every record that references them:
// announcements, attendances, transports and session memberships.
func (d *UserDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&Announcement{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&Attendance{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&Transport{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM session_members WHERE user_id = ?", id).Error; err != nil {
			return err
		}

		result := tx.Delete(&User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
}

type TeamDAO struct {
	db *gorm.DB
}

func NewTeamDAO(db *gorm.DB) *TeamDAO {
	return &TeamDAO{
		db: db,
	}
}

func (d *TeamDAO) Insert(ctx context.Context, team Team) (Team, error) {
	result := d.db.WithContext(ctx).Create(&team)
	if result.Error != nil {
		if isUniqueViolation(result.Error, "uni_teams_name") {
			return Team{}, ErrTeamNameExists
		}

		return Team{}, result.Error
	}

	return team, nil
}

func (d *TeamDAO) FindByID(ctx context.Context, id uint) (Team, error) {
	var team Team

	result := d.db.WithContext(ctx).First(&team, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Team{}, ErrTeamNotFound
		}

		return Team{}, result.Error
	}

	return team, nil
}

func (d *TeamDAO) FindAll(ctx context.Context) ([]Team, error) {
	var teams []Team

	result := d.db.WithContext(ctx).Order("name").Find(&teams)
	if result.Error != nil {
		return nil, result.Error
	}

	return teams, nil
}

func (d *TeamDAO) CountMembers(ctx context.Context, id uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&User{}).Where("team_id = ?", id).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *TeamDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Team{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTeamNotFound
	}

	return nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		strings.Contains(pgErr.Message, constraint) {
		return true
	}

	// SQLite reports constraint violations as plain errors.
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
