package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Alp4ka/relaypager"
	"github.com/Alp4ka/relaypager/store/gormstore"
)

const tableName = "users"

// Repository persists users with gorm.
type Repository struct {
	db    *gorm.DB
	store *gormstore.Store[User]
	now   func() time.Time
	newID func() string
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:    db,
		store: gormstore.New[User](db).WithTable(tableName),
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

// Store returns the record store used for paginated listing.
func (r *Repository) Store() relaypager.Store[User] {
	return r.store
}

func (r *Repository) query(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table(tableName)
}

// Migrate creates or updates the users table.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}

	return nil
}

// List returns all users, newest first.
func (r *Repository) List(ctx context.Context) ([]User, error) {
	var users []User

	err := relaypager.BuildWindow(relaypager.DirectionDESC, relaypager.DefaultColumns, nil, nil).
		Apply(r.query(ctx)).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	return users, nil
}

// Get returns the user with the given ID.
func (r *Repository) Get(ctx context.Context, id string) (*User, error) {
	var u User

	err := r.query(ctx).Where("id = ?", id).Take(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &u, nil
}

// Create stores a new user.
func (r *Repository) Create(ctx context.Context, in CreateInput) (*User, error) {
	now := r.now()
	u := User{
		ID:        r.newID(),
		Name:      in.Name,
		Email:     in.Email,
		Age:       in.Age,
		Bio:       in.Bio,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.query(ctx).Create(&u).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &u, nil
}

// Update applies the specified fields of in to the user and returns the
// updated user.
func (r *Repository) Update(ctx context.Context, id string, in UpdateInput) (*User, error) {
	if in.IsEmpty() {
		return r.Get(ctx, id)
	}

	columns := in.columns()
	columns["updated_at"] = r.now()

	res := r.query(ctx).Where("id = ?", id).Updates(columns)
	if res.Error != nil {
		return nil, fmt.Errorf("update user: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.Get(ctx, id)
}

// Delete removes the user.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res := r.query(ctx).Where("id = ?", id).Delete(&User{})
	if res.Error != nil {
		return fmt.Errorf("delete user: %w", res.Error)
	}

	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
