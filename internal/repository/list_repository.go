package repository

import (
	"context"

	"gorm.io/gorm"

	"packable/internal/db"
	"packable/internal/model"
)

// ListColumns maps updatable list fields to their columns.
var ListColumns = map[string]string{
	"searched_address": "searched_address",
	"arrival_date":     "arrival_date",
	"departure_date":   "departure_date",
}

// ListRepository defines packing list persistence operations.
type ListRepository interface {
	Create(ctx context.Context, list *model.List) error
	FindByID(ctx context.Context, id int) (*model.List, error)
	List(ctx context.Context) ([]model.List, error)
	ListByUsername(ctx context.Context, username string) ([]model.List, error)
	Update(ctx context.Context, id int, set db.SetClause) (*model.List, error)
	Delete(ctx context.Context, id int) error
}

type listRepository struct {
	db *gorm.DB
}

// NewListRepository creates a new list repository.
func NewListRepository(db *gorm.DB) ListRepository {
	return &listRepository{db: db}
}

// Create inserts list and fills in its generated ID.
func (r *listRepository) Create(ctx context.Context, list *model.List) error {
	return r.db.WithContext(ctx).Create(list).Error
}

// FindByID finds a list by ID.
func (r *listRepository) FindByID(ctx context.Context, id int) (*model.List, error) {
	var list model.List
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&list).Error; err != nil {
		return nil, err
	}
	return &list, nil
}

// List returns every list.
func (r *listRepository) List(ctx context.Context) ([]model.List, error) {
	var lists []model.List
	if err := r.db.WithContext(ctx).Order("id").Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// ListByUsername returns the lists owned by username.
func (r *listRepository) ListByUsername(ctx context.Context, username string) ([]model.List, error) {
	var lists []model.List
	if err := r.db.WithContext(ctx).Where("username = ?", username).Order("id").Find(&lists).Error; err != nil {
		return nil, err
	}
	return lists, nil
}

// Update applies set to the list and returns the updated row.
func (r *listRepository) Update(ctx context.Context, id int, set db.SetClause) (*model.List, error) {
	var list model.List
	err := updateReturning(ctx, r.db, "lists", "id", id, set,
		`"id", "username", "searched_address", "arrival_date", "departure_date"`,
		&list.ID, &list.Username, &list.SearchedAddress, &list.ArrivalDate, &list.DepartureDate)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// Delete removes the list and, through the foreign key, its items.
func (r *listRepository) Delete(ctx context.Context, id int) error {
	return deleted(r.db.WithContext(ctx).Delete(&model.List{}, id))
}
