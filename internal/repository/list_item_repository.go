package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"packable/internal/db"
	"packable/internal/model"
)

// ListItemColumns maps updatable item fields to their columns.
var ListItemColumns = map[string]string{
	"category": "category",
	"item":     "item",
	"qty":      "qty",
}

// ListItemRepository defines packing list item persistence operations.
type ListItemRepository interface {
	Create(ctx context.Context, item *model.ListItem) error
	FindByID(ctx context.Context, id int) (*model.ListItem, error)
	List(ctx context.Context) ([]model.ListItem, error)
	ListByList(ctx context.Context, listID int) ([]model.ListItem, error)
	Owner(ctx context.Context, id int) (string, error)
	Update(ctx context.Context, id int, set db.SetClause) (*model.ListItem, error)
	Delete(ctx context.Context, id int) error
}

type listItemRepository struct {
	db *gorm.DB
}

// NewListItemRepository creates a new list item repository.
func NewListItemRepository(db *gorm.DB) ListItemRepository {
	return &listItemRepository{db: db}
}

// Create inserts item inside a transaction holding a share lock on the parent list, so the
// list cannot be deleted between the existence check and the insert. A missing list yields
// gorm.ErrRecordNotFound.
func (r *listItemRepository) Create(ctx context.Context, item *model.ListItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var ids []int
		err := tx.Model(&model.List{}).
			Clauses(clause.Locking{Strength: "SHARE"}).
			Where("id = ?", item.ListID).
			Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(item).Error
	})
}

// FindByID finds an item by ID.
func (r *listItemRepository) FindByID(ctx context.Context, id int) (*model.ListItem, error) {
	var item model.ListItem
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// List returns every item.
func (r *listItemRepository) List(ctx context.Context) ([]model.ListItem, error) {
	var items []model.ListItem
	if err := r.db.WithContext(ctx).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListByList returns the items on one list.
func (r *listItemRepository) ListByList(ctx context.Context, listID int) ([]model.ListItem, error) {
	var items []model.ListItem
	if err := r.db.WithContext(ctx).Where("list_id = ?", listID).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Owner returns the username owning the item's parent list.
func (r *listItemRepository) Owner(ctx context.Context, id int) (string, error) {
	var row struct {
		Username string
	}
	err := r.db.WithContext(ctx).
		Table("list_items").
		Select("lists.username").
		Joins("JOIN lists ON lists.id = list_items.list_id").
		Where("list_items.id = ?", id).
		Take(&row).Error
	if err != nil {
		return "", err
	}
	return row.Username, nil
}

// Update applies set to the item and returns the updated row.
func (r *listItemRepository) Update(ctx context.Context, id int, set db.SetClause) (*model.ListItem, error) {
	var item model.ListItem
	err := updateReturning(ctx, r.db, "list_items", "id", id, set,
		`"id", "list_id", "category", "item", "qty"`,
		&item.ID, &item.ListID, &item.Category, &item.Item, &item.Qty)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete removes an item.
func (r *listItemRepository) Delete(ctx context.Context, id int) error {
	return deleted(r.db.WithContext(ctx).Delete(&model.ListItem{}, id))
}
