package service

import (
	"context"
	"fmt"
	"strings"

	"packable/internal/db"
	apperrors "packable/internal/errors"
	"packable/internal/model"
	"packable/internal/repository"
)

// NewListItem carries the fields needed to add an item to a list.
type NewListItem struct {
	ListID   int
	Category string
	Item     string
	Qty      int
}

// ListItemUpdate holds the fields of a partial item update. Nil fields are left unchanged.
type ListItemUpdate struct {
	Category *string
	Item     *string
	Qty      *int
}

// ListItemService exposes packing list item operations.
type ListItemService interface {
	ListItems(ctx context.Context) ([]model.ListItem, error)
	ListItemsForList(ctx context.Context, listID int) ([]model.ListItem, error)
	GetItem(ctx context.Context, id int) (*model.ListItem, error)
	Owner(ctx context.Context, id int) (string, error)
	CreateItem(ctx context.Context, input NewListItem) (*model.ListItem, error)
	UpdateItem(ctx context.Context, id int, update ListItemUpdate) (*model.ListItem, error)
	DeleteItem(ctx context.Context, id int) error
}

type listItemService struct {
	repo     repository.ListItemRepository
	listRepo repository.ListRepository
}

// NewListItemService creates a new list item service.
func NewListItemService(repo repository.ListItemRepository, listRepo repository.ListRepository) ListItemService {
	return &listItemService{repo: repo, listRepo: listRepo}
}

func (s *listItemService) ListItems(ctx context.Context) ([]model.ListItem, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if items == nil {
		items = []model.ListItem{}
	}
	return items, nil
}

// ListItemsForList returns the items of an existing list.
func (s *listItemService) ListItemsForList(ctx context.Context, listID int) ([]model.ListItem, error) {
	if _, err := s.listRepo.FindByID(ctx, listID); err != nil {
		return nil, storeErr(err, noList(listID), "find list")
	}

	items, err := s.repo.ListByList(ctx, listID)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if items == nil {
		items = []model.ListItem{}
	}
	return items, nil
}

func (s *listItemService) GetItem(ctx context.Context, id int) (*model.ListItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, noItem(id), "find item")
	}
	return item, nil
}

// Owner returns the username owning the list that holds item id.
func (s *listItemService) Owner(ctx context.Context, id int) (string, error) {
	owner, err := s.repo.Owner(ctx, id)
	if err != nil {
		return "", storeErr(err, noItem(id), "find item owner")
	}
	return owner, nil
}

func (s *listItemService) CreateItem(ctx context.Context, input NewListItem) (*model.ListItem, error) {
	switch {
	case strings.TrimSpace(input.Category) == "":
		return nil, apperrors.Validation("category is required")
	case strings.TrimSpace(input.Item) == "":
		return nil, apperrors.Validation("item is required")
	case input.Qty < 1:
		return nil, apperrors.Validation("qty must be at least 1")
	}

	item := &model.ListItem{
		ListID:   input.ListID,
		Category: input.Category,
		Item:     input.Item,
		Qty:      input.Qty,
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, storeErr(err, noList(input.ListID), "create item")
	}
	return item, nil
}

func (s *listItemService) UpdateItem(ctx context.Context, id int, update ListItemUpdate) (*model.ListItem, error) {
	var fields []db.Field
	if update.Category != nil {
		fields = append(fields, db.Field{Name: "category", Value: *update.Category})
	}
	if update.Item != nil {
		fields = append(fields, db.Field{Name: "item", Value: *update.Item})
	}
	if update.Qty != nil {
		if *update.Qty < 1 {
			return nil, apperrors.Validation("qty must be at least 1")
		}
		fields = append(fields, db.Field{Name: "qty", Value: *update.Qty})
	}

	set, err := db.PartialUpdate(fields, repository.ListItemColumns)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.Update(ctx, id, set)
	if err != nil {
		return nil, storeErr(err, noItem(id), "update item")
	}
	return item, nil
}

func (s *listItemService) DeleteItem(ctx context.Context, id int) error {
	return storeErr(s.repo.Delete(ctx, id), noItem(id), "delete item")
}
