package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"packable/internal/db"
	apperrors "packable/internal/errors"
	"packable/internal/model"
)

func TestListItemService_CreateItem(t *testing.T) {
	tests := []struct {
		name         string
		input        NewListItem
		setupMock    func(*MockListItemRepository)
		expectedKind apperrors.Kind
		expectErr    bool
	}{
		{
			name:  "success",
			input: NewListItem{ListID: 1, Category: "Clothing", Item: "socks", Qty: 3},
			setupMock: func(m *MockListItemRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(i *model.ListItem) bool {
					return i.ListID == 1 && i.Item == "socks" && i.Qty == 3
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*model.ListItem).ID = 10
				}).Return(nil)
			},
		},
		{
			name:  "missing list",
			input: NewListItem{ListID: 9, Category: "Clothing", Item: "socks", Qty: 1},
			setupMock: func(m *MockListItemRepository) {
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.ListItem")).Return(gorm.ErrRecordNotFound)
			},
			expectErr:    true,
			expectedKind: apperrors.KindNotFound,
		},
		{
			name:         "zero quantity",
			input:        NewListItem{ListID: 1, Category: "Clothing", Item: "socks", Qty: 0},
			setupMock:    func(m *MockListItemRepository) {},
			expectErr:    true,
			expectedKind: apperrors.KindValidation,
		},
		{
			name:         "blank item",
			input:        NewListItem{ListID: 1, Category: "Clothing", Item: "  ", Qty: 1},
			setupMock:    func(m *MockListItemRepository) {},
			expectErr:    true,
			expectedKind: apperrors.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			itemRepo := new(MockListItemRepository)
			tt.setupMock(itemRepo)

			service := NewListItemService(itemRepo, new(MockListRepository))
			item, err := service.CreateItem(context.Background(), tt.input)

			if tt.expectErr {
				assert.Error(t, err)
				assert.Equal(t, tt.expectedKind, apperrors.KindOf(err))
				assert.Nil(t, item)
			} else {
				require.NoError(t, err)
				assert.Equal(t, 10, item.ID)
			}
			itemRepo.AssertExpectations(t)
		})
	}
}

func TestListItemService_CreateItem_MissingListMessage(t *testing.T) {
	itemRepo := new(MockListItemRepository)
	itemRepo.On("Create", mock.Anything, mock.Anything).Return(gorm.ErrRecordNotFound)

	service := NewListItemService(itemRepo, new(MockListRepository))
	_, err := service.CreateItem(context.Background(), NewListItem{ListID: 9, Category: "c", Item: "i", Qty: 1})

	assert.EqualError(t, err, "No list: 9")
}

func TestListItemService_ListItemsForList(t *testing.T) {
	itemRepo := new(MockListItemRepository)
	listRepo := new(MockListRepository)
	listRepo.On("FindByID", mock.Anything, 1).Return(&model.List{ID: 1}, nil)
	listRepo.On("FindByID", mock.Anything, 2).Return(nil, gorm.ErrRecordNotFound)
	itemRepo.On("ListByList", mock.Anything, 1).Return([]model.ListItem{{ID: 5, ListID: 1, Item: "socks", Qty: 2}}, nil)

	service := NewListItemService(itemRepo, listRepo)

	items, err := service.ListItemsForList(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = service.ListItemsForList(context.Background(), 2)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
	itemRepo.AssertNotCalled(t, "ListByList", mock.Anything, 2)
}

func TestListItemService_Owner(t *testing.T) {
	itemRepo := new(MockListItemRepository)
	itemRepo.On("Owner", mock.Anything, 5).Return("u1", nil)
	itemRepo.On("Owner", mock.Anything, 6).Return("", gorm.ErrRecordNotFound)

	service := NewListItemService(itemRepo, new(MockListRepository))

	owner, err := service.Owner(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "u1", owner)

	_, err = service.Owner(context.Background(), 6)
	assert.EqualError(t, err, "No item: 6")
}

func TestListItemService_UpdateItem(t *testing.T) {
	itemRepo := new(MockListItemRepository)
	itemRepo.On("Update", mock.Anything, 5, db.SetClause{
		Cols:   `"item" = $1, "qty" = $2`,
		Values: []interface{}{"wool socks", 4},
	}).Return(&model.ListItem{ID: 5, Item: "wool socks", Qty: 4}, nil)
	itemRepo.On("Update", mock.Anything, 99, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	service := NewListItemService(itemRepo, new(MockListRepository))
	ctx := context.Background()

	item, err := service.UpdateItem(ctx, 5, ListItemUpdate{Item: strPtr("wool socks"), Qty: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, item.Qty)

	_, err = service.UpdateItem(ctx, 99, ListItemUpdate{Category: strPtr("Misc")})
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	_, err = service.UpdateItem(ctx, 5, ListItemUpdate{Qty: intPtr(0)})
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	_, err = service.UpdateItem(ctx, 5, ListItemUpdate{})
	assert.ErrorIs(t, err, apperrors.ErrNoUpdateFields)

	itemRepo.AssertExpectations(t)
}

func TestListItemService_DeleteItem(t *testing.T) {
	itemRepo := new(MockListItemRepository)
	itemRepo.On("Delete", mock.Anything, 5).Return(nil)
	itemRepo.On("Delete", mock.Anything, 6).Return(gorm.ErrRecordNotFound)

	service := NewListItemService(itemRepo, new(MockListRepository))

	assert.NoError(t, service.DeleteItem(context.Background(), 5))
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(service.DeleteItem(context.Background(), 6)))
}
