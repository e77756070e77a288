package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "packable/internal/errors"
	"packable/internal/model"
	"packable/internal/service"
)

type fakeUsers struct {
	service.UserService
	existing map[string]bool
	created  []service.NewUser
}

func (f *fakeUsers) CreateUser(_ context.Context, input service.NewUser) (*model.User, error) {
	if f.existing[input.Username] {
		return nil, apperrors.Conflict("Duplicate username: %s", input.Username)
	}
	f.created = append(f.created, input)
	return &model.User{Username: input.Username, IsAdmin: input.IsAdmin}, nil
}

type fakeLists struct {
	service.ListService
	created []service.NewList
}

func (f *fakeLists) CreateList(_ context.Context, input service.NewList) (*model.List, error) {
	f.created = append(f.created, input)
	return &model.List{ID: len(f.created), Username: input.Username}, nil
}

type fakeItems struct {
	service.ListItemService
	created []service.NewListItem
}

func (f *fakeItems) CreateItem(_ context.Context, input service.NewListItem) (*model.ListItem, error) {
	f.created = append(f.created, input)
	return &model.ListItem{ID: len(f.created), ListID: input.ListID}, nil
}

func TestFixtureIsConsistent(t *testing.T) {
	data, err := loadFixture(fixture)
	require.NoError(t, err)

	owners := make(map[string]bool)
	admins := 0
	for _, u := range data.Users {
		owners[u.Username] = true
		if u.IsAdmin {
			admins++
		}
		assert.GreaterOrEqual(t, len(u.Password), 5, u.Username)
	}
	assert.Equal(t, 1, admins)

	for _, l := range data.Lists {
		assert.True(t, owners[l.Username], l.SearchedAddress)
		assert.False(t, l.DepartureDate.Before(l.ArrivalDate.Time), l.SearchedAddress)
		for _, it := range l.Items {
			assert.Positive(t, it.Qty, it.Item)
		}
	}
}

func TestSeed(t *testing.T) {
	data, err := loadFixture(fixture)
	require.NoError(t, err)

	users := &fakeUsers{}
	lists := &fakeLists{}
	items := &fakeItems{}

	res, err := seed(context.Background(), data, users, lists, items)
	require.NoError(t, err)
	assert.Equal(t, seedResult{users: 3, lists: 3, items: 5}, res)
	assert.Equal(t, "new york ny", lists.created[0].SearchedAddress)
	assert.Equal(t, 1, items.created[0].ListID)
	assert.Equal(t, 2, items.created[4].ListID)
}

func TestSeed_SkipsExistingUsers(t *testing.T) {
	data, err := loadFixture(fixture)
	require.NoError(t, err)

	users := &fakeUsers{existing: map[string]bool{"u1": true}}
	lists := &fakeLists{}
	items := &fakeItems{}

	res, err := seed(context.Background(), data, users, lists, items)
	require.NoError(t, err)
	assert.Equal(t, seedResult{users: 2, skipped: 1, lists: 2, items: 1}, res)
	for _, l := range lists.created {
		assert.NotEqual(t, "u1", l.Username)
	}
}

func TestLoadFixture_Invalid(t *testing.T) {
	_, err := loadFixture([]byte(`{"lists":[{"arrival_date":"05/01/2023"}]}`))
	assert.Error(t, err)
}
