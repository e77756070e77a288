package router

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"packable/internal/db"
	"packable/internal/model"
	"packable/internal/weather"
)

// memStore is an in-memory stand-in for postgres honoring the same key and cascade rules.
type memStore struct {
	mu       sync.Mutex
	users    map[string]model.User
	lists    map[int]model.List
	items    map[int]model.ListItem
	nextList int
	nextItem int
}

func newMemStore() *memStore {
	return &memStore{
		users: map[string]model.User{},
		lists: map[int]model.List{},
		items: map[int]model.ListItem{},
	}
}

// assignments decodes a SetClause back into column -> value.
func assignments(set db.SetClause) map[string]interface{} {
	out := map[string]interface{}{}
	for i, part := range strings.Split(set.Cols, ", ") {
		col := strings.Trim(strings.SplitN(part, " = ", 2)[0], `"`)
		out[col] = set.Values[i]
	}
	return out
}

type memUsers struct{ *memStore }

func (s memUsers) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.Username]; ok {
		return &pgconn.PgError{Code: "23505"}
	}
	s.users[user.Username] = *user
	return nil
}

func (s memUsers) FindByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

func (s memUsers) List(_ context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var users []model.User
	for _, u := range s.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Username < users[j].Username })
	return users, nil
}

func (s memUsers) Update(_ context.Context, username string, set db.SetClause) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for col, v := range assignments(set) {
		switch col {
		case "password_hash":
			user.PasswordHash = v.(string)
		case "first_name":
			user.FirstName = v.(string)
		case "last_name":
			user.LastName = v.(string)
		case "email":
			user.Email = v.(string)
		case "is_admin":
			user.IsAdmin = v.(bool)
		}
	}
	s.users[username] = user
	out := user
	out.PasswordHash = ""
	return &out, nil
}

func (s memUsers) Delete(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.users, username)
	for id, l := range s.lists {
		if l.Username == username {
			s.deleteListLocked(id)
		}
	}
	return nil
}

func (s *memStore) deleteListLocked(id int) {
	delete(s.lists, id)
	for itemID, item := range s.items {
		if item.ListID == id {
			delete(s.items, itemID)
		}
	}
}

type memLists struct{ *memStore }

func (s memLists) Create(_ context.Context, list *model.List) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[list.Username]; !ok {
		return &pgconn.PgError{Code: "23503"}
	}
	s.nextList++
	list.ID = s.nextList
	s.lists[list.ID] = *list
	return nil
}

func (s memLists) FindByID(_ context.Context, id int) (*model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := s.lists[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &list, nil
}

func (s memLists) filter(keep func(model.List) bool) []model.List {
	s.mu.Lock()
	defer s.mu.Unlock()
	var lists []model.List
	for _, l := range s.lists {
		if keep(l) {
			lists = append(lists, l)
		}
	}
	sort.Slice(lists, func(i, j int) bool { return lists[i].ID < lists[j].ID })
	return lists
}

func (s memLists) List(_ context.Context) ([]model.List, error) {
	return s.filter(func(model.List) bool { return true }), nil
}

func (s memLists) ListByUsername(_ context.Context, username string) ([]model.List, error) {
	return s.filter(func(l model.List) bool { return l.Username == username }), nil
}

func (s memLists) Update(_ context.Context, id int, set db.SetClause) (*model.List, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list, ok := s.lists[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for col, v := range assignments(set) {
		switch col {
		case "searched_address":
			list.SearchedAddress = v.(string)
		case "arrival_date":
			list.ArrivalDate = v.(model.Date)
		case "departure_date":
			list.DepartureDate = v.(model.Date)
		}
	}
	s.lists[id] = list
	return &list, nil
}

func (s memLists) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.deleteListLocked(id)
	return nil
}

type memItems struct{ *memStore }

func (s memItems) Create(_ context.Context, item *model.ListItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.lists[item.ListID]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.nextItem++
	item.ID = s.nextItem
	s.items[item.ID] = *item
	return nil
}

func (s memItems) FindByID(_ context.Context, id int) (*model.ListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &item, nil
}

func (s memItems) filter(keep func(model.ListItem) bool) []model.ListItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var items []model.ListItem
	for _, i := range s.items {
		if keep(i) {
			items = append(items, i)
		}
	}
	sort.Slice(items, func(a, b int) bool { return items[a].ID < items[b].ID })
	return items
}

func (s memItems) List(_ context.Context) ([]model.ListItem, error) {
	return s.filter(func(model.ListItem) bool { return true }), nil
}

func (s memItems) ListByList(_ context.Context, listID int) ([]model.ListItem, error) {
	return s.filter(func(i model.ListItem) bool { return i.ListID == listID }), nil
}

func (s memItems) Owner(_ context.Context, id int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	return s.lists[item.ListID].Username, nil
}

func (s memItems) Update(_ context.Context, id int, set db.SetClause) (*model.ListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	for col, v := range assignments(set) {
		switch col {
		case "category":
			item.Category = v.(string)
		case "item":
			item.Item = v.(string)
		case "qty":
			item.Qty = v.(int)
		}
	}
	s.items[id] = item
	return &item, nil
}

func (s memItems) Delete(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.items, id)
	return nil
}

// stubForecaster records the last query and answers with a fixed forecast.
type stubForecaster struct {
	mu       sync.Mutex
	location string
	start    string
	end      string
	err      error
}

func (f *stubForecaster) Forecast(_ context.Context, location, start, end string) (*weather.Forecast, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.location, f.start, f.end = location, start, end
	if f.err != nil {
		return nil, f.err
	}
	return &weather.Forecast{
		ResolvedAddress: "New York, NY, United States",
		Address:         location,
		Days:            []weather.Day{{Datetime: start, Conditions: "Clear"}},
	}, nil
}
