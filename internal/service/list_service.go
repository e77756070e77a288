package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"packable/internal/db"
	apperrors "packable/internal/errors"
	"packable/internal/model"
	"packable/internal/repository"
	"packable/internal/weather"
)

// NewList carries the fields needed to create a packing list.
type NewList struct {
	Username        string
	SearchedAddress string
	ArrivalDate     model.Date
	DepartureDate   model.Date
}

// ListUpdate holds the fields of a partial list update. Nil fields are left unchanged.
type ListUpdate struct {
	SearchedAddress *string
	ArrivalDate     *model.Date
	DepartureDate   *model.Date
}

// ListForecast is the weather for a list's trip window.
type ListForecast struct {
	ListID int `json:"list_id"`
	weather.Window
	*weather.Forecast
}

// ListService exposes packing list operations.
type ListService interface {
	ListLists(ctx context.Context) ([]model.List, error)
	GetList(ctx context.Context, id int) (*model.ListDetail, error)
	Owner(ctx context.Context, id int) (string, error)
	CreateList(ctx context.Context, input NewList) (*model.List, error)
	UpdateList(ctx context.Context, id int, update ListUpdate) (*model.List, error)
	DeleteList(ctx context.Context, id int) error
	Forecast(ctx context.Context, id int) (*ListForecast, error)
}

type listService struct {
	repo       repository.ListRepository
	itemRepo   repository.ListItemRepository
	forecaster weather.Forecaster
	now        func() time.Time
}

// NewListService creates a new list service.
func NewListService(repo repository.ListRepository, itemRepo repository.ListItemRepository, forecaster weather.Forecaster) ListService {
	return &listService{
		repo:       repo,
		itemRepo:   itemRepo,
		forecaster: forecaster,
		now:        time.Now,
	}
}

func (s *listService) ListLists(ctx context.Context) ([]model.List, error) {
	lists, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	if lists == nil {
		lists = []model.List{}
	}
	return lists, nil
}

func (s *listService) GetList(ctx context.Context, id int) (*model.ListDetail, error) {
	list, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, noList(id), "find list")
	}

	items, err := s.itemRepo.ListByList(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	if items == nil {
		items = []model.ListItem{}
	}
	return &model.ListDetail{List: *list, Items: items}, nil
}

// Owner returns the username owning list id.
func (s *listService) Owner(ctx context.Context, id int) (string, error) {
	list, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", storeErr(err, noList(id), "find list")
	}
	return list.Username, nil
}

func (s *listService) CreateList(ctx context.Context, input NewList) (*model.List, error) {
	switch {
	case strings.TrimSpace(input.SearchedAddress) == "":
		return nil, apperrors.Validation("searched_address is required")
	case input.ArrivalDate.IsZero():
		return nil, apperrors.Validation("arrival_date is required")
	case input.DepartureDate.IsZero():
		return nil, apperrors.Validation("departure_date is required")
	}
	if err := checkDateOrder(input.ArrivalDate, input.DepartureDate); err != nil {
		return nil, err
	}

	list := &model.List{
		Username:        input.Username,
		SearchedAddress: input.SearchedAddress,
		ArrivalDate:     input.ArrivalDate,
		DepartureDate:   input.DepartureDate,
	}
	if err := s.repo.Create(ctx, list); err != nil {
		return nil, storeErr(err, noUser(input.Username), "create list")
	}
	return list, nil
}

func (s *listService) UpdateList(ctx context.Context, id int, update ListUpdate) (*model.List, error) {
	var fields []db.Field
	if update.SearchedAddress != nil {
		fields = append(fields, db.Field{Name: "searched_address", Value: *update.SearchedAddress})
	}
	if update.ArrivalDate != nil {
		fields = append(fields, db.Field{Name: "arrival_date", Value: *update.ArrivalDate})
	}
	if update.DepartureDate != nil {
		fields = append(fields, db.Field{Name: "departure_date", Value: *update.DepartureDate})
	}
	if err := s.checkUpdatedDates(ctx, id, update); err != nil {
		return nil, err
	}

	set, err := db.PartialUpdate(fields, repository.ListColumns)
	if err != nil {
		return nil, err
	}

	list, err := s.repo.Update(ctx, id, set)
	if err != nil {
		return nil, storeErr(err, noList(id), "update list")
	}
	return list, nil
}

func (s *listService) DeleteList(ctx context.Context, id int) error {
	return storeErr(s.repo.Delete(ctx, id), noList(id), "delete list")
}

// Forecast fetches the weather for the list's destination over its trip window,
// shifted a year back when the trip is beyond the provider's horizon.
func (s *listService) Forecast(ctx context.Context, id int) (*ListForecast, error) {
	list, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, noList(id), "find list")
	}

	window := weather.AdjustWindow(s.now(), list.ArrivalDate.Time, list.DepartureDate.Time)
	forecast, err := s.forecaster.Forecast(ctx, list.SearchedAddress, window.Arrival, window.Departure)
	if err != nil {
		return nil, err
	}

	return &ListForecast{ListID: list.ID, Window: window, Forecast: forecast}, nil
}

// checkUpdatedDates checks the date pair the list will hold after update. A single
// date is checked against the other one already stored.
func (s *listService) checkUpdatedDates(ctx context.Context, id int, update ListUpdate) error {
	if update.ArrivalDate == nil && update.DepartureDate == nil {
		return nil
	}
	if update.ArrivalDate != nil && update.DepartureDate != nil {
		return checkDateOrder(*update.ArrivalDate, *update.DepartureDate)
	}

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return storeErr(err, noList(id), "find list")
	}
	arrival, departure := current.ArrivalDate, current.DepartureDate
	if update.ArrivalDate != nil {
		arrival = *update.ArrivalDate
	}
	if update.DepartureDate != nil {
		departure = *update.DepartureDate
	}
	return checkDateOrder(arrival, departure)
}

func checkDateOrder(arrival, departure model.Date) error {
	if arrival.After(departure.Time) {
		return apperrors.Validation("arrival_date must not be after departure_date")
	}
	return nil
}
