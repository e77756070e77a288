package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"packable/internal/auth"
	"packable/internal/config"
	"packable/internal/db"
	apperrors "packable/internal/errors"
	"packable/internal/logger"
	"packable/internal/model"
	"packable/internal/repository"
	"packable/internal/service"
)

//go:embed seed.json
var fixture []byte

// SeedUser is a demo account from the fixture.
type SeedUser struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	IsAdmin   bool   `json:"is_admin"`
}

// SeedItem is a packing list entry from the fixture.
type SeedItem struct {
	Category string `json:"category"`
	Item     string `json:"item"`
	Qty      int    `json:"qty"`
}

// SeedList is a packing list and its items from the fixture.
type SeedList struct {
	Username        string     `json:"username"`
	SearchedAddress string     `json:"searched_address"`
	ArrivalDate     model.Date `json:"arrival_date"`
	DepartureDate   model.Date `json:"departure_date"`
	Items           []SeedItem `json:"items"`
}

// SeedData is the whole fixture.
type SeedData struct {
	Users []SeedUser `json:"users"`
	Lists []SeedList `json:"lists"`
}

type seedResult struct {
	users, skipped, lists, items int
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Env, cfg.LogLevel)
	log.Info().Msg("starting seed script")

	data, err := loadFixture(fixture)
	if err != nil {
		log.Fatal().Err(err).Msg("load fixture")
	}

	gormDB, err := db.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}
	log.Info().Msg("database migrations completed")

	userRepo := repository.NewUserRepository(gormDB)
	listRepo := repository.NewListRepository(gormDB)
	itemRepo := repository.NewListItemRepository(gormDB)
	hasher := auth.NewHasher(cfg.BcryptWorkFactor)

	res, err := seed(context.Background(), data,
		service.NewUserService(userRepo, listRepo, hasher),
		service.NewListService(listRepo, itemRepo, nil),
		service.NewListItemService(itemRepo, listRepo),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}

	log.Info().
		Int("users_created", res.users).
		Int("users_skipped", res.skipped).
		Int("lists_created", res.lists).
		Int("items_created", res.items).
		Msg("seed completed")
}

func loadFixture(raw []byte) (*SeedData, error) {
	var data SeedData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return &data, nil
}

// seed creates the fixture through the services so validation and hashing apply.
// Users that already exist are skipped along with their lists, which keeps reruns idempotent.
func seed(ctx context.Context, data *SeedData, users service.UserService, lists service.ListService, items service.ListItemService) (seedResult, error) {
	var res seedResult
	created := make(map[string]bool, len(data.Users))

	for _, u := range data.Users {
		_, err := users.CreateUser(ctx, service.NewUser{
			Username:  u.Username,
			Password:  u.Password,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			Email:     u.Email,
			IsAdmin:   u.IsAdmin,
		})
		if apperrors.KindOf(err) == apperrors.KindConflict {
			log.Info().Str("username", u.Username).Msg("user exists, skipping")
			res.skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("create user %s: %w", u.Username, err)
		}
		created[u.Username] = true
		res.users++
	}

	for _, l := range data.Lists {
		if !created[l.Username] {
			continue
		}
		list, err := lists.CreateList(ctx, service.NewList{
			Username:        l.Username,
			SearchedAddress: l.SearchedAddress,
			ArrivalDate:     l.ArrivalDate,
			DepartureDate:   l.DepartureDate,
		})
		if err != nil {
			return res, fmt.Errorf("create list %q: %w", l.SearchedAddress, err)
		}
		res.lists++

		for _, it := range l.Items {
			if _, err := items.CreateItem(ctx, service.NewListItem{
				ListID:   list.ID,
				Category: it.Category,
				Item:     it.Item,
				Qty:      it.Qty,
			}); err != nil {
				return res, fmt.Errorf("create item %q on list %d: %w", it.Item, list.ID, err)
			}
			res.items++
		}
	}

	return res, nil
}
