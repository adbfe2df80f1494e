// Package app wires the site's components together.
package app

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/rs/cors"
	"gorm.io/gorm"

	"aus-site-backend/config"
	"aus-site-backend/internal/api"
	"aus-site-backend/internal/appstate"
	"aus-site-backend/internal/content"
	"aus-site-backend/internal/i18n"
	"aus-site-backend/internal/persist"
	"aus-site-backend/internal/realtime"
	"aus-site-backend/internal/reservation"
	"aus-site-backend/internal/session"
	"aus-site-backend/internal/store"
)

// App is the assembled backend.
type App struct {
	Handler  http.Handler
	Sessions *session.Registry
	Hub      *realtime.Hub
	Workers  *persist.WorkerPool
	Store    store.Store
}

// New builds the backend over an open database. Background workers are not
// started; see Start.
func New(ctx context.Context, cfg *config.Config, gormDB *gorm.DB) (*App, error) {
	appStore := store.NewGormStore(gormDB)

	if err := appStore.SeedRooms(ctx, reservation.DefaultRooms()); err != nil {
		return nil, err
	}
	rooms, err := appStore.ListRooms(ctx)
	if err != nil {
		return nil, err
	}
	catalog, err := reservation.NewCatalog(rooms)
	if err != nil {
		return nil, fmt.Errorf("invalid room catalog: %w", err)
	}
	log.Printf("Room catalog loaded with %d rooms", len(rooms))

	bundle, err := i18n.Load()
	if err != nil {
		return nil, err
	}
	directory, err := content.Load()
	if err != nil {
		return nil, err
	}

	defaultLang, err := i18n.ParseLanguage(cfg.Session.DefaultLanguage)
	if err != nil {
		log.Printf("session.default_language: %v; using %s", err, i18n.English)
		defaultLang = i18n.English
	}

	hub := realtime.NewHub()
	events := realtime.NewEventBroadcaster(hub)

	factory := &session.Factory{
		Catalog:  catalog,
		Defaults: appstate.State{Language: defaultLang, DarkMode: cfg.Session.DefaultDarkMode},
		ReservationOptions: []reservation.Option{
			reservation.WithLocation(cfg.Booking.Location),
			reservation.WithSuccessDelay(cfg.Booking.SuccessBanner),
		},
		StateListeners:       []session.StateListener{events},
		ReservationListeners: []session.ReservationListener{events},
	}

	a := &App{Hub: hub, Store: appStore}
	if cfg.Database.PersistPreferences {
		a.Workers = persist.NewWorkerPool(cfg.WorkerPool.Size, cfg.WorkerPool.QueueSize, appStore)
		factory.Preferences = appStore
		factory.StateListeners = append(factory.StateListeners, a.Workers)
	}
	a.Sessions = session.NewRegistry(factory, cfg.Session.IdleTimeout)

	handler := api.NewHandler(api.Deps{
		Store:    appStore,
		Bundle:   bundle,
		Content:  directory,
		Rooms:    catalog,
		Sessions: a.Sessions,
		Hub:      hub,
		Location: cfg.Booking.Location,
	})
	router := api.NewRouter(cfg, handler)

	origins := cfg.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	a.Handler = cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler(router)

	return a, nil
}

// Start launches the realtime hub and the preference workers until ctx is done.
func (a *App) Start(ctx context.Context) {
	go a.Hub.Run(ctx)
	if a.Workers != nil {
		a.Workers.Start(ctx)
	}
}

// Close tears down every live session.
func (a *App) Close() {
	a.Sessions.Flush()
}
