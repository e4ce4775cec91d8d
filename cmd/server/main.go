package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/kipidap/myngo-gateway/internal/config"
	"github.com/kipidap/myngo-gateway/internal/database"
	"github.com/kipidap/myngo-gateway/internal/handler"
	mw "github.com/kipidap/myngo-gateway/internal/middleware"
	"github.com/kipidap/myngo-gateway/internal/notify"
	"github.com/kipidap/myngo-gateway/internal/prefetch"
	"github.com/kipidap/myngo-gateway/internal/queue"
	"github.com/kipidap/myngo-gateway/internal/repository"
	"github.com/kipidap/myngo-gateway/internal/router"
	"github.com/kipidap/myngo-gateway/internal/service"
	"github.com/kipidap/myngo-gateway/internal/session"
	"github.com/kipidap/myngo-gateway/internal/upstream"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()

	// Redis backs sessions, flashes, prefetch, the response cache
	// and the login throttle. Without it the gateway still runs,
	// with in-memory state and those two middlewares disabled.
	rdb := config.NewRedisClient()
	var kv repository.KV
	if rdb != nil {
		kv = repository.NewRedisKV(rdb)
	} else {
		log.Println("redis unavailable, falling back to in-memory session state")
		kv = repository.NewMemoryKV()
	}

	store := session.NewStore(repository.NewSessionRepo(kv, cfg.SessionTTL))
	api := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout, cfg.UpstreamRetries, store)

	hub := notify.NewHub(kv)
	registry := service.NewRegistry(api, hub)

	warmer := prefetch.NewWarmer(api, kv, config.LoadPrefetchConfig())
	api.SetWarmCache(warmer)

	// Everything session-scoped dies together on logout or 401.
	store.OnClear(registry.Drop)
	store.OnClear(hub.DropSession)
	store.OnClear(warmer.DropSession)

	// Notification history is optional; without MySQL the consumer
	// logs events to a file instead.
	var history *repository.NotificationRepo
	if cfg.HistoryEnabled() {
		db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		if err != nil {
			log.Printf("notification history disabled: %v", err)
		} else {
			if err := database.EnsureSchema(context.Background(), db); err != nil {
				log.Printf("notification schema: %v", err)
			}
			history = repository.NewNotificationRepo(db)
		}
	}
	go func() {
		if err := queue.StartNotificationConsumer(history); err != nil {
			log.Printf("notification consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.Use(mw.DeviceSession(store, cfg.SessionCookie, cfg.SessionTTL))

	auth := handler.NewAuthHandler(api, store)
	page := handler.NewPageHandler(store, hub)
	apis := router.APIHandlers{
		Members:       handler.NewMembersHandler(registry),
		Businesses:    handler.NewBusinessesHandler(registry),
		States:        handler.NewStatesHandler(registry),
		Dashboard:     handler.NewDashboardHandler(registry),
		Profile:       handler.NewProfileHandler(registry),
		Products:      handler.NewProductsHandler(registry),
		Notifications: handler.NewNotificationsHandler(hub, history),
		Settings:      handler.NewSettingsHandler(store),
	}

	router.RegisterAuth(e, auth, mw.LoginThrottle(config.LoadThrottleConfig(), rdb))
	router.RegisterAPI(e, apis, mw.ResponseCache(config.LoadCacheConfig(), rdb))
	router.RegisterRoutes(e, page, warmer)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, upstream=%s)", addr, cfg.Env, cfg.UpstreamBaseURL)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
