package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/config"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/database"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/handler"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/middleware"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/queue"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/repository"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/router"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/service"
	"github.com/Mateusbmelzi/hub-entidades-sub000/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(database.Params{
		User: cfg.DBUser,
		Pass: cfg.DBPass,
		Host: cfg.DBHost,
		Port: cfg.DBPort,
		Name: cfg.DBName,
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client turns the rate limiter and the
	// response cache into pass-throughs.
	rdb := config.NewRedisClient()

	store, err := storage.NewLocalStore(cfg.StorageRoot, cfg.StorageBaseURL)
	if err != nil {
		log.Fatalf("storage: %v", err)
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	entities := repository.NewEntityRepo(db)
	events := repository.NewEventRepo(db)
	rooms := repository.NewRoomRepo(db)
	reservations := repository.NewReservationRepo(db)
	interests := repository.NewInterestRepo(db)
	selections := repository.NewSelectionRepo(db)
	companies := repository.NewCompanyRepo(db)

	checker := service.NewConflictChecker(reservations)
	approvals := service.NewApprovalService(reservations, checker, queue.NewPublisher())

	authH := handler.NewAuthHandler(cfg, users, tokens)
	publicH := handler.NewPublicHandler(entities, events, rooms, companies, store)
	entityH := handler.NewEntityHandler(entities, store)
	eventH := handler.NewEventHandler(events, store)
	reservationH := handler.NewReservationHandler(reservations, rooms)
	adminResH := handler.NewAdminReservationHandler(reservations, approvals, checker)
	interestH := handler.NewInterestHandler(interests, entities)
	selectionH := handler.NewSelectionHandler(selections, interests)
	roomH := handler.NewRoomHandler(rooms)
	companyH := handler.NewCompanyHandler(companies, store)
	dashH := handler.NewDashboardHandler(reservations, entities, events, interests, checker)

	e := echo.New()
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e, publicH, store.Root(), config.LoadCacheConfig(), rdb)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterStudent(e, reservationH, interestH, cfg.JWTSecret)
	router.RegisterEntity(e, entityH, eventH, interestH, selectionH, dashH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminResH, roomH, companyH, dashH, cfg.JWTSecret)

	// Expired refresh tokens are swept hourly, with a day of grace so a
	// row is still inspectable right after its session ends.
	go func() {
		for {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			n, err := tokens.DeleteExpired(ctx, 24*time.Hour)
			cancel()
			if err != nil {
				log.Printf("token housekeeping: %v", err)
			} else if n > 0 {
				log.Printf("token housekeeping: removed %d expired rows", n)
			}
			time.Sleep(time.Hour)
		}
	}()

	// The consumer appends every decision to logs/reservations.log and
	// reconnects on broker failure; it never takes the API down.
	go func() {
		if err := queue.StartDecisionConsumer(); err != nil {
			log.Printf("queue consumer disabled: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
