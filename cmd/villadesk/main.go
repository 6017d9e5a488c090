package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"villadesk/internal/app/commands"
	bookingapp "villadesk/internal/app/handlers/booking"
	dashboardapp "villadesk/internal/app/handlers/dashboard"
	pricingapp "villadesk/internal/app/handlers/pricing"
	specialdayapp "villadesk/internal/app/handlers/specialday"
	villaapp "villadesk/internal/app/handlers/villa"
	"villadesk/internal/app/middleware"
	appoutbox "villadesk/internal/app/outbox"
	"villadesk/internal/app/queries"
	authsvc "villadesk/internal/app/services/auth"
	"villadesk/internal/app/uow"
	domainauth "villadesk/internal/domain/auth"
	domainuser "villadesk/internal/domain/user"
	kafkabroker "villadesk/internal/infra/broker/kafka"
	"villadesk/internal/infra/config"
	mongodb "villadesk/internal/infra/db/mongo"
	ginserver "villadesk/internal/infra/http/gin"
	"villadesk/internal/infra/mail"
	"villadesk/internal/infra/obs"
	infraoutbox "villadesk/internal/infra/outbox"
	"villadesk/internal/infra/security"
	"villadesk/internal/infra/session"
	"villadesk/internal/infra/storage/memory"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	app, err := buildApplication(ctx, cfg, logger)
	if err != nil {
		logger.Error("application wiring failed", "error", err)
		os.Exit(1)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	if app.outboxWorker != nil {
		go func() {
			if err := app.outboxWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
		app.close()
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers     ginserver.Handlers
	outboxWorker *infraoutbox.Worker
	ready        func() error
	close        func()
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger) (application, error) {
	app := application{
		ready: func() error { return nil },
		close: func() {},
	}

	var (
		uowFactory uow.Factory
		box        appoutbox.Outbox
		idStore    middleware.IdempotencyStore
		users      domainuser.Repository
	)

	switch cfg.StorageMode {
	case "mongo":
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, err
		}
		if err := client.Ping(ctx); err != nil {
			return application{}, err
		}
		uowFactory = mongodb.Factory{
			DB:             client.DB,
			VillaRepo:      mongodb.NewVillaRepository(client.DB),
			BookingRepo:    mongodb.NewBookingRepository(client.DB),
			SpecialDayRepo: mongodb.NewSpecialDayRepository(client.DB),
		}
		mongoBox := infraoutbox.NewStore(client.DB)
		box = mongoBox
		idStore = mongodb.NewIdempotencyStore(client.DB)
		users = mongodb.NewUserRepository(client.DB)
		app.ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}

		if len(cfg.KafkaBrokers) > 0 {
			producer, err := kafkabroker.NewProducer(cfg.KafkaBrokers, nil)
			if err != nil {
				return application{}, err
			}
			app.outboxWorker = &infraoutbox.Worker{
				Store:       mongoBox,
				Producer:    producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Backoff:     cfg.RetryBackoff,
			}
			app.close = func() {
				if err := producer.Close(); err != nil {
					logger.Warn("kafka producer close failed", "error", err)
				}
			}
		}
	default:
		uowFactory = memory.Factory{
			VillaRepo:      memory.NewVillaRepository(),
			BookingRepo:    memory.NewBookingRepository(),
			SpecialDayRepo: memory.NewSpecialDayRepository(),
		}
		box = memory.NewOutbox()
		idStore = memory.NewIdempotencyStore()
		users = memory.NewUserRepository()
	}

	var sessions domainauth.SessionStore
	if cfg.RedisAddr != "" {
		redisStore := session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword)
		if err := redisStore.Ping(ctx); err != nil {
			return application{}, err
		}
		sessions = redisStore
	} else {
		sessions = memory.NewSessionStore()
	}

	authService := &authsvc.Service{
		Users:      users,
		Sessions:   sessions,
		Passwords:  security.BcryptHasher{},
		Tokens:     security.RandomTokenGenerator{},
		SessionTTL: cfg.SessionTTL,
		Logger:     logger,
	}
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := authService.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminName); err != nil {
			return application{}, err
		}
	}

	var mailer bookingapp.Mailer
	if cfg.MailjetAPIKey != "" && cfg.MailjetSecretKey != "" {
		mailer = mail.NewMailjetSender(cfg.MailjetAPIKey, cfg.MailjetSecretKey, cfg.MailFromAddress, cfg.MailFromName)
	} else {
		mailer = logMailer{logger: logger}
	}

	encoder := appoutbox.JSONEventEncoder{}

	commandBus := commands.NewInMemoryBus()
	saveBooking := &bookingapp.SaveBookingHandler{UoWFactory: uowFactory, Outbox: box, Encoder: encoder}
	commands.RegisterHandler(commandBus, bookingapp.SaveBookingCommand{}.Key(), saveBooking)
	deleteBooking := &bookingapp.DeleteBookingHandler{UoWFactory: uowFactory, Outbox: box, Encoder: encoder}
	commands.RegisterHandler(commandBus, bookingapp.DeleteBookingCommand{}.Key(), deleteBooking)
	sendConfirmation := &bookingapp.SendConfirmationHandler{UoWFactory: uowFactory, Mailer: mailer, Outbox: box, Encoder: encoder}
	commands.RegisterHandler(commandBus, bookingapp.SendConfirmationCommand{}.Key(), sendConfirmation)
	saveVilla := &villaapp.SaveVillaHandler{UoWFactory: uowFactory, Log: logger}
	commands.RegisterHandler(commandBus, villaapp.SaveVillaCommand{}.Key(), saveVilla)
	deleteVilla := &villaapp.DeleteVillaHandler{UoWFactory: uowFactory}
	commands.RegisterHandler(commandBus, villaapp.DeleteVillaCommand{}.Key(), deleteVilla)
	saveSpecialDay := &specialdayapp.SaveHandler{UoWFactory: uowFactory}
	commands.RegisterHandler(commandBus, specialdayapp.SaveCommand{}.Key(), saveSpecialDay)
	deleteSpecialDay := &specialdayapp.DeleteHandler{UoWFactory: uowFactory}
	commands.RegisterHandler(commandBus, specialdayapp.DeleteCommand{}.Key(), deleteSpecialDay)

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, bookingapp.GetBookingQuery{}.Key(), &bookingapp.GetBookingHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, bookingapp.ListBookingsQuery{}.Key(), &bookingapp.ListBookingsHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, bookingapp.CalendarQuery{}.Key(), &bookingapp.CalendarHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, villaapp.GetVillaQuery{}.Key(), &villaapp.GetVillaHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, villaapp.ListVillasQuery{}.Key(), &villaapp.ListVillasHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, villaapp.AvailabilityQuery{}.Key(), &villaapp.AvailabilityHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, pricingapp.PreviewQuery{}.Key(), &pricingapp.PreviewHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, specialdayapp.ListQuery{}.Key(), &specialdayapp.ListHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, dashboardapp.StatsQuery{}.Key(), &dashboardapp.StatsHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, dashboardapp.TodayActivityQuery{}.Key(), &dashboardapp.TodayActivityHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, dashboardapp.RecentBookingsQuery{}.Key(), &dashboardapp.RecentBookingsHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, dashboardapp.RevenueChartQuery{}.Key(), &dashboardapp.RevenueChartHandler{UoWFactory: uowFactory})
	queries.RegisterHandler(queryBus, dashboardapp.VillaPerformanceQuery{}.Key(), &dashboardapp.VillaPerformanceHandler{UoWFactory: uowFactory})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Idempotency(idStore),
		middleware.Transaction(uowFactory),
		middleware.OutboxFlush(box),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	app.handlers = ginserver.Handlers{
		Auth:           ginserver.AuthHandler{Service: authService, Logger: logger},
		Villa:          ginserver.VillaHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware},
		Booking:        ginserver.BookingHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware},
		Pricing:        ginserver.PricingHandler{Queries: queryBusWithMiddleware},
		SpecialDay:     ginserver.SpecialDayHandler{Commands: commandBusWithMiddleware, Queries: queryBusWithMiddleware},
		Dashboard:      ginserver.DashboardHandler{Queries: queryBusWithMiddleware},
		AuthMiddleware: ginserver.AuthMiddleware{Service: authService, Logger: logger}.Handle,
	}
	return app, nil
}

// logMailer stands in for Mailjet when no API keys are configured, so
// dev environments can exercise the confirmation flow.
type logMailer struct {
	logger *slog.Logger
}

func (m logMailer) SendBookingConfirmation(_ context.Context, msg bookingapp.ConfirmationMessage) error {
	m.logger.Info("confirmation email (log only)",
		"to", msg.To,
		"villa", msg.VillaName,
		"check_in", msg.CheckIn.Format("2006-01-02"),
		"check_out", msg.CheckOut.Format("2006-01-02"),
		"total", msg.Total,
	)
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
