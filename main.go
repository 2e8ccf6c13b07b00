package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/storage/memory/v2"
	redisstorage "github.com/gofiber/storage/redis/v3"
	"github.com/khanghh/kwaitlist/internal/audit"
	"github.com/khanghh/kwaitlist/internal/auth"
	"github.com/khanghh/kwaitlist/internal/captcha"
	"github.com/khanghh/kwaitlist/internal/common"
	"github.com/khanghh/kwaitlist/internal/config"
	"github.com/khanghh/kwaitlist/internal/events"
	"github.com/khanghh/kwaitlist/internal/handlers/api"
	"github.com/khanghh/kwaitlist/internal/mail"
	"github.com/khanghh/kwaitlist/internal/middlewares"
	"github.com/khanghh/kwaitlist/internal/oauth"
	"github.com/khanghh/kwaitlist/internal/render"
	"github.com/khanghh/kwaitlist/internal/store"
	"github.com/khanghh/kwaitlist/internal/users"
	"github.com/khanghh/kwaitlist/internal/waitlist"
	"github.com/khanghh/kwaitlist/model"
	"github.com/khanghh/kwaitlist/model/query"
	"github.com/khanghh/kwaitlist/params"
	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
	"gorm.io/plugin/dbresolver"
)

const (
	authBasePath     = "/api/auth"
	waitlistBasePath = "/api/waitlist"
)

var (
	app       *cli.App
	gitCommit string
	gitDate   string
	gitTag    string
)

var (
	configFileFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "YAML config file",
		Value: "config.yaml",
	}
	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}
	emailFlag = &cli.StringFlag{
		Name:     "email",
		Usage:    "Admin email address",
		Required: true,
	}
	passwordFlag = &cli.StringFlag{
		Name:     "password",
		Usage:    "Admin password",
		Required: true,
	}
)

func init() {
	app = cli.NewApp()
	app.EnableBashCompletion = true
	app.Usage = "kwaitlist - A waitlist gate for user registration"
	app.Flags = []cli.Flag{
		configFileFlag,
		debugFlag,
	}
	app.Commands = []*cli.Command{
		{
			Name:  "version",
			Usage: "Print version information",
			Action: func(ctx *cli.Context) error {
				fmt.Println(params.VersionWithCommit(gitCommit, gitDate))
				return nil
			},
		},
		{
			Name:   "migrate",
			Usage:  "Create or update the database schema",
			Action: migrate,
		},
		{
			Name:   "create-admin",
			Usage:  "Create an admin user, bypassing the waitlist",
			Flags:  []cli.Flag{emailFlag, passwordFlag},
			Action: createAdmin,
		},
	}
	app.Action = run
}

func mustInitLogger(debug bool) {
	logLevel := slog.LevelInfo
	if debug {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

func mustLoadConfig(ctx *cli.Context) *config.Config {
	cfg, err := config.LoadConfig(ctx.String(configFileFlag.Name))
	if err != nil {
		slog.Error("Could not load config file.", "error", err)
		os.Exit(1)
	}
	mustInitLogger(cfg.Debug || ctx.Bool(debugFlag.Name))
	return cfg
}

func openDialector(driver string, dsn string) gorm.Dialector {
	if driver == "mysql" {
		return mysql.Open(dsn)
	}
	return sqlite.Open(dsn)
}

// newGormLogger routes gorm logs through slog. Lookups that miss are part of
// normal waitlist flow and are not logged.
func newGormLogger() gormlogger.Interface {
	return gormlogger.New(slog.NewLogLogger(slog.Default().Handler(), slog.LevelWarn), gormlogger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
	})
}

func mustInitDatabase(dbConfig config.DatabaseConfig) *gorm.DB {
	db, err := gorm.Open(openDialector(dbConfig.Driver, dbConfig.Dsn), &gorm.Config{
		Logger: newGormLogger(),
		NamingStrategy: schema.NamingStrategy{
			TablePrefix:   dbConfig.TablePrefix,
			SingularTable: true,
		},
	})
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if len(dbConfig.Replicas) > 0 {
		replicas := make([]gorm.Dialector, 0, len(dbConfig.Replicas))
		for _, dsn := range dbConfig.Replicas {
			replicas = append(replicas, openDialector(dbConfig.Driver, dsn))
		}
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: replicas,
			Policy:   dbresolver.RandomPolicy{},
		})
		if dbConfig.MaxIdleConns > 0 {
			resolver.SetMaxIdleConns(dbConfig.MaxIdleConns)
		}
		if dbConfig.MaxOpenConns > 0 {
			resolver.SetMaxOpenConns(dbConfig.MaxOpenConns)
		}
		if err := db.Use(resolver); err != nil {
			slog.Error("Failed to register read replicas", "error", err)
			os.Exit(1)
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Failed to access database pool", "error", err)
		os.Exit(1)
	}
	if dbConfig.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(dbConfig.MaxIdleConns)
	}
	if dbConfig.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(dbConfig.MaxOpenConns)
	}
	if dbConfig.ConnMaxIdleTime > 0 {
		sqlDB.SetConnMaxIdleTime(dbConfig.ConnMaxIdleTime)
	}
	if dbConfig.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)
	}
	return db
}

func mustMigrateDatabase(db *gorm.DB) {
	if err := model.AutoMigrate(db); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}
}

// mustInitStorage returns the key-value storage backing rate limits and
// OAuth state. Without a redis URL everything stays in process memory and the
// returned client is nil.
func mustInitStorage(redisCfg config.RedisConfig) (fiber.Storage, redis.UniversalClient) {
	if redisCfg.URL == "" {
		slog.Warn("No redis configured, using in-memory storage")
		return memory.New(), nil
	}
	storage := redisstorage.New(redisstorage.Config{
		URL:           redisCfg.URL,
		PoolSize:      redisCfg.PoolSize,
		IsClusterMode: redisCfg.ClusterMode,
	})
	return storage, storage.Conn()
}

func mustInitMailSender(mailCfg config.MailConfig) mail.MailSender {
	switch mailCfg.Backend {
	case "", "log":
		return mail.LogMailSender{}
	case "smtp":
		smtpCfg := mailCfg.SMTP
		sender, err := mail.NewSMTPMailSender(mail.SMTPConfig{
			Host:               smtpCfg.Host,
			Port:               smtpCfg.Port,
			Username:           smtpCfg.Username,
			Password:           smtpCfg.Password,
			TLS:                smtpCfg.TLS,
			InsecureSkipVerify: smtpCfg.InsecureSkipVerify,
			CertFile:           smtpCfg.CertFile,
			KeyFile:            smtpCfg.KeyFile,
			CAFile:             smtpCfg.CAFile,
		}, mailCfg.From)
		if err != nil {
			slog.Error("Failed to initialize SMTP mail sender", "error", err)
			os.Exit(1)
		}
		return sender
	}
	slog.Error("Unsupported mail sender backend", "backend", mailCfg.Backend)
	os.Exit(1)
	return nil
}

func mustInitCaptchaVerifier(captchaCfg config.CaptchaConfig) captcha.CaptchaVerifier {
	if captchaCfg.Provider == "turnstile" {
		return captcha.NewTurnstileVerifier(captchaCfg.Turnstile.SecretKey)
	}
	return captcha.NewNullVerifier()
}

func mustInitOAuthProviders(cfg *config.Config) []oauth.OAuthProvider {
	var providers []oauth.OAuthProvider
	for providerName, providerCfg := range cfg.AuthProviders.OAuth {
		callbackURL, _ := url.JoinPath(cfg.BaseURL, authBasePath, "callback", providerName)
		switch providerName {
		case "google":
			provider := oauth.NewGoogleOAuthProvider(callbackURL, providerCfg.ClientID, providerCfg.ClientSecret, providerCfg.Scope...)
			providers = append(providers, provider)
		default:
			slog.Error("Unsupported OAuth provider", "provider", providerName)
			os.Exit(1)
		}
	}
	return providers
}

// mustInitNotifiers builds the waitlist observers: invite mails always, broker
// events when an AMQP URL is configured. The returned func releases them.
func mustInitNotifiers(cfg *config.Config) (waitlist.Notifier, func()) {
	renderer, err := render.NewRenderer(map[string]interface{}{
		"siteName": cfg.SiteName,
		"baseURL":  cfg.BaseURL,
	}, cfg.Mail.TemplateDir)
	if err != nil {
		slog.Error("Failed to initialize mail templates", "error", err)
		os.Exit(1)
	}
	notifiers := waitlist.Notifiers{
		mail.NewInviteMailer(mustInitMailSender(cfg.Mail), renderer, cfg.Mail.SignUpURL),
	}

	if cfg.Events.AMQP.URL == "" {
		return notifiers, func() {}
	}
	publisher, err := events.NewAMQPPublisher(cfg.Events.AMQP.URL, cfg.Events.AMQP.Exchange)
	if err != nil {
		slog.Error("Failed to connect to AMQP broker", "error", err)
		os.Exit(1)
	}
	notifiers = append(notifiers, events.NewEventNotifier(publisher))
	return notifiers, publisher.Close
}

func setupRoutes(
	router fiber.Router,
	cfg *config.Config,
	opts waitlist.Options,
	gate *waitlist.Gate,
	tokenService *auth.TokenService,
	stateManager *oauth.StateManager,
	captchaVerifier captcha.CaptchaVerifier,
	kvStorage fiber.Storage,
	waitlistHandler *api.WaitlistHandler,
	adminHandler *api.AdminHandler,
	authHandler *api.AuthHandler) {

	wl := router.Group(waitlistBasePath)
	wl.Post("/join",
		middlewares.RateLimit(cfg.RateLimit.JoinMax, cfg.RateLimit.JoinWindow, kvStorage),
		captcha.New(captchaVerifier),
		waitlistHandler.PostJoin,
	)
	wl.Get("/status", waitlistHandler.GetStatus)
	wl.Get("/verify-invite", waitlistHandler.GetVerifyInvite)

	admin := wl.Group("/admin", middlewares.RequireAuth(tokenService), middlewares.RequireRoles(opts.AdminRoles...))
	admin.Post("/approve", adminHandler.PostApprove)
	admin.Post("/reject", adminHandler.PostReject)
	admin.Post("/bulk-approve", adminHandler.PostBulkApprove)
	admin.Get("/list", adminHandler.GetList)
	admin.Get("/stats", adminHandler.GetStats)

	authGroup := router.Group(authBasePath, middlewares.WaitlistGate(gate, authBasePath, middlewares.OAuthStateInviteCode(stateManager)))
	authGroup.Post("/sign-up/email", authHandler.PostSignUpEmail)
	authGroup.Post("/sign-in/email", authHandler.PostSignInEmail)
	authGroup.Post("/sign-in/anonymous", authHandler.PostSignInAnonymous)
	authGroup.Get("/sign-in/social/:provider", authHandler.GetSignInSocial)
	authGroup.Get("/callback/:provider", authHandler.GetCallback)
}

func migrate(ctx *cli.Context) error {
	cfg := mustLoadConfig(ctx)
	db := mustInitDatabase(cfg.Database)
	mustMigrateDatabase(db)
	slog.Info("Database schema is up to date")
	return nil
}

func createAdmin(ctx *cli.Context) error {
	cfg := mustLoadConfig(ctx)
	db := mustInitDatabase(cfg.Database)
	mustMigrateDatabase(db)

	q := query.Use(db)
	userService := users.NewUserService(users.NewUserRepository(store.NewGormRecords[model.User](q.User.DO)))
	user, err := userService.CreateUser(ctx.Context, users.CreateUserOptions{
		Name:      "Administrator",
		Email:     ctx.String(emailFlag.Name),
		Password:  ctx.String(passwordFlag.Name),
		Role:      users.RoleAdmin,
		SkipHooks: true,
	})
	if err != nil {
		return err
	}
	slog.Info("Admin user created", "userID", user.ID, "email", user.Email)
	return nil
}

func run(ctx *cli.Context) error {
	cfg := mustLoadConfig(ctx)

	waitlistOpts, err := cfg.WaitlistOptions()
	if err != nil {
		slog.Error("Invalid waitlist configuration", "error", err)
		return err
	}

	db := mustInitDatabase(cfg.Database)
	mustMigrateDatabase(db)
	kvStorage, redisClient := mustInitStorage(cfg.Redis)
	notifier, closeNotifiers := mustInitNotifiers(cfg)
	defer closeNotifiers()

	tokenService, err := auth.NewTokenService(cfg.MasterKey, params.AuthTokenExpiration)
	if err != nil {
		slog.Error("Failed to initialize token service", "error", err)
		return err
	}

	// repositories
	q := query.Use(db)
	var (
		userRepo  = users.NewUserRepository(store.NewGormRecords[model.User](q.User.DO))
		entryRepo = waitlist.NewEntryRepository(store.NewGormRecords[model.WaitlistEntry](q.WaitlistEntry.DO))
		auditRepo = audit.NewAuditEventRepository(store.NewGormRecords[model.AuditEvent](q.AuditEvent.DO))
	)
	audit.Initialize(auditRepo)

	// services
	var (
		userService     = users.NewUserService(userRepo)
		policy          = waitlist.NewPolicy(waitlistOpts, entryRepo, userService)
		waitlistService = waitlist.NewService(waitlistOpts, entryRepo, policy, notifier)
		adminService    = waitlist.NewAdminService(waitlistOpts, waitlistService)
		gate            = waitlist.NewGate(waitlistOpts, policy, waitlistService)
		stateManager    = oauth.NewStateManager(store.New[oauth.State](kvStorage, params.OAuthStateKeyPrefix))
	)
	userService.AddCreateHook(gate)

	// handlers
	var (
		waitlistHandler = api.NewWaitlistHandler(waitlistService)
		adminHandler    = api.NewAdminHandler(adminService)
		authHandler     = api.NewAuthHandler(userService, tokenService, stateManager, mustInitOAuthProviders(cfg))
	)

	router := fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		BodyLimit:     params.ServerBodyLimit,
		IdleTimeout:   params.ServerIdleTimeout,
		ReadTimeout:   params.ServerReadTimeout,
		WriteTimeout:  params.ServerWriteTimeout,
		ErrorHandler:  middlewares.ErrorHandler,
	})

	router.Use(recover.New())
	router.Use(logger.New())
	router.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.AllowOrigins, ", "),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, " + params.InviteCodeHeader,
	}))

	setupRoutes(
		router,
		cfg,
		waitlistOpts,
		gate,
		tokenService,
		stateManager,
		mustInitCaptchaVerifier(cfg.Captcha),
		kvStorage,
		waitlistHandler,
		adminHandler,
		authHandler,
	)

	healthCheckCtx, term := context.WithCancel(ctx.Context)
	done := make(chan struct{})
	go common.StartHealthCheckServer(healthCheckCtx, done, redisClient, db)
	defer func() {
		term()
		<-done
	}()

	slog.Info("Starting waitlist server", "version", params.VersionWithCommit(gitCommit, gitDate), "addr", cfg.ListenAddr)
	return router.Listen(cfg.ListenAddr)
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
