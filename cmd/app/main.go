package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/sushihentaime/inkwell/internal/common"
	"github.com/sushihentaime/inkwell/internal/mailservice"
	"github.com/sushihentaime/inkwell/internal/mediaservice"
	"github.com/sushihentaime/inkwell/internal/postservice"
	"github.com/sushihentaime/inkwell/internal/socialservice"
	"github.com/sushihentaime/inkwell/internal/tagservice"
	"github.com/sushihentaime/inkwell/internal/userservice"
)

type application struct {
	config        *Config
	logger        *slog.Logger
	metrics       *metrics
	userService   *userservice.UserService
	postService   *postservice.PostService
	tagService    *tagservice.TagService
	socialService *socialservice.SocialService
	mediaService  *mediaservice.MediaService
	mailService   *mailservice.MailService
	broker        *common.MessageBroker
}

func main() {
	configPath := flag.String("config", ".env", "path to the .env configuration file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	dsn := common.DSN(cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := common.NewDB(dsn, cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBMaxIdleTime)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(db)

	if cfg.DBAutoMigrate {
		m, err := common.Migrate(cfg.MigrationsPath, dsn)
		if err != nil {
			logger.Error("failed to apply migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
		m.Close()
		logger.Info("database migrations applied")
	}

	URI := fmt.Sprintf("amqp://%s:%s@%s:%s/", cfg.MQUser, cfg.MQPassword, cfg.MQHost, cfg.MQPort)
	broker, err := common.NewMessageBroker(URI)
	if err != nil {
		logger.Error("failed to connect to the message broker", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer broker.Close()

	err = common.SetupUserExchange(broker)
	if err != nil {
		logger.Error("failed to setup the user exchange", slog.String("error", err.Error()))
		os.Exit(1)
	}

	storage, err := mediaservice.NewMinioStorage(mediaservice.StorageConfig{
		Endpoint:  cfg.MinioEndpoint,
		AccessKey: cfg.MinioAccessKey,
		SecretKey: cfg.MinioSecretKey,
		UseSSL:    cfg.MinioUseSSL,
		Bucket:    cfg.MinioBucket,
		PublicURL: cfg.MinioPublicURL,
	})
	if err != nil {
		logger.Error("failed to create the object storage client", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := storage.EnsureBucket(ctx); err != nil {
		// avatar uploads fail until storage is reachable, everything else keeps working
		logger.Warn("could not prepare the avatar bucket", slog.String("error", err.Error()))
	}
	cancel()

	userService := userservice.NewUserService(db, broker)
	unsplash := mediaservice.NewUnsplashClient(mediaservice.UnsplashConfig{BaseURL: cfg.UnsplashURL, AccessKey: cfg.UnsplashAccessKey})

	app := &application{
		config:        cfg,
		logger:        logger,
		metrics:       newMetrics(),
		userService:   userService,
		postService:   postservice.NewPostService(db),
		tagService:    tagservice.NewTagService(db),
		socialService: socialservice.NewSocialService(db),
		mediaService:  mediaservice.NewMediaService(storage, userService, unsplash, common.NewCache(5*time.Minute, 10*time.Minute)),
		mailService: mailservice.NewMailService(broker, mailservice.Config{
			Host:          cfg.MailHost,
			Port:          cfg.MailPort,
			Username:      cfg.MailUser,
			Password:      cfg.MailPassword,
			Sender:        cfg.MailSender,
			ActivationURL: cfg.ActivationURL,
		}, logger),
		broker: broker,
	}

	app.mailService.SendActivationEmail()
	defer app.mailService.Close()

	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
