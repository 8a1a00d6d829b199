package main

import (
	"context"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/ledger-server/api"
	"github.com/carson-networks/ledger-server/internal/apperr"
	"github.com/carson-networks/ledger-server/internal/auth"
	"github.com/carson-networks/ledger-server/internal/config"
	"github.com/carson-networks/ledger-server/internal/logging"
	"github.com/carson-networks/ledger-server/internal/mail"
	"github.com/carson-networks/ledger-server/internal/operator"
	"github.com/carson-networks/ledger-server/internal/ratelimit"
	"github.com/carson-networks/ledger-server/internal/service"
	"github.com/carson-networks/ledger-server/internal/storage"
	"github.com/carson-networks/ledger-server/internal/storage/migrations"
)

const (
	authAttempts     = 5
	authWindow       = 15 * time.Minute
	authBlockTimeout = 15 * time.Minute
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("ledger-server starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}
	if envConfig.IsProduction() {
		apperr.HideInternalDetails()
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	if envConfig.RunMigrations {
		if err = migrations.Up(dbStorage.SQL(), logger); err != nil {
			logrus.WithError(err).Fatal("migrations.Up")
			return
		}
	}

	delegator := operator.NewOperatorDelegator(dbStorage, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	tokens := auth.NewTokens(envConfig.JWTSecret, envConfig.JWTTTL)
	svc := service.NewService(service.Deps{
		Reader:      dbStorage.Read(),
		Processor:   delegator,
		Tokens:      tokens,
		Mailer:      newMailer(envConfig, logger),
		Location:    envConfig.Location,
		FrontendURL: envConfig.FrontendURL,
	})

	httpRest := api.Rest{
		Logger:            logger,
		Port:              envConfig.Port,
		AllowedOrigins:    envConfig.CORSAllowedOrigins,
		Location:          envConfig.Location,
		TrustProxyHeaders: envConfig.TrustProxyHeaders,
		Service:           svc,
		Database:          dbStorage,
		Tokens:            tokens,
	}
	if envConfig.RedisAddress != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     envConfig.RedisAddress,
			Password: envConfig.RedisPassword,
		})
		defer client.Close()
		httpRest.Limiter = ratelimit.NewRedisLimiter(client, authAttempts, authWindow, authBlockTimeout, "ledger")
	} else {
		logrus.Warn("REDIS_ADDRESS not set, auth endpoints are not rate limited")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	wg := sync.WaitGroup{}
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := httpRest.Serve(ctx); err != nil {
			logrus.WithError(err).Error("HttpServer.Serve")
			stop()
		}
	}()

	wg.Wait()
	logrus.Info("ledger-server stopped")
}

func newMailer(env *config.Config, logger *logrus.Logger) service.Mailer {
	if env.SMTPHost == "" {
		logrus.Warn("SMTP_HOST not set, emails are written to the log")
		return &mail.LogSender{Logger: logger}
	}
	return mail.NewSMTPSender(env.SMTPHost, env.SMTPPort, env.SMTPUsername, env.SMTPPassword, env.MailFrom)
}
