package main

import (
	"context"
	"encoding/json"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/AcasisDev/siteguard-hub/config"
	"github.com/AcasisDev/siteguard-hub/internal/application"
	"github.com/AcasisDev/siteguard-hub/internal/infrastructure/notify"
	pginfra "github.com/AcasisDev/siteguard-hub/internal/infrastructure/postgres"
	"github.com/AcasisDev/siteguard-hub/pkg/helpers"
	"github.com/AcasisDev/siteguard-hub/pkg/mailer"
	mailtpl "github.com/AcasisDev/siteguard-hub/pkg/mailer/templates"
)

// The sign-up worker assigns the initial role of new accounts and sends
// the welcome email.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-worker", cfg.Env, cfg.LogLevel)
	if cfg.RabbitMQURL == "" || cfg.RabbitMQSignupQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	var transport notify.Transport
	if cfg.MailSendEnabled {
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			log.Fatal("Mailgun not configured")
		}
		transport = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender, cfg.MailgunEU)
	} else {
		logger.Info("MAIL_SEND_ENABLED=false; welcome emails are logged only")
	}
	sender := notify.NewWelcomeSender(transport, mailtpl.Branding{
		CompanyName: cfg.CompanyName,
		AppName:     cfg.AppName,
		SupportURL:  cfg.SupportURL,
	}, cfg.MailSendEnabled, logger)
	proc := application.NewSignupProcessor(pginfra.NewRoleRepository(pool), sender, logger)

	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQSignupQueue, 16)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()
	msgs, err := consumer.Consume("")
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			var job mailer.SignupJob
			if err := json.Unmarshal(msg.Body, &job); err != nil || job.UserID == "" {
				helpers.LogError(logger, "bad sign-up message", err, logrus.Fields{"body": string(msg.Body)})
				_ = msg.Nack(false, false)
				continue
			}

			c, cancel := context.WithTimeout(ctx, 30*time.Second)
			err := proc.Handle(c, job)
			cancel()
			if err != nil {
				// redeliver once; a second failure is dropped
				helpers.LogError(logger, "sign-up job failed", err, logrus.Fields{"user_id": job.UserID, "redelivered": msg.Redelivered})
				_ = msg.Nack(false, !msg.Redelivered)
				continue
			}
			_ = msg.Ack(false)
			helpers.LogInfo(logger, "sign-up job done", logrus.Fields{"user_id": job.UserID})
		}
	}()

	logger.Infof("sign-up worker listening on queue=%s", cfg.RabbitMQSignupQueue)
	<-ctx.Done()
	logger.Info("shutting down...")
	consumer.Close()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
	}
}
