package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/shop-admin-dashboard/config"
	"github.com/oksasatya/shop-admin-dashboard/pkg/helpers"
	"github.com/oksasatya/shop-admin-dashboard/pkg/mailer"
)

// deliverer is implemented by mailer.Mailgun and mailer.SMTP.
type deliverer interface {
	SendJob(ctx context.Context, job mailer.EmailJob) error
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)
	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}

	var transport deliverer
	switch cfg.MailTransport {
	case "smtp":
		if cfg.SMTPHost == "" || cfg.SMTPFrom == "" {
			logger.Fatal("SMTP not configured")
		}
		transport = mailer.NewSMTP(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
	default:
		if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
			logger.Fatal("Mailgun not configured")
		}
		transport = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		logger.Fatalf("qos: %v", err)
	}
	if err := helpers.DeclareQueue(ch, cfg.RabbitMQEmailQueue); err != nil {
		logger.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			handle(logger, transport, msg, cfg.CallTimeout)
		}
	}()

	logger.Infof("email worker listening on queue=%s", cfg.RabbitMQEmailQueue)
	<-stop
	logger.Info("shutting down...")
	_ = ch.Cancel("", false)
	select {
	case <-done:
	case <-time.After(5 * time.Second):
	}
}

// acker is the part of amqp.Delivery handle needs.
type acker interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// handle delivers one job. Undecodable jobs are dead-lettered right away; a
// failed delivery is requeued once and dead-lettered on the second failure.
func handle(logger *logrus.Logger, transport deliverer, msg amqp.Delivery, timeout time.Duration) {
	settle(logger, transport, msg.Body, msg.Redelivered, msg, timeout)
}

func settle(logger *logrus.Logger, transport deliverer, body []byte, redelivered bool, ack acker, timeout time.Duration) {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil || !job.Valid() {
		logger.WithError(err).Warn("bad email job; dead-lettering")
		_ = ack.Nack(false, false)
		return
	}
	log := logger.WithFields(logrus.Fields{"to": job.To, "subject": job.Subject})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := transport.SendJob(ctx, job); err != nil {
		if redelivered {
			log.WithError(err).Error("send failed twice; dead-lettering")
			_ = ack.Nack(false, false)
			return
		}
		log.WithError(err).Warn("send failed; requeueing once")
		_ = ack.Nack(false, true)
		return
	}
	_ = ack.Ack(false)
	log.Info("email sent")
}
