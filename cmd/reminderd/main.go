package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	bookingrepo "github.com/anshif14/petzify-sub001/internal/bookings/repository"
	"github.com/anshif14/petzify-sub001/internal/reminders"
	"github.com/anshif14/petzify-sub001/pkg/config"
	"github.com/anshif14/petzify-sub001/pkg/kafka"
	"github.com/anshif14/petzify-sub001/pkg/mailer"
)

const ServiceName = "reminderd"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting reminder daemon")

	producer := initProducer(cfg)
	sender := mailer.NewSMTPSender(mailer.Config{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}, cfg.Log)

	notifier := reminders.NewEmailNotifier(sender, producer, cfg.Log)
	scheduler := reminders.NewScheduler(bookingrepo.NewMongoAppointmentRepository(cfg), notifier, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx)
		close(done)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	sig := <-shutdown
	cfg.Log.Info("Shutdown signal received", "signal", sig)

	cancel()
	<-done

	if err := producer.Close(); err != nil {
		cfg.Log.Error("Failed to close Kafka producer", "error", err)
	}
	cfg.GracefulShutdown()
	cfg.Log.Info("Reminder daemon stopped gracefully")
}

// initProducer returns nil when no brokers are configured; a nil producer
// drops events and the daemon runs email-only.
func initProducer(cfg *config.Config) *kafka.Producer {
	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Warn("Kafka brokers not configured, reminder events disabled")
		return nil
	}

	producer, err := kafka.NewProducer(cfg.KafkaBrokers, cfg.KafkaReminderTopic, ServiceName, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize Kafka producer", "error", err)
	}

	cfg.Log.Info("Kafka producer initialized", "topic", cfg.KafkaReminderTopic)
	return producer
}
