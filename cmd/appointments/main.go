package main

import (
	"slotwise/internal/appointments/handler"
	apptsrepo "slotwise/internal/appointments/repository"
	"slotwise/internal/appointments/service"
	"slotwise/internal/appointments/validator"
	"slotwise/internal/availability"
	calendarrepo "slotwise/internal/calendar/repository"
	"slotwise/internal/notifications"
	"slotwise/internal/policy"
	"slotwise/pkg/app"
	"slotwise/pkg/config"
	"slotwise/pkg/kafka"
	kafka_config "slotwise/pkg/kafka/config"
	kafka_middleware "slotwise/pkg/kafka/middleware"
)

const ServiceName = "appointments"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Appointments service")
	appointmentService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewAppointmentHandler(appointmentService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.AppointmentService {
	appointmentRepo := apptsrepo.NewMongoAppointmentRepository(cfg)
	lockRepo := apptsrepo.NewSlotLockRepository(cfg)
	hoursRepo := calendarrepo.NewMongoBusinessHoursRepository(cfg)
	blockedRepo := calendarrepo.NewMongoBlockedSlotRepository(cfg)

	resolver := availability.NewResolver(hoursRepo, blockedRepo, appointmentRepo, cfg)
	policyEngine := policy.NewEngine(cfg.RefundPolicy, cfg.CancelDeadline, cfg.RescheduleDeadline)
	appointmentValidator := validator.NewAppointmentValidator(cfg.Log)

	appointmentService := service.NewAppointmentService(
		appointmentRepo,
		lockRepo,
		resolver,
		policyEngine,
		appointmentValidator,
		initDispatcher(cfg),
		cfg,
	)

	cfg.Log.Info("Appointment service initialized", "database", cfg.MongoDatabaseName)
	return appointmentService
}

func initDispatcher(cfg *config.Config) *notifications.Dispatcher {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, notification events will be logged only")
		return notifications.NewDispatcher(nil, cfg.KafkaNotificationsTopic, ServiceName, cfg.Log)
	}

	kafkaCfg := kafka_config.Load()
	producer, err := kafka.NewProducer(
		kafkaCfg,
		cfg.KafkaNotificationsTopic,
		cfg.KafkaNotificationsDLQ,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware())
	}

	cfg.Log.Info("Kafka producer initialized", "topic", cfg.KafkaNotificationsTopic)
	return notifications.NewDispatcher(producer, cfg.KafkaNotificationsTopic, ServiceName, cfg.Log)
}
