package main

import (
	"slotwise/internal/calendar/handler"
	"slotwise/internal/calendar/repository"
	"slotwise/internal/calendar/service"
	"slotwise/internal/calendar/validator"
	"slotwise/pkg/app"
	"slotwise/pkg/config"
)

const ServiceName = "calendar"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Calendar service")
	calendarService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewCalendarHandler(calendarService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.CalendarService {
	hoursRepo := repository.NewMongoBusinessHoursRepository(cfg)
	blockedRepo := repository.NewMongoBlockedSlotRepository(cfg)
	calendarValidator := validator.NewCalendarValidator(cfg.Log)

	calendarService := service.NewCalendarService(hoursRepo, blockedRepo, calendarValidator, cfg)

	cfg.Log.Info("Calendar service initialized", "database", cfg.MongoDatabaseName)
	return calendarService
}
