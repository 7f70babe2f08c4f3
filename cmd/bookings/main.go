package main

import (
	bookinghandler "github.com/anshif14/petzify-sub001/internal/bookings/handler"
	bookingrepo "github.com/anshif14/petzify-sub001/internal/bookings/repository"
	bookingservice "github.com/anshif14/petzify-sub001/internal/bookings/service"
	"github.com/anshif14/petzify-sub001/internal/bookings/validator"
	pethandler "github.com/anshif14/petzify-sub001/internal/pets/handler"
	petrepo "github.com/anshif14/petzify-sub001/internal/pets/repository"
	petservice "github.com/anshif14/petzify-sub001/internal/pets/service"
	userhandler "github.com/anshif14/petzify-sub001/internal/users/handler"
	usersrepo "github.com/anshif14/petzify-sub001/internal/users/repository"
	userservice "github.com/anshif14/petzify-sub001/internal/users/service"
	"github.com/anshif14/petzify-sub001/pkg/app"
	"github.com/anshif14/petzify-sub001/pkg/config"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Bookings service")

	appointments := initAppointments(cfg)
	pets := petservice.NewPetService(petrepo.NewMongoPetRepository(cfg), cfg)
	users := userservice.NewUserProfileService(usersrepo.NewMongoUserProfileRepository(cfg), cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		bookinghandler.NewAppointmentHandler(appointments, cfg.Log),
		pethandler.NewPetHandler(pets, cfg.Log),
		userhandler.NewUserProfileHandler(users, cfg.Log),
	)
	serverApp.Run()
}

func initAppointments(cfg *config.Config) bookingservice.AppointmentService {
	appointmentValidator := validator.NewAppointmentValidator(cfg.Log)
	appointmentRepo := bookingrepo.NewMongoAppointmentRepository(cfg)
	appointmentService := bookingservice.NewAppointmentService(
		appointmentRepo,
		appointmentValidator,
		cfg,
	)

	cfg.Log.Info("Appointment service initialized", "database", cfg.MongoDatabaseName)
	return appointmentService
}
