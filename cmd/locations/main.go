package main

import (
	"github.com/anshif14/petzify-sub001/internal/locations/cache"
	"github.com/anshif14/petzify-sub001/internal/locations/geocode"
	"github.com/anshif14/petzify-sub001/internal/locations/geolocate"
	locationhandler "github.com/anshif14/petzify-sub001/internal/locations/handler"
	locationservice "github.com/anshif14/petzify-sub001/internal/locations/service"
	providerhandler "github.com/anshif14/petzify-sub001/internal/providers/handler"
	providerrepo "github.com/anshif14/petzify-sub001/internal/providers/repository"
	providerservice "github.com/anshif14/petzify-sub001/internal/providers/service"
	usersrepo "github.com/anshif14/petzify-sub001/internal/users/repository"
	"github.com/anshif14/petzify-sub001/pkg/app"
	"github.com/anshif14/petzify-sub001/pkg/config"
)

const ServiceName = "locations"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetMaps()

	cfg.Log.Info("Starting Locations service")

	resolver := initResolver(cfg)
	providers := providerservice.NewProviderService(providerrepo.NewMongoProviderRepository(cfg), cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		locationhandler.NewLocationHandler(resolver, cfg.Log),
		providerhandler.NewProviderHandler(providers, cfg.Log),
	)
	serverApp.Run()
}

func initResolver(cfg *config.Config) locationservice.LocationResolver {
	store := cache.NewMemoryStore()
	profiles := usersrepo.NewMongoUserProfileRepository(cfg)
	geolocator := geolocate.NewGoogleGeolocator(cfg.Client.Maps, cfg.GeolocationTimeout, cfg.Log)
	geocoder := geocode.NewGoogleGeocoder(cfg.Client.Maps, cfg.Log)

	resolver := locationservice.NewLocationResolver(store, profiles, geolocator, geocoder, cfg)
	cfg.Log.Info("Location resolver initialized", "database", cfg.MongoDatabaseName)
	return resolver
}
