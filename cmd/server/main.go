package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/hawi-me/eld-trip-planner-backend/internal/adapters/cache"
	"github.com/hawi-me/eld-trip-planner-backend/internal/adapters/repositories"
	"github.com/hawi-me/eld-trip-planner-backend/internal/adapters/routing"
	"github.com/hawi-me/eld-trip-planner-backend/internal/api"
	"github.com/hawi-me/eld-trip-planner-backend/internal/config"
	"github.com/hawi-me/eld-trip-planner-backend/internal/hos"
	"github.com/hawi-me/eld-trip-planner-backend/internal/platform/db"
	"github.com/hawi-me/eld-trip-planner-backend/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Nominatim, OSRM) behind
// ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")
	userAgent := config.Get("GEOCODER_USER_AGENT", "eld-trip-planner/1.0")
	osrmBaseURL := config.Get("OSRM_BASE_URL", "")

	conn, repo, geocodeCache, routeCache, err := openStorage()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	if err := repositories.InitSchema(conn); err != nil {
		log.Fatal(err)
	}

	geocoder, err := routing.NewNominatimGeocoder(userAgent, geocodeCache)
	if err != nil {
		log.Fatal(err)
	}

	provider, err := routing.NewOSRMRouteProvider(osrmBaseURL, userAgent, routeCache)
	if err != nil {
		log.Fatal(err)
	}

	scheduler := hos.NewScheduler(hos.DefaultLimits())
	router := api.NewRouter(repo, geocoder, provider, scheduler)

	// Timeouts are tuned for cold-cache planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openStorage selects the storage backend: Postgres when DATABASE_URL is
// set, otherwise a local SQLite file.
func openStorage() (*sql.DB, ports.TripRepository, routing.GeocodeCache, routing.RouteCache, error) {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, nil, nil, err
		}

		log.Println("Using postgres storage")
		return conn,
			repositories.NewSQLTripRepository(conn),
			cache.NewSQLGeocodeCache(conn),
			cache.NewSQLRouteCache(conn),
			nil
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	conn, err := db.OpenSQLite(dbPath)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	log.Printf("Using sqlite storage path=%s", dbPath)
	return conn,
		repositories.NewSqliteTripRepository(conn),
		cache.NewSqliteGeocodeCache(conn),
		cache.NewSqliteRouteCache(conn),
		nil
}
