package router

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"os"
	"time"

	mem "care-companion/internal/adapters/storage/memory"
	pg "care-companion/internal/adapters/storage/postgres"
	"care-companion/internal/domain/accounts"
	"care-companion/internal/domain/activity"
	"care-companion/internal/domain/alerts"
	"care-companion/internal/domain/floorplan"
	"care-companion/internal/domain/medications"
	"care-companion/internal/domain/patients"
	"care-companion/internal/domain/voice"
	"care-companion/internal/middleware"
	"care-companion/internal/platform/logger"
	"care-companion/internal/ports/assistant"
	"care-companion/internal/ports/auth"
	"care-companion/internal/ports/notify"
	"care-companion/internal/vitals"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier    // puede ser nil (modo dev)
	TokenIssuer  accounts.TokenIssuer // puede ser nil: no se montan /auth/*

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	Sender    notify.Sender       // nil = alertas sólo al log
	Assistant assistant.Assistant // nil = asistente degradado
	Vitals    *vitals.Simulator   // nil = sin /api/vitals

	CORSAllowedOrigins   []string
	CORSAllowCredentials bool

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(opts.CORSAllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSAllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Authorization", "Content-Type"},
			AllowCredentials: opts.CORSAllowCredentials,
		}))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		accountRepo accounts.Repository
		patientRepo patients.Repository
		medRepo     medications.Repository
		trailRepo   activity.Repository
		planRepo    floorplan.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			}
		}
	}

	if db != nil {
		accountRepo = pg.NewAccountsRepo(db)
		patientRepo = pg.NewPatientsRepo(db)
		medRepo = pg.NewMedicationsRepo(db)
		trailRepo = pg.NewActivityRepo(db)
		planRepo = pg.NewFloorplanRepo(db)
	} else {
		accountRepo = mem.NewAccountsRepo()
		patientRepo = mem.NewPatientsRepo()
		medRepo = mem.NewMedicationsRepo()
		trailRepo = mem.NewActivityRepo()
		planRepo = mem.NewFloorplanRepo()
	}

	// Services por módulo
	trailSvc := activity.NewService(trailRepo)
	medsSvc := medications.NewService(medRepo, trailSvc, log)
	patientsSvc := patients.NewService(patientRepo, medsSvc)
	accountsSvc := accounts.NewService(accountRepo)
	alertsSvc := alerts.NewService(trailSvc, opts.Sender, log)
	voiceSvc := voice.NewService(opts.Assistant, log)
	planSvc := floorplan.NewService(planRepo)

	// Rutas por módulo
	if opts.TokenIssuer != nil {
		accounts.RegisterRoutes(r, accountsSvc, opts.TokenIssuer)
	}
	patients.RegisterRoutes(r, patientsSvc)
	medications.RegisterRoutes(r, medsSvc, patientsSvc)
	activity.RegisterRoutes(r, trailSvc)
	alerts.RegisterRoutes(r, alertsSvc)
	voice.RegisterRoutes(r, voiceSvc, patientsSvc, medsSvc)
	floorplan.RegisterRoutes(r, planSvc)

	if opts.Vitals != nil {
		registerVitals(r, opts.Vitals)
	}

	return r
}

func registerVitals(r chi.Router, sim *vitals.Simulator) {
	r.Get("/api/vitals", func(w http.ResponseWriter, _ *http.Request) {
		snap := sim.Latest()
		if snap.Timestamp.IsZero() {
			snap.Timestamp = time.Now()
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(snap)
	})
}
