package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"climate-science-service/auth"
	"climate-science-service/config"
	"climate-science-service/export"
	"climate-science-service/models"
	"climate-science-service/query"
)

var (
	requestCounter *prometheus.CounterVec
	recordGauge    *prometheus.GaugeVec
)

func init() {
	requestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "climate_http_requests_total",
			Help: "Total number of HTTP requests by resource, method and status.",
		},
		[]string{"resource", "method", "status"},
	)
	recordGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "climate_records",
			Help: "Current number of rows per table.",
		},
		[]string{"table"},
	)
	prometheus.MustRegister(requestCounter, recordGauge)
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	logging.Info("Connected to climate database.")

	logging.Info("Running database auto-migration...")
	db.AutoMigrate(
		&models.Person{}, &models.Publication{}, &models.Declaration{},
		&models.Quotation{}, &models.Authorship{}, &models.Signatory{},
		&models.User{}, &models.Journal{},
	)

	if gin.Mode() == gin.DebugMode {
		seedAdminUser(db, cfg, logging)
		seedJournals(db, logging)
	}

	journals, err := export.LoadAbbreviations(db)
	if err != nil {
		logging.Warn("Failed to load journal abbreviations", zap.Error(err))
		journals = export.Abbreviations{}
	}

	env := &serverEnv{
		cfg:    cfg,
		log:    logging,
		db:     db,
		exec:   query.NewExecutor(db),
		tokens: auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL()),
		pdf:    export.NewPDFRenderer(journals),
	}
	router := newRouter(env)

	cronScheduler := cron.New()
	cronScheduler.AddFunc(cfg.GaugeSchedule, func() {
		refreshRecordGauges(db, logging)
	})
	cronScheduler.Start()
	refreshRecordGauges(db, logging)

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

func refreshRecordGauges(db *gorm.DB, logger *zap.Logger) {
	tables := []string{"person", "publication", "declaration", "quotation", "authorship", "signatory"}
	for _, table := range tables {
		var n int64
		if err := db.Table(table).Count(&n).Error; err != nil {
			logger.Warn("Failed to count records", zap.String("table", table), zap.Error(err))
			continue
		}
		recordGauge.WithLabelValues(table).Set(float64(n))
	}
}

func seedAdminUser(db *gorm.DB, cfg *config.Config, logger *zap.Logger) {
	if cfg.AdminPassword == "" {
		return
	}
	var count int64
	db.Model(&models.User{}).Where("id = ?", "admin").Count(&count)
	if count > 0 {
		return
	}
	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		logger.Warn("Failed to hash admin password", zap.Error(err))
		return
	}
	admin := models.User{
		ID:           "admin",
		PasswordHash: hash,
		FirstName:    "Default",
		LastName:     "Admin",
		Email:        "admin@localhost",
	}
	if err := db.Create(&admin).Error; err != nil {
		logger.Warn("Failed to seed admin user", zap.Error(err))
	} else {
		logger.Info("Default admin user seeded.")
	}
}

func seedJournals(db *gorm.DB, logger *zap.Logger) {
	var count int64
	db.Model(&models.Journal{}).Count(&count)
	if count > 0 {
		return
	}
	journals := []models.Journal{
		{Name: "Geophysical Research Letters", Abbreviation: "Geophys. Res. Lett."},
		{Name: "Journal of Geophysical Research", Abbreviation: "J. Geophys. Res."},
		{Name: "Bulletin of the American Meteorological Society", Abbreviation: "Bull. Am. Meteorol. Soc."},
		{Name: "Energy & Environment", Abbreviation: "Energy Environ."},
		{Name: "Climate Research", Abbreviation: "Clim. Res."},
	}
	if err := db.Create(&journals).Error; err != nil {
		logger.Warn("Failed to seed journal abbreviations", zap.Error(err))
		return
	}
	logger.Info("Journal abbreviations seeded.", zap.Int("count", len(journals)))
}
