// Command server hosts the product authenticity registries: it wires the
// stores, services, and audit pipeline, and exposes ops endpoints (healthz,
// metrics). The caller-facing API is an external adapter concern; adapters
// embed these services and attach their own transport.
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"prodauth/internal/custody"
	"prodauth/internal/identity"
	"prodauth/internal/ledger"
	"prodauth/internal/manufacturer"
	"prodauth/internal/ownership"
	"prodauth/internal/platform/config"
	"prodauth/internal/platform/logger"
	"prodauth/internal/platform/metrics"
	platformredis "prodauth/internal/platform/redis"
	"prodauth/internal/product"
	"prodauth/internal/verify"
	id "prodauth/pkg/domain"
	audit "prodauth/pkg/platform/audit"
	auditkafka "prodauth/pkg/platform/audit/publishers/kafka"
	auditmemory "prodauth/pkg/platform/audit/store/memory"
	auditpostgres "prodauth/pkg/platform/audit/store/postgres"
	auditworker "prodauth/pkg/platform/audit/worker"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	admin, err := id.ParseAccountID(cfg.AdminAccount)
	if err != nil {
		log.Fatalf("PRODAUTH_ADMIN_ACCOUNT is required and must be a 0x-prefixed address: %v", err)
	}

	var (
		db                *sql.DB
		manufacturerStore manufacturer.Store
		productStore      product.Store
		custodyLog        ledger.Log
		ownershipLog      ledger.Log
		auditStore        audit.Store
	)
	if cfg.PostgresDSN != "" {
		db, err = sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Fatalf("open postgres: %v", err)
		}
		if err := db.PingContext(context.Background()); err != nil {
			log.Fatalf("ping postgres: %v", err)
		}
		manufacturerStore = manufacturer.NewPostgresStore(db)
		productStore = product.NewPostgresStore(db)
		custodyLog, err = ledger.NewPostgresLog(db, "custody_events")
		if err != nil {
			log.Fatalf("custody ledger: %v", err)
		}
		ownershipLog, err = ledger.NewPostgresLog(db, "ownership_events")
		if err != nil {
			log.Fatalf("ownership ledger: %v", err)
		}
		auditStore = auditpostgres.New(db)
	} else {
		log.Printf("no postgres DSN configured; running on in-memory stores")
		manufacturerStore = manufacturer.NewInMemoryStore()
		productStore = product.NewInMemoryStore()
		custodyLog = ledger.NewInMemoryLog()
		ownershipLog = ledger.NewInMemoryLog()
		auditStore = auditmemory.New()
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}
	if redisClient != nil {
		productStore = product.NewCachedStore(productStore, redisClient.Client, cfg.ProductCacheTTL)
		defer redisClient.Close()
	}

	// Audit events flow through a channel worker so registry mutations never
	// block on the sink.
	auditSink := audit.Sink(auditStore)
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := auditkafka.New(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		if err != nil {
			log.Fatalf("kafka audit publisher: %v", err)
		}
		defer kafkaPublisher.Close()
		auditSink = kafkaPublisher
	}
	auditInbox := make(chan audit.Event, 256)
	publisher := audit.NewPublisher(&auditworker.ChannelSink{Events: auditInbox})
	worker := auditworker.New(auditSink, auditInbox, log)

	registryMetrics := metrics.New()
	verifyMetrics := verify.NewMetrics()

	access := identity.NewAccessControl(admin, manufacturerStore)
	authenticator := identity.NewAuthenticator(cfg.JWTSigningKey, "prodauth")

	manufacturerService := manufacturer.NewService(manufacturerStore, access,
		manufacturer.WithAudit(publisher), manufacturer.WithMetrics(registryMetrics))
	productService := product.NewService(productStore, access,
		product.WithAudit(publisher), product.WithMetrics(registryMetrics))
	ownershipService := ownership.NewService(ownershipLog, productService,
		ownership.WithAudit(publisher), ownership.WithMetrics(registryMetrics))
	custodyService := custody.NewService(custodyLog, ownershipService,
		custody.WithAudit(publisher), custody.WithMetrics(registryMetrics))
	verifyService := verify.NewService(productService, ownershipService, custodyService, access,
		verify.WithMetrics(verifyMetrics))

	core := &registryCore{
		Authenticator: authenticator,
		Manufacturers: manufacturerService,
		Products:      productService,
		Ownership:     ownershipService,
		Custody:       custodyService,
		Verify:        verifyService,
		db:            db,
		redis:         redisClient,
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go func() {
		if err := worker.Run(workerCtx); err != nil && workerCtx.Err() == nil {
			log.Printf("audit worker stopped: %v", err)
		}
	}()

	router := chi.NewRouter()
	router.Get("/healthz", core.healthz)
	router.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("starting prodauth registries on %s (admin %s)", cfg.Addr, admin)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("graceful shutdown failed: %v", err)
	}
}
