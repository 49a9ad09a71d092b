package app

import (
	"context"
	"net/http"

	adminAPI "prize_wheel/internal/api/admin"
	authAPI "prize_wheel/internal/api/auth"
	kioskAPI "prize_wheel/internal/api/kiosk"
	"prize_wheel/internal/config"
	"prize_wheel/internal/config/env"
	"prize_wheel/internal/iconstore"
	"prize_wheel/internal/middleware"
	"prize_wheel/internal/render"
	"prize_wheel/internal/repository"
	"prize_wheel/internal/repository/admin_repo"
	"prize_wheel/internal/repository/auth_repo"
	"prize_wheel/internal/repository/prize_repo"
	"prize_wheel/internal/repository/wheel_stats_repo"
	"prize_wheel/internal/service"
	"prize_wheel/internal/service/admin"
	"prize_wheel/internal/service/auth"
	"prize_wheel/internal/service/catalog"
	"prize_wheel/internal/service/kiosk"
	"prize_wheel/internal/service/outcome"
	"prize_wheel/internal/wheel"
	"prize_wheel/pkg/logger"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const configPath = "config.yaml"

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Auth bits
	jwtCfg    config.JWTConfig
	adminRepo repository.AdminRepository
	authRepo  repository.AuthRepository
	authServ  service.AuthService
	authHand  *authAPI.Handler

	// Wheel bits
	wheelCfg    config.WheelConfig
	renderCfg   config.RenderConfig
	iconCfg     config.IconConfig
	reporterCfg config.ReporterConfig
	prizeRepo   repository.PrizeRepository
	statsRepo   repository.WheelStatsRepository
	catalogServ service.CatalogService
	engine      *wheel.Engine
	renderer    *render.Renderer
	reporter    service.OutcomeReporter
	hub         *kioskAPI.Hub
	kioskServ   *kiosk.Controller
	kioskHand   *kioskAPI.Handler

	// Admin bits
	adminCfg  config.AdminConfig
	adminServ service.AdminService
	adminHand *adminAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		poolCfg, err := pgxpool.ParseConfig(sp.PgConfig().DSN())
		if err != nil {
			panic("failed to parse db dsn: " + err.Error())
		}
		poolCfg.MaxConns = sp.PgConfig().MaxConns()

		dbc, err := pgxpool.NewWithConfig(ctx, poolCfg)
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}
		sp.txManager = m
	}
	return sp.txManager
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) AdminRepo(ctx context.Context) repository.AdminRepository {
	if sp.adminRepo == nil {
		sp.adminRepo = admin_repo.NewAdminRepository(sp.DBClient(ctx))
	}
	return sp.adminRepo
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx))
	}
	return sp.authRepo
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewService(sp.TXManager(ctx), sp.AdminRepo(ctx), sp.AuthRepo(ctx), sp.JWTCfg())
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{Serv: sp.AuthService(ctx)})
	}
	return sp.authHand
}

func (sp *ServiceProvider) WheelCfg() config.WheelConfig {
	if sp.wheelCfg == nil {
		cfg, err := env.NewWheelConfigFromYAML(configPath)
		if err != nil {
			panic("failed to get wheel config: " + err.Error())
		}
		sp.wheelCfg = cfg
	}
	return sp.wheelCfg
}

func (sp *ServiceProvider) RenderCfg() config.RenderConfig {
	if sp.renderCfg == nil {
		cfg, err := env.NewRenderConfigFromYAML(configPath)
		if err != nil {
			panic("failed to get render config: " + err.Error())
		}
		sp.renderCfg = cfg
	}
	return sp.renderCfg
}

func (sp *ServiceProvider) IconCfg() config.IconConfig {
	if sp.iconCfg == nil {
		sp.iconCfg = env.NewIconConfig()
	}
	return sp.iconCfg
}

func (sp *ServiceProvider) ReporterCfg() config.ReporterConfig {
	if sp.reporterCfg == nil {
		cfg, err := env.NewReporterConfigFromYAML(configPath)
		if err != nil {
			panic("failed to get reporter config: " + err.Error())
		}
		sp.reporterCfg = cfg
	}
	return sp.reporterCfg
}

func (sp *ServiceProvider) AdminCfg() config.AdminConfig {
	if sp.adminCfg == nil {
		cfg, err := env.NewAdminConfigFromYAML(configPath)
		if err != nil {
			panic("failed to get admin config: " + err.Error())
		}
		sp.adminCfg = cfg
	}
	return sp.adminCfg
}

func (sp *ServiceProvider) sectorMode() wheel.SectorMode {
	mode, err := wheel.ParseSectorMode(sp.WheelCfg().SectorMode())
	if err != nil {
		panic("failed to get sector mode: " + err.Error())
	}
	return mode
}

func (sp *ServiceProvider) PrizeRepo(ctx context.Context) repository.PrizeRepository {
	if sp.prizeRepo == nil {
		sp.prizeRepo = prize_repo.NewPrizeRepository(sp.DBClient(ctx))
	}
	return sp.prizeRepo
}

func (sp *ServiceProvider) StatsRepo() repository.WheelStatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = wheel_stats_repo.NewWheelStatsRepository()
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) CatalogService(ctx context.Context) service.CatalogService {
	if sp.catalogServ == nil {
		sp.catalogServ = catalog.NewService(sp.PrizeRepo(ctx), sp.WheelCfg().PrizeOrder(), sp.sectorMode())
	}
	return sp.catalogServ
}

func (sp *ServiceProvider) Engine() *wheel.Engine {
	if sp.engine == nil {
		cfg := sp.WheelCfg()
		sp.engine = wheel.NewEngine(wheel.Config{
			Duration: cfg.SpinDuration(),
			MinSpins: cfg.MinSpins(),
			MaxSpins: cfg.MaxSpins(),
		})
	}
	return sp.engine
}

// IconSource routes http(s) references to the web, s3 references to the
// bucket and bare references to ICON_DIR, falling back to the bucket.
func (sp *ServiceProvider) IconSource(ctx context.Context) render.IconSource {
	cfg := sp.IconCfg()
	web := iconstore.NewHTTP()
	mux := &iconstore.Mux{Schemes: map[string]iconstore.Source{
		"http":  web,
		"https": web,
	}}

	if cfg.Bucket() != "" {
		bucket, err := iconstore.NewS3(ctx, iconstore.S3Config{
			Bucket:   cfg.Bucket(),
			Region:   cfg.Region(),
			Endpoint: cfg.Endpoint(),
		})
		if err != nil {
			panic("failed to create s3 icon source: " + err.Error())
		}
		mux.Schemes["s3"] = bucket
		mux.Default = bucket
	}
	if cfg.Dir() != "" {
		dir := iconstore.Dir{Root: cfg.Dir()}
		mux.Schemes["file"] = dir
		mux.Default = dir
	}
	return mux
}

func (sp *ServiceProvider) Renderer(ctx context.Context) *render.Renderer {
	if sp.renderer == nil {
		cfg := sp.RenderCfg()
		r, err := render.New(render.Config{
			Size:            cfg.Size(),
			FontSize:        cfg.FontSize(),
			LabelColor:      cfg.LabelColor(),
			LightLabelColor: cfg.LightLabelColor(),
			RingColor:       cfg.RingColor(),
			HubColor:        cfg.HubColor(),
		}, sp.IconSource(ctx))
		if err != nil {
			panic("failed to create renderer: " + err.Error())
		}
		sp.renderer = r
	}
	return sp.renderer
}

func (sp *ServiceProvider) Reporter(ctx context.Context) service.OutcomeReporter {
	if sp.reporter == nil {
		cfg := sp.ReporterCfg()
		r, err := outcome.NewReporter(sp.CatalogService(ctx), sp.StatsRepo(), cfg.Workers(), cfg.Timeout())
		if err != nil {
			panic("failed to create outcome reporter: " + err.Error())
		}
		sp.reporter = r
	}
	return sp.reporter
}

func (sp *ServiceProvider) Hub() *kioskAPI.Hub {
	if sp.hub == nil {
		sp.hub = kioskAPI.NewHub()
	}
	return sp.hub
}

func (sp *ServiceProvider) KioskService(ctx context.Context) *kiosk.Controller {
	if sp.kioskServ == nil {
		sp.kioskServ = kiosk.NewController(
			sp.CatalogService(ctx),
			sp.Engine(),
			sp.sectorMode(),
			wheel.TimerScheduler{Interval: sp.WheelCfg().FrameInterval()},
			sp.Renderer(ctx),
			sp.Reporter(ctx),
			sp.Hub(),
		)
	}
	return sp.kioskServ
}

func (sp *ServiceProvider) KioskHandler(ctx context.Context) *kioskAPI.Handler {
	if sp.kioskHand == nil {
		sp.kioskHand = kioskAPI.NewHandler(kioskAPI.HandlerDeps{
			Serv: sp.KioskService(ctx),
			Hub:  sp.Hub(),
		})
	}
	return sp.kioskHand
}

func (sp *ServiceProvider) AdminService(ctx context.Context) service.AdminService {
	if sp.adminServ == nil {
		sp.adminServ = admin.NewService(
			sp.TXManager(ctx),
			sp.CatalogService(ctx),
			sp.KioskService(ctx),
			sp.StatsRepo(),
			sp.AdminCfg().MaxQuantity(),
		)
	}
	return sp.adminServ
}

func (sp *ServiceProvider) AdminHandler(ctx context.Context) *adminAPI.Handler {
	if sp.adminHand == nil {
		sp.adminHand = adminAPI.NewHandler(adminAPI.HandlerDeps{Serv: sp.AdminService(ctx)})
	}
	return sp.adminHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}
	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()
		r.Use(chimw.Recoverer)
		r.Use(requestLogger)

		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
		r.Handle("/metrics", promhttp.Handler())

		kioskHandler := sp.KioskHandler(ctx)
		r.Route("/kiosk", func(rr chi.Router) {
			rr.Get("/state", kioskHandler.State)
			rr.Post("/enter", kioskHandler.Enter)
			rr.Post("/spin", kioskHandler.Spin)
			rr.Post("/back", kioskHandler.Back)
			rr.Get("/result", kioskHandler.Result)
			rr.Get("/wheel.png", kioskHandler.WheelPNG)
			rr.Get("/ws", kioskHandler.WS)
		})

		authHandler := sp.AuthHandler(ctx)
		adminHandler := sp.AdminHandler(ctx)
		r.Route("/admin", func(rr chi.Router) {
			rr.Post("/login", authHandler.Login)
			rr.Post("/refresh", authHandler.Refresh)

			rr.Group(func(pr chi.Router) {
				pr.Use(middleware.Auth(sp.JWTCfg().AccessTokenSecretKey()))
				pr.Post("/logout", authHandler.Logout)
				pr.Get("/prizes", adminHandler.ListPrizes)
				pr.Patch("/prizes", adminHandler.UpdatePrizes)
				pr.Patch("/prizes/{id}", adminHandler.UpdatePrize)
				pr.Get("/stats", adminHandler.Stats)
				pr.Post("/reload", adminHandler.Reload)
			})
		})

		sp.router = r
	}
	return sp.router
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.L().Debug("http request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()))
	})
}
