package app

import (
	"context"

	authAPI "prize_pool/internal/api/auth"
	poolAPI "prize_pool/internal/api/pool"
	userAPI "prize_pool/internal/api/user"
	"prize_pool/internal/audit"
	"prize_pool/internal/config"
	"prize_pool/internal/config/env"
	"prize_pool/internal/events"
	"prize_pool/internal/middleware"
	"prize_pool/internal/repository"
	"prize_pool/internal/repository/auth_repo"
	"prize_pool/internal/repository/pool_repo"
	"prize_pool/internal/repository/pool_stats_repo"
	"prize_pool/internal/repository/spin_repo"
	"prize_pool/internal/repository/ticket_repo"
	"prize_pool/internal/repository/user_repo"
	"prize_pool/internal/service"
	"prize_pool/internal/service/auth"
	"prize_pool/internal/service/payment"
	"prize_pool/internal/service/pool"
	"prize_pool/pkg/logger"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Configs
	appCfg    config.AppConfig
	engineCfg config.EngineConfig
	jwtCfg    config.JWTConfig
	natsCfg   config.NATSConfig
	auditCfg  config.AuditConfig

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Auth bits
	authRepo repository.AuthRepository
	authServ service.AuthService
	authHand *authAPI.Handler

	// User bits
	userRepo    repository.UserRepository
	paymentServ service.PaymentService
	userHand    *userAPI.Handler

	// Pool bits
	poolRepo   repository.PoolRepository
	ticketRepo repository.TicketRepository
	spinRepo   repository.SpinRepository
	statsRepo  repository.PoolStatsRepository
	auditStore *audit.Store
	emitter    events.Emitter
	poolServ   service.PoolService
	poolHand   *poolAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) AppCfg() config.AppConfig {
	if sp.appCfg == nil {
		cfg, err := env.NewAppConfig()
		if err != nil {
			panic("failed to get app config: " + err.Error())
		}
		sp.appCfg = cfg
	}
	return sp.appCfg
}

func (sp *ServiceProvider) EngineCfg() config.EngineConfig {
	if sp.engineCfg == nil {
		cfg, err := env.NewEngineConfigFromYAML(env.EngineConfigPath())
		if err != nil {
			panic("failed to get engine config: " + err.Error())
		}
		sp.engineCfg = cfg
	}
	return sp.engineCfg
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

func (sp *ServiceProvider) NATSCfg() config.NATSConfig {
	if sp.natsCfg == nil {
		cfg, err := env.NewNATSConfig()
		if err != nil {
			panic("failed to get nats config: " + err.Error())
		}
		sp.natsCfg = cfg
	}
	return sp.natsCfg
}

func (sp *ServiceProvider) AuditCfg() config.AuditConfig {
	if sp.auditCfg == nil {
		cfg, err := env.NewAuditConfig()
		if err != nil {
			panic("failed to get audit config: " + err.Error())
		}
		sp.auditCfg = cfg
	}
	return sp.auditCfg
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
		cfg, err := pgxpool.ParseConfig(sp.PgConfig().DSN())
		if err != nil {
			panic("failed to parse db dsn: " + err.Error())
		}
		if maxConns := sp.PgConfig().MaxConns(); maxConns > 0 {
			cfg.MaxConns = maxConns
		}

		dbc, err := pgxpool.NewWithConfig(ctx, cfg)
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

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx))
	}
	return sp.authRepo
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) PoolRepo(ctx context.Context) repository.PoolRepository {
	if sp.poolRepo == nil {
		sp.poolRepo = pool_repo.NewPoolRepository(sp.DBClient(ctx))
	}
	return sp.poolRepo
}

func (sp *ServiceProvider) TicketRepo(ctx context.Context) repository.TicketRepository {
	if sp.ticketRepo == nil {
		sp.ticketRepo = ticket_repo.NewTicketRepository(sp.DBClient(ctx))
	}
	return sp.ticketRepo
}

func (sp *ServiceProvider) SpinRepo(ctx context.Context) repository.SpinRepository {
	if sp.spinRepo == nil {
		sp.spinRepo = spin_repo.NewSpinRepository(sp.DBClient(ctx))
	}
	return sp.spinRepo
}

func (sp *ServiceProvider) StatsRepo() repository.PoolStatsRepository {
	if sp.statsRepo == nil {
		cfg := sp.EngineCfg()
		sp.statsRepo = pool_stats_repo.NewPoolStatsRepository(cfg.StatsWindow(), cfg.DriftCheckPeriod(), cfg.MaxDrift())
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) AuditStore() *audit.Store {
	if sp.auditStore == nil {
		store, err := audit.Open(sp.AuditCfg().Dir())
		if err != nil {
			panic("failed to open audit store: " + err.Error())
		}
		sp.auditStore = store
	}
	return sp.auditStore
}

// Emitter без NATS_URL события не публикуются
func (sp *ServiceProvider) Emitter() events.Emitter {
	if sp.emitter == nil {
		cfg := sp.NATSCfg()
		if cfg.URL() == "" {
			logger.Info("NATS_URL is empty, events are disabled")
			sp.emitter = events.NewNoopEmitter()
			return sp.emitter
		}

		conn, err := events.Connect(cfg.URL())
		if err != nil {
			panic("failed to connect to nats: " + err.Error())
		}
		sp.emitter = events.NewNATSEmitter(conn, cfg.SubjectPrefix())
	}
	return sp.emitter
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = auth.NewAuthService(sp.TXManager(ctx), sp.UserRepo(ctx), sp.AuthRepo(ctx), sp.JWTCfg())
	}
	return sp.authServ
}

func (sp *ServiceProvider) PaymentService(ctx context.Context) service.PaymentService {
	if sp.paymentServ == nil {
		sp.paymentServ = payment.NewPaymentService(sp.UserRepo(ctx), sp.TXManager(ctx))
	}
	return sp.paymentServ
}

func (sp *ServiceProvider) PoolService(ctx context.Context) service.PoolService {
	if sp.poolServ == nil {
		sp.poolServ = pool.NewPoolService(pool.Deps{
			PoolRepo:     sp.PoolRepo(ctx),
			TicketRepo:   sp.TicketRepo(ctx),
			SpinRepo:     sp.SpinRepo(ctx),
			UserRepo:     sp.UserRepo(ctx),
			StatsRepo:    sp.StatsRepo(),
			AuditRepo:    sp.AuditStore(),
			Emitter:      sp.Emitter(),
			TxManager:    sp.TXManager(ctx),
			Params:       sp.EngineCfg().Params(),
			VaultReserve: sp.AppCfg().VaultReserve(),
		})
	}
	return sp.poolServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{Serv: sp.AuthService(ctx)})
	}
	return sp.authHand
}

func (sp *ServiceProvider) UserHandler(ctx context.Context) *userAPI.Handler {
	if sp.userHand == nil {
		sp.userHand = userAPI.NewHandler(userAPI.HandlerDeps{
			Serv:             sp.PaymentService(ctx),
			CurrencyDecimals: sp.AppCfg().CurrencyDecimals(),
		})
	}
	return sp.userHand
}

func (sp *ServiceProvider) PoolHandler(ctx context.Context) *poolAPI.Handler {
	if sp.poolHand == nil {
		sp.poolHand = poolAPI.NewHandler(poolAPI.HandlerDeps{
			Serv:             sp.PoolService(ctx),
			CurrencyDecimals: sp.AppCfg().CurrencyDecimals(),
		})
	}
	return sp.poolHand
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

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Auth endpoints
		authHandler := sp.AuthHandler(ctx)
		r.Route("/auth", func(rr chi.Router) {
			rr.Post("/register", authHandler.Register)
			rr.Post("/login", authHandler.Login)
			rr.Post("/refresh", authHandler.Refresh)
			rr.Post("/logout", authHandler.Logout)
		})

		// Эндпоинты ниже требуют access токен
		poolHandler := sp.PoolHandler(ctx)
		userHandler := sp.UserHandler(ctx)
		r.Group(func(rr chi.Router) {
			rr.Use(middleware.Auth(sp.JWTCfg().AccessTokenSecretKey()))

			rr.Route("/pools", func(pr chi.Router) {
				pr.Post("/", poolHandler.CreatePool)
				pr.Get("/{id}", poolHandler.GetPool)
				pr.Post("/{id}/tickets", poolHandler.BuyTicket)
				pr.Post("/{id}/spin", poolHandler.Spin)
				pr.Post("/{id}/withdraw", poolHandler.Withdraw)
				pr.Patch("/{id}/items/{index}", poolHandler.SetItemAvailability)
				pr.Get("/{id}/analysis", poolHandler.Analysis)
				pr.Get("/{id}/stats", poolHandler.Stats)
			})

			rr.Route("/users", func(ur chi.Router) {
				ur.Post("/deposit", userHandler.Deposit)
				ur.Get("/balance", userHandler.Balance)
			})
		})

		sp.router = r
	}

	return sp.router
}

// Close освобождает внешние ресурсы, созданные провайдером
func (sp *ServiceProvider) Close() {
	if sp.emitter != nil {
		sp.emitter.Close()
	}
	if sp.auditStore != nil {
		if err := sp.auditStore.Close(); err != nil {
			logger.Error("failed to close audit store", "error", err)
		}
	}
	if sp.dbClient != nil {
		sp.dbClient.Close()
	}
}
