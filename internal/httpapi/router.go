package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"b3acon/internal/analytics"
	"b3acon/internal/api"
	"b3acon/internal/audit"
	"b3acon/internal/auth"
	"b3acon/internal/customer"
	"b3acon/internal/gdpr"
	"b3acon/internal/order"
	"b3acon/internal/product"
	"b3acon/internal/shop"
	"b3acon/internal/webhook"
	"b3acon/internal/webhookconfig"
	"b3acon/pkg/config"
)

type Dependencies struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Logger zerolog.Logger
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	shopsRepo := shop.NewRepository(deps.DB)
	webhookConfigRepo := webhookconfig.NewRepository(deps.DB)
	auditRepo := audit.NewRepository(deps.DB)

	authHandlers := auth.Handlers{
		Cfg:            deps.Cfg,
		Shops:          shopsRepo,
		WebhookConfigs: webhookConfigRepo,
		Logger:         deps.Logger,
	}

	gdprService := &gdpr.Service{
		Shops:          shopsRepo,
		Customers:      customer.NewRepository(deps.DB),
		Orders:         order.NewRepository(deps.DB),
		Analytics:      analytics.NewRepository(deps.DB),
		WebhookConfigs: webhookConfigRepo,
		Products:       product.NewRepository(deps.DB),
		Requests:       auditRepo,
		Logger:         deps.Logger,
	}

	webhookHandler := webhook.Handler{
		Verifier: webhook.Verifier{
			Secret: deps.Cfg.Shopify.WebhookSecret,
			Strict: deps.Cfg.StrictWebhookVerification,
			Logger: deps.Logger,
		},
		Events: webhook.EventLog{DB: deps.DB},
		GDPR:   gdprService,
		Logger: deps.Logger,
	}

	auditHandlers := audit.Handlers{Repo: auditRepo, Logger: deps.Logger}

	// v1
	r.Route("/v1", func(r chi.Router) {
		r.Get("/auth/install", authHandlers.Install)
		r.Get("/auth/callback", authHandlers.Callback)

		// Merchant dashboard APIs (shop-scoped, embedded session token auth)
		r.Group(func(r chi.Router) {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins:   deps.Cfg.DashboardAllowedOrigins,
				AllowedMethods:   []string{"GET", "OPTIONS"},
				AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Shop-Domain"},
				AllowCredentials: true,
				MaxAge:           600,
			}))
			r.Use(api.ShopifySessionAuth(deps.Cfg, shopsRepo))

			r.Get("/gdpr/requests", auditHandlers.List)
		})

		// Same view reached through the Shopify app proxy (storefront-side
		// embedding); authenticated by the signed query string instead.
		r.Group(func(r chi.Router) {
			r.Use(auth.ProxyAuth(deps.Cfg, shopsRepo, deps.Logger))

			r.Get("/proxy/gdpr/requests", auditHandlers.List)
		})

		// Webhooks (lifecycle + mandatory GDPR topics)
		r.Post("/webhooks/shopify/{topic}", webhookHandler.ServeHTTP)
	})

	return r
}
