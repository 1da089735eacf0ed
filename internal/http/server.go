package httpapi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"

	"education-backend-go/internal/analytics"
	"education-backend-go/internal/config"
	"education-backend-go/internal/db"
	"education-backend-go/internal/services"
	"education-backend-go/internal/storage"
)

type Server struct {
	DB         *sqlx.DB
	Config     config.Config
	Blobs      *storage.BlobStore
	Analytics  *analytics.Service
	Infos      *services.InfoService
	MetricsHub *services.MetricsHub
}

func NewServer(
	database *sqlx.DB,
	cfg config.Config,
	blobs *storage.BlobStore,
	hub *services.MetricsHub,
) *Server {
	reports := analytics.NewService(blobs, cfg.DataDir, cfg.TrainDataObject)
	return &Server{
		DB:         database,
		Config:     cfg,
		Blobs:      blobs,
		Analytics:  reports,
		Infos:      services.NewInfoService(blobs, reports, cfg),
		MetricsHub: hub,
	}
}

// registry builds the service set over the connection pool, for read
// paths and middleware.
func (s *Server) registry() *services.Registry {
	return services.NewRegistry(s.DB, s.Config, s.Blobs)
}

// withTx runs fn over a per-request transaction: one unit of work,
// rolled back on the first error.
func (s *Server) withTx(ctx context.Context, fn func(registry *services.Registry) error) error {
	return db.WithTx(ctx, s.DB, func(tx *sqlx.Tx) error {
		return fn(services.NewRegistry(tx, s.Config, s.Blobs))
	})
}

func (s *Server) Router(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger)
	if len(s.Config.CorsOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.Config.CorsOrigins,
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/login", s.Login)
		api.Post("/auth/registration", s.Registration)
		api.With(s.WithAuth).Post("/auth/refresh", s.Refresh)
		api.With(s.WithAuth).Get("/auth/me", s.Me)

		api.Route("/users", func(users chi.Router) {
			users.Use(s.WithAuth)
			users.With(s.RequirePermission("api_users_get")).Get("/", s.ListUsers)
			users.With(s.RequirePermission("api_users_post")).Post("/", s.CreateUser)
			users.With(s.RequirePermission("api_users_patch")).Patch("/", s.UpdateUser)
			users.With(s.RequirePermission("api_users_delete")).Delete("/", s.DeleteUser)
			users.Get("/me", s.Me)
			users.With(s.RequirePermission("api_users_get")).Get("/{userId}", s.GetUser)
		})

		api.Route("/roles", func(roles chi.Router) {
			roles.Use(s.WithAuth)
			roles.With(s.RequirePermission("api_roles_get")).Get("/", s.ListRoles)
			roles.With(s.RequirePermission("api_roles_post")).Post("/", s.CreateRole)
			roles.With(s.RequirePermission("api_roles_patch")).Patch("/", s.UpdateRole)
			roles.With(s.RequirePermission("api_roles_delete")).Delete("/", s.DeleteRole)
			roles.With(s.RequirePermission("api_roles_get")).Get("/{roleId}", s.GetRole)
		})

		api.With(s.WithAuth, s.RequirePermission("api_attachments_post")).
			Post("/attachments", s.UploadAttachments)

		api.With(s.WithAuth, s.RequirePermission("api_analytics_get")).
			Get("/analytics", s.GetAnalytics)

		api.Route("/info", func(info chi.Router) {
			info.Use(s.WithAuth)
			info.Use(s.RequirePermission("api_info_get"))
			info.Get("/", s.GetInfo)
			info.Get("/subject_area", s.GetSubjectArea)
			info.Get("/target_attribute", s.GetTargetAttribute)
			info.Get("/train_data", s.GetTrainData)
		})

		api.With(s.WithAuth, s.RequirePermission("api_metrics_history")).
			Get("/metrics/history", s.MetricsHistory)
	})

	r.Get("/ws/metrics", s.MetricsSocket)
	return r
}
