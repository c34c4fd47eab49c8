package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"localexplorer/cmd/fx/catalog_fx"
	"localexplorer/cmd/fx/controllers_fx"
	"localexplorer/cmd/fx/db_fx"
	"localexplorer/cmd/fx/places_fx"
	"localexplorer/cmd/fx/query_fx"
	"localexplorer/cmd/fx/sync_fx"
	"localexplorer/internal/api/controllers"
	"localexplorer/pkg/config"
	"localexplorer/pkg/logger"
	"localexplorer/pkg/middleware"
)

func main() {
	// best effort: environment wins over the .env file, absence is fine
	_ = godotenv.Load()

	app := fx.New(
		fx.Provide(config.Load),
		fx.Provide(logger.New),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log}
		}),

		db_fx.Module,
		places_fx.Module,
		catalog_fx.Module,
		sync_fx.Module,
		query_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, log *zap.Logger) {
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting HTTP server", zap.String("port", cfg.Port))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("HTTP server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return server.Shutdown(ctx)
		},
	})
}

func ProvideRouter(placesController *controllers.PlacesController) *gin.Engine {
	r := gin.Default()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, placesController)

	return r
}

func RegisterRoutes(r *gin.Engine, placesController *controllers.PlacesController) {
	placesGroup := r.Group("/places")
	placesGroup.GET("", placesController.ListPlaces)
	placesGroup.GET("/live", placesController.StreamPlaces)
	placesGroup.GET("/favorites", placesController.ListFavorites)
	placesGroup.GET("/:id", placesController.GetPlaceByID)
	placesGroup.POST("/:id/favorite", placesController.ToggleFavorite)

	r.GET("/categories", placesController.ListCategories)
	r.PUT("/query", placesController.UpdateQuery)
	r.POST("/sync/retry", placesController.RetrySeed)
}
