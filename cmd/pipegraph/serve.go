package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	fiberlogger "github.com/gofiber/fiber/v3/middleware/logger"
	"github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/spectrakit/pipegraph/pkg/log"
	"github.com/spectrakit/pipegraph/pkg/otelhelper"
	"github.com/spectrakit/pipegraph/pkg/registry"
	"github.com/spectrakit/pipegraph/pkg/web"
)

func NewServeCommand() *cli.Command {
	flags := append(registryFlags(),
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "Port to run the API server on",
			Value:   9091,
			Sources: cli.EnvVars("PORT"),
		},
		&cli.BoolFlag{
			Name:    "tracing",
			Usage:   "Export OTLP traces for pipeline operations",
			Sources: cli.EnvVars("PIPEGRAPH_TRACING"),
		},
	)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Serve the node catalog and pipeline validation API",
		Flags:   flags,
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))
			logger := log.WithModule("api")

			logger.Info("Initializing pipegraph API")

			var tracer trace.Tracer

			if command.Bool("tracing") {
				provider, err := otelhelper.NewTracerProvider(ctx, "pipegraph-api")
				if err != nil {
					return fmt.Errorf("failed to initialize tracer: %w", err)
				}

				defer func() {
					if err := provider.Shutdown(ctx); err != nil {
						logger.Error("Failed to shutdown tracer provider", "error", err)
					}
				}()

				tracer = provider.Tracer("pipegraph-api")
			} else {
				tracer = otel.Tracer("pipegraph-api")
			}

			reg, err := newRegistry(ctx, logger, command)
			if err != nil {
				return err
			}

			app := newApp(logger, reg, tracer)

			return app.Listen(fmt.Sprintf(":%d", command.Int("port")))
		},
	}
}

func newApp(logger *slog.Logger, reg *registry.Registry, tracer trace.Tracer) *fiber.App {
	handlers := web.NewAPIHandlers(logger, reg, tracer)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("pipegraph API")
	})

	nodes := app.Group("/nodes")
	nodes.Get("/", handlers.ListNodeTypes)
	nodes.Get("/categories", handlers.ListNodeCategories)
	nodes.Get("/:typeId", handlers.GetNodeType)

	pipelines := app.Group("/pipelines")
	pipelines.Post("/validate", handlers.ValidatePipeline)
	pipelines.Post("/layout", handlers.LayoutPipeline)
	pipelines.Post("/normalize", handlers.NormalizePipeline)

	return app
}
