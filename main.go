package main

import (
	"catalog/app"
	"catalog/app/category"
	"catalog/app/product"
	"catalog/infra/postgres"
	"catalog/infra/rabbitmq"
	"catalog/internal/middleware"
	"catalog/pkg/config"
	"catalog/pkg/events"
	"catalog/pkg/flash"
	"catalog/pkg/httperror"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/encryptcookie"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Request any

// PageHandlerInterface is what every page handler implements: parse nothing,
// take a typed request, produce a render-or-redirect result.
type PageHandlerInterface[R Request] interface {
	Handle(ctx context.Context, req *R) (*app.Result, error)
}

func handle[R Request](handler PageHandlerInterface[R]) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req R

		if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
			return writeError(c, httperror.BadRequest(
				"request.invalid_body",
				"Invalid body",
				fiber.Map{"error": err.Error()},
			))
		}

		if err := c.ParamsParser(&req); err != nil {
			return writeError(c, httperror.BadRequest(
				"request.invalid_path_params",
				"Invalid path params",
				fiber.Map{"error": err.Error()},
			))
		}

		ctx := c.UserContext()

		res, err := handler.Handle(ctx, &req)
		if err != nil {
			return writeError(c, err)
		}

		if res.Redirect != "" {
			if res.Flash != nil {
				flash.Set(c, res.Flash)
			}
			return c.Redirect(res.Redirect, fiber.StatusFound)
		}

		data := fiber.Map{
			"Title":           res.Page.Title,
			"MetaDescription": res.Page.MetaDescription,
			"MenuPath":        c.Path(),
		}
		for k, v := range res.Page.Data {
			data[k] = v
		}
		if res.Page.TakeFlash {
			if notice := flash.Take(c); notice != nil {
				data["Flash"] = notice
			}
		}

		return c.Render(res.Page.Template, data)
	}
}

func main() {
	zapConfig := zap.NewDevelopmentConfig()
	zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	logger, _ := zapConfig.Build()
	zap.ReplaceGlobals(logger)
	defer logger.Sync()

	appConfig := config.Read()
	zap.L().Info("app starting...")
	zap.L().Info("app config",
		zap.String("port", appConfig.Port),
		zap.String("serviceName", appConfig.ServiceName),
	)

	pgRepository := postgres.NewPgRepository(
		appConfig.PostgresHost,
		appConfig.PostgresDatabase,
		appConfig.PostgresUsername,
		appConfig.PostgresPassword,
		appConfig.PostgresPort,
		appConfig.PostgresSSLMode,
	)
	defer pgRepository.Close()

	var eventPublisher events.Publisher
	if appConfig.RabbitMQURL != "" {
		publisher, err := rabbitmq.NewPublisher(appConfig.RabbitMQURL, appConfig.ServiceName)
		if err != nil {
			zap.L().Warn("Category events disabled, RabbitMQ unavailable", zap.Error(err))
		} else {
			eventPublisher = publisher
			defer publisher.Close()
		}
	}

	fiberApp := newApp(appConfig.ViewsDir, appConfig.CookieKey, pgRepository, eventPublisher)

	// Start server in a goroutine
	go func() {
		if err := fiberApp.Listen(fmt.Sprintf("0.0.0.0:%s", appConfig.Port)); err != nil {
			zap.L().Error("Failed to start server", zap.Error(err))
			os.Exit(1)
		}
	}()

	zap.L().Info("Server started on port", zap.String("port", appConfig.Port))

	gracefulShutdown(fiberApp)
}

func newApp(viewsDir, cookieKey string, repository app.Repository, eventPublisher events.Publisher) *fiber.App {
	engine := html.New(viewsDir, ".html")

	fiberApp := fiber.New(fiber.Config{
		Views:        engine,
		ViewsLayout:  "layouts/main",
		IdleTimeout:  5 * time.Second,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Flash cookies ride through encryptcookie, so the client holds an
	// opaque token rather than the message text.
	fiberApp.Use(encryptcookie.New(encryptcookie.Config{
		Key: cookieKey,
	}))
	fiberApp.Use(middleware.NewRequestContextMiddleware())

	fiberApp.Get("/", func(c *fiber.Ctx) error {
		return c.Render("index", fiber.Map{
			"Title": "Catalog Admin",
			"Color": "deepskyblue",
		})
	})

	categories := fiberApp.Group("/categories")
	categories.Get("/", handle[category.ListCategoriesRequest](category.NewListCategoriesHandler(repository)))
	categories.Post("/add", handle[category.CreateCategoryRequest](category.NewCreateCategoryHandler(repository, eventPublisher)))
	categories.Get("/edit/:id", handle[category.EditCategoryFormRequest](category.NewEditCategoryFormHandler(repository)))
	categories.Post("/edit/:id", handle[category.UpdateCategoryRequest](category.NewUpdateCategoryHandler(repository, eventPublisher)))
	categories.Get("/delete/:id", handle[category.DeleteCategoryFormRequest](category.NewDeleteCategoryFormHandler(repository)))
	categories.Post("/delete/:id", handle[category.DeleteCategoryRequest](category.NewDeleteCategoryHandler(repository, eventPublisher)))

	products := fiberApp.Group("/products")
	products.Get("/", handle[product.ListProductsRequest](product.NewListProductsHandler(repository)))
	products.Get("/view/:id", handle[product.ViewProductRequest](product.NewViewProductHandler(repository)))

	return fiberApp
}

func gracefulShutdown(fiberApp *fiber.App) {
	// Create channel for shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Wait for shutdown signal
	<-sigChan
	zap.L().Info("Shutting down server...")

	// Shutdown with 5 second timeout
	if err := fiberApp.ShutdownWithTimeout(5 * time.Second); err != nil {
		zap.L().Error("Error during server shutdown", zap.Error(err))
	}

	zap.L().Info("Server gracefully stopped")
}

func writeError(c *fiber.Ctx, err error) error {
	var httpErr *httperror.Error
	if errors.As(err, &httpErr) {
		if httpErr.Status >= fiber.StatusInternalServerError {
			zap.L().Error("Handler returned server error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		} else {
			zap.L().Warn("Handler returned client error", zap.String("code", httpErr.Code), zap.Error(httpErr))
		}

		return c.Status(httpErr.Status).Render("error", fiber.Map{
			"Title":   "Something Went Wrong",
			"Message": httpErr.Message,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		zap.L().Warn("Fiber error", zap.String("message", fiberErr.Message), zap.Error(err))
		return c.Status(fiberErr.Code).Render("error", fiber.Map{
			"Title":   "Something Went Wrong",
			"Message": fiberErr.Message,
		})
	}

	zap.L().Error("Unhandled error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{
		"Title":   "Something Went Wrong",
		"Message": "Internal server error.",
	})
}
