package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/hisaab-kitaab/internal/application/auth"
	"github.com/jhoicas/hisaab-kitaab/internal/application/invoicing"
	infrapdf "github.com/jhoicas/hisaab-kitaab/internal/infrastructure/pdf"
	"github.com/jhoicas/hisaab-kitaab/internal/infrastructure/storage"
	infraxlsx "github.com/jhoicas/hisaab-kitaab/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/hisaab-kitaab/internal/interfaces/http"
	"github.com/jhoicas/hisaab-kitaab/pkg/config"
	"github.com/jhoicas/hisaab-kitaab/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.Log.Level,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	stores, err := storage.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar almacenamiento")
		}
	}()

	var authn auth.AuthenticationService
	if cfg.Auth.PasswordMode == config.PasswordBcrypt {
		authn = auth.NewBcryptAuthenticator(stores.Users, log)
	} else {
		authn = auth.NewPlainAuthenticator(stores.Users, log)
	}
	authUC := auth.NewAuthUseCase(authn, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	invoiceUC := invoicing.NewInvoiceUseCase(stores.Invoices, log)
	exportUC := invoicing.NewExportUseCase(invoiceUC, infrapdf.NewMarotoPDFGenerator(), infraxlsx.NewExporter())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Hisaab Kitaab API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		InvoiceUC: invoiceUC,
		PricingUC: invoicing.NewPricingUseCase(),
		ExportUC:  exportUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
