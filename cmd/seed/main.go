// seed carga datos en el almacenamiento configurado (STORAGE_DRIVER).
//
// Uso:
//
//	go run ./cmd/seed                       # usuario demo/demo con facturas de ejemplo
//	go run ./cmd/seed -import hk_dump.json  # importa un volcado hk_users / hk_invoices
//
// Las facturas se recalculan antes de guardarse; los usuarios existentes no se tocan.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/hisaab-kitaab/internal/application/auth"
	"github.com/jhoicas/hisaab-kitaab/internal/application/dto"
	"github.com/jhoicas/hisaab-kitaab/internal/application/invoicing"
	"github.com/jhoicas/hisaab-kitaab/internal/domain"
	"github.com/jhoicas/hisaab-kitaab/internal/domain/pricing"
	"github.com/jhoicas/hisaab-kitaab/internal/infrastructure/localdump"
	"github.com/jhoicas/hisaab-kitaab/internal/infrastructure/storage"
	"github.com/jhoicas/hisaab-kitaab/pkg/config"
	"github.com/jhoicas/hisaab-kitaab/pkg/logger"
)

type options struct {
	importPath   string
	demoUser     string
	demoPassword string
}

func main() {
	var opts options
	flag.StringVar(&opts.importPath, "import", "", "volcado JSON con hk_users y hk_invoices")
	flag.StringVar(&opts.demoUser, "user", "demo", "usuario demo")
	flag.StringVar(&opts.demoPassword, "password", "demo", "contraseña del usuario demo")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	if err := run(context.Background(), cfg, log, opts); err != nil {
		log.Error().Err(err).Msg("seed")
		os.Exit(1)
	}
	log.Info().Msg("seed completado")
}

// run abre el almacenamiento y lo cierra antes de volver, también cuando falla.
func run(ctx context.Context, cfg *config.Config, log *logger.Logger, opts options) (err error) {
	stores, err := storage.Open(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("abrir almacenamiento: %w", err)
	}
	defer func() {
		if cerr := stores.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("cerrar almacenamiento: %w", cerr))
		}
	}()

	var hasher auth.PasswordHasher = auth.PlainHasher{}
	if cfg.Auth.PasswordMode == config.PasswordBcrypt {
		hasher = auth.BcryptHasher{}
	}

	if opts.importPath != "" {
		return importDump(ctx, stores, hasher, opts.importPath, log)
	}
	return seedDemo(ctx, stores, hasher, opts.demoUser, opts.demoPassword, log)
}

func importDump(ctx context.Context, stores *storage.Stores, hasher auth.PasswordHasher, path string, log *logger.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("abrir volcado: %w", err)
	}
	defer f.Close()

	dump, err := localdump.Parse(f)
	if err != nil {
		return err
	}
	for _, u := range dump.Users {
		stored, err := hasher.Hash(u.Password)
		if err != nil {
			return err
		}
		u.Password = stored
		if err := stores.Users.Create(ctx, &u); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				log.Warn().Str("username", u.Username).Msg("usuario ya existe, se omite")
				continue
			}
			return err
		}
	}
	for _, inv := range dump.Invoices {
		pricing.Apply(inv)
		if err := stores.Invoices.Save(ctx, inv); err != nil {
			return fmt.Errorf("guardar factura %s: %w", inv.ID, err)
		}
	}
	log.Info().Int("users", len(dump.Users)).Int("invoices", len(dump.Invoices)).Msg("volcado importado")
	return nil
}

func seedDemo(ctx context.Context, stores *storage.Stores, hasher auth.PasswordHasher, username, password string, log *logger.Logger) error {
	authn := auth.NewAuthenticator(stores.Users, hasher, log)
	ok, err := authn.ValidateOrRegisterUser(ctx, username, password)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("el usuario %q ya existe con otra contraseña", username)
	}

	uc := invoicing.NewInvoiceUseCase(stores.Invoices, log)
	for _, req := range demoInvoices() {
		if _, err := uc.Save(ctx, username, req); err != nil {
			return err
		}
	}
	return nil
}

func num(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func demoInvoices() []dto.SaveInvoiceRequest {
	return []dto.SaveInvoiceRequest{
		{
			Name: "City Medical Store", Date: "2025-03-01", Status: "Pending",
			Items: []dto.InvoiceItemRequest{
				{ItemName: "Panadol 500mg", Qty: num("10"), Rate: num("35")},
				{ItemName: "Brufen 400mg", Qty: num("5"), Rate: num("120"), DiscountPercent: num("5")},
				{ItemName: "Augmentin 625mg", Qty: num("3"), Rate: num("540"), DiscountPercent: num("-3")},
			},
			PaidAmounts: []dto.PaidAmountRequest{{Narration: "Advance cash", Amount: num("1000")}},
		},
		{
			Name: "Al-Shifa Pharmacy", Date: "2025-02-14", Status: "Paid",
			Items: []dto.InvoiceItemRequest{
				{ItemName: "Ventolin Inhaler", Qty: num("4"), Rate: num("480")},
				{ItemName: "Flagyl 400mg", Qty: num("20"), Rate: num("18.5")},
			},
			PaidAmounts: []dto.PaidAmountRequest{{Narration: "Bank transfer", Amount: num("1949.95")}},
		},
	}
}
