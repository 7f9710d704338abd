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

	"github.com/jhoicas/Comanda-api/internal/application/billing"
	"github.com/jhoicas/Comanda-api/internal/application/inventory"
	"github.com/jhoicas/Comanda-api/internal/domain/receipt"
	"github.com/jhoicas/Comanda-api/internal/domain/repository"
	inframongo "github.com/jhoicas/Comanda-api/internal/infrastructure/mongo"
	infrapdf "github.com/jhoicas/Comanda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Comanda-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Comanda-api/internal/infrastructure/redis"
	httpRouter "github.com/jhoicas/Comanda-api/internal/interfaces/http"
	"github.com/jhoicas/Comanda-api/pkg/config"
	"github.com/jhoicas/Comanda-api/pkg/logger"
)

// stores repositorios del driver elegido.
type stores struct {
	dishes   repository.DishRepository
	items    repository.InventoryItemRepository
	orders   repository.OrderRepository
	txRunner inventory.TxRunner
	close    func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	st, err := openStores(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.App.StoreDriver).Msg("conexión a la base de datos")
	}
	defer st.close()

	// Números de cuenta: reservados en Redis si está configurado, si no aleatorios.
	var bills receipt.BillNumberSource = receipt.RandomBillNumbers{}
	if cfg.Redis.Enabled() {
		rdb, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer func() { _ = rdb.Close() }()
		bills = infraredis.NewBillNumberAllocator(rdb, cfg.Redis.BillNumberTTL, cfg.Redis.BillMaxAttempt)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("reserva de números de cuenta en Redis")
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: números de cuenta aleatorios sin verificación de colisión")
	}

	usageUC := inventory.NewUsageUseCase(st.dishes, st.items)
	deductUC := inventory.NewDeductStockUseCase(st.txRunner, st.orders, usageUC, log)
	receiptUC := billing.NewReceiptUseCase(st.orders, receipt.NewGenerator(bills), cfg.Receipt.StoreName, log)
	pdfUC := billing.NewReceiptPDFUseCase(receiptUC, infrapdf.NewMarotoReceiptGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Comanda API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.App.StoreDriver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		UsageUC:   usageUC,
		DeductUC:  deductUC,
		ReceiptUC: receiptUC,
		PDFUC:     pdfUC,
		JWTSecret: cfg.JWT.Secret,
		Logger:    log,
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

func openStores(ctx context.Context, cfg *config.Config) (*stores, error) {
	if cfg.App.StoreDriver == config.StoreDriverMongo {
		client, err := inframongo.Connect(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		db := client.Database(cfg.Mongo.Database)
		return &stores{
			dishes:   inframongo.NewDishRepository(db),
			items:    inframongo.NewInventoryItemRepository(db),
			orders:   inframongo.NewOrderRepository(db),
			txRunner: inframongo.NewTxRunner(client, db),
			close:    func() { _ = client.Disconnect(context.Background()) },
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	return &stores{
		dishes:   postgres.NewDishRepository(pool),
		items:    postgres.NewInventoryItemRepository(pool),
		orders:   postgres.NewOrderRepository(pool),
		txRunner: postgres.NewTxRunner(pool),
		close:    pool.Close,
	}, nil
}
