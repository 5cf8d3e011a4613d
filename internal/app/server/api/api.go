// Серверная сторона лавки: учетные записи владельцев, товарные остатки,
// журнал продаж и долговая книга покупателей.
//
// GET  /api/v1/health                  # Проверка доступности (публичный)
// POST /api/v1/user/register           # Регистрация (публичный)
// POST /api/v1/user/login              # Логин (публичный)
// GET  /api/v1/items                   # Список товаров (auth)
// POST /api/v1/items                   # Завести товар (auth)
// PUT  /api/v1/items/{id}              # Перезаписать товар (auth)
// DELETE /api/v1/items/{id}            # Удалить товар (auth)
// POST /api/v1/sales                   # Записать чек (auth)
// GET  /api/v1/sales                   # Журнал продаж (auth)
// POST /api/v1/ledger                  # Строка долговой книги (auth)
// GET  /api/v1/customers               # Покупатели с балансами (auth)
// GET  /api/v1/customers/{name}/ledger # История покупателя (auth)

package api

import (
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"golang.org/x/exp/slog"

	healthAPI "lavka/internal/app/server/api/http/health"
	itemsAPI "lavka/internal/app/server/api/http/items"
	ledgerAPI "lavka/internal/app/server/api/http/ledger"
	"lavka/internal/app/server/api/http/middleware"
	"lavka/internal/app/server/api/http/middleware/auth"
	"lavka/internal/app/server/api/http/middleware/logger"
	salesAPI "lavka/internal/app/server/api/http/sales"
	userAPI "lavka/internal/app/server/api/http/user"
	"lavka/internal/domain/inventory"
	"lavka/internal/domain/ledger"
	"lavka/internal/domain/sale"
	"lavka/internal/domain/session"
	"lavka/internal/domain/user"
	"lavka/internal/infrastructure/storage/postgres"
)

type Handlers struct {
	Health *healthAPI.Handler
	User   *userAPI.Handler
	Items  *itemsAPI.Handler
	Sales  *salesAPI.Handler
	Ledger *ledgerAPI.Handler
}

// New создает *chi.Mux со всеми операциями через huma.Register
func New(storage *postgres.Storage, log *slog.Logger) *chi.Mux {
	mux := chi.NewMux()

	config := huma.DefaultConfig("Lavka API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer"},
	}

	API := humachi.New(mux, config)

	h := handlers(storage, log)
	h.Health.SetupRoutes(API)
	h.User.SetupRoutes(API)
	h.Items.SetupRoutes(API)
	h.Sales.SetupRoutes(API)
	h.Ledger.SetupRoutes(API)

	return mux
}

func handlers(storage *postgres.Storage, log *slog.Logger) *Handlers {
	sessionRepo := postgres.NewSessionRepository(storage.Pool(), log)
	sessionService := session.NewService(sessionRepo, log)
	authMW := auth.New(sessionService, log)
	loggerMW := logger.New(log)
	middlewares := middleware.NewContainer()

	middlewares.Add(loggerMW.Middleware())
	healthHandler := healthAPI.NewHandler(log, middlewares.GetAllAndClear())

	userRepo := postgres.NewUserRepository(storage.Pool(), log)
	userService := user.NewService(userRepo, log)
	middlewares.Add(loggerMW.Middleware())
	userHandler := userAPI.NewHandler(userService, sessionService, log, middlewares.GetAllAndClear())

	itemRepo := postgres.NewItemRepository(storage.Pool(), log)
	itemService := inventory.NewService(itemRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	itemsHandler := itemsAPI.NewHandler(itemService, log, middlewares.GetAllAndClear())

	saleRepo := postgres.NewSaleRepository(storage.Pool(), log)
	saleService := sale.NewService(saleRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	salesHandler := salesAPI.NewHandler(saleService, log, middlewares.GetAllAndClear())

	ledgerRepo := postgres.NewLedgerRepository(storage.Pool(), log)
	ledgerService := ledger.NewService(ledgerRepo, log)
	middlewares.Add(authMW.Middleware())
	middlewares.Add(loggerMW.Middleware())
	ledgerHandler := ledgerAPI.NewHandler(ledgerService, log, middlewares.GetAllAndClear())

	return &Handlers{
		Health: healthHandler,
		User:   userHandler,
		Items:  itemsHandler,
		Sales:  salesHandler,
		Ledger: ledgerHandler,
	}
}
