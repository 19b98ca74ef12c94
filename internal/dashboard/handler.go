package dashboard

import (
	"errors"
	"time"

	"sqlfinance-backend/internal/apperr"
	"sqlfinance-backend/internal/database"
	"sqlfinance-backend/internal/invoices"
	"sqlfinance-backend/internal/response"
	"sqlfinance-backend/internal/transactions"

	"github.com/gofiber/fiber/v2"
)

// StatsBundle - paquete completo de estadísticas del dashboard
type StatsBundle struct {
	General            *GeneralCounts                 `json:"general"`
	Invoices           *invoices.InvoiceStats         `json:"invoices"`
	Transactions       *transactions.TransactionStats `json:"transactions"`
	Platforms          []PlatformBreakdownRow         `json:"platforms"`
	TopClients         []TopClientRow                 `json:"topClients"`
	RecentInvoices     []RecentInvoiceRow             `json:"recentInvoices"`
	RecentTransactions []RecentTransactionRow         `json:"recentTransactions"`
}

// GET /api/dashboard/stats
func StatsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		db := database.WithCtx(c)
		bundle := StatsBundle{}

		var err error
		if bundle.General, err = Counts(db); err != nil {
			return apperr.Internal("Error obteniendo estadísticas del dashboard", err)
		}
		if bundle.Invoices, err = invoices.Stats(db); err != nil {
			return apperr.Internal("Error obteniendo estadísticas del dashboard", err)
		}
		if bundle.Transactions, err = transactions.Stats(db); err != nil {
			return apperr.Internal("Error obteniendo estadísticas del dashboard", err)
		}
		if bundle.Platforms, err = PlatformBreakdown(db); err != nil {
			return apperr.Internal("Error obteniendo estadísticas del dashboard", err)
		}
		if bundle.TopClients, err = TopClients(db); err != nil {
			return apperr.Internal("Error obteniendo estadísticas del dashboard", err)
		}
		if bundle.RecentInvoices, err = RecentInvoices(db); err != nil {
			return apperr.Internal("Error obteniendo estadísticas del dashboard", err)
		}
		if bundle.RecentTransactions, err = RecentTransactions(db); err != nil {
			return apperr.Internal("Error obteniendo estadísticas del dashboard", err)
		}

		return response.OK(c, bundle)
	}
}

// ChartsBundle - series de datos para los gráficos del frontend
type ChartsBundle struct {
	InvoicesByPeriod     []PeriodBucket         `json:"invoicesByPeriod"`
	TransactionsByStatus []StatusBucket         `json:"transactionsByStatus"`
	ClientsByPlatform    []PlatformClientBucket `json:"clientsByPlatform"`
	TransactionsByMonth  []MonthBucket          `json:"transactionsByMonth"`
}

// GET /api/dashboard/charts
func ChartsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		db := database.WithCtx(c)
		bundle := ChartsBundle{}

		var err error
		if bundle.InvoicesByPeriod, err = InvoicesByPeriod(db); err != nil {
			return apperr.Internal("Error obteniendo datos para gráficos", err)
		}
		if bundle.TransactionsByStatus, err = TransactionsByStatus(db); err != nil {
			return apperr.Internal("Error obteniendo datos para gráficos", err)
		}
		if bundle.ClientsByPlatform, err = ClientsByPlatform(db); err != nil {
			return apperr.Internal("Error obteniendo datos para gráficos", err)
		}
		if bundle.TransactionsByMonth, err = TransactionsByMonth(db, time.Now()); err != nil {
			return apperr.Internal("Error obteniendo datos para gráficos", err)
		}

		return response.OK(c, bundle)
	}
}

// GET /api/dashboard/search?q=
func SearchHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		results, err := Search(database.WithCtx(c), c.Query("q"))
		if err != nil {
			var ae *apperr.Error
			if errors.As(err, &ae) {
				return err
			}
			return apperr.Internal("Error en búsqueda", err)
		}

		return response.OK(c, results)
	}
}
