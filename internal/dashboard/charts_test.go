package dashboard

import (
	"testing"
	"time"

	"sqlfinance-backend/internal/models"
	"sqlfinance-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoicesByPeriod(t *testing.T) {
	db := testutil.NewDB(t)

	testutil.SeedPlatform(t, db, "p1", "Nequi")
	testutil.SeedClient(t, db, "c1", "Ana", "ana@mail.com", "p1")
	testutil.SeedInvoice(t, db, "FAC-1", "c1", "2025-01", 100, 50)
	testutil.SeedInvoice(t, db, "FAC-2", "c1", "2025-01", 200, 0)
	testutil.SeedInvoice(t, db, "FAC-3", "c1", "2025-02", 300, 300)

	rows, err := InvoicesByPeriod(db)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// períodos más recientes primero
	assert.Equal(t, "2025-02", rows[0].BillingPeriod)
	assert.Equal(t, int64(1), rows[0].Cantidad)

	assert.Equal(t, "2025-01", rows[1].BillingPeriod)
	assert.Equal(t, int64(2), rows[1].Cantidad)
	assert.Equal(t, float64(300), rows[1].TotalFacturado)
	assert.Equal(t, float64(50), rows[1].TotalPagado)
}

func TestInvoicesByPeriodKeepsTwelveMostRecent(t *testing.T) {
	db := testutil.NewDB(t)

	testutil.SeedPlatform(t, db, "p1", "Nequi")
	testutil.SeedClient(t, db, "c1", "Ana", "ana@mail.com", "p1")

	months := []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"}
	for _, m := range months {
		testutil.SeedInvoice(t, db, "FAC-2024-"+m, "c1", "2024-"+m, 10, 0)
	}
	testutil.SeedInvoice(t, db, "FAC-2025-01", "c1", "2025-01", 10, 0)

	rows, err := InvoicesByPeriod(db)
	require.NoError(t, err)
	require.Len(t, rows, 12)

	// con 13 períodos, el más viejo (2024-01) queda fuera
	assert.Equal(t, "2025-01", rows[0].BillingPeriod)
	assert.Equal(t, "2024-02", rows[11].BillingPeriod)
}

func TestTransactionsByStatus(t *testing.T) {
	db := testutil.NewDB(t)

	testutil.SeedPlatform(t, db, "p1", "Nequi")
	testutil.SeedClient(t, db, "c1", "Ana", "ana@mail.com", "p1")
	when := time.Now().UTC()
	testutil.SeedTransaction(t, db, "TXN-1", "c1", when, 500, models.StatusCompletada, "Pago de Factura")
	testutil.SeedTransaction(t, db, "TXN-2", "c1", when, 300, models.StatusPendiente, "Pago de Factura")
	testutil.SeedTransaction(t, db, "TXN-3", "c1", when, 200, models.StatusPendiente, "Ajuste")

	rows, err := TransactionsByStatus(db)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byStatus := map[string]StatusBucket{}
	for _, r := range rows {
		byStatus[r.StatusTransaction] = r
	}

	assert.Equal(t, int64(1), byStatus["Completada"].Cantidad)
	assert.Equal(t, float64(500), byStatus["Completada"].TotalMonto)
	assert.Equal(t, int64(2), byStatus["Pendiente"].Cantidad)
	assert.Equal(t, float64(500), byStatus["Pendiente"].TotalMonto)
}

func TestClientsByPlatformIncludesZeroCountPlatforms(t *testing.T) {
	db := testutil.NewDB(t)

	testutil.SeedPlatform(t, db, "p1", "Nequi")
	testutil.SeedPlatform(t, db, "p2", "Zelle")
	testutil.SeedClient(t, db, "c1", "Ana", "ana@mail.com", "p1")
	testutil.SeedClient(t, db, "c2", "Beto", "beto@mail.com", "p1")

	rows, err := ClientsByPlatform(db)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byName := map[string]int64{}
	for _, r := range rows {
		byName[r.PlatformName] = r.Cantidad
	}
	assert.Equal(t, int64(2), byName["Nequi"])
	assert.Equal(t, int64(0), byName["Zelle"])
}

func TestTransactionsByMonthOmitsEmptyMonths(t *testing.T) {
	db := testutil.NewDB(t)

	testutil.SeedPlatform(t, db, "p1", "Nequi")
	testutil.SeedClient(t, db, "c1", "Ana", "ana@mail.com", "p1")

	now := time.Date(2025, 8, 15, 10, 0, 0, 0, time.UTC)
	unMesAtras := now.AddDate(0, -1, 0)
	cincoMesesAtras := now.AddDate(0, -5, 0)
	catorceMesesAtras := now.AddDate(0, -14, 0) // fuera de la ventana

	testutil.SeedTransaction(t, db, "TXN-1", "c1", unMesAtras, 100, models.StatusCompletada, "Pago de Factura")
	testutil.SeedTransaction(t, db, "TXN-2", "c1", unMesAtras.Add(time.Hour), 50, models.StatusPendiente, "Ajuste")
	testutil.SeedTransaction(t, db, "TXN-3", "c1", cincoMesesAtras, 25, models.StatusCompletada, "Pago de Factura")
	testutil.SeedTransaction(t, db, "TXN-4", "c1", catorceMesesAtras, 999, models.StatusCompletada, "Pago de Factura")

	rows, err := TransactionsByMonth(db, now)
	require.NoError(t, err)

	// solo los dos meses con actividad dentro de la ventana; los meses vacíos
	// intermedios no se rellenan
	require.Len(t, rows, 2)
	assert.Equal(t, unMesAtras.Format("2006-01"), rows[0].Mes)
	assert.Equal(t, int64(2), rows[0].Cantidad)
	assert.Equal(t, float64(150), rows[0].TotalMonto)
	assert.Equal(t, cincoMesesAtras.Format("2006-01"), rows[1].Mes)
	assert.Equal(t, float64(25), rows[1].TotalMonto)
}
