package queries

import (
	"testing"
	"time"

	"sqlfinance-backend/internal/models"
	"sqlfinance-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPaidByClient(t *testing.T) {
	db := testutil.NewDB(t)

	testutil.SeedPlatform(t, db, "p1", "Nequi")
	testutil.SeedClient(t, db, "c1", "Ana", "ana@mail.com", "p1")

	// dos facturas: 100 facturado / 100 pagado y 200 facturado / 50 pagado
	testutil.SeedInvoice(t, db, "FAC-1", "c1", "2025-01", 100, 100)
	testutil.SeedInvoice(t, db, "FAC-2", "c1", "2025-02", 200, 50)

	rows, err := TotalPaidByClient(db)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, float64(150), rows[0].TotalPaid)
	assert.Equal(t, float64(300), rows[0].TotalInvoiced)
	assert.Equal(t, float64(150), rows[0].PendingBalance)
}

func TestTotalPaidByClientZeroInvoices(t *testing.T) {
	db := testutil.NewDB(t)

	testutil.SeedPlatform(t, db, "p1", "Nequi")
	testutil.SeedClient(t, db, "c1", "Ana", "ana@mail.com", "p1")

	rows, err := TotalPaidByClient(db)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// sin facturas: ceros, no nulls ni fila omitida
	assert.Equal(t, float64(0), rows[0].TotalPaid)
	assert.Equal(t, float64(0), rows[0].TotalInvoiced)
	assert.Equal(t, float64(0), rows[0].PendingBalance)
}

func TestTotalPaidByClientOverpaymentGoesNegative(t *testing.T) {
	db := testutil.NewDB(t)

	testutil.SeedPlatform(t, db, "p1", "Nequi")
	testutil.SeedClient(t, db, "c1", "Ana", "ana@mail.com", "p1")
	testutil.SeedInvoice(t, db, "FAC-1", "c1", "2025-01", 100, 130)

	rows, err := TotalPaidByClient(db)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, float64(-30), rows[0].PendingBalance)
}

func TestPendingInvoicesFilterAndFanOut(t *testing.T) {
	db := testutil.NewDB(t)

	testutil.SeedPlatform(t, db, "p1", "Nequi")
	testutil.SeedClient(t, db, "c1", "Ana", "ana@mail.com", "p1")

	testutil.SeedInvoice(t, db, "FAC-pendiente", "c1", "2025-01", 500, 100)
	testutil.SeedInvoice(t, db, "FAC-pagada", "c1", "2025-02", 300, 300) // no debe salir

	// dos transacciones de pago del mismo cliente: la factura pendiente se
	// duplica, una fila por transacción (fan-out conservado)
	when := time.Now().UTC()
	testutil.SeedTransaction(t, db, "TXN-1", "c1", when, 100, models.StatusCompletada, "Pago de Factura")
	testutil.SeedTransaction(t, db, "TXN-2", "c1", when.Add(time.Hour), 50, models.StatusPendiente, "Pago de Factura")
	testutil.SeedTransaction(t, db, "TXN-3", "c1", when, 999, models.StatusCompletada, "Ajuste") // tipo distinto, no participa

	rows, err := PendingInvoices(db)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	for _, r := range rows {
		assert.Equal(t, "FAC-pendiente", r.InvoiceNumber)
		assert.Equal(t, float64(400), r.PendingAmount)
	}
	ids := []string{*rows[0].IDTransaction, *rows[1].IDTransaction}
	assert.ElementsMatch(t, []string{"TXN-1", "TXN-2"}, ids)
}

func TestPendingInvoicesWithoutPaymentTransaction(t *testing.T) {
	db := testutil.NewDB(t)

	testutil.SeedPlatform(t, db, "p1", "Nequi")
	testutil.SeedClient(t, db, "c1", "Ana", "ana@mail.com", "p1")
	testutil.SeedInvoice(t, db, "FAC-1", "c1", "2025-01", 100, 0)

	rows, err := PendingInvoices(db)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	// sin transacción de pago: los campos de la transacción quedan en null
	assert.Nil(t, rows[0].IDTransaction)
	assert.Nil(t, rows[0].AmountTransaction)
}

func TestPendingInvoicesOrderByPendingAmountDesc(t *testing.T) {
	db := testutil.NewDB(t)

	testutil.SeedPlatform(t, db, "p1", "Nequi")
	testutil.SeedClient(t, db, "c1", "Ana", "ana@mail.com", "p1")
	testutil.SeedInvoice(t, db, "FAC-menor", "c1", "2025-01", 100, 90)
	testutil.SeedInvoice(t, db, "FAC-mayor", "c1", "2025-02", 1000, 0)

	rows, err := PendingInvoices(db)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "FAC-mayor", rows[0].InvoiceNumber)
	assert.Equal(t, "FAC-menor", rows[1].InvoiceNumber)
}

func TestTransactionsByPlatform(t *testing.T) {
	db := testutil.NewDB(t)

	testutil.SeedPlatform(t, db, "p1", "Nequi")
	testutil.SeedPlatform(t, db, "p2", "Zelle")
	testutil.SeedClient(t, db, "c1", "Ana", "ana@mail.com", "p1")
	testutil.SeedClient(t, db, "c2", "Beto", "beto@mail.com", "p2")

	when := time.Now().UTC()
	testutil.SeedTransaction(t, db, "TXN-1", "c1", when, 100, models.StatusCompletada, "Pago de Factura")
	testutil.SeedTransaction(t, db, "TXN-2", "c2", when, 200, models.StatusCompletada, "Pago de Factura")

	rows, err := TransactionsByPlatform(db, "p1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "TXN-1", rows[0].IDTransaction)
	require.NotNil(t, rows[0].PlatformName)
	assert.Equal(t, "Nequi", *rows[0].PlatformName)
}

func TestTransactionsByPlatformInvoiceFanOut(t *testing.T) {
	db := testutil.NewDB(t)

	testutil.SeedPlatform(t, db, "p1", "Nequi")
	testutil.SeedClient(t, db, "c1", "Ana", "ana@mail.com", "p1")

	// un cliente con 2 facturas: cada transacción sale duplicada, una fila
	// por factura (fan-out conservado)
	testutil.SeedInvoice(t, db, "FAC-1", "c1", "2025-01", 100, 0)
	testutil.SeedInvoice(t, db, "FAC-2", "c1", "2025-02", 200, 0)
	testutil.SeedTransaction(t, db, "TXN-1", "c1", time.Now().UTC(), 100, models.StatusCompletada, "Pago de Factura")

	rows, err := TransactionsByPlatform(db, "p1")
	require.NoError(t, err)
	require.Len(t, rows, 2)

	numbers := []string{*rows[0].InvoiceNumber, *rows[1].InvoiceNumber}
	assert.ElementsMatch(t, []string{"FAC-1", "FAC-2"}, numbers)
}
