package orders

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JuliusHayter/albert-hod-101-2025-1/internal/models"
)

const sampleReceipt = `
<html><body>
  <h2>Commande n° 123456</h2>
  <table class="fluid" align="left">
    <tr><td>
      <p style="font-weight:bolder">Chez Luigi</p>
      <p style="color:#828585">12 Rue de Paris</p>
      <p style="color:#828585">75001 Paris</p>
    </td></tr>
  </table>
  <table role="listitem">
    <tr>
      <td><p>2x</p></td>
      <td><p style="color:#000001">Margherita Pizza</p></td>
      <td><p style="text-align:right">9,50 €</p></td>
    </tr>
  </table>
  <table>
    <tr>
      <td><p class="total">Total</p></td>
      <td><p>21,50 €</p></td>
    </tr>
  </table>
</body></html>
`

func TestRunWritesBatchJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Mon_12_Aug_2024_19_32_05_.html"), []byte(sampleReceipt), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	// A directory with an .html suffix cannot be read as a file; the
	// batch must log and continue past it.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "broken.html"), 0o755))

	outputFile := filepath.Join(t.TempDir(), "all_orders.json")
	batch, err := Run(nil, dir, outputFile)
	require.NoError(t, err)
	require.Len(t, batch.Orders, 1)

	order := batch.Orders[0]
	require.NotNil(t, order.Order.Number)
	assert.Equal(t, "123456", *order.Order.Number)
	require.NotNil(t, order.Order.TotalPaid)
	assert.Equal(t, 21.50, *order.Order.TotalPaid)
	require.NotNil(t, order.Order.Datetime)
	assert.Equal(t, "2024-08-12 19:32:05", *order.Order.Datetime)
	require.Len(t, order.Items, 1)
	require.NotNil(t, order.Items[0].Name)
	assert.Equal(t, "Margherita Pizza", *order.Items[0].Name)

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Contains(t, decoded, "orders")

	var roundTrip models.OrderBatch
	require.NoError(t, json.Unmarshal(data, &roundTrip))
	assert.Len(t, roundTrip.Orders, 1)
}

func TestRunEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	outputFile := filepath.Join(dir, "all_orders.json")

	batch, err := Run(nil, dir, outputFile)
	require.NoError(t, err)
	assert.Empty(t, batch.Orders)

	// Even an empty batch produces a valid {"orders": []} file.
	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.JSONEq(t, `{"orders": []}`, string(data))
}

func TestRunMissingDirectory(t *testing.T) {
	_, err := Run(nil, filepath.Join(t.TempDir(), "nope"), "out.json")
	assert.Error(t, err)
}

func TestWriteBatchSchema(t *testing.T) {
	number := "42"
	price := 9.5
	qty := 2
	name := "Margherita Pizza"
	batch := models.OrderBatch{Orders: []models.OrderJSON{{
		Order: models.OrderHeaderJSON{Number: &number},
		Items: []models.OrderItemJSON{{Name: &name, Price: &price, Quantity: &qty}},
	}}}

	outputFile := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteBatch(batch, outputFile))

	data, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.JSONEq(t, `{
	  "orders": [{
	    "Order": {"number": "42", "total_paid": null, "delivery_fee": null, "datetime": null},
	    "Order Items": [{"name": "Margherita Pizza", "price": 9.5, "quantity": 2}],
	    "Restaurant": {"name": null, "address": null, "city": null, "postal_code": null, "phone_number": null},
	    "Customer": {"name": null, "address": null, "city": null, "postal_code": null, "phone_number": null}
	  }]
	}`, string(data))
}
