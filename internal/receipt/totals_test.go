package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const totalsSampleHTML = `
<html><body>
<table>
  <tr>
    <td><p>Sous-total</p></td>
    <td><p>10,00 €</p></td>
  </tr>
  <tr>
    <td><p>Frais de livraison</p></td>
    <td><p>2,50 €</p></td>
  </tr>
  <tr>
    <td><p>Pourboire</p></td>
    <td><p>1,00 €</p></td>
  </tr>
  <tr>
    <td><p>Crédit</p></td>
    <td><p>0,50 €</p></td>
  </tr>
  <tr>
    <td><p class="total" style="font-size:34px">Total</p></td>
    <td><p>12,50 €</p></td>
  </tr>
</table>
</body></html>
`

func TestExtractTotals(t *testing.T) {
	totals := ExtractTotals(mustDoc(t, totalsSampleHTML))

	require.NotNil(t, totals.Subtotal)
	assert.Equal(t, 10.00, *totals.Subtotal)
	require.NotNil(t, totals.DeliveryFee)
	assert.Equal(t, 2.50, *totals.DeliveryFee)
	require.NotNil(t, totals.Tip)
	assert.Equal(t, 1.00, *totals.Tip)
	require.NotNil(t, totals.Credit)
	assert.Equal(t, 0.50, *totals.Credit)
	require.NotNil(t, totals.Total)
	assert.Equal(t, 12.50, *totals.Total)
}

func TestExtractTotalsSousTotalNeverClaimsGrandTotal(t *testing.T) {
	totals := ExtractTotals(mustDoc(t, `
<table>
  <tr>
    <td><p>Sous-total</p></td>
    <td><p>10,00 €</p></td>
  </tr>
</table>`))
	require.NotNil(t, totals.Subtotal)
	assert.Equal(t, 10.00, *totals.Subtotal)
	assert.Nil(t, totals.Total)
}

func TestExtractTotalsTotalRequiresStyleSignal(t *testing.T) {
	// A plain "Total" row without the class or font-size marker must
	// not be taken as the grand total.
	totals := ExtractTotals(mustDoc(t, `
<table>
  <tr>
    <td><p>Total estimé</p></td>
    <td><p>99,99 €</p></td>
  </tr>
  <tr>
    <td><p style="font-size:34px">Total</p></td>
    <td><p>12,50 €</p></td>
  </tr>
</table>`))
	require.NotNil(t, totals.Total)
	assert.Equal(t, 12.50, *totals.Total)
}

func TestExtractTotalsLastMatchWins(t *testing.T) {
	totals := ExtractTotals(mustDoc(t, `
<table>
  <tr>
    <td><p>Pourboire</p></td>
    <td><p>1,00 €</p></td>
  </tr>
  <tr>
    <td><p>Pourboire</p></td>
    <td><p>2,00 €</p></td>
  </tr>
</table>`))
	require.NotNil(t, totals.Tip)
	assert.Equal(t, 2.00, *totals.Tip)
}

func TestExtractTotalsMalformedPriceSkipped(t *testing.T) {
	totals := ExtractTotals(mustDoc(t, `
<table>
  <tr>
    <td><p>Sous-total</p></td>
    <td><p>N/A</p></td>
  </tr>
  <tr>
    <td><p>Pourboire</p></td>
    <td><p>1,00 €</p></td>
  </tr>
</table>`))
	assert.Nil(t, totals.Subtotal)
	require.NotNil(t, totals.Tip)
	assert.Equal(t, 1.00, *totals.Tip)
}

func TestExtractTotalsEmptyDocument(t *testing.T) {
	totals := ExtractTotals(mustDoc(t, `<html><body></body></html>`))
	assert.Nil(t, totals.Subtotal)
	assert.Nil(t, totals.DeliveryFee)
	assert.Nil(t, totals.Tip)
	assert.Nil(t, totals.Credit)
	assert.Nil(t, totals.Total)
}
