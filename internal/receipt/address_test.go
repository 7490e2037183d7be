package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddressLines(t *testing.T) {
	t.Run("postal code with trailing city", func(t *testing.T) {
		addr := ParseAddressLines([]string{"12 Rue de Paris", "75001 Paris"})
		require.NotNil(t, addr.Street)
		assert.Equal(t, "12 Rue de Paris", *addr.Street)
		require.NotNil(t, addr.PostalCode)
		assert.Equal(t, "75001", *addr.PostalCode)
		require.NotNil(t, addr.City)
		assert.Equal(t, "Paris", *addr.City)
	})

	t.Run("letters-only fallback when no postal code", func(t *testing.T) {
		addr := ParseAddressLines([]string{"5 Av. Victor Hugo", "Lyon"})
		require.NotNil(t, addr.Street)
		assert.Equal(t, "5 Av. Victor Hugo", *addr.Street)
		assert.Nil(t, addr.PostalCode)
		require.NotNil(t, addr.City)
		assert.Equal(t, "Lyon", *addr.City)
	})

	t.Run("postal code without trailing city uses fallback line", func(t *testing.T) {
		addr := ParseAddressLines([]string{"8 Rue du Bac", "75007", "Paris"})
		require.NotNil(t, addr.PostalCode)
		assert.Equal(t, "75007", *addr.PostalCode)
		require.NotNil(t, addr.City)
		assert.Equal(t, "Paris", *addr.City)
	})

	t.Run("postal-adjacent city wins over letters-only line", func(t *testing.T) {
		addr := ParseAddressLines([]string{"1 Place Bellecour", "69002 Lyon", "France"})
		require.NotNil(t, addr.City)
		assert.Equal(t, "Lyon", *addr.City)
	})

	t.Run("empty input yields all nil", func(t *testing.T) {
		addr := ParseAddressLines(nil)
		assert.Nil(t, addr.Street)
		assert.Nil(t, addr.City)
		assert.Nil(t, addr.PostalCode)
	})

	t.Run("single line is street only", func(t *testing.T) {
		addr := ParseAddressLines([]string{"3 Rue des Lilas"})
		require.NotNil(t, addr.Street)
		assert.Equal(t, "3 Rue des Lilas", *addr.Street)
		assert.Nil(t, addr.City)
		assert.Nil(t, addr.PostalCode)
	})

	t.Run("street whitespace is normalized", func(t *testing.T) {
		addr := ParseAddressLines([]string{"  12   Rue de Paris "})
		require.NotNil(t, addr.Street)
		assert.Equal(t, "12 Rue de Paris", *addr.Street)
	})
}
