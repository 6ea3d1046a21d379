package sale_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/internal/domain/sale"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestNumberGenerator_Formato(t *testing.T) {
	now := time.Date(2025, 9, 1, 14, 30, 0, 0, time.UTC)
	g := sale.NewNumberGenerator("TXN", fixedClock(now), func(n int) int { return 41 })

	assert.Equal(t, "TXN-20250901-0042", g.Next())
}

func TestNumberGenerator_CeroALaIzquierda(t *testing.T) {
	now := time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)

	g := sale.NewNumberGenerator("TXN", fixedClock(now), func(n int) int { return 0 })
	assert.Equal(t, "TXN-20250105-0001", g.Next(), "sufijo mínimo es 0001")

	g = sale.NewNumberGenerator("TXN", fixedClock(now), func(n int) int { return 9998 })
	assert.Equal(t, "TXN-20250105-9999", g.Next(), "sufijo máximo es 9999")
}

func TestNumberGenerator_PrefijoPorDefecto(t *testing.T) {
	now := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	g := sale.NewNumberGenerator("", fixedClock(now), func(n int) int { return 6 })

	assert.Equal(t, sale.DefaultPrefix+"-20250901-0007", g.Next())
}

func TestNumberGenerator_PrefijoConfigurable(t *testing.T) {
	now := time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)
	g := sale.NewNumberGenerator("POS", fixedClock(now), func(n int) int { return 122 })

	assert.Equal(t, "POS-20250901-0123", g.Next())
}

func TestNumberGenerator_DefaultGeneraFormatoValido(t *testing.T) {
	g := sale.NewDefaultNumberGenerator("TXN")
	n := g.Next()

	assert.Regexp(t, `^TXN-\d{8}-\d{4}$`, n)
}
