package sale

import (
	"fmt"
	"math/rand"
	"time"
)

// DefaultPrefix prefijo por defecto de los números de transacción.
const DefaultPrefix = "TXN"

// NumberGenerator produce números de transacción legibles con formato
// PREFIX-YYYYMMDD-NNNN (sufijo aleatorio 1..9999 con cero a la izquierda),
// únicos al menos dentro del día. El reloj y la fuente de aleatoriedad se
// inyectan para tests deterministas. La tolerancia a colisión vive en el
// orquestador: ante una violación de unicidad el caller regenera y reintenta.
type NumberGenerator struct {
	prefix string
	now    func() time.Time
	intn   func(n int) int
}

// NewNumberGenerator construye el generador con reloj y aleatoriedad inyectados.
func NewNumberGenerator(prefix string, now func() time.Time, intn func(n int) int) *NumberGenerator {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &NumberGenerator{prefix: prefix, now: now, intn: intn}
}

// NewDefaultNumberGenerator construye el generador con time.Now y math/rand.
func NewDefaultNumberGenerator(prefix string) *NumberGenerator {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return NewNumberGenerator(prefix, time.Now, rng.Intn)
}

// Next genera un nuevo número de transacción. Sin efectos más allá de leer
// reloj y aleatoriedad.
func (g *NumberGenerator) Next() string {
	suffix := g.intn(9999) + 1 // 1..9999
	return fmt.Sprintf("%s-%s-%04d", g.prefix, g.now().Format("20060102"), suffix)
}
