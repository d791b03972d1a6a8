package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cerrojo serializa las operaciones de apertura/cierre por caja
// (tienda, cajero) con SET NX sobre Redis. Es la capa de serialización que
// acompaña al índice parcial único de turnos: el índice garantiza el
// invariante, el cerrojo evita que dos requests simultáneos lleguen a
// disputarlo.
type Cerrojo struct {
	rdb *redis.Client
	ttl time.Duration
}

// El TTL cubre la operación más larga (cierre con arqueo) con holgura;
// si el proceso muere con el cerrojo tomado, expira solo.
const cerrojoTTL = 15 * time.Second

func NewCerrojo(rdb *redis.Client) *Cerrojo {
	return &Cerrojo{rdb: rdb, ttl: cerrojoTTL}
}

// Adquirir intenta tomar el cerrojo de la clave. Devuelve false si otra
// operación lo tiene.
func (c *Cerrojo) Adquirir(ctx context.Context, clave string) (bool, error) {
	return c.rdb.SetNX(ctx, "cerrojo:caja:"+clave, 1, c.ttl).Result()
}

// Liberar suelta el cerrojo. Ignorar el error es deliberado: si falla, el
// TTL lo libera igual.
func (c *Cerrojo) Liberar(ctx context.Context, clave string) {
	_ = c.rdb.Del(ctx, "cerrojo:caja:"+clave).Err()
}
