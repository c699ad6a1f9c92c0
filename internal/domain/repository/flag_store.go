package repository

import "context"

// FlagStore almacenamiento clave/valor persistente entre recargas para las banderas de sesión
// (modo demo e identidad simulada). Get devuelve found=false si la clave no existe.
type FlagStore interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
