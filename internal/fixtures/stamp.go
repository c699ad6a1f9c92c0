package fixtures

import "github.com/jhoicas/gasable-portal/internal/domain/entity"

// Stamp asigna companyID a cada fila para que los datos demo pertenezcan al tenant de la sesión.
// Las filas se modifican in situ: usar solo sobre copias devueltas por este paquete.
func Stamp[T entity.Record](rows []T, companyID string) []T {
	if companyID == "" {
		return rows
	}
	for _, r := range rows {
		r.Base().CompanyID = companyID
	}
	return rows
}
