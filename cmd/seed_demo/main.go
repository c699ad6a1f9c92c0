// seed_demo carga los datos demo en un tenant real para probar el modo en vivo con las mismas
// formas de registro que sirve el modo demo.
//
// Uso: go run ./cmd/seed_demo -company <uuid> [-catalog] [-dry-run]
//
// Con BACKEND_DRIVER=postgres todo se inserta en una sola transacción; con rest se usa la API
// PostgREST con la clave anónima (requiere políticas que permitan la escritura).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"

	"github.com/google/uuid"

	"github.com/jhoicas/gasable-portal/internal/domain/entity"
	"github.com/jhoicas/gasable-portal/internal/domain/repository"
	"github.com/jhoicas/gasable-portal/internal/fixtures"
	"github.com/jhoicas/gasable-portal/internal/infrastructure/postgres"
	"github.com/jhoicas/gasable-portal/internal/infrastructure/supabase"
	"github.com/jhoicas/gasable-portal/pkg/config"
	"github.com/jhoicas/gasable-portal/pkg/logger"
)

// seedNamespace raíz de los ids derivados (uuid v5): el mismo tenant siempre recibe los mismos ids.
var seedNamespace = uuid.MustParse("6f1c2a52-3c1e-4d0a-9a57-2b8f0e4d9c11")

type tableRows struct {
	table string
	rows  []map[string]any
}

func main() {
	companyID := flag.String("company", "", "id (uuid) de la empresa destino")
	catalog := flag.Bool("catalog", false, "cargar también planes y tiers (catálogo global)")
	dryRun := flag.Bool("dry-run", false, "imprimir el SQL sin ejecutar nada")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	if _, err := uuid.Parse(*companyID); err != nil {
		fmt.Fprintln(os.Stderr, "-company debe ser un uuid válido")
		os.Exit(2)
	}

	batches, err := build(*companyID, *catalog)
	if err != nil {
		log.Fatal().Err(err).Msg("preparar filas")
	}

	if *dryRun {
		for _, b := range batches {
			for _, row := range b.rows {
				st, err := postgres.InsertSQL(b.table, row)
				if err != nil {
					log.Fatal().Err(err).Str("table", b.table).Msg("generar SQL")
				}
				fmt.Printf("%s; -- %v\n", st.SQL, st.Args[0])
			}
		}
		return
	}

	ctx := context.Background()
	push := func(backend repository.Backend) error {
		for _, b := range batches {
			for _, row := range b.rows {
				if err := backend.Insert(ctx, b.table, row, nil); err != nil {
					return fmt.Errorf("%s: %w", b.table, err)
				}
			}
			log.Info().Str("table", b.table).Int("rows", len(b.rows)).Msg("tabla cargada")
		}
		return nil
	}

	switch cfg.Backend.Driver {
	case config.BackendPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB, postgres.PoolOptions{MaxConns: 2})
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		err = postgres.NewTxRunner(pool).Run(ctx, push)
		if err != nil {
			log.Fatal().Err(err).Msg("carga abortada (rollback)")
		}
	default:
		client := supabase.NewClient(cfg.Backend, &http.Client{Timeout: cfg.Backend.Timeout})
		if err := push(client); err != nil {
			log.Fatal().Err(err).Msg("carga interrumpida")
		}
	}
	log.Info().Str("company_id", *companyID).Msg("datos demo cargados")
}

// build prepara las filas en orden de dependencias. Los ids de los fixtures se reemplazan por
// uuids derivados del tenant, también dentro de las referencias (store_id, order_id...).
func build(companyID string, withCatalog bool) ([]tableRows, error) {
	ids := map[string]string{fixtures.DemoCompanyID: companyID}
	rekey := func(scope string, id string) {
		if _, ok := ids[id]; !ok {
			ids[id] = uuid.NewSHA1(seedNamespace, []byte(scope+":"+id)).String()
		}
	}

	plans, tiers := fixtures.Plans(), fixtures.Tiers()
	for _, p := range plans {
		rekey("catalog", p.ID)
	}
	for _, t := range tiers {
		rekey("catalog", t.ID)
	}

	tenantTables := []struct {
		table string
		rows  []entity.Record
	}{
		{repository.TableStores, records(fixtures.Stores())},
		{repository.TableBranches, records(fixtures.Branches())},
		{repository.TableProducts, records(fixtures.Products())},
		{repository.TableOrders, records(fixtures.Orders())},
		{repository.TableInvoices, records(fixtures.Invoices())},
		{repository.TableTickets, records(fixtures.Tickets())},
		{repository.TableTicketMessages, records(fixtures.TicketMessages())},
		{repository.TableCampaigns, records(fixtures.Campaigns())},
		{repository.TableCertifications, records(fixtures.Certifications())},
		{repository.TableEmployees, records(fixtures.Employees())},
		{repository.TableSubscriptions, records([]*entity.Subscription{fixtures.Subscription()})},
		{repository.TableUsage, records([]*entity.Usage{fixtures.Usage()})},
	}
	for _, t := range tenantTables {
		for _, r := range t.rows {
			rekey(companyID, r.Base().ID)
		}
	}

	var out []tableRows
	if withCatalog {
		p, err := remap(plans, ids)
		if err != nil {
			return nil, err
		}
		t, err := remap(tiers, ids)
		if err != nil {
			return nil, err
		}
		out = append(out, tableRows{repository.TablePlans, p}, tableRows{repository.TableTiers, t})
	}

	company := fixtures.Company()
	company.ID = companyID
	c, err := remap([]*entity.Company{company}, ids)
	if err != nil {
		return nil, err
	}
	out = append(out, tableRows{repository.TableCompanies, c})

	for _, t := range tenantTables {
		rows, err := remap(fixtures.Stamp(t.rows, companyID), ids)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.table, err)
		}
		out = append(out, tableRows{t.table, rows})
	}
	return out, nil
}

func records[T entity.Record](rows []T) []entity.Record {
	out := make([]entity.Record, len(rows))
	for i, r := range rows {
		out[i] = r
	}
	return out
}

// remap pasa cada fila a su forma JSON y reemplaza los ids conocidos en cualquier campo.
func remap[T any](rows []T, ids map[string]string) ([]map[string]any, error) {
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		raw, err := json.Marshal(r)
		if err != nil {
			return nil, err
		}
		var m map[string]any
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		out = append(out, replaceIDs(m, ids).(map[string]any))
	}
	return out, nil
}

func replaceIDs(v any, ids map[string]string) any {
	switch x := v.(type) {
	case string:
		if id, ok := ids[x]; ok {
			return id
		}
		return x
	case map[string]any:
		for k, val := range x {
			x[k] = replaceIDs(val, ids)
		}
		return x
	case []any:
		for i, val := range x {
			x[i] = replaceIDs(val, ids)
		}
		return x
	default:
		return v
	}
}
