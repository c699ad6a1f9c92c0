package portal_test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/jhoicas/gasable-portal/internal/domain"
	"github.com/jhoicas/gasable-portal/internal/domain/query"
	"github.com/jhoicas/gasable-portal/internal/domain/repository"
)

type selectCall struct {
	table string
	q     query.Query
}

type rpcCall struct {
	proc string
	args map[string]any
}

// fakeBackend backend en memoria: filas JSON por tabla evaluadas con query.Apply.
type fakeBackend struct {
	mu       sync.Mutex
	tables   map[string][]json.RawMessage
	fail     map[string]error
	selects  []selectCall
	writes   []string
	rpcs     []rpcCall
	results  map[string]any
	onSelect func(n int, table string)
}

var _ repository.Backend = (*fakeBackend)(nil)

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		tables:  map[string][]json.RawMessage{},
		fail:    map[string]error{},
		results: map[string]any{},
	}
}

func (f *fakeBackend) seed(table string, rows ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range rows {
		raw, err := json.Marshal(r)
		if err != nil {
			panic(err)
		}
		f.tables[table] = append(f.tables[table], raw)
	}
}

func (f *fakeBackend) selectCount(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, s := range f.selects {
		if s.table == table {
			n++
		}
	}
	return n
}

func (f *fakeBackend) totalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.selects) + len(f.writes) + len(f.rpcs)
}

func decodeInto(v any, dest any) error {
	if dest == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeBackend) Select(_ context.Context, table string, q query.Query, dest any) error {
	f.mu.Lock()
	f.selects = append(f.selects, selectCall{table: table, q: q})
	n := len(f.selects)
	hook := f.onSelect
	f.mu.Unlock()

	if hook != nil {
		hook(n, table)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail[table]; err != nil {
		return err
	}
	rows, err := query.Apply(append([]json.RawMessage(nil), f.tables[table]...), q)
	if err != nil {
		return err
	}
	return decodeInto(rows, dest)
}

func (f *fakeBackend) Insert(_ context.Context, table string, row any, dest any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, "insert:"+table)
	if err := f.fail[table]; err != nil {
		return err
	}
	raw, err := json.Marshal(row)
	if err != nil {
		return err
	}
	f.tables[table] = append(f.tables[table], raw)
	return decodeInto([]json.RawMessage{raw}, dest)
}

// matches evalúa los filtros de igualdad de una escritura sobre la fila JSON.
func matches(raw json.RawMessage, match query.Query) bool {
	if len(match.Filters) == 0 {
		return false
	}
	for _, flt := range match.Filters {
		if flt.Op != query.OpEq || gjson.GetBytes(raw, flt.Field).String() != flt.ValueString() {
			return false
		}
	}
	return true
}

func (f *fakeBackend) Update(_ context.Context, table string, match query.Query, patch any, dest any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, "update:"+table)
	if err := f.fail[table]; err != nil {
		return err
	}
	updated := []json.RawMessage{}
	for i, raw := range f.tables[table] {
		if !matches(raw, match) {
			continue
		}
		fields := map[string]any{}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return err
		}
		extra := map[string]any{}
		if err := decodeInto(patch, &extra); err != nil {
			return err
		}
		for k, v := range extra {
			fields[k] = v
		}
		merged, err := json.Marshal(fields)
		if err != nil {
			return err
		}
		f.tables[table][i] = merged
		updated = append(updated, merged)
	}
	return decodeInto(updated, dest)
}

func (f *fakeBackend) Delete(_ context.Context, table string, match query.Query) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.writes = append(f.writes, "delete:"+table)
	if err := f.fail[table]; err != nil {
		return err
	}
	rows := f.tables[table][:0:0]
	for _, raw := range f.tables[table] {
		if !matches(raw, match) {
			rows = append(rows, raw)
		}
	}
	if len(rows) == len(f.tables[table]) {
		return domain.ErrNotFound
	}
	f.tables[table] = rows
	return nil
}

func (f *fakeBackend) Call(_ context.Context, proc string, args map[string]any, dest any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rpcs = append(f.rpcs, rpcCall{proc: proc, args: args})
	if err := f.fail[proc]; err != nil {
		return err
	}
	res, ok := f.results[proc]
	if !ok {
		return domain.ErrNotFound
	}
	return decodeInto(res, dest)
}
