// Package supabase implementa repository.Backend sobre la API REST de Supabase (PostgREST).
package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/gasable-portal/internal/domain"
	"github.com/jhoicas/gasable-portal/internal/domain/query"
	"github.com/jhoicas/gasable-portal/internal/domain/repository"
	"github.com/jhoicas/gasable-portal/pkg/config"
)

const (
	restPrefix     = "/rest/v1"
	defaultTimeout = 15 * time.Second
	maxErrorBody   = 64 << 10
)

// ErrNotConfigured el cliente se construyó sin URL o sin clave pública.
var ErrNotConfigured = errors.New("supabase: URL o clave pública no configuradas")

// Client cliente PostgREST. Es inmutable; WithAccessToken devuelve una copia.
type Client struct {
	restURL     string
	anonKey     string
	accessToken string
	http        *http.Client
}

var _ repository.Backend = (*Client)(nil)

// NewClient crea el cliente. Con URL o clave vacías no falla: cada llamada devuelve ErrNotConfigured.
func NewClient(cfg config.BackendConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.URL), "/")
	restURL := ""
	if base != "" {
		restURL = base + restPrefix
	}
	return &Client{
		restURL: restURL,
		anonKey: cfg.AnonKey,
		http:    httpClient,
	}
}

// WithAccessToken devuelve un cliente que actúa con el token del usuario (RLS) en lugar de la clave pública.
func (c *Client) WithAccessToken(token string) *Client {
	cp := *c
	cp.accessToken = token
	return &cp
}

// Select GET /rest/v1/{table}?select=*&{filtros}&order=&limit=.
func (c *Client) Select(ctx context.Context, table string, q query.Query, dest any) error {
	body, err := c.do(ctx, http.MethodGet, c.tableURL(table, selectParams(q)), nil, nil)
	if err != nil {
		return err
	}
	return decode(body, dest)
}

// Insert POST con Prefer: return=representation; la respuesta es un arreglo.
func (c *Client) Insert(ctx context.Context, table string, row any, dest any) error {
	payload, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("supabase: serializar fila: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, c.tableURL(table, nil), payload, representation())
	if err != nil {
		return err
	}
	return decode(body, dest)
}

// Update PATCH ?{filtros de match} con Prefer: return=representation.
func (c *Client) Update(ctx context.Context, table string, match query.Query, patch any, dest any) error {
	params, err := matchParams(match)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(patch)
	if err != nil {
		return fmt.Errorf("supabase: serializar cambios: %w", err)
	}
	body, err := c.do(ctx, http.MethodPatch, c.tableURL(table, params), payload, representation())
	if err != nil {
		return err
	}
	return decode(body, dest)
}

// Delete DELETE ?{filtros de match}. Pide la representación para saber si borró alguna fila.
func (c *Client) Delete(ctx context.Context, table string, match query.Query) error {
	params, err := matchParams(match)
	if err != nil {
		return err
	}
	body, err := c.do(ctx, http.MethodDelete, c.tableURL(table, params), nil, representation())
	if err != nil {
		return err
	}
	var deleted []json.RawMessage
	if err := decode(body, &deleted); err != nil {
		return err
	}
	if len(deleted) == 0 {
		return fmt.Errorf("supabase: delete %s: %w", table, domain.ErrNotFound)
	}
	return nil
}

// Call POST /rest/v1/rpc/{procedure} con los argumentos nombrados como cuerpo.
func (c *Client) Call(ctx context.Context, procedure string, args map[string]any, dest any) error {
	if args == nil {
		args = map[string]any{}
	}
	payload, err := json.Marshal(args)
	if err != nil {
		return fmt.Errorf("supabase: serializar argumentos: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, c.restURL+"/rpc/"+url.PathEscape(procedure), payload, nil)
	if err != nil {
		return err
	}
	return decode(body, dest)
}

func (c *Client) tableURL(table string, params url.Values) string {
	u := c.restURL + "/" + url.PathEscape(table)
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return u
}

// selectParams traduce el descriptor a la sintaxis de PostgREST (col=op.valor).
// Varios filtros sobre la misma columna se envían como parámetros repetidos (AND).
func selectParams(q query.Query) url.Values {
	params := url.Values{}
	params.Set("select", "*")
	for _, f := range q.Filters {
		params.Add(f.Field, string(f.Op)+"."+f.ValueString())
	}
	if q.Order != nil && q.Order.Field != "" {
		params.Set("order", q.Order.Field+"."+string(q.Order.Direction))
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}
	return params
}

// matchParams filtros de una escritura; PostgREST sin filtros actuaría sobre toda la tabla.
func matchParams(match query.Query) (url.Values, error) {
	if len(match.Filters) == 0 {
		return nil, fmt.Errorf("%w: escritura sin filtros", domain.ErrInvalidInput)
	}
	params := url.Values{}
	for _, f := range match.Filters {
		params.Add(f.Field, string(f.Op)+"."+f.ValueString())
	}
	return params, nil
}

func representation() map[string]string {
	return map[string]string{"Prefer": "return=representation"}
}

func (c *Client) do(ctx context.Context, method, rawURL string, payload []byte, extra map[string]string) ([]byte, error) {
	if c.restURL == "" || c.anonKey == "" {
		return nil, ErrNotConfigured
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return nil, fmt.Errorf("supabase: crear request: %w", err)
	}

	bearer := c.anonKey
	if c.accessToken != "" {
		bearer = c.accessToken
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+bearer)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	for k, v := range extra {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("supabase: %s %s: %w", method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, parseError(body, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("supabase: leer respuesta: %w", err)
	}
	return body, nil
}

func decode(body []byte, dest any) error {
	if dest == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("supabase: decodificar respuesta: %w", err)
	}
	return nil
}
