// Package catalog maintains the symptom catalog used by the diagnose flow.
// Symptom names are unique case-insensitively; the first-seen casing wins.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrEmptyName indicates a blank symptom name.
var ErrEmptyName = errors.New("symptom name is required")

// Symptom is one catalog entry.
type Symptom struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Catalog records and lists symptom names.
type Catalog interface {
	// Ensure registers a symptom name, case-insensitively deduplicated,
	// and returns the canonical entry. The stored casing of an existing
	// entry is preserved.
	Ensure(ctx context.Context, name string) (Symptom, error)

	// List returns all symptoms sorted by name.
	List(ctx context.Context) ([]Symptom, error)
}

// PostgresCatalog stores symptoms in the symptoms table.
type PostgresCatalog struct {
	pool *pgxpool.Pool
}

// NewPostgresCatalog creates a Postgres-backed symptom catalog.
func NewPostgresCatalog(pool *pgxpool.Pool) (*PostgresCatalog, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	return &PostgresCatalog{pool: pool}, nil
}

// Ensure registers a symptom name and returns the canonical entry.
func (c *PostgresCatalog) Ensure(ctx context.Context, name string) (Symptom, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Symptom{}, ErrEmptyName
	}

	// The no-op update makes the insert return the existing row instead
	// of nothing on conflict.
	var sym Symptom
	err := c.pool.QueryRow(ctx,
		`INSERT INTO symptoms (name)
		 VALUES ($1)
		 ON CONFLICT ((lower(name))) DO UPDATE SET name = symptoms.name
		 RETURNING id, name, created_at`,
		name,
	).Scan(&sym.ID, &sym.Name, &sym.CreatedAt)
	if err != nil {
		return Symptom{}, fmt.Errorf("ensuring symptom: %w", err)
	}
	return sym, nil
}

// List returns all symptoms sorted by name.
func (c *PostgresCatalog) List(ctx context.Context) ([]Symptom, error) {
	rows, err := c.pool.Query(ctx,
		`SELECT id, name, created_at FROM symptoms ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying symptoms: %w", err)
	}
	defer rows.Close()

	symptoms := []Symptom{}
	for rows.Next() {
		var sym Symptom
		if err := rows.Scan(&sym.ID, &sym.Name, &sym.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning symptom: %w", err)
		}
		symptoms = append(symptoms, sym)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating symptoms: %w", err)
	}
	return symptoms, nil
}

// InMemoryCatalog is a process-local symptom catalog. Safe for
// concurrent use.
type InMemoryCatalog struct {
	mu       sync.RWMutex
	byFolded map[string]Symptom
}

// NewInMemoryCatalog creates an empty in-memory catalog.
func NewInMemoryCatalog() *InMemoryCatalog {
	return &InMemoryCatalog{byFolded: map[string]Symptom{}}
}

// Ensure registers a symptom name and returns the canonical entry.
func (c *InMemoryCatalog) Ensure(_ context.Context, name string) (Symptom, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Symptom{}, ErrEmptyName
	}

	folded := strings.ToLower(name)

	c.mu.Lock()
	defer c.mu.Unlock()

	if sym, ok := c.byFolded[folded]; ok {
		return sym, nil
	}
	sym := Symptom{ID: uuid.New(), Name: name, CreatedAt: time.Now()}
	c.byFolded[folded] = sym
	return sym, nil
}

// List returns all symptoms sorted by name.
func (c *InMemoryCatalog) List(_ context.Context) ([]Symptom, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	symptoms := []Symptom{}
	for _, sym := range c.byFolded {
		symptoms = append(symptoms, sym)
	}
	sort.Slice(symptoms, func(i, j int) bool {
		return symptoms[i].Name < symptoms[j].Name
	})
	return symptoms, nil
}
