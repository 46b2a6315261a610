// Package profile provides read access to patient profiles used to
// personalize assistant responses.
package profile

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Profile is the patient information included in prompt context.
// Zero-valued fields are treated as unknown and omitted from rendering.
type Profile struct {
	UserID     string    `json:"userId"`
	Age        int       `json:"age,omitempty"`
	Gender     string    `json:"gender,omitempty"`
	HeightCM   float64   `json:"heightCm,omitempty"`
	WeightKG   float64   `json:"weightKg,omitempty"`
	BloodGroup string    `json:"bloodGroup,omitempty"`
	Allergies  string    `json:"allergies,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`
}

// Render formats the profile as prompt text, one known field per line.
// Returns "" when nothing is known.
func (p *Profile) Render() string {
	if p == nil {
		return ""
	}
	var lines []string
	if p.Age > 0 {
		lines = append(lines, fmt.Sprintf("Age: %d", p.Age))
	}
	if p.Gender != "" {
		lines = append(lines, "Gender: "+p.Gender)
	}
	if p.HeightCM > 0 {
		lines = append(lines, fmt.Sprintf("Height: %.0f cm", p.HeightCM))
	}
	if p.WeightKG > 0 {
		lines = append(lines, fmt.Sprintf("Weight: %.1f kg", p.WeightKG))
	}
	if p.BloodGroup != "" {
		lines = append(lines, "Blood group: "+p.BloodGroup)
	}
	if p.Allergies != "" {
		lines = append(lines, "Known allergies: "+p.Allergies)
	}
	return strings.Join(lines, "\n")
}

// Provider reads patient profiles. Get returns (nil, nil) when no profile
// exists for the user; callers degrade to an unpersonalized prompt.
type Provider interface {
	Get(ctx context.Context, userID string) (*Profile, error)
}

// PostgresProvider reads profiles from the user_profiles table.
type PostgresProvider struct {
	pool *pgxpool.Pool
}

// NewPostgresProvider creates a Postgres-backed profile provider.
func NewPostgresProvider(pool *pgxpool.Pool) (*PostgresProvider, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	return &PostgresProvider{pool: pool}, nil
}

// Get returns the profile for userID, or (nil, nil) when absent.
func (p *PostgresProvider) Get(ctx context.Context, userID string) (*Profile, error) {
	var prof Profile
	err := p.pool.QueryRow(ctx,
		`SELECT user_id, COALESCE(age, 0), COALESCE(gender, ''),
		        COALESCE(height_cm, 0), COALESCE(weight_kg, 0),
		        COALESCE(blood_group, ''), COALESCE(allergies, ''), updated_at
		 FROM user_profiles
		 WHERE user_id = $1`,
		userID,
	).Scan(
		&prof.UserID, &prof.Age, &prof.Gender, &prof.HeightCM,
		&prof.WeightKG, &prof.BloodGroup, &prof.Allergies, &prof.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying profile: %w", err)
	}
	return &prof, nil
}

// Upsert creates or replaces the profile for its UserID.
func (p *PostgresProvider) Upsert(ctx context.Context, prof Profile) error {
	if prof.UserID == "" {
		return fmt.Errorf("user ID is required")
	}
	_, err := p.pool.Exec(ctx,
		`INSERT INTO user_profiles (user_id, age, gender, height_cm, weight_kg, blood_group, allergies, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		 ON CONFLICT (user_id) DO UPDATE SET
		   age = EXCLUDED.age,
		   gender = EXCLUDED.gender,
		   height_cm = EXCLUDED.height_cm,
		   weight_kg = EXCLUDED.weight_kg,
		   blood_group = EXCLUDED.blood_group,
		   allergies = EXCLUDED.allergies,
		   updated_at = now()`,
		prof.UserID, prof.Age, prof.Gender, prof.HeightCM,
		prof.WeightKG, prof.BloodGroup, prof.Allergies,
	)
	if err != nil {
		return fmt.Errorf("upserting profile: %w", err)
	}
	return nil
}

// StaticProvider serves profiles from memory. Used by tests and the CLI.
type StaticProvider struct {
	mu       sync.RWMutex
	profiles map[string]Profile
}

// NewStaticProvider creates an empty static provider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{profiles: map[string]Profile{}}
}

// Set stores a profile under its UserID.
func (p *StaticProvider) Set(prof Profile) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profiles[prof.UserID] = prof
}

// Get returns the profile for userID, or (nil, nil) when absent.
func (p *StaticProvider) Get(_ context.Context, userID string) (*Profile, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	prof, ok := p.profiles[userID]
	if !ok {
		return nil, nil
	}
	return &prof, nil
}
