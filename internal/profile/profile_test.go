package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFullProfile(t *testing.T) {
	p := &Profile{
		UserID:     "u1",
		Age:        34,
		Gender:     "female",
		HeightCM:   168,
		WeightKG:   62.5,
		BloodGroup: "O+",
		Allergies:  "penicillin, pollen",
	}

	got := p.Render()
	assert.Equal(t,
		"Age: 34\nGender: female\nHeight: 168 cm\nWeight: 62.5 kg\nBlood group: O+\nKnown allergies: penicillin, pollen",
		got)
}

func TestRenderOmitsUnknownFields(t *testing.T) {
	p := &Profile{UserID: "u1", Age: 50}
	assert.Equal(t, "Age: 50", p.Render())

	empty := &Profile{UserID: "u1"}
	assert.Equal(t, "", empty.Render())

	var nilProfile *Profile
	assert.Equal(t, "", nilProfile.Render())
}

func TestStaticProvider(t *testing.T) {
	ctx := context.Background()
	provider := NewStaticProvider()

	// Absent profile is (nil, nil), not an error.
	got, err := provider.Get(ctx, "unknown")
	require.NoError(t, err)
	assert.Nil(t, got)

	provider.Set(Profile{UserID: "u1", Age: 30})
	got, err = provider.Get(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 30, got.Age)

	// Mutating the returned profile must not affect the stored copy.
	got.Age = 99
	again, err := provider.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 30, again.Age)
}
