package classifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		raw  string
		want Label
	}{
		{"professional_exists", LabelProfessionalExists},
		{"professional_not_exists", LabelProfessionalNotExists},
		{"  Professional_Exists  ", LabelProfessionalExists},
		{"'professional_not_exists'", LabelProfessionalNotExists},
		{"The label is professional_exists.", LabelProfessionalExists},
		// Unexpected output falls back to the safe default.
		{"maybe", LabelProfessionalNotExists},
		{"", LabelProfessionalNotExists},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeLabel(tt.raw), "NormalizeLabel(%q)", tt.raw)
	}
}

func TestKeywordClassifyQuery(t *testing.T) {
	k := NewKeyword()
	ctx := context.Background()
	names := []string{"Ali", "Malik", "Fatima"}

	label, err := k.ClassifyQuery(ctx, "Book an appointment with Ali", names)
	require.NoError(t, err)
	assert.Equal(t, LabelProfessionalExists, label)

	label, err = k.ClassifyQuery(ctx, "book with ALI please", names)
	require.NoError(t, err)
	assert.Equal(t, LabelProfessionalExists, label)

	// Substrings of longer words do not count as a name match.
	label, err = k.ClassifyQuery(ctx, "I feel alienated", names)
	require.NoError(t, err)
	assert.Equal(t, LabelProfessionalNotExists, label)

	label, err = k.ClassifyQuery(ctx, "I need someone for my back pain", names)
	require.NoError(t, err)
	assert.Equal(t, LabelProfessionalNotExists, label)
}

func TestKeywordExtractSpecialty(t *testing.T) {
	k := NewKeyword()
	ctx := context.Background()
	specialties := []string{"Cardiology", "Dermatology", "Neurology", "Pediatrics"}

	got, err := k.ExtractSpecialty(ctx, "I want a cardiology appointment", specialties)
	require.NoError(t, err)
	assert.Equal(t, "Cardiology", got)

	// Symptom hints map to a specialty only when the roster offers it.
	got, err = k.ExtractSpecialty(ctx, "my skin has a rash", specialties)
	require.NoError(t, err)
	assert.Equal(t, "Dermatology", got)

	got, err = k.ExtractSpecialty(ctx, "my skin has a rash", []string{"Cardiology"})
	require.NoError(t, err)
	assert.Equal(t, NoSpecialty, got)

	got, err = k.ExtractSpecialty(ctx, "just need a checkup", specialties)
	require.NoError(t, err)
	assert.Equal(t, NoSpecialty, got)
}

func TestKeywordExtractProfessionalName(t *testing.T) {
	k := NewKeyword()
	ctx := context.Background()
	names := []string{"Ali", "Malik"}

	got, err := k.ExtractProfessionalName(ctx, "slots for malik next week", names)
	require.NoError(t, err)
	assert.Equal(t, "Malik", got)

	got, err = k.ExtractProfessionalName(ctx, "slots for anyone", names)
	require.NoError(t, err)
	assert.Equal(t, NoSpecialty, got)
}
