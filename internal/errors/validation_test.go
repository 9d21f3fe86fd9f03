package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

func TestValidationBuilder_Empty(t *testing.T) {
	vb := errors.NewValidationBuilder()

	assert.False(t, vb.HasErrors())
	assert.NoError(t, vb.Build())
}

func TestValidationBuilder_CollectsFieldsInOrder(t *testing.T) {
	// Arrange
	vb := errors.NewValidationBuilder()

	// Act
	err := vb.
		RequiredField("Spawner").
		InvalidField("MinPlayers", "must not be negative").
		RequiredField("SessionID").
		Fieldf("SpawnRadius", "must be at most %d", 100).
		Build()

	// Assert
	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
	assert.Equal(t,
		"validation failed: MinPlayers: is invalid: must not be negative; SessionID: is required; SpawnRadius: must be at most 100; Spawner: is required",
		errors.GetMessage(err))
	assert.Equal(t, []string{"is required"}, errors.GetFields(err)["Spawner"])
}

func TestValidationBuilder_RepeatedField(t *testing.T) {
	err := errors.NewValidationBuilder().
		RequiredField("characters.id").
		InvalidField("characters.id", "duplicate").
		Build()

	assert.Equal(t, []string{"is required", "is invalid: duplicate"}, errors.GetFields(err)["characters.id"])
}

func TestValidationBuilder_WrappedKeepsFields(t *testing.T) {
	err := errors.Wrap(errors.NewValidationBuilder().RequiredField("Sessions").Build(), "invalid config")

	assert.True(t, errors.IsInvalidArgument(err))
	assert.Contains(t, errors.GetFields(err), "Sessions")
}
