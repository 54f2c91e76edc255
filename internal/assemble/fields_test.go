package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forgelode/indexer/internal/model"
)

func TestReconcileFields_Empty(t *testing.T) {
	values, raw := ReconcileFields(nil)

	assert.Empty(t, values)
	assert.Empty(t, raw)
}

func TestReconcileFields_DuplicateNamesAppend(t *testing.T) {
	fields := []model.VersionField{
		{Name: "game_versions", Value: "1.20.1"},
		{Name: "game_versions", Value: "1.20.2"},
		{Name: "client_only", Value: true},
	}

	values, raw := ReconcileFields(fields)

	// Multiple typed fields legitimately map to one output key.
	assert.Equal(t, []any{"1.20.1", "1.20.2"}, values["game_versions"])
	assert.Equal(t, []any{true}, values["client_only"])

	// The raw mapping keeps one typed value per name, last wins.
	assert.Equal(t, "1.20.2", raw["game_versions"])
	assert.Equal(t, true, raw["client_only"])
}
