package seed

import (
	"testing"

	"financeflow_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinPlans(t *testing.T) {
	plans, err := BuiltinPlans()
	require.NoError(t, err)
	require.Len(t, plans, 4)

	ids := make([]string, 0, len(plans))
	categories := make(map[models.PlanCategory]bool)
	for _, p := range plans {
		ids = append(ids, p.ID)
		categories[p.Category] = true
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Description)
	}

	assert.Equal(t, []string{"plan1", "plan2", "plan3", "plan4"}, ids)
	assert.Len(t, categories, 4)
	assert.Equal(t, "Growth Investment Plan", plans[0].Title)
	assert.Equal(t, "Minimum investment: $1000. Expected returns: 12-15% p.a. Lock-in period: 3 years.", plans[0].Details)
}

func TestBuiltinPlans_ReturnsCopies(t *testing.T) {
	first, err := BuiltinPlans()
	require.NoError(t, err)
	first[0].Title = "changed"

	second, err := BuiltinPlans()
	require.NoError(t, err)
	assert.Equal(t, "Growth Investment Plan", second[0].Title)
}

func TestParsePlans_RejectsUnknownCategory(t *testing.T) {
	_, err := parsePlans([]byte("plans:\n  - id: x\n    title: Bad\n    category: CRYPTO\n"))
	assert.Error(t, err)
}
