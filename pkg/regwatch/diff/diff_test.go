package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/regwatch-go/pkg/regwatch/models"
)

func purchase(number, status string, price float64) models.Purchase {
	return models.Purchase{
		RegistryNumber:  number,
		Region:          "Москва",
		Status:          status,
		MaxPrice:        price,
		BiddingDateTime: "2021-11-16T10:10:00Z",
	}
}

func numbers(records []models.Purchase) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.RegistryNumber
	}
	return out
}

func TestComputeIdempotent(t *testing.T) {
	set := []models.Purchase{
		purchase("A", "идем", 1000),
		purchase("B", "допущены", 2000),
	}

	cs := Compute(set, set)
	assert.True(t, cs.Empty())
	assert.Zero(t, cs.Len())
	assert.Zero(t, cs.Added+cs.Changed+cs.Deactivated)
}

func TestComputeAddedAndDeactivated(t *testing.T) {
	old := []models.Purchase{purchase("A", "идем", 1000), purchase("B", "идем", 2000)}
	fresh := []models.Purchase{purchase("A", "идем", 1000), purchase("C", "заявлены", 3000)}

	cs := Compute(old, fresh)
	require.Equal(t, []string{"C", "B"}, numbers(cs.Records))
	assert.Equal(t, "заявлены", cs.Records[0].Status)
	assert.Equal(t, models.StatusInactive, cs.Records[1].Status)
	assert.InDelta(t, 2000, cs.Records[1].MaxPrice, 1e-9, "deactivated record keeps its old values")
	assert.Equal(t, 1, cs.Added)
	assert.Zero(t, cs.Changed)
	assert.Equal(t, 1, cs.Deactivated)

	assert.Equal(t, "идем", old[1].Status, "old set is not modified")
}

func TestComputeChanged(t *testing.T) {
	old := []models.Purchase{purchase("A", "идем", 1000), purchase("B", "идем", 2000)}
	fresh := []models.Purchase{purchase("A", "выиграли", 1000), purchase("B", "идем", 2000)}

	cs := Compute(old, fresh)
	require.Len(t, cs.Records, 1)
	assert.Equal(t, "A", cs.Records[0].RegistryNumber)
	assert.Equal(t, "выиграли", cs.Records[0].Status)
	assert.Equal(t, 1, cs.Changed)
}

func TestComputePriceTolerance(t *testing.T) {
	tests := []struct {
		name    string
		old     float64
		fresh   float64
		changed bool
	}{
		{"same integer part", 1000.1, 1000.9, false},
		{"different integer part", 1000, 1001, true},
		{"fraction only", 0.2, 0.7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := Compute(
				[]models.Purchase{purchase("A", "идем", tt.old)},
				[]models.Purchase{purchase("A", "идем", tt.fresh)},
			)
			assert.Equal(t, tt.changed, !cs.Empty())
		})
	}
}

func TestComputeFromEmpty(t *testing.T) {
	fresh := []models.Purchase{purchase("A", "идем", 1), purchase("B", "идем", 2)}

	cs := Compute(nil, fresh)
	assert.Equal(t, []string{"A", "B"}, numbers(cs.Records))
	assert.Equal(t, 2, cs.Added)

	cs = Compute(fresh, nil)
	assert.Equal(t, []string{"A", "B"}, numbers(cs.Records))
	for _, r := range cs.Records {
		assert.Equal(t, models.StatusInactive, r.Status)
	}
	assert.Equal(t, 2, cs.Deactivated)
}

func TestComputeDuplicateOldNumbers(t *testing.T) {
	old := []models.Purchase{purchase("A", "идем", 1), purchase("A", "идем", 5)}

	cs := Compute(old, nil)
	require.Len(t, cs.Records, 1)
	assert.InDelta(t, 1, cs.Records[0].MaxPrice, 1e-9)
}

func TestComputeDuplicateFreshNumbers(t *testing.T) {
	fresh := []models.Purchase{
		purchase("A", "идем", 1),
		purchase("B", "идем", 2),
		purchase("A", "заявлены", 9),
	}

	cs := Compute(nil, fresh)
	assert.Equal(t, []string{"A", "B"}, numbers(cs.Records))
	assert.Equal(t, 2, cs.Added)
	assert.Equal(t, "идем", cs.Records[0].Status)

	old := []models.Purchase{purchase("A", "идем", 1)}
	cs = Compute(old, fresh)
	assert.Equal(t, []string{"B"}, numbers(cs.Records))
	assert.Equal(t, 1, cs.Added)
	assert.Zero(t, cs.Changed)
	assert.Zero(t, cs.Deactivated)
}

func TestInitial(t *testing.T) {
	fresh := []models.Purchase{purchase("A", "идем", 1)}

	cs := Initial(fresh)
	assert.Equal(t, 1, cs.Len())
	assert.Equal(t, 1, cs.Added)

	cs.Records[0].Status = "changed"
	assert.Equal(t, "идем", fresh[0].Status)

	assert.True(t, Initial(nil).Empty())
}
