package simdata_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/freightforge/supplychain-simdata-go/simdata"
)

func validRunConfig() simdata.RunConfig {
	return simdata.RunConfig{
		StartDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		NumProducts:   simdata.DefaultNumProducts,
		NumWarehouses: simdata.DefaultNumWarehouses,
		NumSuppliers:  simdata.DefaultNumSuppliers,
		Seed:          simdata.DefaultSeed,
	}
}

func Test_RunConfig_Validate_AcceptsValidConfiguration(t *testing.T) {
	assert.NoError(t, validRunConfig().Validate())
}

func Test_RunConfig_Validate_RejectsBrokenConfigurations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *simdata.RunConfig)
	}{
		{name: "zero_start_date", mutate: func(c *simdata.RunConfig) { c.StartDate = time.Time{} }},
		{name: "zero_end_date", mutate: func(c *simdata.RunConfig) { c.EndDate = time.Time{} }},
		{name: "end_before_start", mutate: func(c *simdata.RunConfig) {
			c.EndDate = c.StartDate.AddDate(0, 0, -1)
		}},
		{name: "zero_products", mutate: func(c *simdata.RunConfig) { c.NumProducts = 0 }},
		{name: "negative_warehouses", mutate: func(c *simdata.RunConfig) { c.NumWarehouses = -5 }},
		{name: "zero_suppliers", mutate: func(c *simdata.RunConfig) { c.NumSuppliers = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config := validRunConfig()
			tc.mutate(&config)

			assert.ErrorIs(t, config.Validate(), simdata.ErrInvalidConfiguration)
		})
	}
}

func Test_RunConfig_Days_CountsBothBoundsInclusive(t *testing.T) {
	config := validRunConfig()
	assert.Equal(t, 31, config.Days())

	config.EndDate = config.StartDate
	assert.Equal(t, 1, config.Days())
}

func Test_RunConfig_Validate_SameDayRangeIsValid(t *testing.T) {
	config := validRunConfig()
	config.EndDate = config.StartDate

	assert.NoError(t, config.Validate())
}
