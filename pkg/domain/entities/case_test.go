package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCase() *Case {
	return &Case{
		Nodes:              2,
		Items:              3,
		Periods:            4,
		ProductionCost:     UniformVector(3, 1),
		SetupCost:          UniformVector(3, 60),
		HoldingCost:        UniformVector(3, 1),
		UnitCapacityUsage:  UniformVector(3, 1),
		SetupCapacityUsage: UniformVector(3, 0),
		DefaultCapacity:    1440,
		Demand: []DemandEntry{
			{Node: 0, Item: 1, Period: 2, Amount: 25},
			{Node: 1, Item: 0, Period: 3, Amount: 40},
		},
		Solver: SolverParams{
			MIPGap:        1e-6,
			TimeLimitSec:  60,
			SeparationEps: 1e-8,
			MaxIterations: 50,
		},
	}
}

func TestValidateAcceptsWellFormedCase(t *testing.T) {
	assert.NoError(t, validCase().Validate())
}

func TestValidateRejectsBadDimensions(t *testing.T) {
	c := validCase()
	c.Periods = 0
	require.Error(t, c.Validate())
}

func TestValidateRejectsVectorLengthMismatch(t *testing.T) {
	c := validCase()
	c.SetupCost = UniformVector(2, 60)
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "setup cost")
}

func TestValidateRejectsOutOfRangeDemand(t *testing.T) {
	c := validCase()
	c.Demand = append(c.Demand, DemandEntry{Node: 5, Item: 0, Period: 0, Amount: 1})
	require.Error(t, c.Validate())

	c = validCase()
	c.Demand = append(c.Demand, DemandEntry{Node: 0, Item: 0, Period: 0, Amount: -1})
	require.Error(t, c.Validate())
}

func TestValidateRejectsNegativeDefaults(t *testing.T) {
	c := validCase()
	c.DefaultCapacity = -1
	require.Error(t, c.Validate())

	c = validCase()
	c.DefaultInitialStock = -0.5
	require.Error(t, c.Validate())
}

func TestValidateRejectsBadSolverParams(t *testing.T) {
	c := validCase()
	c.Solver.TimeLimitSec = 0
	require.Error(t, c.Validate())

	c = validCase()
	c.Solver.MaxIterations = 0
	require.Error(t, c.Validate())

	c = validCase()
	c.Solver.MIPGap = -1e-6
	require.Error(t, c.Validate())
}

func TestValidateTransferTables(t *testing.T) {
	c := validCase()
	c.EnableTransfer = true
	c.TransferCosts = []TransferCost{{FromNode: 0, ToNode: 1, Item: 2, Period: 0, Cost: 3}}
	c.BigM = []BigMEntry{{Item: 0, Period: 0, Value: 1e6}}
	assert.NoError(t, c.Validate())

	c.BigM[0].Value = 0
	require.Error(t, c.Validate())
}

func TestValidateRejectsTransferRowsWhenDisabled(t *testing.T) {
	c := validCase()
	c.TransferCosts = []TransferCost{{FromNode: 0, ToNode: 1, Item: 0, Period: 0, Cost: 1}}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transfer is not enabled")
}

func TestValidateOverrideBounds(t *testing.T) {
	c := validCase()
	c.CapacityOverrides = []CapacityOverride{{Node: 1, Period: 3, Value: 900}}
	c.InitialStockOverrides = []InitialStockOverride{{Node: 0, Item: 2, Value: 10}}
	assert.NoError(t, c.Validate())

	c.CapacityOverrides[0].Period = 4
	require.Error(t, c.Validate())
}

func TestUniformVector(t *testing.T) {
	vec := UniformVector(4, 2.5)
	assert.Equal(t, []float64{2.5, 2.5, 2.5, 2.5}, vec)
	assert.Empty(t, UniformVector(0, 1))
}
