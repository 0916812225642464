package commands

import (
	"bytes"
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotsizing/casegen/pkg/infrastructure/config"
)

func testScenario(t *testing.T) *config.Scenario {
	t.Helper()
	s := config.Default()
	s.Scale = config.ScaleConfig{Nodes: 2, Items: 20, Periods: 4}
	s.Output.Dir = t.TempDir()
	return s
}

func TestGenerateCommandWritesCase(t *testing.T) {
	s := testScenario(t)

	result, err := NewGenerateCommand(s, "error").Execute(context.Background())
	require.NoError(t, err)

	assert.Positive(t, result.DemandRows)
	assert.True(t, strings.HasPrefix(filepath.Base(result.CaseFile), "case_"))

	data, err := os.ReadFile(result.CaseFile)
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, []string{"section", "key", "u", "v", "i", "t", "value"}, rows[0])

	demandRows := 0
	for _, row := range rows {
		if row[0] == "demand" {
			demandRows++
		}
	}
	assert.Equal(t, result.DemandRows, demandRows)
}

func TestGenerateCommandRecordsRun(t *testing.T) {
	s := testScenario(t)

	result, err := NewGenerateCommand(s, "error").Execute(context.Background())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, NewRunsCommand(s.Output.Dir, 10, &out).Execute(context.Background()))

	assert.Contains(t, out.String(), "capacity")
	assert.Contains(t, out.String(), filepath.Base(result.CaseFile))
}

func TestGenerateCommandCatalogDisabled(t *testing.T) {
	s := testScenario(t)
	s.Output.Catalog = false

	_, err := NewGenerateCommand(s, "error").Execute(context.Background())
	require.NoError(t, err)

	_, statErr := os.Stat(filepath.Join(s.Output.Dir, "catalog.db"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateCommandRejectsInvalidScenario(t *testing.T) {
	s := testScenario(t)
	s.Demand.Mode = "bogus"

	_, err := NewGenerateCommand(s, "error").Execute(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid scenario")
}

func TestGenerateCommandWritesRunLog(t *testing.T) {
	s := testScenario(t)

	_, err := NewGenerateCommand(s, "info").Execute(context.Background())
	require.NoError(t, err)

	matches, err := filepath.Glob(filepath.Join(s.Output.Dir, "run_*.log"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), "generation finished")
}

func TestRunsCommandEmptyCatalog(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, NewRunsCommand(t.TempDir(), 10, &out).Execute(context.Background()))
	assert.Contains(t, out.String(), "no runs recorded")
}
