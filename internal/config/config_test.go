package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	envVars := []string{
		"NARS_SERVER_NAME",
		"NARS_CLOCK_SEED",
		"NARS_CONCEPT_BAG_SIZE",
		"NARS_TASK_LINK_BAG_SIZE",
		"NARS_TERM_LINK_BAG_SIZE",
		"NARS_CONCEPT_BELIEFS_MAX",
		"NARS_CONCEPT_QUESTIONS_MAX",
		"NARS_CONCEPT_GOALS_MAX",
		"NARS_BUDGET_THRESHOLD",
		"NARS_REVISION_MAX_OCCURRENCE_DISTANCE",
		"NARS_TERM_LINK_RECORD_LENGTH",
		"NARS_NOVELTY_HORIZON",
		"NARS_MAX_EVIDENTIAL_BASE_LENGTH",
		"NARS_DURATION",
		"NARS_RULE_TABLE_PATH",
		"NARS_DEBUG",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

func TestDefaultMatchesSpecDefaults(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 10000, cfg.Bags.ConceptBagSize)
	assert.Equal(t, 100, cfg.Bags.TaskLinkBagSize)
	assert.Equal(t, 100, cfg.Bags.TermLinkBagSize)
	assert.Equal(t, 28, cfg.Memory.ConceptBeliefsMax)
	assert.Equal(t, 5, cfg.Memory.ConceptQuestionsMax)
	assert.Equal(t, 7, cfg.Memory.ConceptGoalsMax)
	assert.InDelta(t, 0.01, cfg.Memory.BudgetThreshold, 1e-9)
	assert.EqualValues(t, 10, cfg.Memory.RevisionMaxOccurrenceDistance)
	assert.Equal(t, 10, cfg.Memory.TermLinkRecordLength)
	assert.EqualValues(t, 100000, cfg.Memory.NoveltyHorizon)
	assert.Equal(t, 20000, cfg.Memory.MaxEvidentialBaseLength)
	assert.EqualValues(t, 5, cfg.Memory.Duration)
}

func TestLoadReturnsValidDefaultConfig(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "narsd", cfg.Server.Name)
}

func TestLoadFromEnvOverridesDefaults(t *testing.T) {
	clearEnv(t)
	os.Setenv("NARS_SERVER_NAME", "test-nars")
	os.Setenv("NARS_CONCEPT_BAG_SIZE", "2500")
	os.Setenv("NARS_BUDGET_THRESHOLD", "0.05")
	os.Setenv("NARS_DEBUG", "true")
	defer clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "test-nars", cfg.Server.Name)
	assert.Equal(t, 2500, cfg.Bags.ConceptBagSize)
	assert.InDelta(t, 0.05, cfg.Memory.BudgetThreshold, 1e-9)
	assert.True(t, cfg.Logging.Debug)
}

func TestLoadRejectsMalformedNumericEnv(t *testing.T) {
	clearEnv(t)
	os.Setenv("NARS_CONCEPT_BAG_SIZE", "not-a-number")
	defer clearEnv(t)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadFromFileThenEnvOverride(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.json")
	configJSON := `{"server":{"name":"file-nars"},"bags":{"concept_bag_size":500}}`
	require.NoError(t, os.WriteFile(configPath, []byte(configJSON), 0644))

	clearEnv(t)
	os.Setenv("NARS_SERVER_NAME", "env-nars")
	defer clearEnv(t)

	cfg, err := LoadFromFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, "env-nars", cfg.Server.Name)
	assert.Equal(t, 500, cfg.Bags.ConceptBagSize)
}

func TestValidateRejectsEmptyServerName(t *testing.T) {
	cfg := Default()
	cfg.Server.Name = ""
	err := cfg.Validate()
	assert.ErrorContains(t, err, "server.name")
}

func TestValidateRejectsOutOfRangeBudgetThreshold(t *testing.T) {
	cfg := Default()
	cfg.Memory.BudgetThreshold = 1.5
	err := cfg.Validate()
	assert.ErrorContains(t, err, "budget_threshold")
}

func TestSaveToFileRoundTrips(t *testing.T) {
	cfg := Default()
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "saved-config.json")

	require.NoError(t, cfg.SaveToFile(configPath))

	clearEnv(t)
	loaded, err := LoadFromFile(configPath)
	require.NoError(t, err)
	assert.Equal(t, cfg.Server.Name, loaded.Server.Name)
	assert.Equal(t, cfg.Bags.ConceptBagSize, loaded.Bags.ConceptBagSize)
}

func TestParseBoolAcceptsCommonTruthyForms(t *testing.T) {
	for _, in := range []string{"true", "TRUE", "1", "yes", "on", "enabled"} {
		assert.True(t, parseBool(in), in)
	}
	for _, in := range []string{"false", "0", "no", "off", "", "garbage"} {
		assert.False(t, parseBool(in), in)
	}
}
