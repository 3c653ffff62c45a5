// Package config provides configuration management for the reasoning
// daemon.
//
// Configuration can be loaded from multiple sources (in order of precedence):
// 1. Environment variables (highest priority)
// 2. Configuration file (JSON)
// 3. Default values (lowest priority)
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config represents the complete daemon configuration.
type Config struct {
	Server  ServerConfig  `json:"server"`
	Bags    BagConfig     `json:"bags"`
	Memory  MemoryConfig  `json:"memory"`
	Rules   RuleConfig    `json:"rules"`
	Logging LoggingConfig `json:"logging"`
}

// ServerConfig contains daemon-level configuration.
type ServerConfig struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	ClockSeed int64  `json:"clock_seed"`
}

// BagConfig mirrors the priority-bag capacities named in spec §6.
type BagConfig struct {
	ConceptBagSize  int `json:"concept_bag_size"`
	TaskLinkBagSize int `json:"task_link_bag_size"`
	TermLinkBagSize int `json:"term_link_bag_size"`
}

// MemoryConfig mirrors the remaining tunables spec §6 names.
type MemoryConfig struct {
	ConceptBeliefsMax             int     `json:"concept_beliefs_max"`
	ConceptQuestionsMax           int     `json:"concept_questions_max"`
	ConceptGoalsMax               int     `json:"concept_goals_max"`
	BudgetThreshold               float64 `json:"budget_threshold"`
	RevisionMaxOccurrenceDistance int64   `json:"revision_max_occurrence_distance"`
	TermLinkRecordLength          int     `json:"term_link_record_length"`
	NoveltyHorizon                int64   `json:"novelty_horizon"`
	MaxEvidentialBaseLength       int     `json:"max_evidential_base_length"`
	Duration                      int64   `json:"duration"`
}

// RuleConfig points the daemon at its rule-table resource.
type RuleConfig struct {
	TablePath string `json:"table_path"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Debug bool `json:"debug"`
}

// Default returns the configuration spec §6 names as defaults.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Name:      "narsd",
			Version:   "1.0.0",
			ClockSeed: 1,
		},
		Bags: BagConfig{
			ConceptBagSize:  10000,
			TaskLinkBagSize: 100,
			TermLinkBagSize: 100,
		},
		Memory: MemoryConfig{
			ConceptBeliefsMax:             28,
			ConceptQuestionsMax:           5,
			ConceptGoalsMax:               7,
			BudgetThreshold:               0.01,
			RevisionMaxOccurrenceDistance: 10,
			TermLinkRecordLength:          10,
			NoveltyHorizon:                100000,
			MaxEvidentialBaseLength:       20000,
			Duration:                      5,
		},
		Rules: RuleConfig{
			TablePath: "",
		},
		Logging: LoggingConfig{
			Debug: false,
		},
	}
}

// Load loads configuration from environment variables and applies defaults.
func Load() (*Config, error) {
	cfg := Default()
	if err := cfg.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a JSON file, then lets
// environment variables override it.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.loadFromEnv(); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// loadFromEnv loads configuration from environment variables. Variables
// follow the pattern NARS_<KEY>, matching spec §6's Defaults names.
func (c *Config) loadFromEnv() error {
	if v := os.Getenv("NARS_SERVER_NAME"); v != "" {
		c.Server.Name = v
	}
	if err := envInt64("NARS_CLOCK_SEED", &c.Server.ClockSeed); err != nil {
		return err
	}

	if err := envInt("NARS_CONCEPT_BAG_SIZE", &c.Bags.ConceptBagSize); err != nil {
		return err
	}
	if err := envInt("NARS_TASK_LINK_BAG_SIZE", &c.Bags.TaskLinkBagSize); err != nil {
		return err
	}
	if err := envInt("NARS_TERM_LINK_BAG_SIZE", &c.Bags.TermLinkBagSize); err != nil {
		return err
	}

	if err := envInt("NARS_CONCEPT_BELIEFS_MAX", &c.Memory.ConceptBeliefsMax); err != nil {
		return err
	}
	if err := envInt("NARS_CONCEPT_QUESTIONS_MAX", &c.Memory.ConceptQuestionsMax); err != nil {
		return err
	}
	if err := envInt("NARS_CONCEPT_GOALS_MAX", &c.Memory.ConceptGoalsMax); err != nil {
		return err
	}
	if err := envFloat("NARS_BUDGET_THRESHOLD", &c.Memory.BudgetThreshold); err != nil {
		return err
	}
	if err := envInt64("NARS_REVISION_MAX_OCCURRENCE_DISTANCE", &c.Memory.RevisionMaxOccurrenceDistance); err != nil {
		return err
	}
	if err := envInt("NARS_TERM_LINK_RECORD_LENGTH", &c.Memory.TermLinkRecordLength); err != nil {
		return err
	}
	if err := envInt64("NARS_NOVELTY_HORIZON", &c.Memory.NoveltyHorizon); err != nil {
		return err
	}
	if err := envInt("NARS_MAX_EVIDENTIAL_BASE_LENGTH", &c.Memory.MaxEvidentialBaseLength); err != nil {
		return err
	}
	if err := envInt64("NARS_DURATION", &c.Memory.Duration); err != nil {
		return err
	}

	if v := os.Getenv("NARS_RULE_TABLE_PATH"); v != "" {
		c.Rules.TablePath = v
	}
	if v := os.Getenv("NARS_DEBUG"); v != "" {
		c.Logging.Debug = parseBool(v)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Name == "" {
		return fmt.Errorf("server.name cannot be empty")
	}
	if c.Bags.ConceptBagSize < 1 {
		return fmt.Errorf("bags.concept_bag_size must be >= 1")
	}
	if c.Bags.TaskLinkBagSize < 1 || c.Bags.TermLinkBagSize < 1 {
		return fmt.Errorf("bags.task_link_bag_size and term_link_bag_size must be >= 1")
	}
	if c.Memory.BudgetThreshold < 0 || c.Memory.BudgetThreshold > 1 {
		return fmt.Errorf("memory.budget_threshold must be in [0,1]")
	}
	if c.Memory.ConceptBeliefsMax < 1 {
		return fmt.Errorf("memory.concept_beliefs_max must be >= 1")
	}
	return nil
}

// parseBool parses a boolean from string (handles various formats).
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "true" || s == "1" || s == "yes" || s == "on" || s == "enabled"
}

// ToJSON serializes the configuration to JSON.
func (c *Config) ToJSON() ([]byte, error) {
	return json.MarshalIndent(c, "", "  ")
}

// SaveToFile saves the configuration to a JSON file.
func (c *Config) SaveToFile(path string) error {
	data, err := c.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func envInt(name string, dst *int) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s=%q is not an integer: %w", name, v, err)
	}
	*dst = n
	return nil
}

func envInt64(name string, dst *int64) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%s=%q is not an integer: %w", name, v, err)
	}
	*dst = n
	return nil
}

func envFloat(name string, dst *float64) error {
	v := os.Getenv(name)
	if v == "" {
		return nil
	}
	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("%s=%q is not a float: %w", name, v, err)
	}
	*dst = n
	return nil
}
