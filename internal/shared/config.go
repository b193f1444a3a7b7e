package shared

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (default)
		DSN    string `yaml:"dsn"`    // "./tsmend.db"
	} `yaml:"database"`

	Fix struct {
		Root          string   `yaml:"root"`         // "src"
		Extensions    []string `yaml:"extensions"`   // [".ts"]
		ExcludeDirs   []string `yaml:"exclude_dirs"` // ["node_modules", "dist"]
		RulesPack     string   `yaml:"rules_pack"`   // optional YAML rules pack
		DryRun        bool     `yaml:"dry_run"`      // report only, no writes
		DisabledRules []string `yaml:"disabled_rules"`
	} `yaml:"fix"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reporting"`

	Logging struct {
		Format string `yaml:"format"` // "json"|"text"
		Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
	} `yaml:"logging"`
}

func DefaultConfig() Config {
	var c Config
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./tsmend.db"
	c.Fix.Root = "src"
	c.Fix.Extensions = []string{".ts"}
	c.Fix.ExcludeDirs = []string{"node_modules", "dist"}
	c.Reporting.OutDir = "./reports"
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	return c
}

func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("TSMEND_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("TSMEND_ROOT"); v != "" {
		c.Fix.Root = v
	}
	if v := os.Getenv("TSMEND_EXCLUDE_DIRS"); v != "" {
		c.Fix.ExcludeDirs = splitList(v)
	}
	if v := os.Getenv("TSMEND_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("TSMEND_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("TSMEND_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	return c, nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
