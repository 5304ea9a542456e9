package configs

import (
	"fmt"
	"strings"

	"weblog-analyzer/internal/shared/validators"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// FlagBindings maps command line flag names onto config keys. Only flags present in the flag set are bound.
var FlagBindings = map[string]string{
	"log-level":      "log.level",
	"verbosity":      "log.verbosity",
	"summary":        "log.summary",
	"log-type":       "input.log_type",
	"gmt-time":       "input.gmt_time",
	"fold-seq-err":   "input.fold_seq_err",
	"output-dir":     "output.dir",
	"history-name":   "output.history_name",
	"state-name":     "output.state_name",
	"no-report":      "output.no_report",
	"ignore-history": "history.ignore",
	"incremental":    "incremental.enabled",
	"ignore-state":   "incremental.ignore_state",
	"visit-timeout":  "analysis.visit_timeout",
	"dns-cache":      "dns.cache_file",
	"dns-workers":    "dns.workers",
	"status-port":    "server.port",
	"title":          "output.title",
	"dump":           "output.dump",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.verbosity", "normal")
	v.SetDefault("input.log_type", "clf")
	v.SetDefault("input.files", []string{"-"})
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.history_name", "webalizer.hist")
	v.SetDefault("output.state_name", "webalizer.current")
	v.SetDefault("output.report", true)
	v.SetDefault("history.months", 120)
	v.SetDefault("analysis.visit_timeout", 1800)
	v.SetDefault("analysis.strip_cgi", true)
	v.SetDefault("analysis.normalize_urls", true)
	v.SetDefault("analysis.default_index", true)
	v.SetDefault("analysis.search_case_insensitive", true)
	v.SetDefault("analysis.max_nodes_per_table", 0)
	v.SetDefault("analysis.top_sites", 30)
	v.SetDefault("analysis.top_urls", 30)
	v.SetDefault("analysis.top_entry", 10)
	v.SetDefault("analysis.top_exit", 10)
	v.SetDefault("analysis.top_referrers", 30)
	v.SetDefault("analysis.top_agents", 15)
	v.SetDefault("analysis.top_search", 20)
	v.SetDefault("analysis.top_users", 20)
	v.SetDefault("dns.cache_ttl_days", 7)
	v.SetDefault("dns.timeout", 5)
	v.SetDefault("server.read_header_timeout", 5)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 60)
}

// LoadConfig reads configuration from file, applies flag overrides and validates it.
// An empty configPath runs on defaults and flags alone. flags may be nil.
var LoadConfig = func(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %q: %w", configPath, err)
		}
	}

	if flags != nil {
		for name, key := range FlagBindings {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	// --no-report is a negative flag; it can only turn the report off.
	if v.GetBool("output.no_report") {
		cfg.Output.Report = false
	}

	validate := validators.New()
	if err := validate.Struct(&cfg); err != nil {
		var validationErrors []string
		if ve, ok := err.(validators.ValidationErrors); ok {
			for _, e := range ve {
				validationErrors = append(validationErrors, formatValidationError(e))
			}
		}
		return nil, fmt.Errorf("config validation failed: %s", strings.Join(validationErrors, ", "))
	}

	return &cfg, nil
}

// formatValidationError formats a single validation error into a readable string.
func formatValidationError(e validators.FieldError) string {
	field := e.Field()
	tag := e.Tag()

	// Build field path (e.g., "analysis.visittimeout")
	if e.StructNamespace() != "" {
		parts := strings.Split(e.StructNamespace(), ".")
		if len(parts) >= 2 {
			field = strings.ToLower(strings.Join(parts[1:], "."))
		}
	}

	var msg string
	switch tag {
	case "required", "required_with":
		msg = fmt.Sprintf("%s (required)", field)
	case "min":
		msg = fmt.Sprintf("%s (min=%s)", field, e.Param())
	case "max":
		msg = fmt.Sprintf("%s (max=%s)", field, e.Param())
	case "oneof":
		msg = fmt.Sprintf("%s (oneof=%s)", field, e.Param())
	default:
		msg = fmt.Sprintf("%s (%s)", field, tag)
	}

	return msg
}
