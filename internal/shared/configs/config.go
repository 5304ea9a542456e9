package configs

// Config holds all configuration for the analyzer.
type Config struct {
	Log         LogConfig         `mapstructure:"log" validate:"required"`
	Input       InputConfig       `mapstructure:"input" validate:"required"`
	Output      OutputConfig      `mapstructure:"output" validate:"required"`
	History     HistoryConfig     `mapstructure:"history" validate:"required"`
	Incremental IncrementalConfig `mapstructure:"incremental"`
	Analysis    AnalysisConfig    `mapstructure:"analysis" validate:"required"`
	Lists       ListsConfig       `mapstructure:"lists"`
	DNS         DNSConfig         `mapstructure:"dns"`
	Server      ServerConfig      `mapstructure:"server"`
}

// LogConfig holds logging configuration. An explicit level overrides the verbosity mapping.
type LogConfig struct {
	Level     string `mapstructure:"level"`
	Verbosity string `mapstructure:"verbosity" validate:"oneof=quiet normal debug"`
	Summary   bool   `mapstructure:"summary"` // print the records/ignored/bad line at the end
}

// InputConfig describes the log files to read.
type InputConfig struct {
	LogType      string   `mapstructure:"log_type" validate:"oneof=clf ftp squid w3c"`
	Files        []string `mapstructure:"files" validate:"required,min=1,dive,required,logglob"` // "-" reads stdin
	GMTTime      bool     `mapstructure:"gmt_time"`
	FoldSeqErr   bool     `mapstructure:"fold_seq_err"`
	TrimSquidURL int      `mapstructure:"trim_squid_url" validate:"min=0"`
}

// OutputConfig holds the locations of persisted files.
type OutputConfig struct {
	Dir         string   `mapstructure:"dir" validate:"required"`
	HistoryName string   `mapstructure:"history_name" validate:"required"`
	StateName   string   `mapstructure:"state_name" validate:"required"`
	Title       string   `mapstructure:"title"` // site name shown in report headings
	Report      bool     `mapstructure:"report"`
	Dump        []string `mapstructure:"dump" validate:"dive,oneof=sites urls referrers agents users search"`
	DumpHeader  bool     `mapstructure:"dump_header"`
	DumpHidden  bool     `mapstructure:"dump_hidden"`
}

type HistoryConfig struct {
	Months int  `mapstructure:"months" validate:"min=1,max=120"`
	Ignore bool `mapstructure:"ignore"`
}

type IncrementalConfig struct {
	Enabled     bool `mapstructure:"enabled"`
	IgnoreState bool `mapstructure:"ignore_state"`
}

// AnalysisConfig tunes normalization and aggregation.
type AnalysisConfig struct {
	VisitTimeout          int                  `mapstructure:"visit_timeout" validate:"min=1"` // seconds
	StripCGI              bool                 `mapstructure:"strip_cgi"`
	NormalizeURLs         bool                 `mapstructure:"normalize_urls"`
	DefaultIndex          bool                 `mapstructure:"default_index"`
	IndexAliases          []string             `mapstructure:"index_aliases"`
	PageTypes             []string             `mapstructure:"page_types"`
	PagePrefixes          []string             `mapstructure:"page_prefixes"`
	OmitPages             []string             `mapstructure:"omit_pages"`
	MangleAgents          int                  `mapstructure:"mangle_agents" validate:"min=0,max=5"`
	AgentFamily           bool                 `mapstructure:"agent_family"`
	SearchEngines         []SearchEngineConfig `mapstructure:"search_engines" validate:"dive"`
	SearchCaseInsensitive bool                 `mapstructure:"search_case_insensitive"`
	GroupDomains          int                  `mapstructure:"group_domains" validate:"min=0,max=10"`
	HideAllSites          bool                 `mapstructure:"hide_all_sites"`
	MaxNodesPerTable      int                  `mapstructure:"max_nodes_per_table" validate:"min=0"` // 0 is unlimited
	TopSites              int                  `mapstructure:"top_sites" validate:"min=0"`
	TopURLs               int                  `mapstructure:"top_urls" validate:"min=0"`
	TopEntry              int                  `mapstructure:"top_entry" validate:"min=0"`
	TopExit               int                  `mapstructure:"top_exit" validate:"min=0"`
	TopReferrers          int                  `mapstructure:"top_referrers" validate:"min=0"`
	TopAgents             int                  `mapstructure:"top_agents" validate:"min=0"`
	TopSearch             int                  `mapstructure:"top_search" validate:"min=0"`
	TopUsers              int                  `mapstructure:"top_users" validate:"min=0"`
}

// SearchEngineConfig maps a referrer pattern onto the query variable carrying the search terms.
type SearchEngineConfig struct {
	Pattern string `mapstructure:"pattern" validate:"required"`
	Query   string `mapstructure:"query" validate:"required"`
}

// ListsConfig holds the classification pattern lists.
type ListsConfig struct {
	Hide    EntityPatterns `mapstructure:"hide"`
	Ignore  EntityPatterns `mapstructure:"ignore"`
	Include EntityPatterns `mapstructure:"include"`
	Group   EntityGroups   `mapstructure:"group"`
}

type EntityPatterns struct {
	Sites     []string `mapstructure:"sites"`
	URLs      []string `mapstructure:"urls"`
	Referrers []string `mapstructure:"referrers"`
	Agents    []string `mapstructure:"agents"`
	Users     []string `mapstructure:"users"`
}

type EntityGroups struct {
	Sites     []GroupEntry `mapstructure:"sites" validate:"dive"`
	URLs      []GroupEntry `mapstructure:"urls" validate:"dive"`
	Referrers []GroupEntry `mapstructure:"referrers" validate:"dive"`
	Agents    []GroupEntry `mapstructure:"agents" validate:"dive"`
	Users     []GroupEntry `mapstructure:"users" validate:"dive"`
}

// GroupEntry is a pattern with an optional display name. The pattern is used when the name is empty.
type GroupEntry struct {
	Pattern string `mapstructure:"pattern" validate:"required"`
	Name    string `mapstructure:"name"`
}

// DNSConfig configures the reverse lookup pre-pass. Zero workers disables it.
type DNSConfig struct {
	CacheFile    string `mapstructure:"cache_file" validate:"required_with=Workers"`
	Workers      int    `mapstructure:"workers" validate:"min=0,max=100"`
	CacheTTLDays int    `mapstructure:"cache_ttl_days" validate:"min=1,max=100"`
	CacheIPs     bool   `mapstructure:"cache_ips"`
	Timeout      int    `mapstructure:"timeout" validate:"min=1"` // seconds per lookup
}

// ServerConfig holds the optional status server configuration. Port 0 disables the server.
type ServerConfig struct {
	Port              int `mapstructure:"port" validate:"min=0,max=65535"`
	ReadHeaderTimeout int `mapstructure:"read_header_timeout" validate:"min=1"` // seconds
	ReadTimeout       int `mapstructure:"read_timeout" validate:"min=1"`        // seconds (headers+body)
	WriteTimeout      int `mapstructure:"write_timeout" validate:"min=1"`       // seconds (response)
	IdleTimeout       int `mapstructure:"idle_timeout" validate:"min=1"`        // seconds (keep-alive)
}
