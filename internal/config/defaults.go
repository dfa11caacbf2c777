package config

// Default values for every recognised option.
const (
	DefaultSourceKind    = "http"
	DefaultAPIURL        = "http://localhost:8080/api/v1"
	DefaultTimeout       = "10s"
	DefaultTasksGlob     = "data/tasks/**/*.json"
	DefaultCacheTTL      = "30s"
	DefaultCacheMaxBytes = 16 << 20
	DefaultView          = "basic"
	DefaultToastDuration = "5s"
	DefaultChartWidth    = 60
	DefaultServerAddr    = "127.0.0.1:8088"
)

// NewDefaults returns a Config populated with all default values.
func NewDefaults() *Config {
	return &Config{
		Source: SourceConfig{
			Kind:          DefaultSourceKind,
			APIURL:        DefaultAPIURL,
			Timeout:       DefaultTimeout,
			TasksGlob:     DefaultTasksGlob,
			CacheTTL:      DefaultCacheTTL,
			CacheMaxBytes: DefaultCacheMaxBytes,
		},
		View: ViewConfig{
			Default:       DefaultView,
			ToastDuration: DefaultToastDuration,
			ChartWidth:    DefaultChartWidth,
		},
		Server: ServerConfig{
			Addr: DefaultServerAddr,
		},
	}
}
