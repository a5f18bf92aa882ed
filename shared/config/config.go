package config

import (
	"os"
	"path"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	Private Private
}

type Public struct {
	Trending          Trending `yaml:"trending"`
	CommentsPerPage   int      `yaml:"comments_per_page"`   // default page size for thread comments
	MaxCommentsPage   int      `yaml:"max_comments_page"`   // hard cap for the limit query param
	ActivityFeedLimit int      `yaml:"activity_feed_limit"` // default size of the recent-activity feed
	TopThreadsLimit   int      `yaml:"top_threads_limit"`   // threads shown in the dashboard bundle
	CorsOrigin        string   `yaml:"cors_origin"`
	LogLevel          string   `yaml:"log_level"`
	LogJSON           bool     `yaml:"log_json"`
	Port              int      `yaml:"port"`
	// counters are maintained incrementally; this job only repairs drift
	ReconcileInterval time.Duration `yaml:"reconcile_interval"`
}

type Trending struct {
	WindowDays        int           `yaml:"window_days"`
	Limit             int           `yaml:"limit"`
	BroadcastInterval time.Duration `yaml:"broadcast_interval"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Private struct {
	Pg Pg `yaml:"pg"`
}

func mustLoadPath(configPath string, output interface{}) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)

	if err != nil {
		panic("can't read config file")
	}

	err = yaml.Unmarshal(configFile, output)
	if err != nil {
		panic("can't unmarshal config file")
	}
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Public.Trending.WindowDays <= 0 {
		c.Public.Trending.WindowDays = 7
	}
	if c.Public.Trending.Limit <= 0 {
		c.Public.Trending.Limit = 5
	}
	if c.Public.Trending.BroadcastInterval <= 0 {
		c.Public.Trending.BroadcastInterval = 300 * time.Second
	}
	if c.Public.CommentsPerPage <= 0 {
		c.Public.CommentsPerPage = 20
	}
	if c.Public.MaxCommentsPage <= 0 {
		c.Public.MaxCommentsPage = 50
	}
	if c.Public.ActivityFeedLimit <= 0 {
		c.Public.ActivityFeedLimit = 20
	}
	if c.Public.TopThreadsLimit <= 0 {
		c.Public.TopThreadsLimit = 5
	}
	if c.Public.Port <= 0 {
		c.Public.Port = 8080
	}
	if c.Public.LogLevel == "" {
		c.Public.LogLevel = "info"
	}
}

// Env vars win over yaml so deployments can tune the trending knobs without
// shipping a new config file.
func (c *Config) applyEnvOverrides() {
	if v, ok := envInt("TRENDING_WINDOW_DAYS"); ok {
		c.Public.Trending.WindowDays = v
	}
	if v, ok := envInt("TRENDING_LIMIT"); ok {
		c.Public.Trending.Limit = v
	}
	if v, ok := envInt("TRENDING_BROADCAST_INTERVAL_SECONDS"); ok {
		c.Public.Trending.BroadcastInterval = time.Duration(v) * time.Second
	}
	if v, ok := envInt("PORT"); ok {
		c.Public.Port = v
	}
	if v := os.Getenv("PG_HOST"); v != "" {
		c.Private.Pg.Host = v
	}
	if v, ok := envInt("PG_PORT"); ok {
		c.Private.Pg.Port = v
	}
	if v := os.Getenv("PG_USER"); v != "" {
		c.Private.Pg.User = v
	}
	if v := os.Getenv("PG_PASSWORD"); v != "" {
		c.Private.Pg.Password = v
	}
	if v := os.Getenv("PG_DBNAME"); v != "" {
		c.Private.Pg.Dbname = v
	}
}

func envInt(name string) (int, bool) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}
