package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/radhian/order-validation-system/consts"
	"github.com/radhian/order-validation-system/utils"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

type Config struct {
	StorageBackend  string `yaml:"storage_backend"` // s3|local
	LocalStorageDir string `yaml:"local_storage_dir"`
	BucketName      string `yaml:"bucket_name"`
	AWSRegion       string `yaml:"aws_region"`
	AccessKey       string `yaml:"access_key"`
	SecretAccessKey string `yaml:"secret_access_key"`
	S3Endpoint      string `yaml:"s3_endpoint"`

	IncomingPrefix string `yaml:"incoming_prefix"`
	SuccessPrefix  string `yaml:"success_prefix"`
	RejectedPrefix string `yaml:"rejected_prefix"`

	ReferencePath string `yaml:"reference_path"`
	// When set, the product master is read from the object store instead of ReferencePath.
	ReferenceKey string `yaml:"reference_key"`

	AllowedCities     []string `yaml:"allowed_cities"`
	SourceReadWorkers int      `yaml:"source_read_workers"`

	DBDialect string `yaml:"db_dialect"` // postgres|sqlite3
	DBDSN     string `yaml:"db_dsn"`

	HTTPPort          string `yaml:"http_port"`
	MetricsAddr       string `yaml:"metrics_addr"`
	RunSchedule       string `yaml:"run_schedule"`
	WorkerNumber      int    `yaml:"worker_number"`
	WorkerIntervalSec int    `yaml:"worker_interval_sec"`
	Timezone          string `yaml:"timezone"`
	LogLevel          string `yaml:"log_level"`

	Notifiers      []string `yaml:"notifiers"` // log,ses,slack,kafka
	EmailRegion    string   `yaml:"email_region"`
	EmailSender    string   `yaml:"email_sender"`
	EmailReceivers []string `yaml:"email_receivers"`
	SlackBotToken  string   `yaml:"slack_bot_token"`
	SlackChannelID string   `yaml:"slack_channel_id"`
	KafkaBrokers   []string `yaml:"kafka_brokers"`
	KafkaTopic     string   `yaml:"kafka_topic"`

	Location *time.Location `yaml:"-"` // computed from Timezone, not from YAML
}

// Load reads config.yaml (or CONFIG_PATH), an optional .env file and
// environment overrides, then applies defaults and validates the result.
func Load() (Config, error) {
	var cfg Config

	if err := godotenv.Load(); err == nil {
		log.Infof("[Config] Loaded .env")
	}

	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", configPath, err)
		}
		log.Infof("[Config] Loaded config from %s", configPath)
	}

	envOverride(&cfg.StorageBackend, "STORAGE_BACKEND")
	envOverride(&cfg.LocalStorageDir, "LOCAL_STORAGE_DIR")
	envOverride(&cfg.BucketName, "BUCKET_NAME")
	envOverride(&cfg.AWSRegion, "AWS_REGION")
	envOverride(&cfg.AccessKey, "AWS_ACCESS_KEY_ID")
	envOverride(&cfg.SecretAccessKey, "AWS_SECRET_ACCESS_KEY")
	envOverride(&cfg.S3Endpoint, "S3_ENDPOINT")
	envOverride(&cfg.IncomingPrefix, "INCOMING_PREFIX")
	envOverride(&cfg.SuccessPrefix, "SUCCESS_PREFIX")
	envOverride(&cfg.RejectedPrefix, "REJECTED_PREFIX")
	envOverride(&cfg.ReferencePath, "REFERENCE_PATH")
	envOverride(&cfg.ReferenceKey, "REFERENCE_KEY")
	envOverrideList(&cfg.AllowedCities, "ALLOWED_CITIES")
	envOverrideList(&cfg.Notifiers, "NOTIFIERS")
	envOverrideList(&cfg.EmailReceivers, "EMAIL_RECEIVERS")
	envOverrideList(&cfg.KafkaBrokers, "KAFKA_BROKERS")
	envOverride(&cfg.DBDialect, "DB_DIALECT")
	envOverride(&cfg.DBDSN, "DB_DSN")
	envOverride(&cfg.HTTPPort, "PORT")
	envOverride(&cfg.MetricsAddr, "METRICS_ADDR")
	envOverride(&cfg.RunSchedule, "RUN_SCHEDULE")
	envOverride(&cfg.Timezone, "TIMEZONE")
	envOverride(&cfg.LogLevel, "LOG_LEVEL")
	envOverride(&cfg.EmailRegion, "EMAIL_REGION")
	envOverride(&cfg.EmailSender, "EMAIL_SENDER")
	envOverride(&cfg.SlackBotToken, "SLACK_BOT_TOKEN")
	envOverride(&cfg.SlackChannelID, "SLACK_CHANNEL_ID")
	envOverride(&cfg.KafkaTopic, "KAFKA_TOPIC")
	if err := envOverrideInt(&cfg.SourceReadWorkers, "SOURCE_READ_WORKERS"); err != nil {
		return cfg, err
	}
	if err := envOverrideInt(&cfg.WorkerNumber, "WORKER_NUMBER"); err != nil {
		return cfg, err
	}
	if err := envOverrideInt(&cfg.WorkerIntervalSec, "WORKER_INTERVAL_SEC"); err != nil {
		return cfg, err
	}

	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.StorageBackend == "" {
		cfg.StorageBackend = "local"
	}
	if cfg.LocalStorageDir == "" {
		cfg.LocalStorageDir = "./uploads"
	}
	if cfg.IncomingPrefix == "" {
		cfg.IncomingPrefix = consts.DefaultIncomingPrefix
	}
	if cfg.SuccessPrefix == "" {
		cfg.SuccessPrefix = consts.DefaultSuccessPrefix
	}
	if cfg.RejectedPrefix == "" {
		cfg.RejectedPrefix = consts.DefaultRejectedPrefix
	}
	if cfg.ReferencePath == "" {
		cfg.ReferencePath = consts.DefaultReferencePath
	}
	if len(cfg.AllowedCities) == 0 {
		cfg.AllowedCities = []string{"Bangalore", "Mumbai"}
	}
	if cfg.SourceReadWorkers == 0 {
		cfg.SourceReadWorkers = consts.DefaultReadWorkers
	}
	if cfg.DBDialect == "" {
		cfg.DBDialect = "sqlite3"
	}
	if cfg.DBDSN == "" && cfg.DBDialect == "sqlite3" {
		cfg.DBDSN = "./validation.db"
	}
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = consts.DefaultHTTPPort
	}
	if cfg.RunSchedule == "" {
		cfg.RunSchedule = consts.DefaultRunSchedule
	}
	if cfg.WorkerNumber == 0 {
		cfg.WorkerNumber = consts.DefaultWorkerNumber
	}
	if cfg.WorkerIntervalSec == 0 {
		cfg.WorkerIntervalSec = consts.DefaultIntervalInSec
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Local"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if len(cfg.Notifiers) == 0 {
		cfg.Notifiers = []string{"log"}
	}
	if cfg.EmailRegion == "" {
		cfg.EmailRegion = cfg.AWSRegion
	}
}

func (c *Config) validate() error {
	switch c.StorageBackend {
	case "local":
	case "s3":
		if c.BucketName == "" {
			return fmt.Errorf("bucket_name is required when storage_backend=s3")
		}
	default:
		return fmt.Errorf("storage_backend must be 's3' or 'local', got '%s'", c.StorageBackend)
	}

	switch c.DBDialect {
	case "postgres", "sqlite3":
	default:
		return fmt.Errorf("db_dialect must be 'postgres' or 'sqlite3', got '%s'", c.DBDialect)
	}
	if c.DBDSN == "" {
		return fmt.Errorf("db_dsn is required when db_dialect=%s", c.DBDialect)
	}

	if c.SourceReadWorkers < 1 {
		return fmt.Errorf("invalid source_read_workers '%d': must be >= 1", c.SourceReadWorkers)
	}
	if c.WorkerNumber < 1 {
		return fmt.Errorf("invalid worker_number '%d': must be >= 1", c.WorkerNumber)
	}
	if c.WorkerIntervalSec < 1 {
		return fmt.Errorf("invalid worker_interval_sec '%d': must be >= 1", c.WorkerIntervalSec)
	}

	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	if _, err := parser.Parse(c.RunSchedule); err != nil {
		return fmt.Errorf("invalid run_schedule '%s': %w", c.RunSchedule, err)
	}

	for _, n := range c.Notifiers {
		switch n {
		case "log":
		case "ses":
			if c.EmailSender == "" || len(c.EmailReceivers) == 0 {
				return fmt.Errorf("email_sender and email_receivers are required for the ses notifier")
			}
		case "slack":
			if c.SlackBotToken == "" || c.SlackChannelID == "" {
				return fmt.Errorf("slack_bot_token and slack_channel_id are required for the slack notifier")
			}
		case "kafka":
			if len(c.KafkaBrokers) == 0 || c.KafkaTopic == "" {
				return fmt.Errorf("kafka_brokers and kafka_topic are required for the kafka notifier")
			}
		default:
			return fmt.Errorf("unknown notifier '%s'", n)
		}
	}

	if _, ok := parseLogLevel(c.LogLevel); !ok {
		return fmt.Errorf("invalid log_level '%s'", c.LogLevel)
	}

	if strings.EqualFold(c.Timezone, "Local") {
		c.Location = time.Local
	} else {
		loc, err := time.LoadLocation(c.Timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w", c.Timezone, err)
		}
		c.Location = loc
	}
	return nil
}

// ApplyLogLevel sets the gommon global logger level from LogLevel.
func (c Config) ApplyLogLevel() {
	if lvl, ok := parseLogLevel(c.LogLevel); ok {
		log.SetLevel(lvl)
	}
}

func (c Config) WorkerInterval() time.Duration {
	return time.Duration(c.WorkerIntervalSec) * time.Second
}

// Today returns the current calendar date in the configured timezone.
func (c Config) Today() time.Time {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	return utils.TruncateToDate(time.Now().In(loc))
}

func parseLogLevel(s string) (log.Lvl, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return log.DEBUG, true
	case "info":
		return log.INFO, true
	case "warn":
		return log.WARN, true
	case "error":
		return log.ERROR, true
	case "off":
		return log.OFF, true
	}
	return 0, false
}

func envOverride(field *string, envKey string) {
	if val := os.Getenv(envKey); val != "" {
		*field = val
	}
}

func envOverrideList(field *[]string, envKey string) {
	val := os.Getenv(envKey)
	if val == "" {
		return
	}
	*field = nil
	for _, item := range strings.Split(val, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			*field = append(*field, item)
		}
	}
}

func envOverrideInt(field *int, envKey string) error {
	if val := os.Getenv(envKey); val != "" {
		parsed, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid %s '%s': %w", envKey, val, err)
		}
		*field = parsed
	}
	return nil
}
