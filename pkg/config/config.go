package config

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Config is the full service configuration.
type Config struct {
	Server          ServerConfig          `mapstructure:"server"`
	Database        DatabaseConfig        `mapstructure:"database"`
	Redis           RedisConfig           `mapstructure:"redis"`
	Kafka           KafkaConfig           `mapstructure:"kafka"`
	Log             LogConfig             `mapstructure:"log"`
	Storage         StorageConfig         `mapstructure:"storage"`
	Transcode       TranscodeConfig       `mapstructure:"transcode"`
	Cache           CacheConfig           `mapstructure:"cache"`
	ServiceRegistry ServiceRegistryConfig `mapstructure:"service_registry"`
	Etcd            EtcdConfig            `mapstructure:"etcd"`
}

// ServerConfig HTTP server configuration.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig MySQL configuration.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Username        string        `mapstructure:"username"`
	Password        string        `mapstructure:"password"`
	Database        string        `mapstructure:"database"`
	Charset         string        `mapstructure:"charset"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// RedisConfig Redis configuration.
type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	EnableTLS    bool          `mapstructure:"enable_tls"`
}

// KafkaConfig Kafka configuration.
type KafkaConfig struct {
	BootstrapServers []string          `mapstructure:"bootstrap_servers"`
	ClientID         string            `mapstructure:"client_id"`
	Enabled          bool              `mapstructure:"enabled"`
	Topics           KafkaTopicsConfig `mapstructure:"topics"`
}

// KafkaTopicsConfig names the topics the service produces to.
type KafkaTopicsConfig struct {
	VideoEvents string `mapstructure:"video_events"`
}

// LogConfig logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// StorageConfig describes the shared filesystem namespace for video assets.
type StorageConfig struct {
	// Root is the storage root; every video id maps to a subdirectory of it.
	Root string `mapstructure:"root"`
	// MaxUploadSizeMB is the inclusive upload size limit in MiB.
	MaxUploadSizeMB int64 `mapstructure:"max_upload_size_mb"`
}

// MaxUploadSizeBytes returns the inclusive upload size limit in bytes.
func (s *StorageConfig) MaxUploadSizeBytes() int64 {
	return s.MaxUploadSizeMB * 1024 * 1024
}

// TranscodeConfig transcoding configuration.
type TranscodeConfig struct {
	FFmpeg FFmpegConfig `mapstructure:"ffmpeg"`
}

// FFmpegConfig FFmpeg invocation configuration.
type FFmpegConfig struct {
	BinaryPath string        `mapstructure:"binary_path"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// CacheConfig owner-listing cache behaviour.
type CacheConfig struct {
	ListingTTL time.Duration `mapstructure:"listing_ttl"`
}

// ServiceRegistryConfig registration configuration.
type ServiceRegistryConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	ServiceName     string        `mapstructure:"service_name"`
	ServiceID       string        `mapstructure:"service_id"`
	RegisterHost    string        `mapstructure:"register_host"`
	TTL             time.Duration `mapstructure:"ttl"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// EtcdConfig etcd client configuration for the service registry.
type EtcdConfig struct {
	Endpoints   []string      `mapstructure:"endpoints"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	Username    string        `mapstructure:"username"`
	Password    string        `mapstructure:"password"`
}

var (
	globalMu     sync.RWMutex
	globalConfig *Config
)

// SetGlobalConfig installs the process-wide configuration; must happen
// before resources are opened.
func SetGlobalConfig(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig returns the installed configuration, or nil.
func GetGlobalConfig() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalConfig
}

// Load reads and normalizes the configuration file at configPath.
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")

	viper.SetDefault("service_registry.enabled", false)
	viper.SetDefault("kafka.enabled", true)
	viper.SetDefault("kafka.client_id", "video-ingest-service")
	viper.SetDefault("kafka.bootstrap_servers", []string{"localhost:29092"})
	viper.SetDefault("kafka.topics.video_events", "video.events")

	viper.SetEnvPrefix("VIDEO_INGEST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	config.normalize()

	return &config, nil
}

// normalize fills in defaults for unset fields.
func (c *Config) normalize() {
	if c.Server.Port == 0 {
		c.Server.Port = 8084
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "debug"
	}

	if c.Database.Charset == "" {
		c.Database.Charset = "utf8mb4"
	}
	if c.Database.MaxIdleConns <= 0 {
		c.Database.MaxIdleConns = 10
	}
	if c.Database.MaxOpenConns <= 0 {
		c.Database.MaxOpenConns = 100
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = time.Hour
	}

	if c.Storage.Root == "" {
		c.Storage.Root = "storage/videos"
	}
	if c.Storage.MaxUploadSizeMB <= 0 {
		c.Storage.MaxUploadSizeMB = 1000
	}

	if c.Transcode.FFmpeg.BinaryPath == "" {
		c.Transcode.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.Transcode.FFmpeg.Timeout == 0 {
		c.Transcode.FFmpeg.Timeout = time.Hour
	}

	if c.Cache.ListingTTL <= 0 {
		c.Cache.ListingTTL = 10 * time.Minute
	}

	if c.ServiceRegistry.ServiceName == "" {
		c.ServiceRegistry.ServiceName = "video-ingest-service"
	}
	if c.ServiceRegistry.TTL == 0 {
		c.ServiceRegistry.TTL = 30 * time.Second
	}
	if c.ServiceRegistry.RefreshInterval == 0 {
		c.ServiceRegistry.RefreshInterval = 10 * time.Second
	}
	if c.Etcd.DialTimeout == 0 {
		c.Etcd.DialTimeout = 5 * time.Second
	}

	if len(c.Kafka.BootstrapServers) == 0 {
		c.Kafka.BootstrapServers = []string{"localhost:29092"}
	}
	if c.Kafka.ClientID == "" {
		c.Kafka.ClientID = "video-ingest-service"
	}
	if c.Kafka.Topics.VideoEvents == "" {
		c.Kafka.Topics.VideoEvents = "video.events"
	}
}

// GetDSN builds the MySQL connection string.
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database, c.Charset)
}

// GetRedisAddr builds the Redis address.
func (c *RedisConfig) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
