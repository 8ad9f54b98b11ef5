package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Campus   CampusConfig
	Tracking TrackingConfig
	Live     LiveConfig
	Worker   WorkerConfig
	Log      LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// CampusConfig fixes the campus reference point and geofence radius. The
// INCOMING/OUTGOING labeling convention is a product decision: a rider inside
// the geofence is classified OUTGOING (needs a drop-off), outside INCOMING.
type CampusConfig struct {
	Lat             float64
	Lng             float64
	GeofenceRadiusM float64
}

type TrackingConfig struct {
	StopSearchRadiusM    float64
	StalenessWindow      time.Duration
	FallbackSpeedKmh     float64
	MinPlausibleSpeedKmh float64
	ScheduleCacheTTL     time.Duration
}

type LiveConfig struct {
	HeartbeatInterval time.Duration
	WriteTimeout      time.Duration
	SubscriberBuffer  int
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	ApproachRadiusM   float64
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// Environment variables alone are a valid source outside local dev.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Auth: AuthConfig{
			JWTSecret: viper.GetString("AUTH_JWT_SECRET"),
			TokenTTL:  time.Duration(viper.GetInt("AUTH_TOKEN_TTL")) * time.Second,
		},
		Campus: CampusConfig{
			Lat:             viper.GetFloat64("CAMPUS_LAT"),
			Lng:             viper.GetFloat64("CAMPUS_LNG"),
			GeofenceRadiusM: viper.GetFloat64("CAMPUS_GEOFENCE_RADIUS_M"),
		},
		Tracking: TrackingConfig{
			StopSearchRadiusM:    viper.GetFloat64("TRACKING_STOP_SEARCH_RADIUS_M"),
			StalenessWindow:      time.Duration(viper.GetInt("TRACKING_STALENESS_WINDOW")) * time.Second,
			FallbackSpeedKmh:     viper.GetFloat64("TRACKING_FALLBACK_SPEED_KMH"),
			MinPlausibleSpeedKmh: viper.GetFloat64("TRACKING_MIN_PLAUSIBLE_SPEED_KMH"),
			ScheduleCacheTTL:     time.Duration(viper.GetInt("TRACKING_SCHEDULE_CACHE_TTL")) * time.Second,
		},
		Live: LiveConfig{
			HeartbeatInterval: time.Duration(viper.GetInt("LIVE_HEARTBEAT_INTERVAL")) * time.Second,
			WriteTimeout:      time.Duration(viper.GetInt("LIVE_WRITE_TIMEOUT")) * time.Second,
			SubscriberBuffer:  viper.GetInt("LIVE_SUBSCRIBER_BUFFER"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			ApproachRadiusM:   viper.GetFloat64("WORKER_APPROACH_RADIUS_M"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Auth.TokenTTL == 0 {
		cfg.Auth.TokenTTL = 24 * time.Hour
	}
	if cfg.Campus.Lat == 0 && cfg.Campus.Lng == 0 {
		// Oriental College, Bhopal
		cfg.Campus.Lat = 23.259933
		cfg.Campus.Lng = 77.412615
	}
	if cfg.Campus.GeofenceRadiusM == 0 {
		cfg.Campus.GeofenceRadiusM = 750
	}
	if cfg.Tracking.StopSearchRadiusM == 0 {
		cfg.Tracking.StopSearchRadiusM = 5000
	}
	if cfg.Tracking.StalenessWindow == 0 {
		cfg.Tracking.StalenessWindow = 2 * time.Minute
	}
	if cfg.Tracking.FallbackSpeedKmh == 0 {
		cfg.Tracking.FallbackSpeedKmh = 25
	}
	if cfg.Tracking.MinPlausibleSpeedKmh == 0 {
		cfg.Tracking.MinPlausibleSpeedKmh = 3
	}
	if cfg.Tracking.ScheduleCacheTTL == 0 {
		cfg.Tracking.ScheduleCacheTTL = 5 * time.Minute
	}
	if cfg.Live.HeartbeatInterval == 0 {
		cfg.Live.HeartbeatInterval = 20 * time.Second
	}
	if cfg.Live.WriteTimeout == 0 {
		cfg.Live.WriteTimeout = 10 * time.Second
	}
	if cfg.Live.SubscriberBuffer == 0 {
		cfg.Live.SubscriberBuffer = 16
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "arrival-alert-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if cfg.Worker.ApproachRadiusM == 0 {
		cfg.Worker.ApproachRadiusM = 300
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
