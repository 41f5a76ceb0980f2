package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Config holds the application's configuration values.
type Config struct {
	AppName         string        `json:"appname"`
	AppEnv          string        `json:"appenv"`
	AppPort         uint16        `json:"appport"`
	GinMode         string        `json:"ginmode"`
	DBDriver        string        `json:"dbdriver"`
	DBHost          string        `json:"dbhost"`
	DBPort          uint16        `json:"dbport"`
	DBName          string        `json:"dbname"`
	DBUSER          string        `json:"dbuser"`
	DBPass          string        `json:"dbpass"`
	JWTSecret       string        `json:"-"`
	SessionTTL      time.Duration `json:"session_ttl"`
	CORSOrigins     []string      `json:"cors_origins"`
	LoginRateLimit  int           `json:"login_rate_limit"`
	CertWatchAt     string        `json:"cert_watch_at"`
	DoctorCacheSize int           `json:"doctor_cache_size"`
	RedisAddr       string        `json:"redis_addr"`
	RedisPass       string        `json:"-"`
	RedisDB         int           `json:"redis_db"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from a .env file when present,
// and returns a singleton Config instance.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil && os.Getenv("APPENV") != "test" {
			log.Warn().Err(err).Msg("no .env file loaded, relying on process environment")
		}

		appPort, _ := strconv.ParseUint(getEnv("APPPORT", "8080"), 10, 16)
		dbPort, _ := strconv.ParseUint(getEnv("DBPORT", "3306"), 10, 16)
		ttlHours, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "12"))
		if err != nil || ttlHours <= 0 {
			ttlHours = 12
		}
		loginLimit, err := strconv.Atoi(getEnv("LOGIN_RATE_LIMIT", "5"))
		if err != nil {
			loginLimit = 5
		}
		cacheSize, _ := strconv.Atoi(os.Getenv("DOCTOR_CACHE_SIZE"))
		redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

		config = &Config{
			AppName:         getEnv("APPNAME", "Doctor Portal"),
			AppEnv:          getEnv("APPENV", "development"),
			AppPort:         uint16(appPort),
			GinMode:         getEnv("GINMODE", "debug"),
			DBDriver:        strings.ToLower(getEnv("DBDRIVER", "mysql")),
			DBHost:          os.Getenv("DBHOST"),
			DBPort:          uint16(dbPort),
			DBName:          os.Getenv("DBNAME"),
			DBUSER:          os.Getenv("DBUSER"),
			DBPass:          os.Getenv("DBPASS"),
			JWTSecret:       os.Getenv("JWTSECRET"),
			SessionTTL:      time.Duration(ttlHours) * time.Hour,
			CORSOrigins:     splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
			LoginRateLimit:  loginLimit,
			CertWatchAt:     getEnv("CERT_WATCH_AT", "07:00"),
			DoctorCacheSize: cacheSize,
			RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
			RedisPass:       os.Getenv("REDIS_PASS"),
			RedisDB:         redisDB,
		}
	})
	return config
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ConnectDatabase opens the database configured by DBDRIVER. In the test
// environment it always returns a fresh in-memory sqlite database.
func ConnectDatabase() (*gorm.DB, error) {
	cfg := LoadConfig()
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}

	if cfg.AppEnv == "test" {
		dsn := fmt.Sprintf("file:doctorportal_%d?mode=memory&cache=shared", time.Now().UnixNano())
		return gorm.Open(sqlite.Open(dsn), gormCfg)
	}

	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, cfg.DBPort, cfg.DBUSER, cfg.DBPass, cfg.DBName)
		dialector = postgres.Open(dsn)
	case "mysql", "":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.DBUSER, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
		dialector = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DBDRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.DBDriver, err)
	}
	return db, nil
}
