package config

import (
	"os"
	"strconv"
	"strings"
)

type EnvConfig struct {
	Postgres struct {
		Host     string
		Database string
		Username string
		Password string
		Port     string
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		Database int
	}
	RabbitMQ struct {
		Host     string
		Port     string
		Username string
		Password string
	}
	Minio struct {
		Endpoint      string
		RootUser      string
		RootPassword  string
		UseSSL        bool
		ArchiveBucket string
	}
	Upload struct {
		DirectoryBasePath string
		URLBasePath       string
	}
	Banner struct {
		Label      string
		Background string
		Color      string
	}
	Directory struct {
		Mode           string // "mock" or "live"
		ServiceURL     string
		APIKey         string
		DefaultAccount string
		CacheTTL       int // seconds
	}
	JWT struct {
		SecretKey string
	}
	CORS struct {
		AllowDomains string
	}
	Telemetry struct {
		OTLPEndpoint string
		ServiceName  string
	}
	Environment struct {
		Mode string
	}
	HTTPPort string
}

func LoadEnvConfig() *EnvConfig {
	var config EnvConfig

	// Postgres
	config.Postgres.Host = os.Getenv("PGPOOL_HOST")
	config.Postgres.Database = os.Getenv("PGPOOL_DB")
	config.Postgres.Username = os.Getenv("PGPOOL_USER")
	config.Postgres.Password = os.Getenv("PGPOOL_PASSWORD")
	config.Postgres.Port = os.Getenv("PGPOOL_PORT")
	if config.Postgres.Port == "" {
		config.Postgres.Port = "5432"
	}

	// Redis
	config.Redis.Host = os.Getenv("REDIS_HOST")
	if config.Redis.Host == "" {
		config.Redis.Host = "localhost"
	}
	config.Redis.Port = os.Getenv("REDIS_PORT")
	if config.Redis.Port == "" {
		config.Redis.Port = "6379"
	}
	config.Redis.Password = os.Getenv("REDIS_PASSWORD")
	config.Redis.Database, _ = strconv.Atoi(os.Getenv("REDIS_DB"))

	// RabbitMQ
	config.RabbitMQ.Host = os.Getenv("RABBITMQ_HOST")
	if config.RabbitMQ.Host == "" {
		config.RabbitMQ.Host = "localhost"
	}
	config.RabbitMQ.Port = os.Getenv("RABBITMQ_PORT")
	if config.RabbitMQ.Port == "" {
		config.RabbitMQ.Port = "5672"
	}
	config.RabbitMQ.Username = os.Getenv("RABBITMQ_USER")
	if config.RabbitMQ.Username == "" {
		config.RabbitMQ.Username = "guest"
	}
	config.RabbitMQ.Password = os.Getenv("RABBITMQ_PASSWORD")
	if config.RabbitMQ.Password == "" {
		config.RabbitMQ.Password = "guest"
	}

	// MinIO (archive mirror)
	config.Minio.Endpoint = os.Getenv("MINIO_ENDPOINT")
	config.Minio.RootUser = os.Getenv("MINIO_ROOT_USER")
	config.Minio.RootPassword = os.Getenv("MINIO_ROOT_PASSWORD")
	config.Minio.UseSSL = os.Getenv("MINIO_USE_SSL") == "true"
	config.Minio.ArchiveBucket = os.Getenv("MINIO_ARCHIVE_BUCKET")
	if config.Minio.ArchiveBucket == "" {
		config.Minio.ArchiveBucket = "uploadhub-archive"
	}

	// Upload storage
	config.Upload.DirectoryBasePath = os.Getenv("UPLOAD_DIRECTORY_BASE_PATH")
	if config.Upload.DirectoryBasePath == "" {
		config.Upload.DirectoryBasePath = "./data/uploads"
	}
	config.Upload.URLBasePath = os.Getenv("UPLOAD_URL_BASE_PATH")
	if config.Upload.URLBasePath == "" {
		config.Upload.URLBasePath = "/uploads/"
	}
	if !strings.HasSuffix(config.Upload.URLBasePath, "/") {
		config.Upload.URLBasePath += "/"
	}

	// Banner
	config.Banner.Label = os.Getenv("BANNER_LABEL")
	if config.Banner.Label == "" {
		config.Banner.Label = "Development"
	}
	config.Banner.Background = os.Getenv("BANNER_BACKGROUND")
	if config.Banner.Background == "" {
		config.Banner.Background = "#323232"
	}
	config.Banner.Color = os.Getenv("BANNER_COLOR")
	if config.Banner.Color == "" {
		config.Banner.Color = "#ffffff"
	}

	// Directory service
	config.Directory.Mode = os.Getenv("DIRECTORY_MODE")
	if config.Directory.Mode == "" {
		config.Directory.Mode = "mock"
	}
	config.Directory.ServiceURL = os.Getenv("DIRECTORY_SERVICE_URL")
	if config.Directory.ServiceURL == "" {
		config.Directory.ServiceURL = "http://localhost:8090"
	}
	config.Directory.APIKey = os.Getenv("DIRECTORY_API_KEY")
	config.Directory.DefaultAccount = os.Getenv("DIRECTORY_DEFAULT_ACCOUNT")
	if config.Directory.DefaultAccount == "" {
		config.Directory.DefaultAccount = "lshaw"
	}
	config.Directory.CacheTTL, _ = strconv.Atoi(os.Getenv("DIRECTORY_CACHE_TTL"))
	if config.Directory.CacheTTL == 0 {
		config.Directory.CacheTTL = 300
	}

	// JWT
	config.JWT.SecretKey = os.Getenv("JWT_SECRET_KEY")

	// CORS
	config.CORS.AllowDomains = os.Getenv("ALLOWED_DOMAINS")

	// Telemetry
	endpoint := os.Getenv("OTLP_ENDPOINT")
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")
	config.Telemetry.OTLPEndpoint = endpoint
	config.Telemetry.ServiceName = os.Getenv("SERVICE_NAME")
	if config.Telemetry.ServiceName == "" {
		config.Telemetry.ServiceName = "uploadhub"
	}

	config.Environment.Mode = os.Getenv("DEPLOY_ENV")
	if config.Environment.Mode == "" {
		config.Environment.Mode = "development"
	}

	config.HTTPPort = os.Getenv("HTTP_PORT")
	if config.HTTPPort == "" {
		config.HTTPPort = "8080"
	}

	return &config
}
