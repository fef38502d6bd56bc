package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/iiTzGuzz/LLMSDATA/etl/registro/registroapi"
	"github.com/iiTzGuzz/LLMSDATA/etl/registro/registroinfra"
	"github.com/iiTzGuzz/LLMSDATA/etl/registro/registrosrv"
	"github.com/iiTzGuzz/LLMSDATA/internal/ai/sqlagent"
	"github.com/iiTzGuzz/LLMSDATA/internal/ai/sqlagent/sqlagentapi"
	"github.com/iiTzGuzz/LLMSDATA/pkg/fsx"
	"github.com/iiTzGuzz/LLMSDATA/pkg/fsx/fsxlocal"
	"github.com/iiTzGuzz/LLMSDATA/pkg/fsx/fsxs3"
	"github.com/iiTzGuzz/LLMSDATA/pkg/iam/auth"
	"github.com/iiTzGuzz/LLMSDATA/pkg/logx"
)

// Container holds all application dependencies
type Container struct {
	// Config
	AuthConfig auth.Config

	// Infrastructure
	DB         *sqlx.DB
	Redis      *redis.Client
	FileSystem fsx.FileSystem
	S3Client   *s3.Client

	// Services
	RegistroService *registrosrv.RegistroService
	TokenService    *auth.TokenService
	AgentProvider   *sqlagent.Provider

	// API Handlers
	AuthHandlers     *auth.Handlers
	RegistroHandlers *registroapi.Handlers
	AgentHandlers    *sqlagentapi.Handlers

	// Middleware
	AuthMiddleware *auth.TokenMiddleware
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection (optional, used by the agent answer cache)
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	if redisAddr != "" {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     redisAddr,
			Password: redisPass,
			DB:       0,
		})
		if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
			logx.Warnf("Failed to connect to Redis: %v", err)
		}
	}

	// 3. File storage: S3 when AWS_BUCKET is set, local disk otherwise
	awsBucket := os.Getenv("AWS_BUCKET")
	if awsBucket != "" {
		awsRegion := os.Getenv("AWS_REGION")
		cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.S3Client = s3.NewFromConfig(cfg)
		c.FileSystem = fsxs3.NewS3FileSystem(c.S3Client, awsBucket, "")
	} else {
		dataDir := os.Getenv("UPLOAD_DIR")
		if dataDir == "" {
			dataDir = "data"
		}
		c.FileSystem = fsxlocal.NewLocalFileSystem(dataDir)
	}

	// 4. Auth Config
	c.AuthConfig = auth.DefaultConfig()
	c.AuthConfig.JWTSecret = os.Getenv("JWT_SECRET")
	c.AuthConfig.AdminUser = os.Getenv("ADMIN_USER")
	c.AuthConfig.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
	if !c.AuthConfig.Enabled() {
		logx.Warn("JWT_SECRET is not set, API endpoints are open")
	}
}

func (c *Container) initServices() {
	repo := registroinfra.NewPostgresRegistroRepository(c.DB)

	strictLength := os.Getenv("STRICT_LINE_LENGTH") == "1"
	c.RegistroService = registrosrv.NewRegistroService(repo, c.FileSystem, strictLength)

	c.TokenService = auth.NewTokenService(c.AuthConfig)
	c.AgentProvider = sqlagent.NewProvider(c.DB, c.RegistroService, c.Redis)

	c.AuthHandlers = auth.NewHandlers(c.AuthConfig, c.TokenService)
	c.RegistroHandlers = registroapi.NewHandlers(c.RegistroService)
	c.AgentHandlers = sqlagentapi.NewHandlers(c.AgentProvider)

	c.AuthMiddleware = auth.NewTokenMiddleware(c.AuthConfig, c.TokenService)
}
