package app

import (
	"context"
	"os"
	"strconv"
	"time"

	"libraryapp_backend/db"
	"libraryapp_backend/session"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Shorthand aliases for handlers.
type Ctx = gin.Context
type H = gin.H

// App aggregates the process-wide dependencies.
type App struct {
	Router *gin.Engine
	DB     *gorm.DB
	RDB    *redis.Client
	Config Config

	identities *session.IdentityCache
}

// Config is read from environment variables.
type Config struct {
	Port                 string
	WebOrigin            string
	RedisAddr            string
	RedisPwd             string
	IdentityTTL          time.Duration
	DefaultDueDays       int
	AutoResolveFollowUps bool
}

func (a *App) Identities() *session.IdentityCache { return a.identities }

func MustNew() *App {
	cfg := loadConfig()

	dbConn := db.ConnectDB()

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPwd, DB: 0})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Fatal("redis")
	}

	r := gin.Default()
	useCORS(r, cfg.WebOrigin)

	return &App{
		Router:     r,
		DB:         dbConn,
		RDB:        rdb,
		Config:     cfg,
		identities: session.NewIdentityCache(rdb, cfg.IdentityTTL),
	}
}

func (a *App) Close() { _ = a.RDB.Close() }

func loadConfig() Config {
	get := func(k, def string) string {
		v := os.Getenv(k)
		if v == "" {
			return def
		}
		return v
	}

	ttl := 10 * time.Minute
	if sec, err := strconv.Atoi(get("IDENTITY_TTL_SECONDS", "600")); err == nil && sec > 0 {
		ttl = time.Duration(sec) * time.Second
	}

	dueDays := 14
	if n, err := strconv.Atoi(get("DEFAULT_DUE_DAYS", "14")); err == nil && n > 0 {
		dueDays = n
	}

	autoResolve, _ := strconv.ParseBool(get("FOLLOWUP_AUTO_RESOLVE", "false"))

	return Config{
		Port:                 get("PORT", "5002"),
		WebOrigin:            get("WEB_ORIGIN", "http://localhost:3002"),
		RedisAddr:            get("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPwd:             os.Getenv("REDIS_PASSWORD"),
		IdentityTTL:          ttl,
		DefaultDueDays:       dueDays,
		AutoResolveFollowUps: autoResolve,
	}
}
