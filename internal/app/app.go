// Package app assembles the application: DB pool, repositories,
// services, handlers, filters, the bot and the scheduler.
package app

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"

	"github.com/noctua-labs/arcana-bot/internal/bot"
	"github.com/noctua-labs/arcana-bot/internal/bot/filters"
	"github.com/noctua-labs/arcana-bot/internal/common"
	"github.com/noctua-labs/arcana-bot/internal/config"
	"github.com/noctua-labs/arcana-bot/internal/db/postgres"
	"github.com/noctua-labs/arcana-bot/internal/features/admin"
	"github.com/noctua-labs/arcana-bot/internal/features/insight"
	"github.com/noctua-labs/arcana-bot/internal/features/journey"
	"github.com/noctua-labs/arcana-bot/internal/features/readings"
	"github.com/noctua-labs/arcana-bot/internal/features/seekers"
	"github.com/noctua-labs/arcana-bot/internal/jobs"
)

// App holds every long-lived component.
type App struct {
	Bot       *bot.Bot
	Scheduler *jobs.Scheduler
	DB        *pgxpool.Pool
	BotAPI    *tgbotapi.BotAPI
}

// New builds and wires the application. Initialization order matters:
// components depend on the ones created before them.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// === 1. Database ===
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	if err := runMigrations(ctx, pool); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	// === 2. Telegram Bot API ===
	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("telegram api: %w", err)
	}
	botAPI.Debug = cfg.AppEnv == "development"
	log.Infof("authorized as @%s", botAPI.Self.UserName)

	// === 3. Gemini client ===
	geminiClient, err := insight.NewGeminiClient(ctx,
		cfg.GeminiAPIKey, cfg.GeminiModel, cfg.GeminiTemperature, cfg.GeminiMaxTokens)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	// === 4. Repositories ===
	seekerRepo := seekers.NewRepository(pool)
	journeyRepo := journey.NewRepository(pool)
	readingRepo := readings.NewRepository(pool)
	insightRepo := insight.NewRepository(pool)
	adminRepo := admin.NewRepository(pool)

	// === 5. Services ===
	seekerService := seekers.NewService(seekerRepo, journeyRepo, cfg.AdminIDs)
	journeyService := journey.NewService(journeyRepo, readingRepo, nil)
	insightService := insight.NewService(geminiClient, insightRepo)
	readingService := readings.NewService(readingRepo, journeyService, insightService)
	adminService := admin.NewService(adminRepo, seekerService, journeyService, cfg.AdminPasswordHash)

	// === 6. Handlers ===
	journeyHandler := journey.NewHandler(journeyService, botAPI)
	readingHandler := readings.NewHandler(readingService, botAPI)
	palmHandler := insight.NewHandler(insightService, botAPI)
	adminHandler := admin.NewHandler(adminService, botAPI)

	// === 7. Filters ===
	chatFilter := filters.NewChatFilter(seekerService)

	// === 8. The bot ===
	loc := common.LocationOrFixed(cfg.AppTimezone, "UTC", 0)
	b := bot.New(
		botAPI, cfg, loc,
		seekerService,
		journeyHandler,
		readingHandler,
		palmHandler,
		adminHandler,
		chatFilter,
	)

	// === 9. Scheduler ===
	scheduler := jobs.NewScheduler(
		loc, journeyService, journeyRepo,
		cfg.ReminderFromHour, cfg.FeatureRemindersEnabled,
		b.SendMessageToUser,
	)

	return &App{
		Bot:       b,
		Scheduler: scheduler,
		DB:        pool,
		BotAPI:    botAPI,
	}, nil
}

// runMigrations applies all SQL migrations in order.
func runMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	if err := postgres.InitMigrations(ctx, pool); err != nil {
		return err
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{1, migration001Seekers},
		{2, migration002Journey},
		{3, migration003Readings},
		{4, migration004PalmReadings},
		{5, migration005Admin},
	}

	for _, m := range migrations {
		if err := postgres.ExecMigrationSQL(ctx, pool, m.version, m.sql); err != nil {
			return fmt.Errorf("migration %d: %w", m.version, err)
		}
		log.Infof("migration %d applied", m.version)
	}

	return nil
}

// Migrations are embedded in the binary to keep deployment a single
// artifact.

var migration001Seekers = `
CREATE TABLE IF NOT EXISTS seekers (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL,
    username VARCHAR(255),
    first_name VARCHAR(255) NOT NULL,
    last_name VARCHAR(255),
    is_admin BOOLEAN DEFAULT FALSE,
    is_blocked BOOLEAN DEFAULT FALSE,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_seekers_user_id ON seekers(user_id);
CREATE INDEX IF NOT EXISTS idx_seekers_username ON seekers(username);
`

var migration002Journey = `
CREATE TABLE IF NOT EXISTS journey_profiles (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT UNIQUE NOT NULL REFERENCES seekers(user_id),
    total_readings INTEGER DEFAULT 0,
    current_streak INTEGER DEFAULT 0,
    last_reading_date DATE,
    level VARCHAR(64) NOT NULL,
    reminder_sent_on DATE,
    created_at TIMESTAMP DEFAULT NOW(),
    updated_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_journey_profiles_user_id ON journey_profiles(user_id);
CREATE INDEX IF NOT EXISTS idx_journey_profiles_streak ON journey_profiles(current_streak) WHERE current_streak > 0;
`

var migration003Readings = `
CREATE TABLE IF NOT EXISTS readings (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES seekers(user_id),
    reading_date DATE NOT NULL,
    card VARCHAR(64) NOT NULL,
    orientation VARCHAR(16) NOT NULL,
    interpretation TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT NOW(),
    UNIQUE (user_id, reading_date)
);
CREATE INDEX IF NOT EXISTS idx_readings_user_id ON readings(user_id);
CREATE INDEX IF NOT EXISTS idx_readings_date ON readings(reading_date DESC);
`

var migration004PalmReadings = `
CREATE TABLE IF NOT EXISTS palm_readings (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT NOT NULL REFERENCES seekers(user_id),
    features JSONB NOT NULL,
    narrative TEXT NOT NULL,
    created_at TIMESTAMP DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_palm_readings_user_id ON palm_readings(user_id);
`

var migration005Admin = `
CREATE TABLE IF NOT EXISTS admin_sessions (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT REFERENCES seekers(user_id),
    session_token VARCHAR(255) UNIQUE,
    authenticated_at TIMESTAMP DEFAULT NOW(),
    expires_at TIMESTAMP,
    last_activity TIMESTAMP DEFAULT NOW(),
    is_active BOOLEAN DEFAULT TRUE
);
CREATE INDEX IF NOT EXISTS idx_admin_sessions_user_id ON admin_sessions(user_id);
CREATE TABLE IF NOT EXISTS admin_login_attempts (
    id BIGSERIAL PRIMARY KEY,
    user_id BIGINT,
    attempt_time TIMESTAMP DEFAULT NOW(),
    success BOOLEAN DEFAULT FALSE
);
`
