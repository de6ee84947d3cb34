package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt64CSV(t *testing.T) {
	ids, err := parseInt64CSV("123, 456,789")
	require.NoError(t, err)
	assert.Equal(t, []int64{123, 456, 789}, ids)

	ids, err = parseInt64CSV("")
	require.NoError(t, err)
	assert.Nil(t, ids)

	_, err = parseInt64CSV("123,abc")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		BotMaxInflight:          64,
		BotUpdateTimeoutSeconds: 60,
		DBMaxConns:              25,
		DBMinConns:              5,
		ReminderFromHour:        18,
		GeminiTemperature:       0.8,
	}
	assert.NoError(t, valid.Validate())

	bad := valid
	bad.BotMaxInflight = 0
	assert.Error(t, bad.Validate())

	bad = valid
	bad.DBMinConns = 30
	assert.Error(t, bad.Validate())

	bad = valid
	bad.ReminderFromHour = 24
	assert.Error(t, bad.Validate())

	bad = valid
	bad.GeminiTemperature = 3
	assert.Error(t, bad.Validate())
}

func TestDatabaseDSN(t *testing.T) {
	cfg := Config{
		DBUser:     "arcana",
		DBPassword: "pw",
		DBHost:     "postgres",
		DBPort:     5432,
		DBName:     "arcana_bot",
		DBSSLMode:  "disable",
	}
	assert.Equal(t, "postgres://arcana:pw@postgres:5432/arcana_bot?sslmode=disable", cfg.DatabaseDSN())
}
