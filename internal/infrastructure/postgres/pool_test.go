package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mercado-b2b-api/pkg/config"
)

func TestPoolConfig_Limites(t *testing.T) {
	pc, err := poolConfig(config.DBConfig{
		Host: "127.0.0.1", Port: 5432, User: "app", Password: "x", DBName: "mercado", SSLMode: "disable",
		MaxConns: 10, MinConns: 3,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 10, pc.MaxConns)
	assert.EqualValues(t, 3, pc.MinConns)
	assert.Equal(t, "mercado", pc.ConnConfig.Database)
	assert.NotNil(t, pc.AfterConnect, "registra el codec decimal")
}

func TestPoolConfig_DSNInvalido(t *testing.T) {
	_, err := poolConfig(config.DBConfig{DatabaseURL: "postgres://%zz"})
	assert.Error(t, err)
}

func TestWithIPv4Host_LiteralSeConserva(t *testing.T) {
	assert.Equal(t, "postgres://app@10.0.0.5:6543/db", withIPv4Host("postgres://app@10.0.0.5:6543/db"))
	assert.Equal(t, "host=db user=app", withIPv4Host("host=db user=app"))
}
