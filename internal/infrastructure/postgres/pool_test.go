package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDSN = "postgres://u:p@localhost:5432/audit?sslmode=disable"

func TestAuditPoolConfig(t *testing.T) {
	pc, err := AuditPoolConfig{
		DSN:             testDSN,
		MaxConns:        8,
		MinConns:        2,
		MaxConnLifetime: 30 * time.Minute,
		AppName:         "shop-admin-audit",
	}.pgxConfig()
	require.NoError(t, err)

	assert.Equal(t, int32(8), pc.MaxConns)
	assert.Equal(t, int32(2), pc.MinConns)
	assert.Equal(t, 30*time.Minute, pc.MaxConnLifetime)
	assert.Equal(t, "shop-admin-audit", pc.ConnConfig.RuntimeParams["application_name"])
	assert.Equal(t, "audit", pc.ConnConfig.Database)
}

func TestAuditPoolConfig_MinAboveMaxIsIgnored(t *testing.T) {
	pc, err := AuditPoolConfig{DSN: testDSN, MaxConns: 2, MinConns: 5}.pgxConfig()
	require.NoError(t, err)
	assert.Equal(t, int32(2), pc.MaxConns)
	assert.Equal(t, int32(0), pc.MinConns)
}

func TestAuditPoolConfig_BadDSN(t *testing.T) {
	_, err := AuditPoolConfig{DSN: "postgres://u:p@localhost:notaport/audit"}.pgxConfig()
	assert.ErrorContains(t, err, "parse audit dsn")
}
