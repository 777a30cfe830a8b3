package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simsportal/sims-portal-backend/internal/app"
	"github.com/simsportal/sims-portal-backend/internal/platform/logger"
	"github.com/simsportal/sims-portal-backend/internal/services"
)

func testAppContext() *AppContext {
	return &AppContext{
		Cfg: app.Config{
			Auth: app.AuthConfig{JWTSecret: "0123456789abcdef0123", Issuer: "sims-portal", TokenTTL: time.Hour},
			Scheduler: app.SchedulerConfig{Jobs: map[string]string{
				"assign_badges": "FREQ=DAILY;BYHOUR=17;BYMINUTE=0;BYSECOND=0",
			}},
		},
		Log: logger.Nop(),
	}
}

func TestTokenCmd(t *testing.T) {
	appCtx := testAppContext()
	cmd := TokenCmd(appCtx)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"42", "--ttl", "10m"})
	require.NoError(t, cmd.Execute())

	token := strings.TrimSpace(out.String())
	require.NotEmpty(t, token)
	assert.Len(t, strings.Split(token, "."), 3)

	claims := &services.JWTClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(appCtx.Cfg.Auth.JWTSecret), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "sims-portal", claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenCmd_InvalidID(t *testing.T) {
	for _, arg := range []string{"abc", "0", "-3"} {
		cmd := TokenCmd(testAppContext())
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--", arg})
		require.Error(t, cmd.Execute(), arg)
	}
}

func TestMigrateCmd_RejectsUnknownAction(t *testing.T) {
	cmd := MigrateCmd(testAppContext())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"sideways"})
	require.Error(t, cmd.Execute())
}

func TestJobsList(t *testing.T) {
	cmd := JobsCmd(testAppContext())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"list"})
	require.NoError(t, cmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, out.String(), "assign_badges")
	assert.Contains(t, out.String(), "FREQ=DAILY;BYHOUR=17")
	assert.Contains(t, out.String(), "(manual)")
}
