package readygate

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresProbeValidateDefaults(t *testing.T) {

	t.Setenv("PGUSER", "app")

	probe := PostgresProbe{
		Label:                "db",
		PostgresProbeOptions: PostgresProbeOptions{Host: "db"},
	}

	require.NoError(t, probe.Validate())

	assert.Equal(t, PostgresPort, probe.Port)
	assert.Equal(t, "app", probe.User)
	assert.Equal(t, Duration(DefaultTimeout), probe.Timeout)
}

func TestPostgresProbeValidateRejects(t *testing.T) {

	probe := PostgresProbe{}
	require.Error(t, probe.Validate())

	probe = PostgresProbe{Label: "db"}
	require.Error(t, probe.Validate())

	probe = PostgresProbe{Label: "db", PostgresProbeOptions: PostgresProbeOptions{Host: "db", Port: 70000}}
	require.Error(t, probe.Validate())
}

func TestPostgresProbeDsn(t *testing.T) {

	probe := PostgresProbe{
		Label: "db",
		PostgresProbeOptions: PostgresProbeOptions{
			Host:     "db.internal",
			User:     "app",
			Database: "appdb",
			Timeout:  Duration(3 * time.Second),
		},
	}

	require.NoError(t, probe.Validate())

	assert.Equal(t, "postgres://app@db.internal:5432/appdb?connect_timeout=3&sslmode=disable", probe.dsn())
}

func TestPostgresProbeDsnNoUser(t *testing.T) {

	t.Setenv("PGUSER", "")

	probe := PostgresProbe{
		Label:                "db",
		PostgresProbeOptions: PostgresProbeOptions{Host: "db", Timeout: Duration(time.Second)},
	}

	require.NoError(t, probe.Validate())

	assert.Equal(t, "postgres://db:5432?connect_timeout=1&sslmode=disable", probe.dsn())
}

func TestPostgresProbeNotReady(t *testing.T) {

	// grab a loopback port and close it again: whatever was there is gone now
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	host, port := listenerHostPort(t, ln)
	ln.Close()

	probe := PostgresProbe{
		Label: "db",
		PostgresProbeOptions: PostgresProbeOptions{
			Host:    host,
			Port:    port,
			Timeout: Duration(time.Second),
		},
	}

	require.NoError(t, probe.Validate())
	require.Error(t, probe.Probe(context.Background()))
}
