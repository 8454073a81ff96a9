package readygate

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func listenerHostPort(t *testing.T, ln net.Listener) (string, int) {
	t.Helper()

	host, portStr, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	return host, port
}

func TestTcpProbeReady(t *testing.T) {

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	host, port := listenerHostPort(t, ln)

	probe := TcpProbe{
		Label: "svc",
		TcpProbeOptions: TcpProbeOptions{
			Host:    host,
			Port:    port,
			Timeout: Duration(time.Second),
		},
	}

	require.NoError(t, probe.Validate())
	require.NoError(t, probe.Probe(context.Background()))
}

func TestTcpProbeClosedPort(t *testing.T) {

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	host, port := listenerHostPort(t, ln)
	ln.Close()

	probe := TcpProbe{
		Label: "svc",
		TcpProbeOptions: TcpProbeOptions{
			Host:    host,
			Port:    port,
			Timeout: Duration(time.Second),
		},
	}

	require.NoError(t, probe.Validate())
	require.Error(t, probe.Probe(context.Background()))
}

func TestTcpProbeValidate(t *testing.T) {

	probe := TcpProbe{}
	require.Error(t, probe.Validate())

	probe = TcpProbe{Label: "svc"}
	require.Error(t, probe.Validate())

	probe = TcpProbe{Label: "svc", TcpProbeOptions: TcpProbeOptions{Host: "localhost"}}
	require.Error(t, probe.Validate())

	probe = TcpProbe{Label: "svc", TcpProbeOptions: TcpProbeOptions{Host: "localhost", Port: 80, ProxyUrl: "https://not-a-socks-proxy"}}
	require.Error(t, probe.Validate())

	probe = TcpProbe{Label: "svc", TcpProbeOptions: TcpProbeOptions{Host: "localhost", Port: 80}}
	require.NoError(t, probe.Validate())
	require.Equal(t, Duration(DefaultTimeout), probe.Timeout)
}
