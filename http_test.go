package readygate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHttpProbeReady(t *testing.T) {

	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		wrt.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	probe := HttpProbe{
		Label: "web",
		HttpProbeOptions: HttpProbeOptions{
			Url:     srv.URL,
			Timeout: Duration(time.Second),
		},
	}

	require.NoError(t, probe.Validate())
	require.NoError(t, probe.Probe(context.Background()))
}

func TestHttpProbeServerError(t *testing.T) {

	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		wrt.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	probe := HttpProbe{
		Label: "web",
		HttpProbeOptions: HttpProbeOptions{
			Url:     srv.URL,
			Timeout: Duration(time.Second),
		},
	}

	require.NoError(t, probe.Validate())
	require.Error(t, probe.Probe(context.Background()))
}

func TestHttpProbeUnreachable(t *testing.T) {

	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {}))
	url := srv.URL
	srv.Close()

	probe := HttpProbe{
		Label: "web",
		HttpProbeOptions: HttpProbeOptions{
			Url:     url,
			Timeout: Duration(time.Second),
		},
	}

	require.NoError(t, probe.Validate())
	require.Error(t, probe.Probe(context.Background()))
}

func TestHttpProbeValidate(t *testing.T) {

	probe := HttpProbe{Label: "web"}
	require.Error(t, probe.Validate())

	probe = HttpProbe{Label: "web", HttpProbeOptions: HttpProbeOptions{Url: "http://localhost", Method: "delete"}}
	require.Error(t, probe.Validate())

	probe = HttpProbe{Label: "web", HttpProbeOptions: HttpProbeOptions{Url: "http://localhost", Method: "whatever"}}
	require.NoError(t, probe.Validate())
	assert.Equal(t, http.MethodGet, probe.Method)

	probe = HttpProbe{Label: "web", HttpProbeOptions: HttpProbeOptions{
		Url:     "http://localhost",
		Headers: map[string]string{"Host": "svc.internal", "X-Probe": "1"},
	}}
	require.NoError(t, probe.Validate())
	assert.Equal(t, "svc.internal", probe.req.Host)
	assert.Equal(t, "1", probe.req.Header.Get("X-Probe"))
}
