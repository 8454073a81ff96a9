package readygate

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"golang.org/x/net/proxy"
)

// getProxyUrlDialer resolves a socks proxy url ("$VAR" indirection included)
// into a context dialer for probes that need to reach the dependency through
// an intermediate hop.
func getProxyUrlDialer(urlString string) (proxy.ContextDialer, error) {

	if strings.HasPrefix(urlString, "$") {
		urlString = os.Getenv(strings.ToUpper(urlString[1:]))
	}

	if urlString == "" {
		return nil, errors.New("empty proxy url")
	}

	proxyUrl, err := url.Parse(urlString)
	if err != nil {
		return nil, fmt.Errorf("url.Parse: %v", err)
	}

	switch strings.ToLower(proxyUrl.Scheme) {

	case "socks", "socks5":

		var proxyAuth *proxy.Auth
		if username := proxyUrl.User.Username(); username != "" {
			pass, _ := proxyUrl.User.Password()
			proxyAuth = &proxy.Auth{User: username, Password: pass}
		}

		dialer, err := proxy.SOCKS5("tcp", proxyUrl.Host, proxyAuth, proxy.Direct)
		if err != nil {
			return nil, err
		}

		return dialer.(proxy.ContextDialer), nil

	default:
		return nil, fmt.Errorf("unsupported proxy protocol: %v", proxyUrl.Scheme)
	}
}
