package readygate

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"golang.org/x/net/proxy"
)

type TcpProbe struct {
	TcpProbeOptions

	Label string

	dialer proxy.ContextDialer
}

type TcpProbeOptions struct {
	Host     string   `yaml:"host" json:"host"`
	Port     int      `yaml:"port" json:"port"`
	Timeout  Duration `yaml:"timeout" json:"timeout"`
	ProxyUrl string   `yaml:"proxy_url" json:"proxy_url"`
}

func (this *TcpProbe) ID() string {
	return this.Label
}

func (this *TcpProbe) Type() string {
	return "tcp"
}

func (this *TcpProbe) Validate() error {

	switch {
	case this.Label == "":
		return errors.New("label is empty")
	case this.Host == "":
		return errors.New("empty host")
	case this.Port <= 0 || this.Port > 65535:
		return errors.New("invalid port value")
	}

	if this.Timeout <= 0 {
		this.Timeout = Duration(DefaultTimeout)
	}

	//	initialize proxy state if provided
	if this.TcpProbeOptions.ProxyUrl != "" && this.dialer == nil {

		dialer, err := getProxyUrlDialer(this.TcpProbeOptions.ProxyUrl)
		if err != nil {
			return fmt.Errorf("proxy_url: %v", err)
		}

		this.dialer = dialer
	}

	if this.dialer == nil {
		this.dialer = &net.Dialer{}
	}

	return nil
}

// Probe considers the dependency ready as soon as the port accepts a
// connection. Nothing is written or read; the connection is closed
// immediately.
func (this *TcpProbe) Probe(ctx context.Context) error {

	dialCtx, cancelDial := context.WithTimeout(ctx, this.Timeout.Std())
	defer cancelDial()

	addr := net.JoinHostPort(this.Host, strconv.Itoa(this.Port))

	conn, err := this.dialer.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return err
	}

	return conn.Close()
}
