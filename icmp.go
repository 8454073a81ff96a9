package readygate

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/tatsushid/go-fastping"
)

type IcmpProbe struct {
	IcmpProbeOptions

	Label string
}

type IcmpProbeOptions struct {
	Host    string   `yaml:"host" json:"host"`
	Timeout Duration `yaml:"timeout" json:"timeout"`
}

func (this *IcmpProbe) ID() string {
	return this.Label
}

func (this *IcmpProbe) Type() string {
	return "icmp"
}

func (this *IcmpProbe) Validate() error {

	switch {
	case this.Label == "":
		return errors.New("label is empty")
	case this.Host == "":
		return errors.New("empty host")
	}

	if this.Timeout <= 0 {
		this.Timeout = Duration(DefaultTimeout)
	}

	return nil
}

// Probe pings the host once and waits for an echo reply. Note that this only
// proves the machine is up, not that any particular service on it is; it's
// here for dependencies that don't expose a port to check.
func (this *IcmpProbe) Probe(ctx context.Context) error {

	addr, err := net.ResolveIPAddr("ip", this.Host)
	if err != nil {
		return err
	}

	pinger := fastping.NewPinger()
	pinger.MaxRTT = this.Timeout.Std()
	pinger.AddIPAddr(addr)

	replyCh := make(chan time.Duration, 1)
	errorCh := make(chan error, 1)

	pinger.OnRecv = func(addr *net.IPAddr, rtt time.Duration) {
		replyCh <- rtt
	}

	go func() {
		if err := pinger.Run(); err != nil {
			errorCh <- err
			return
		}
		errorCh <- errors.New("no echo reply")
	}()

	pingCtx, cancelPing := context.WithTimeout(ctx, this.Timeout.Std())
	defer cancelPing()

	select {

	case <-replyCh:
		return nil

	case err := <-errorCh:
		return err

	case <-pingCtx.Done():
		return pingCtx.Err()
	}
}
