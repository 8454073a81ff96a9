package readygate

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/url"
	"os"
	"strconv"

	_ "github.com/lib/pq"
)

const PostgresPort = 5432

type PostgresProbe struct {
	PostgresProbeOptions

	Label string
}

type PostgresProbeOptions struct {
	Host     string   `yaml:"host" json:"host"`
	Port     int      `yaml:"port" json:"port"`
	User     string   `yaml:"user" json:"user"`
	Database string   `yaml:"database" json:"database"`
	Timeout  Duration `yaml:"timeout" json:"timeout"`
}

func (this *PostgresProbe) ID() string {
	return this.Label
}

func (this *PostgresProbe) Type() string {
	return "postgres"
}

func (this *PostgresProbe) Validate() error {

	switch {
	case this.Label == "":
		return errors.New("label is empty")
	case this.Host == "":
		return errors.New("empty host")
	}

	if this.Port == 0 {
		this.Port = PostgresPort
	} else if this.Port < 0 || this.Port > 65535 {
		return errors.New("invalid port value")
	}

	//	pg_isready convention: the username comes from the environment.
	//	An unset variable is not an error here, the server will just keep
	//	rejecting the probe and the gate will keep waiting.
	if this.User == "" {
		this.User = os.Getenv("PGUSER")
	}

	if this.Timeout <= 0 {
		this.Timeout = Duration(DefaultTimeout)
	}

	return nil
}

// Probe dials the server and pings it. A successful ping means the database
// is up and accepting connections; every other outcome, from a dead host to
// rejected credentials, comes back as a plain error.
func (this *PostgresProbe) Probe(ctx context.Context) error {

	db, err := sql.Open("postgres", this.dsn())
	if err != nil {
		return err
	}

	defer db.Close()

	pingCtx, cancelPing := context.WithTimeout(ctx, this.Timeout.Std())
	defer cancelPing()

	return db.PingContext(pingCtx)
}

func (this *PostgresProbe) dsn() string {

	timeoutSec := int(this.Timeout.Std().Seconds())
	if timeoutSec < 1 {
		timeoutSec = 1
	}

	dsn := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(this.Host, strconv.Itoa(this.Port)),
		RawQuery: url.Values{
			"sslmode":         {"disable"},
			"connect_timeout": {strconv.Itoa(timeoutSec)},
		}.Encode(),
	}

	if this.User != "" {
		dsn.User = url.User(this.User)
	}

	if this.Database != "" {
		dsn.Path = "/" + this.Database
	}

	return dsn.String()
}
