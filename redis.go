package readygate

import (
	"context"
	"errors"
	"net"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const RedisPort = 6379

type RedisProbe struct {
	RedisProbeOptions

	Label string

	client *redis.Client
}

type RedisProbeOptions struct {
	Host     string   `yaml:"host" json:"host"`
	Port     int      `yaml:"port" json:"port"`
	Username string   `yaml:"username" json:"username"`
	Password string   `yaml:"password" json:"password"`
	DB       int      `yaml:"db" json:"db"`
	Timeout  Duration `yaml:"timeout" json:"timeout"`
}

func (this *RedisProbe) ID() string {
	return this.Label
}

func (this *RedisProbe) Type() string {
	return "redis"
}

func (this *RedisProbe) Validate() error {

	switch {
	case this.Label == "":
		return errors.New("label is empty")
	case this.Host == "":
		return errors.New("empty host")
	}

	if this.Port == 0 {
		this.Port = RedisPort
	} else if this.Port < 0 || this.Port > 65535 {
		return errors.New("invalid port value")
	}

	if this.Timeout <= 0 {
		this.Timeout = Duration(DefaultTimeout)
	}

	if this.client == nil {
		this.client = redis.NewClient(&redis.Options{
			Addr:        net.JoinHostPort(this.Host, strconv.Itoa(this.Port)),
			Username:    this.Username,
			Password:    this.Password,
			DB:          this.DB,
			DialTimeout: this.Timeout.Std(),
			MaxRetries:  -1,
		})
	}

	return nil
}

func (this *RedisProbe) Probe(ctx context.Context) error {

	pingCtx, cancelPing := context.WithTimeout(ctx, this.Timeout.Std())
	defer cancelPing()

	return this.client.Ping(pingCtx).Err()
}
