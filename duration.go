package readygate

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ParseDuration reads either a bare number of seconds or Go duration syntax.
func ParseDuration(val string) (time.Duration, error) {

	if val = strings.TrimSpace(val); val == "" || val == "0" {
		return 0, nil
	}

	for _, next := range val {
		if next < '0' || next > '9' {
			return time.ParseDuration(val)
		}
	}

	seconds, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, err
	}

	if seconds < 0 {
		return 0, errors.New("invalid duration value")
	}

	return time.Duration(seconds) * time.Second, nil
}

// Duration is a config field that accepts both ParseDuration forms,
// so "10" and "10s" mean the same thing in yaml and json files.
type Duration time.Duration

func (this Duration) Std() time.Duration {
	return time.Duration(this)
}

func (this *Duration) UnmarshalYAML(node *yaml.Node) error {

	parsed, err := ParseDuration(node.Value)
	if err != nil {
		return err
	}

	*this = Duration(parsed)
	return nil
}

func (this *Duration) UnmarshalJSON(data []byte) error {

	parsed, err := ParseDuration(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}

	*this = Duration(parsed)
	return nil
}
