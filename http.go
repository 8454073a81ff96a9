package readygate

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

type HttpProbe struct {
	HttpProbeOptions

	Label string

	client *http.Client
	req    *http.Request
}

type HttpProbeOptions struct {
	Url     string            `yaml:"url" json:"url"`
	Method  string            `yaml:"method" json:"method"`
	Headers map[string]string `yaml:"headers" json:"headers"`
	Timeout Duration          `yaml:"timeout" json:"timeout"`
}

func (this *HttpProbe) ID() string {
	return this.Label
}

func (this *HttpProbe) Type() string {
	return "http"
}

func (this *HttpProbe) Validate() error {

	switch {
	case this.Label == "":
		return errors.New("label is empty")
	case this.Url == "":
		return errors.New("empty url")
	}

	if this.Timeout <= 0 {
		this.Timeout = Duration(DefaultTimeout)
	}

	this.Method = strings.ToUpper(this.Method)

	switch this.Method {
	case http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPost:
		break

	case http.MethodConnect, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return fmt.Errorf("http method '%s' not allowed", this.Method)

	default:
		this.Method = http.MethodGet
	}

	//	 initialize client
	if this.client == nil {
		this.client = &http.Client{Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}}
	}

	//	init request
	if this.req == nil {

		reqUrl, err := url.Parse(this.HttpProbeOptions.Url)
		if err != nil {
			return fmt.Errorf("url.Parse: %v", err)
		}

		if reqUrl.Scheme == "" {
			reqUrl.Scheme = "http"
		}

		req, err := http.NewRequest(this.Method, reqUrl.String(), nil)
		if err != nil {
			return fmt.Errorf("http.NewRequest: %v", err)
		}

		req.Header.Set("User-Agent", "readygate")

		if this.HttpProbeOptions.Headers != nil {
			for key, val := range this.HttpProbeOptions.Headers {
				if strings.ToLower(key) == "host" {
					req.Host = val
				}
				req.Header.Set(key, val)
			}
		}

		this.req = req
	}

	return nil
}

// Probe treats any 2xx response as ready. Transport errors and non-2xx
// statuses are not told apart: both just mean another round of waiting.
func (this *HttpProbe) Probe(ctx context.Context) error {

	requestCtx, cancelRequest := context.WithTimeout(ctx, this.Timeout.Std())
	defer cancelRequest()

	resp, err := this.client.Do(this.req.Clone(requestCtx))
	if err != nil {
		return err
	}

	resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode > http.StatusIMUsed {
		return fmt.Errorf("http status %d", resp.StatusCode)
	}

	return nil
}
