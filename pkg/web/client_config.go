// SPDX-License-Identifier: GPL-3.0-or-later

package web

import (
	"crypto/tls"
	"io"
	"net/http"
	"time"

	"github.com/amirulhaque/Kubernetes-demo/pkg/confopt"
)

// ClientConfig is the configuration of the HTTP client.
// Supported configuration file formats: YAML.
type ClientConfig struct {
	// Timeout specifies the request time limit. Zero means one second.
	Timeout confopt.Duration `yaml:"timeout,omitempty" json:"timeout"`

	// NotFollowRedirect specifies the policy of handling redirects.
	NotFollowRedirect bool `yaml:"not_follow_redirects,omitempty" json:"not_follow_redirects"`

	// TLSSkipVerify controls whether the client verifies the server's certificate chain and host name.
	TLSSkipVerify bool `yaml:"tls_skip_verify,omitempty" json:"tls_skip_verify"`
}

// HTTPConfig is a combination of RequestConfig and ClientConfig.
type HTTPConfig struct {
	RequestConfig `yaml:",inline" json:",inline"`
	ClientConfig  `yaml:",inline" json:",inline"`
}

// NewHTTPClient returns a new *http.Client given a ClientConfig configuration.
func NewHTTPClient(cfg ClientConfig) *http.Client {
	timeout := cfg.Timeout.Duration()
	if timeout == 0 {
		timeout = time.Second
	}

	client := &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{InsecureSkipVerify: cfg.TLSSkipVerify},
		},
	}

	if cfg.NotFollowRedirect {
		client.CheckRedirect = func(_ *http.Request, _ []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	return client
}

// CloseBody drains and closes the response body so the underlying
// connection can be reused.
func CloseBody(resp *http.Response) {
	if resp != nil && resp.Body != nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}
}
