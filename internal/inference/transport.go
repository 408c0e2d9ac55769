package inference

import (
	"net"
	"net/http"
	"time"
)

const (
	// DefaultConnectTimeout bounds establishing the TCP connection.
	DefaultConnectTimeout = 5 * time.Second
	// DefaultReadTimeout bounds waiting for the response after the request is written.
	DefaultReadTimeout = 5 * time.Second
)

// newHTTPClient creates the HTTP client used for inference calls.
// Connect and read are bounded separately; the overall deadline is their sum.
// Redirects are not followed.
func newHTTPClient(connectTimeout, readTimeout time.Duration) *http.Client {
	if connectTimeout <= 0 {
		connectTimeout = DefaultConnectTimeout
	}
	if readTimeout <= 0 {
		readTimeout = DefaultReadTimeout
	}

	return &http.Client{
		Timeout: connectTimeout + readTimeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   connectTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout:   connectTimeout,
			ResponseHeaderTimeout: readTimeout,
			MaxIdleConns:          100,
			MaxIdleConnsPerHost:   20,
			IdleConnTimeout:       90 * time.Second,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
