// Package httpx builds the HTTP clients the backend adapters share. All
// outbound calls go through the same transport shape so connection pooling
// and timeouts stay consistent across qdrant, ollama and the reranker.
package httpx

import (
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
)

func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          64,
		MaxIdleConnsPerHost:   16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	// Enables h2 over TLS backends; plain-HTTP backends keep using HTTP/1.1.
	_ = http2.ConfigureTransport(transport)

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
