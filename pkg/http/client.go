package http

import (
	"net"
	"net/http"
	"time"
)

type TransportFunc func(http.RoundTripper) http.RoundTripper

type httpConfig struct {
	dialTimeout         time.Duration
	requestTimeout      time.Duration
	keepAlive           time.Duration
	tlsHandshakeTimeout time.Duration
	idleConnTimeout     time.Duration
	maxIdleConns        int
	maxIdleConnsPerHost int
	transports          []TransportFunc
}

func defaultHTTPConfig() *httpConfig {
	return &httpConfig{
		dialTimeout:         30 * time.Second,
		requestTimeout:      30 * time.Second,
		keepAlive:           90 * time.Second,
		tlsHandshakeTimeout: 10 * time.Second,
		idleConnTimeout:     90 * time.Second,
		maxIdleConns:        100,
		maxIdleConnsPerHost: 10,
	}
}

func newClient(opts ...HttpOpts) *http.Client {
	cfg := defaultHTTPConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	dialer := net.Dialer{
		Timeout:   cfg.dialTimeout,
		KeepAlive: cfg.keepAlive,
	}

	var transport http.RoundTripper = &http.Transport{
		DialContext:         dialer.DialContext,
		MaxIdleConns:        cfg.maxIdleConns,
		MaxIdleConnsPerHost: cfg.maxIdleConnsPerHost,
		TLSHandshakeTimeout: cfg.tlsHandshakeTimeout,
		IdleConnTimeout:     cfg.idleConnTimeout,
	}

	// Wrappers apply outermost-last, so the first option is the first to
	// see the outgoing request.
	for _, wrap := range cfg.transports {
		transport = wrap(transport)
	}

	return &http.Client{
		Timeout:   cfg.requestTimeout,
		Transport: transport,
	}
}
