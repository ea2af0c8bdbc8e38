package http

import "time"

type HttpOpts func(*httpConfig)

// WithDialTimeout bounds connection establishment.
func WithDialTimeout(timeout time.Duration) HttpOpts {
	return func(cfg *httpConfig) {
		cfg.dialTimeout = timeout
	}
}

// WithRequestTimeout bounds the whole request, body read included.
// Completion calls run long, so connectors raise this well above the default.
func WithRequestTimeout(timeout time.Duration) HttpOpts {
	return func(cfg *httpConfig) {
		cfg.requestTimeout = timeout
	}
}

func WithClientKeepAlive(keepAlive time.Duration) HttpOpts {
	return func(cfg *httpConfig) {
		cfg.keepAlive = keepAlive
	}
}

func WithTLSHandshakeTimeout(timeout time.Duration) HttpOpts {
	return func(cfg *httpConfig) {
		cfg.tlsHandshakeTimeout = timeout
	}
}

func WithIdleConnTimeout(timeout time.Duration) HttpOpts {
	return func(cfg *httpConfig) {
		cfg.idleConnTimeout = timeout
	}
}

func WithMaxIdleConns(maxConns int) HttpOpts {
	return func(cfg *httpConfig) {
		cfg.maxIdleConns = maxConns
	}
}

func WithMaxIdleConnsPerHost(maxConns int) HttpOpts {
	return func(cfg *httpConfig) {
		cfg.maxIdleConnsPerHost = maxConns
	}
}

// WithTransport wraps the client transport with a custom round tripper.
func WithTransport(transport TransportFunc) HttpOpts {
	return func(cfg *httpConfig) {
		cfg.transports = append(cfg.transports, transport)
	}
}
