package chat

import (
	"log"
	"net/http"
	"time"
)

// ClientBuilderOption is a functional option for configuring a Client during construction.
type ClientBuilderOption func(*client)

// WithEndpoint is an option builder that sets the URL messages are posted to.
//
// Parameters:
//   - url: the chat endpoint
//
// Returns:
//   - ClientBuilderOption: a function that applies the endpoint to a client
func WithEndpoint(url string) ClientBuilderOption {
	return func(c *client) {
		c.endpoint = url
	}
}

// WithAPIKey is an option builder that sets the value of the "api-key" request header.
//
// Parameters:
//   - key: the API key
//
// Returns:
//   - ClientBuilderOption: a function that applies the key to a client
func WithAPIKey(key string) ClientBuilderOption {
	return func(c *client) {
		c.apiKey = key
	}
}

// WithHTTPClient is an option builder that replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) ClientBuilderOption {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithTimeout is an option builder that bounds each request. Zero disables the bound.
func WithTimeout(d time.Duration) ClientBuilderOption {
	return func(c *client) {
		c.timeout = d
	}
}

// WithWorkers is an option builder that sets how many requests may run at once.
func WithWorkers(n int) ClientBuilderOption {
	return func(c *client) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithLogger is an option builder that sets the logger.
func WithLogger(l *log.Logger) ClientBuilderOption {
	return func(c *client) {
		c.logger = l
	}
}
