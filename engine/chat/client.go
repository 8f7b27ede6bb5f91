package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
)

// DefaultTimeout bounds a single chat request.
const DefaultTimeout = 30 * time.Second

// Reply is the body returned by the chat endpoint.
type Reply struct {
	Response string `json:"response"`
}

type request struct {
	Message string `json:"message"`
}

// client is the implementation of the Client interface.
type client struct {
	mu *sync.Mutex

	endpoint   string
	apiKey     string
	httpClient *http.Client
	timeout    time.Duration
	logger     *log.Logger

	workers int
	pool    worker.DynamicWorkerPool
	taskID  int
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	closed  bool
}

// Client posts user messages to the chat endpoint.
//
// The endpoint receives {"message": text} with the API key in the "api-key" header and answers
// {"response": text}. Every failure is reported as an error wrapping ErrNetwork.
type Client interface {
	// Send posts a message and waits for the reply.
	//
	// Parameters:
	//   - ctx: the context bounding the request
	//   - message: the user's message, trimmed before sending
	//
	// Returns:
	//   - Reply: the decoded reply
	//   - error: ErrEmptyMessage, ErrClosed, or an error wrapping ErrNetwork
	Send(ctx context.Context, message string) (Reply, error)

	// SendAsync posts a message on the worker pool and invokes done with the result.
	// done runs on a worker goroutine; callers that touch single-threaded state must hand the result
	// back to their own goroutine.
	//
	// Parameters:
	//   - message: the user's message
	//   - done: the completion callback
	SendAsync(message string, done func(Reply, error))

	// Close cancels in-flight requests, waits for their callbacks and stops the worker pool.
	Close()
}

var _ Client = &client{}

// NewClient creates a new Client with the given options.
//
// Parameters:
//   - options: variadic ClientBuilderOption functions to configure the Client
//
// Returns:
//   - Client: the new client
func NewClient(options ...ClientBuilderOption) Client {
	c := &client{
		mu:      &sync.Mutex{},
		timeout: DefaultTimeout,
		workers: 2,
	}

	for _, opt := range options {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())
	c.pool = worker.NewDynamicWorkerPool(c.workers, 16, time.Second)

	return c
}

func (c *client) Send(ctx context.Context, message string) (Reply, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return Reply{}, ErrEmptyMessage
	}
	if c.endpoint == "" {
		return Reply{}, fmt.Errorf("%w: no endpoint configured", ErrNetwork)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(request{Message: message})
	if err != nil {
		return Reply{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Reply{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Reply{}, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return Reply{}, fmt.Errorf("%w: %s", ErrNetwork, resp.Status)
	}

	var reply Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return Reply{}, fmt.Errorf("%w: decode reply: %w", ErrNetwork, err)
	}
	return reply, nil
}

func (c *client) SendAsync(message string, done func(Reply, error)) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		if done != nil {
			done(Reply{}, ErrClosed)
		}
		return
	}
	c.taskID++
	id := c.taskID
	c.wg.Add(1)
	c.mu.Unlock()

	c.pool.SubmitTask(worker.Task{
		ID:      id,
		Payload: message,
		Do: func() (any, error) {
			defer c.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					c.logger.Printf("chat: request %d recovered from panic: %v", id, r)
				}
			}()

			reply, err := c.Send(c.ctx, message)
			if done != nil {
				done(reply, err)
			}
			return reply, err
		},
	})
}

func (c *client) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.mu.Unlock()

	c.cancel()
	c.wg.Wait()
	c.pool.Stop()
}
