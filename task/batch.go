package task

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"qdeck/algo"
)

// Response pairs a request ID with either an encoded result or an error.
// Result already holds the JSON transport form, so writing a response
// cannot fail on its payload.
type Response struct {
	ID     string          `json:"id"`
	Task   string          `json:"task"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Failed reports whether the request behind r failed.
func (r Response) Failed() bool {
	return r.Error != ""
}

// Respond routes a single request and folds any failure into the response.
// Requests without an ID are assigned a random one.
func (r *Router) Respond(req Request) Response {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	res, err := r.Route(req)
	return respond(req, res, err)
}

// respond encodes res, folding a routing or encoding failure into Error.
func respond(req Request, res algo.Result, err error) Response {
	resp := Response{ID: req.ID, Task: req.Task}
	if err == nil {
		if resp.Result, err = Encode(res); err != nil {
			err = fmt.Errorf("task: encode %s result: %w", req.Task, err)
		}
	}
	if err != nil {
		resp.Error = err.Error()
		resp.Result = nil
	}
	return resp
}

// RouteAll routes reqs on up to workers goroutines and returns one response
// per request in input order. Per-request failures are reported in
// Response.Error; the returned error is non-nil only when ctx ends before
// every request has been routed, and the responses are then only those of
// the requests that did run, still in input order.
func (r *Router) RouteAll(ctx context.Context, reqs []Request, workers int) ([]Response, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	start := time.Now()
	out := make([]Response, len(reqs))
	routed := make([]bool, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, req := range reqs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			out[i] = r.Respond(req)
			routed[i] = true
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		done := out[:0]
		for i, resp := range out {
			if routed[i] {
				done = append(done, resp)
			}
		}
		r.logger().Error("batch interrupted", "requests", len(reqs), "routed", len(done), "err", err)
		return done, fmt.Errorf("task: batch: %w", err)
	}

	failed := 0
	for _, resp := range out {
		if resp.Failed() {
			failed++
		}
	}
	r.logger().Info("batch done", "requests", len(reqs), "failed", failed, "workers", workers, "elapsed", time.Since(start))
	return out, nil
}

// ReadRequests decodes newline-delimited JSON requests. Blank lines are
// skipped.
func ReadRequests(rd io.Reader) ([]Request, error) {
	var reqs []Request
	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}
		var req Request
		if err := json.Unmarshal([]byte(text), &req); err != nil {
			return nil, &ParseError{What: "request", Input: fmt.Sprintf("line %d", line), Reason: err.Error()}
		}
		reqs = append(reqs, req)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("task: read requests: %w", err)
	}
	return reqs, nil
}

// WriteResponses encodes one JSON response per line.
func WriteResponses(w io.Writer, resps []Response) error {
	enc := json.NewEncoder(w)
	for _, resp := range resps {
		if err := enc.Encode(resp); err != nil {
			return fmt.Errorf("task: write response %s: %w", resp.ID, err)
		}
	}
	return nil
}
