// Package fetcher retrieves raw moderation data from the public API.
package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/robalyx/modlog/internal/endpoint"
	"github.com/robalyx/modlog/internal/types"
	"github.com/sourcegraph/conc/pool"
	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// PublicPath is the prefix of the record collection endpoints.
	PublicPath = "/api/public/"
	// StatusPath is the server status endpoint.
	StatusPath = "/api/server/status"
)

// shape is the JSON type a successful response must have.
type shape int

const (
	shapeArray shape = iota
	shapeObject
)

// Fetcher issues single-attempt GET requests against the API base.
type Fetcher struct {
	client        *http.Client
	base          string
	buildOverride bool
	tracer        trace.Tracer
	group         singleflight.Group
	logger        *zap.Logger

	mu      sync.Mutex
	flights map[string]*flight
}

// flight is the context a shared request runs on. It is cancelled once
// every caller waiting on the request has left.
type flight struct {
	ctx     context.Context
	cancel  context.CancelFunc
	waiters int
}

// New creates a Fetcher for the resolved API base. A nil client uses a default http.Client.
func New(client *http.Client, resolved endpoint.Resolved, logger *zap.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{}
	}

	return &Fetcher{
		client:        client,
		base:          resolved.Base,
		buildOverride: resolved.BuildOverride,
		tracer:        otel.Tracer("fetcher"),
		logger:        logger.Named("fetcher"),
		flights:       make(map[string]*flight),
	}
}

// Base returns the API base every request is built on.
func (f *Fetcher) Base() string {
	return f.base
}

// Fetch retrieves the raw records of one kind. Concurrent calls for the same
// kind share a single request.
func (f *Fetcher) Fetch(ctx context.Context, kind types.Kind) ([]gjson.Result, error) {
	path := PublicPath + kind.Collection()

	v, err := f.shared(ctx, path, func(ctx context.Context) (any, error) {
		body, err := f.get(ctx, path, shapeArray)
		if err != nil {
			return nil, err
		}
		return body.Array(), nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]gjson.Result), nil
}

// FetchAll retrieves every kind concurrently. The first failure cancels the
// remaining requests and is returned on its own; no partial result is produced.
func (f *Fetcher) FetchAll(ctx context.Context) (map[types.Kind][]gjson.Result, error) {
	var (
		kinds   = types.Kinds()
		results = make(map[types.Kind][]gjson.Result, len(kinds))
		mu      sync.Mutex
		p       = pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	)

	for _, kind := range kinds {
		p.Go(func(ctx context.Context) error {
			rows, err := f.Fetch(ctx, kind)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", kind.Collection(), err)
			}

			mu.Lock()
			results[kind] = rows
			mu.Unlock()
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

// FetchStatus retrieves the raw server status object.
func (f *Fetcher) FetchStatus(ctx context.Context) (gjson.Result, error) {
	v, err := f.shared(ctx, StatusPath, func(ctx context.Context) (any, error) {
		return f.get(ctx, StatusPath, shapeObject)
	})
	if err != nil {
		return gjson.Result{}, err
	}

	return v.(gjson.Result), nil
}

// shared collapses concurrent requests for the same path. The request runs
// on a context owned by the flight and each caller stops waiting on its own ctx.
func (f *Fetcher) shared(ctx context.Context, key string, fn func(context.Context) (any, error)) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fl := f.join(ctx, key)
	defer f.leave(key, fl)

	ch := f.group.DoChan(key, func() (any, error) {
		return fn(fl.ctx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val, nil
	}
}

// join registers a waiter on the flight for key, starting one if needed.
func (f *Fetcher) join(ctx context.Context, key string) *flight {
	f.mu.Lock()
	defer f.mu.Unlock()

	fl, ok := f.flights[key]
	if !ok {
		flightCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
		fl = &flight{ctx: flightCtx, cancel: cancel}
		f.flights[key] = fl
	}
	fl.waiters++

	return fl
}

// leave unregisters a waiter. The last one out cancels the request and makes
// sure later callers start a new one instead of joining the cancelled call.
func (f *Fetcher) leave(key string, fl *flight) {
	f.mu.Lock()
	defer f.mu.Unlock()

	fl.waiters--
	if fl.waiters > 0 {
		return
	}

	delete(f.flights, key)
	f.group.Forget(key)
	fl.cancel()
}

// get performs one GET request and validates the body shape.
func (f *Fetcher) get(ctx context.Context, path string, want shape) (result gjson.Result, err error) {
	url := f.base + path

	ctx, span := f.tracer.Start(ctx, "fetch "+path, trace.WithAttributes(
		attribute.String("http.url", url),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return gjson.Result{}, &ConnectivityError{Base: f.base, BuildOverride: f.buildOverride, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return gjson.Result{}, ctx.Err()
		}

		f.logger.Warn("API unreachable",
			zap.String("url", url),
			zap.Error(err))
		return gjson.Result{}, &ConnectivityError{Base: f.base, BuildOverride: f.buildOverride, Err: err}
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return gjson.Result{}, ctx.Err()
		}
		return gjson.Result{}, &ConnectivityError{Base: f.base, BuildOverride: f.buildOverride, Err: err}
	}

	result, err = validate(resp.StatusCode, body, want)
	if err != nil {
		f.logger.Warn("API returned unusable data",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
			zap.Error(err))
		return gjson.Result{}, err
	}

	if want == shapeArray {
		count := len(result.Array())
		span.SetAttributes(attribute.Int("records.count", count))
		f.logger.Debug("Fetched records",
			zap.String("path", path),
			zap.Int("count", count))
	}

	return result, nil
}

// validate checks the status code and body shape, extracting the
// server-supplied message on failure.
func validate(status int, body []byte, want shape) (gjson.Result, error) {
	ok := status >= 200 && status < 300

	if !gjson.ValidBytes(body) {
		return gjson.Result{}, &DataError{StatusCode: status}
	}

	parsed := gjson.ParseBytes(body)

	if ok {
		switch {
		case want == shapeArray && parsed.IsArray():
			return parsed, nil
		case want == shapeObject && parsed.IsObject():
			return parsed, nil
		}
	}

	return gjson.Result{}, &DataError{StatusCode: status, Message: serverMessage(parsed)}
}

// serverMessage returns the first non-empty of the error and details fields.
func serverMessage(parsed gjson.Result) string {
	if !parsed.IsObject() {
		return ""
	}

	for _, field := range []string{"error", "details"} {
		if v := parsed.Get(field); v.Exists() && v.Type != gjson.Null {
			if s := v.String(); s != "" {
				return s
			}
		}
	}

	return ""
}
