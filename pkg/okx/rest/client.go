package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/fd1az/okx-client/internal/apperror"
	"github.com/fd1az/okx-client/internal/circuitbreaker"
	"github.com/fd1az/okx-client/internal/httpclient"
	"github.com/fd1az/okx-client/internal/logger"
	"github.com/fd1az/okx-client/internal/ratelimit"
	"github.com/fd1az/okx-client/pkg/okx"
	"github.com/fd1az/okx-client/pkg/okx/sign"
)

const tracerName = "okx.rest"

// Client is the signed/public REST client. It signs only when credentials
// are present; a public-only client is constructed with zero-value
// credentials.
type Client struct {
	cfg      okx.Config
	signer   sign.Signer
	http     httpclient.Client
	governor *ratelimit.Governor
	logger   logger.LoggerInterface
	tracer   trace.Tracer
	breaker  *circuitbreaker.CircuitBreaker[*httpclient.Response]
}

// New builds a REST client for the given network profile and (optional)
// credentials. A zero-value Credentials yields a public-only client; the
// server rejects calls to signed endpoints made without credentials.
func New(cfg okx.Config, creds okx.Credentials, governor *ratelimit.Governor, log logger.LoggerInterface) (*Client, error) {
	if governor == nil {
		governor = ratelimit.New(ratelimit.Defaults())
	}
	tracer := otel.Tracer(tracerName)

	httpClient, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("okx-rest"),
		httpclient.WithBaseURL(cfg.RestDomain),
		httpclient.WithRequestTimeout(10*time.Second),
		httpclient.WithTraceOptions(tracer, httpclient.TraceRequest, httpclient.TraceResponse),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http client: %w", err)
	}

	breakerCfg := circuitbreaker.DefaultConfig("okx-rest")
	breakerCfg.OnStateChange = func(name string, from, to gobreaker.State) {
		log.Warn(context.Background(), "circuit breaker state change",
			"breaker", name, "from", from.String(), "to", to.String())
	}

	return &Client{
		cfg:      cfg,
		signer:   sign.New(creds),
		http:     httpClient,
		governor: governor,
		logger:   log,
		tracer:   tracer,
		breaker:  circuitbreaker.New[*httpclient.Response](breakerCfg),
	}, nil
}

// Governor exposes the rate-limit governor so callers can install config
// overrides before issuing requests.
func (c *Client) Governor() *ratelimit.Governor {
	return c.governor
}

func okxErrorHandler(statusCode int, body []byte) error {
	if statusCode >= 400 {
		return apperror.New(apperror.CodeTransport,
			apperror.WithContext(fmt.Sprintf("HTTP %d: %s", statusCode, string(body))),
			apperror.WithStatusCode(statusCode))
	}
	return nil
}

// checkEnvelope promotes a non-zero envelope code to a RemoteError.
func checkEnvelope(code, msg string) error {
	if code == "" || code == "0" {
		return nil
	}
	return apperror.New(apperror.CodeRemoteError,
		apperror.WithContext(fmt.Sprintf("code:%s message:%s", code, msg)))
}

// get issues a signed (or public, if creds are empty) GET and unmarshals
// the envelope's data array into result.
func (c *Client) get(ctx context.Context, apiID, path string, params map[string]string, result any) error {
	return c.getChecked(ctx, apiID, path, params, result, func() bool { return c.governor.Allow(apiID) })
}

// getInstID is the GET counterpart of postInstID: it rate-limits on the
// instrument-ID dimension instead of the plain per-API dimension.
func (c *Client) getInstID(ctx context.Context, apiID, instID, path string, params map[string]string, result any) error {
	return c.getChecked(ctx, apiID, path, params, result, func() bool { return c.governor.AllowInstID(apiID, instID) })
}

// getInstType rate-limits on the instrument-type dimension, used by the
// public instrument listing whose budget is per product type.
func (c *Client) getInstType(ctx context.Context, apiID, instType, path string, params map[string]string, result any) error {
	return c.getChecked(ctx, apiID, path, params, result, func() bool { return c.governor.AllowInstType(apiID, instType) })
}

func (c *Client) getChecked(ctx context.Context, apiID, path string, params map[string]string, result any, allowed func() bool) error {
	if !allowed() {
		return apperror.New(apperror.CodeRateLimit, apperror.WithContext(apiID))
	}

	ctx, span := c.tracer.Start(ctx, "rest.get", trace.WithAttributes(
		attribute.String("okx.api_id", apiID),
		attribute.String("okx.path", path),
	))
	defer span.End()

	requestPath := sign.RequestPath(path, params)
	now := time.Now()

	var headers map[string]string
	if c.signer.Credentials.APIKey != "" {
		headers = c.signer.Headers(c.cfg, "GET", requestPath, "", now)
	} else {
		headers = sign.PublicHeaders(c.cfg, now)
	}

	var env struct {
		Code string          `json:"code"`
		Msg  string          `json:"msg"`
		Data json.RawMessage `json:"data"`
	}

	if _, err := c.breaker.Execute(func() (*httpclient.Response, error) {
		return c.http.NewRequestWithOptions(
			httpclient.WithLabels(httpclient.NewLabel("api_id", apiID)),
			httpclient.WithResponseErrorHandler(okxErrorHandler),
		).SetHeaders(headers).SetResult(&env).Get(ctx, requestPath)
	}); err != nil {
		span.RecordError(err)
		return apperror.New(apperror.CodeTransport, apperror.WithCause(err), apperror.WithContext(apiID))
	}

	if err := checkEnvelope(env.Code, env.Msg); err != nil {
		return err
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, result); err != nil {
		return apperror.New(apperror.CodeDecode, apperror.WithCause(err), apperror.WithContext(apiID))
	}
	return nil
}

// getInstIDEnvelope is getInstID's envelope-returning counterpart: it hands
// the caller an Envelope so ToResultOne/ToResultOneOpt can distinguish an
// endpoint-promised single row from a legitimately empty list.
func getInstIDEnvelope[T any](ctx context.Context, c *Client, apiID, instID, path string, params map[string]string) (Envelope[T], error) {
	var data []T
	if err := c.getInstID(ctx, apiID, instID, path, params, &data); err != nil {
		return Envelope[T]{}, err
	}
	return Envelope[T]{Code: "0", Data: data}, nil
}

// post issues a signed POST with a JSON body.
func (c *Client) post(ctx context.Context, apiID, path string, body any, result any) error {
	return c.postChecked(ctx, apiID, path, body, result, func() bool { return c.governor.Allow(apiID) })
}

// postInstID is the inst_id-dimensioned counterpart of post, used by the
// trade endpoints whose limit is scoped to UserID + Instrument ID rather
// than the plain per-API window.
func (c *Client) postInstID(ctx context.Context, apiID, instID string, n int, path string, body, result any) error {
	return c.postChecked(ctx, apiID, path, body, result, func() bool { return c.governor.AllowInstIDN(apiID, instID, n) })
}

// postEnvelope is post's envelope-returning counterpart.
func postEnvelope[T any](ctx context.Context, c *Client, apiID, path string, body any) (Envelope[T], error) {
	var data []T
	if err := c.post(ctx, apiID, path, body, &data); err != nil {
		return Envelope[T]{}, err
	}
	return Envelope[T]{Code: "0", Data: data}, nil
}

// postInstIDEnvelope is postInstID's envelope-returning counterpart.
func postInstIDEnvelope[T any](ctx context.Context, c *Client, apiID, instID string, n int, path string, body any) (Envelope[T], error) {
	var data []T
	if err := c.postInstID(ctx, apiID, instID, n, path, body, &data); err != nil {
		return Envelope[T]{}, err
	}
	return Envelope[T]{Code: "0", Data: data}, nil
}

func (c *Client) postChecked(ctx context.Context, apiID, path string, body any, result any, allowed func() bool) error {
	if !allowed() {
		return apperror.New(apperror.CodeRateLimit, apperror.WithContext(apiID))
	}

	ctx, span := c.tracer.Start(ctx, "rest.post", trace.WithAttributes(
		attribute.String("okx.api_id", apiID),
		attribute.String("okx.path", path),
	))
	defer span.End()

	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return apperror.New(apperror.CodeDecode, apperror.WithCause(err))
	}

	now := time.Now()
	headers := c.signer.Headers(c.cfg, "POST", path, string(bodyBytes), now)

	var env struct {
		Code string          `json:"code"`
		Msg  string          `json:"msg"`
		Data json.RawMessage `json:"data"`
	}

	if _, err := c.breaker.Execute(func() (*httpclient.Response, error) {
		return c.http.NewRequestWithOptions(
			httpclient.WithLabels(httpclient.NewLabel("api_id", apiID)),
			httpclient.WithResponseErrorHandler(okxErrorHandler),
		).SetHeaders(headers).SetBody(bodyBytes).SetResult(&env).Post(ctx, path)
	}); err != nil {
		span.RecordError(err)
		return apperror.New(apperror.CodeTransport, apperror.WithCause(err), apperror.WithContext(apiID))
	}

	if err := checkEnvelope(env.Code, env.Msg); err != nil {
		return err
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, result); err != nil {
		return apperror.New(apperror.CodeDecode, apperror.WithCause(err), apperror.WithContext(apiID))
	}
	return nil
}
