package callgw

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"github.com/central-university-dev/go-bed-caller/internal/config"
	"github.com/central-university-dev/go-bed-caller/internal/domain/errors"
)

// Client ставит и сбрасывает голосовые звонки через внешний шлюз.
// HTTP-клиент повторяет запросы и прикрыт предохранителем: шлюз,
// который не дозванивается, не должен ронять остальной процесс.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	client := resty.New()

	client.SetBaseURL(cfg.CallGatewayURL)
	client.SetTimeout(cfg.ExternalRequestTimeout)

	client.SetRetryCount(cfg.RetryCount)
	client.SetRetryWaitTime(cfg.RetryBackoff)
	client.SetRetryMaxWaitTime(cfg.RetryBackoff * 5)

	client.AddRetryCondition(func(r *resty.Response, err error) bool {
		if err != nil {
			return true
		}

		for _, status := range cfg.RetryableStatusCodes {
			if r.StatusCode() == status {
				return true
			}
		}

		return false
	})

	settings := gobreaker.Settings{
		Name:        "call_gateway_circuit_breaker",
		MaxRequests: uint32(cfg.CBPermittedCallsInHalfOpen), //nolint:gosec // G115: Значение из конфига
		Interval:    time.Duration(cfg.CBSlidingWindowSize) * time.Second,
		Timeout:     cfg.CBWaitDurationInOpenState,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= uint32(cfg.CBMinimumRequiredCalls) && //nolint:gosec // G115: Значение из конфига
				failureRatio >= float64(cfg.CBFailureRateThreshold)/100.0
		},
	}

	client.SetTransport(&breakerTransport{
		breaker:   gobreaker.NewCircuitBreaker(settings),
		transport: http.DefaultTransport,
		logger:    logger,
	})

	return &Client{
		http:   client,
		logger: logger,
	}
}

func (c *Client) PlaceCall(ctx context.Context, userID int64) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]int64{"user_id": userID}).
		Post("/calls")
	if err != nil {
		return fmt.Errorf("ошибка при постановке звонка: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("ошибка при постановке звонка: %w", &errors.HTTPError{StatusCode: resp.StatusCode()})
	}

	return nil
}

func (c *Client) DiscardCall(ctx context.Context, callID int64) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Post(fmt.Sprintf("/calls/%d/discard", callID))
	if err != nil {
		return fmt.Errorf("ошибка при сбросе звонка: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("ошибка при сбросе звонка: %w", &errors.HTTPError{StatusCode: resp.StatusCode()})
	}

	return nil
}

type breakerTransport struct {
	breaker   *gobreaker.CircuitBreaker
	transport http.RoundTripper
	logger    *slog.Logger
}

func (t *breakerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	result, err := t.breaker.Execute(func() (interface{}, error) {
		resp, err := t.transport.RoundTrip(req)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			resp.Body.Close()
			return nil, &errors.HTTPError{StatusCode: resp.StatusCode}
		}

		return resp, nil
	})
	if err != nil {
		if err == gobreaker.ErrOpenState && t.logger != nil {
			t.logger.Warn("Предохранитель шлюза звонков открыт",
				"url", req.URL.String(),
			)
		}

		return nil, err
	}

	return result.(*http.Response), nil
}
