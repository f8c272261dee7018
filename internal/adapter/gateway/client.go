package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"time"

	domainErrors "github.com/conzooming/mealsub/internal/domain/errors"
	"github.com/conzooming/mealsub/internal/domain/model"
)

// TooManyRequestsError represents a rate limiting signal from the backend.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// UpstreamError is a backend call that completed but reported failure. The
// Message is the backend's text verbatim; checkout classifies it further.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e UpstreamError) Error() string {
	return fmt.Sprintf("upstream error (%d): %s", e.StatusCode, e.Message)
}

// CreateMealPlanRequest is the payload for meal plan generation.
type CreateMealPlanRequest struct {
	UserID                         string `json:"userId"`
	ConsiderNutritionalPreferences bool   `json:"considerNutritionalPreferences"`
}

// SubscribeRequest is the combined subscribe-and-pay payload.
type SubscribeRequest struct {
	CustomerID      string          `json:"customerId"`
	MealPlanID      string          `json:"mealPlanId"`
	DeliveryDays    []model.Weekday `json:"deliveryDays"`
	DeliveryAddress string          `json:"deliveryAddress"`
	StartDate       time.Time       `json:"startDate"`
	EndDate         time.Time       `json:"endDate"`
	Currency        string          `json:"currency"`
	TotalAmount     float64         `json:"totalAmount"`
	PaymentMode     int             `json:"paymentMode"`
	Reference       string          `json:"reference"`
}

// SubscribeResult carries the two possible success shapes of subscribe-and-pay:
// a synchronously settled wallet debit, or a card payment needing a redirect.
type SubscribeResult struct {
	Settled            bool
	AuthorizationURL   string
	OrderReferenceCode string
}

// ForwardRequest is a verbatim pass-through call used by the proxy layer.
type ForwardRequest struct {
	Method string
	Path   string
	Query  string
	Body   io.Reader
	Header http.Header
}

// ForwardResponse mirrors the upstream status and body unchanged.
type ForwardResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// Client exposes the delivery backend operations the flows need.
type Client interface {
	CreateMealPlan(ctx context.Context, token string, req CreateMealPlanRequest) (*model.MealPlan, error)
	ListMealPlans(ctx context.Context, token, userID string) ([]model.MealPlan, error)
	GetMealPlan(ctx context.Context, token, mealPlanID string) (*model.MealPlan, error)
	GetHealthProfile(ctx context.Context, token, userID string) (*model.HealthProfile, error)
	CreateHealthProfile(ctx context.Context, token, userID string, profile model.HealthProfile) error
	SubscribeAndPay(ctx context.Context, token string, req SubscribeRequest) (*SubscribeResult, error)
	GetOrder(ctx context.Context, token, orderRef string) (*model.Order, error)
	ListAddresses(ctx context.Context, token, userID string) ([]model.Address, error)
	WalletBalance(ctx context.Context, token, userID string) (float64, error)
	Forward(ctx context.Context, req ForwardRequest) (*ForwardResponse, error)
}

// HTTPClient implements Client against the backend's REST API.
type HTTPClient struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// envelope mirrors the backend's uniform response wrapper.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// NewHTTPClient creates an HTTP gateway client with default timeout.
func NewHTTPClient(baseURL string, logger *slog.Logger) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	return &HTTPClient{
		baseURL: parsed,
		logger:  logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// CreateMealPlan asks the backend to generate a weekly plan for the user.
func (c *HTTPClient) CreateMealPlan(ctx context.Context, token string, req CreateMealPlanRequest) (*model.MealPlan, error) {
	var plan model.MealPlan
	if err := c.call(ctx, http.MethodPost, "/api/user/order/user-create-meal-plan", "", token, req, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListMealPlans returns the user's existing plans. A backend 404 means the
// user simply has none yet and maps to ErrNoMealPlans rather than a failure.
func (c *HTTPClient) ListMealPlans(ctx context.Context, token, userID string) ([]model.MealPlan, error) {
	var plans []model.MealPlan
	query := url.Values{"userId": {userID}}.Encode()
	err := c.call(ctx, http.MethodGet, "/api/user/order/meal-plans", query, token, nil, &plans)
	if err != nil {
		if isNotFound(err) {
			return nil, domainErrors.ErrNoMealPlans
		}
		return nil, err
	}
	if len(plans) == 0 {
		return nil, domainErrors.ErrNoMealPlans
	}
	return plans, nil
}

// GetMealPlan fetches one plan by identifier.
func (c *HTTPClient) GetMealPlan(ctx context.Context, token, mealPlanID string) (*model.MealPlan, error) {
	var plan model.MealPlan
	err := c.call(ctx, http.MethodGet, path.Join("/api/user/order/get-meal-plans", mealPlanID), "", token, nil, &plan)
	if err != nil {
		if isNotFound(err) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetHealthProfile fetches the user's nutritional-preference profile; a 404
// maps to ErrNoHealthProfile, the expected state for new users.
func (c *HTTPClient) GetHealthProfile(ctx context.Context, token, userID string) (*model.HealthProfile, error) {
	var profile model.HealthProfile
	err := c.call(ctx, http.MethodGet, path.Join("/api/user/order/get-health-profile", userID), "", token, nil, &profile)
	if err != nil {
		if isNotFound(err) {
			return nil, domainErrors.ErrNoHealthProfile
		}
		return nil, err
	}
	return &profile, nil
}

// CreateHealthProfile stores the profile for the user identified by the
// authenticated session.
func (c *HTTPClient) CreateHealthProfile(ctx context.Context, token, userID string, profile model.HealthProfile) error {
	return c.call(ctx, http.MethodPost, path.Join("/api/user/order/create-health-profile", userID), "", token, profile, nil)
}

// SubscribeAndPay submits the single combined subscribe-and-pay request.
func (c *HTTPClient) SubscribeAndPay(ctx context.Context, token string, req SubscribeRequest) (*SubscribeResult, error) {
	var data struct {
		AuthorizationURL   string `json:"authorization_url"`
		OrderReferenceCode string `json:"orderReferenceCode"`
	}
	if err := c.call(ctx, http.MethodPost, "/api/user/order/subscribe-and-pay", "", token, req, &data); err != nil {
		return nil, err
	}
	result := &SubscribeResult{
		AuthorizationURL:   data.AuthorizationURL,
		OrderReferenceCode: data.OrderReferenceCode,
	}
	result.Settled = req.PaymentMode == model.PaymentModeWallet
	return result, nil
}

// GetOrder fetches order state by reference code. An empty token is allowed
// for the background poller.
func (c *HTTPClient) GetOrder(ctx context.Context, token, orderRef string) (*model.Order, error) {
	var order model.Order
	err := c.call(ctx, http.MethodGet, path.Join("/api/user/order/get-order", orderRef), "", token, nil, &order)
	if err != nil {
		if isNotFound(err) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListAddresses fetches the user's saved delivery addresses.
func (c *HTTPClient) ListAddresses(ctx context.Context, token, userID string) ([]model.Address, error) {
	var addresses []model.Address
	if err := c.call(ctx, http.MethodGet, path.Join("/api/user/address", userID), "", token, nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// WalletBalance returns the server-held prepaid balance.
func (c *HTTPClient) WalletBalance(ctx context.Context, token, userID string) (float64, error) {
	var data struct {
		Balance float64 `json:"balance"`
	}
	if err := c.call(ctx, http.MethodGet, path.Join("/api/user/wallet/balance", userID), "", token, nil, &data); err != nil {
		return 0, err
	}
	return data.Balance, nil
}

// Forward relays a request verbatim and returns whatever the backend answered,
// including error statuses; only transport failures return a non-nil error.
func (c *HTTPClient) Forward(ctx context.Context, fwd ForwardRequest) (*ForwardResponse, error) {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, fwd.Path)
	endpoint.RawQuery = fwd.Query

	req, err := http.NewRequestWithContext(ctx, fwd.Method, endpoint.String(), fwd.Body)
	if err != nil {
		return nil, err
	}
	for _, h := range []string{"Authorization", "Cookie", "Content-Type", "Accept"} {
		if v := fwd.Header.Get(h); v != "" {
			req.Header.Set(h, v)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &ForwardResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

func (c *HTTPClient) call(ctx context.Context, method, p, query, token string, payload, out any) error {
	endpoint := *c.baseURL
	endpoint.Path = path.Join(endpoint.Path, p)
	endpoint.RawQuery = query

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case resp.StatusCode == http.StatusNotFound:
		return UpstreamError{StatusCode: resp.StatusCode, Message: upstreamMessage(raw, resp.Status)}
	case resp.StatusCode >= 400:
		c.logger.Error("gateway request failed",
			slog.String("method", method),
			slog.String("path", p),
			slog.Int("status", resp.StatusCode),
		)
		return UpstreamError{StatusCode: resp.StatusCode, Message: upstreamMessage(raw, resp.Status)}
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("decode gateway response: %w", err)
	}
	if !env.Success {
		return UpstreamError{StatusCode: resp.StatusCode, Message: env.Message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode gateway data: %w", err)
		}
	}
	return nil
}

func upstreamMessage(raw []byte, fallback string) string {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return fallback
}

func isNotFound(err error) bool {
	if ue, ok := err.(UpstreamError); ok {
		return ue.StatusCode == http.StatusNotFound
	}
	return false
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
