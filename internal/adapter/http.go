package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/sixpath/sixpath-server/internal/logger"
	"github.com/sixpath/sixpath-server/internal/utils"
	"github.com/sixpath/sixpath-server/models"
)

type httpAPIClient struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPAPIClient constructs an HTTP/REST implementation of [APIClient].
// It normalises and validates the base URL from address and configures the
// underlying HTTP client with the resolved base URL and request timeout.
//
// Returns an error if address is empty or cannot be parsed as a valid URL.
func NewHTTPAPIClient(address string, requestTimeout time.Duration, logger *logger.Logger) (APIClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid api address: %w", err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout)

	return &httpAPIClient{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [APIClient]. It stores token (whitespace-trimmed) for
// use in the Authorization header of all subsequent authenticated requests.
func (h *httpAPIClient) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [APIClient].
func (h *httpAPIClient) Token() string {
	return h.token
}

// Register implements [APIClient]. It POSTs the registration payload to
// POST /auth/register and then logs in with the same credential pair so the
// client holds a usable session token afterwards.
func (h *httpAPIClient) Register(ctx context.Context, req models.RegisterRequest) (models.PersonResponse, error) {
	var created models.PersonResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&created).
		Post("/auth/register")
	if err != nil {
		return models.PersonResponse{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PersonResponse{}, err
	}

	loginReq := models.LoginRequest{Username: req.Username, Password: req.Password}
	if err := h.Login(ctx, loginReq); err != nil {
		return models.PersonResponse{}, fmt.Errorf("post-registration login: %w", err)
	}

	return created, nil
}

// Login implements [APIClient]. It POSTs the credential pair to
// POST /auth/login and stores the returned access token via SetToken.
func (h *httpAPIClient) Login(ctx context.Context, req models.LoginRequest) error {
	var token models.TokenResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&token).
		Post("/auth/login")
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	if token.AccessToken == "" {
		return fmt.Errorf("login response carries no access token")
	}

	h.SetToken(token.AccessToken)

	return nil
}

// CreateContact implements [APIClient].
func (h *httpAPIClient) CreateContact(ctx context.Context, req models.CreatePersonRequest) (models.PersonResponse, error) {
	var created models.PersonResponse

	resp, err := h.authorized().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&created).
		Post("/users")
	if err != nil {
		return models.PersonResponse{}, fmt.Errorf("create contact request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.PersonResponse{}, err
	}

	return created, nil
}

// ListContacts implements [APIClient].
func (h *httpAPIClient) ListContacts(ctx context.Context, limit, offset uint64) ([]models.PersonResponse, error) {
	var people []models.PersonResponse

	resp, err := h.authorized().
		SetContext(ctx).
		SetQueryParam("limit", strconv.FormatUint(limit, 10)).
		SetQueryParam("offset", strconv.FormatUint(offset, 10)).
		SetResult(&people).
		Get("/users")
	if err != nil {
		return nil, fmt.Errorf("list contacts request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return people, nil
}

// CreateConnection implements [APIClient].
func (h *httpAPIClient) CreateConnection(ctx context.Context, req models.CreateConnectionRequest) (models.ConnectionResponse, error) {
	var created models.ConnectionResponse

	resp, err := h.authorized().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&created).
		Post("/connections")
	if err != nil {
		return models.ConnectionResponse{}, fmt.Errorf("create connection request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ConnectionResponse{}, err
	}

	return created, nil
}

// CreateReferral implements [APIClient].
func (h *httpAPIClient) CreateReferral(ctx context.Context, req models.CreateReferralRequest) (models.ReferralResponse, error) {
	var created models.ReferralResponse

	resp, err := h.authorized().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&created).
		Post("/referrals")
	if err != nil {
		return models.ReferralResponse{}, fmt.Errorf("create referral request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ReferralResponse{}, err
	}

	return created, nil
}

// authorized returns a request with the stored bearer token attached.
func (h *httpAPIClient) authorized() *resty.Request {
	return h.client.R().SetAuthToken(h.token)
}
