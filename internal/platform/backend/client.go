package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	marketentity "wealthwise_gateway/internal/feature/market/domain/entity"
	marketusecase "wealthwise_gateway/internal/feature/market/usecase"
	portfolioentity "wealthwise_gateway/internal/feature/portfolio/domain/entity"
	portfoliousecase "wealthwise_gateway/internal/feature/portfolio/usecase"
	sessionusecase "wealthwise_gateway/internal/feature/session/usecase"
	"wealthwise_gateway/internal/platform/backend/dto"
)

// ErrMissingToken is returned when a login response carries no token in any
// of the shapes the backend is known to emit.
var ErrMissingToken = errors.New("backend: login response has no token")

// TokenSource supplies the bearer token for authenticated calls.
// Following Go convention the interface lives with its consumer; the session
// manager implements it.
type TokenSource interface {
	Token() (string, bool)
}

// Client talks to the remote WealthWise REST API. It covers the three
// surfaces the gateway needs: credential exchange, portfolio reads/writes
// and market data.
type Client struct {
	cfg    Config
	client *http.Client
	tokens TokenSource
}

// Compile-time checks that Client satisfies its consumers' interfaces.
var (
	_ sessionusecase.CredentialExchanger = (*Client)(nil)
	_ portfoliousecase.BackendGateway    = (*Client)(nil)
	_ marketusecase.QuoteSource          = (*Client)(nil)
)

// NewClient creates a Client with the given configuration, HTTP client and
// token source. tokens may be nil for unauthenticated use.
func NewClient(cfg Config, client *http.Client, tokens TokenSource) *Client {
	return &Client{cfg: cfg, client: client, tokens: tokens}
}

// Exchange posts credentials to the login endpoint and returns the issued
// token. The token is accepted both at the top level and nested under data.
func (c *Client) Exchange(ctx context.Context, email, password string) (sessionusecase.Credentials, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return sessionusecase.Credentials{}, err
	}

	var body dto.LoginResponse
	if err := c.doJSON(req, &body); err != nil {
		return sessionusecase.Credentials{}, err
	}

	token := body.Token
	user := body.User
	if token == "" && body.Data != nil {
		token = body.Data.Token
		if user == nil {
			user = body.Data.User
		}
	}
	if token == "" {
		return sessionusecase.Credentials{}, ErrMissingToken
	}

	creds := sessionusecase.Credentials{Token: token}
	if user != nil {
		creds.UserName = user.Name
		creds.UserEmail = user.Email
	}
	return creds, nil
}

// FetchHoldings retrieves the full holdings list for the signed-in user.
func (c *Client) FetchHoldings(ctx context.Context) ([]portfolioentity.Holding, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/portfolio", nil)
	if err != nil {
		return nil, err
	}

	var body dto.PortfolioResponse
	if err := c.doJSON(req, &body); err != nil {
		return nil, err
	}

	holdings := make([]portfolioentity.Holding, 0, len(body.Data))
	for _, p := range body.Data {
		holdings = append(holdings, toHolding(p))
	}
	return holdings, nil
}

// CreateHolding persists a new holding remotely and returns the record with
// its server-assigned id.
func (c *Client) CreateHolding(ctx context.Context, in portfoliousecase.NewHolding) (portfolioentity.Holding, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/portfolio", dto.CreateHoldingRequest{
		AssetType:     string(in.AssetType),
		Symbol:        in.Symbol,
		Quantity:      in.Quantity,
		PurchasePrice: in.PurchasePrice,
	})
	if err != nil {
		return portfolioentity.Holding{}, err
	}

	var body dto.HoldingPayload
	if err := c.doJSON(req, &body); err != nil {
		return portfolioentity.Holding{}, err
	}
	return toHolding(body), nil
}

// DeleteHolding removes a holding remotely.
func (c *Client) DeleteHolding(ctx context.Context, id string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, "/api/portfolio/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, nil)
}

// FetchQuotes retrieves current market data. The endpoint returns either a
// bare array or an object wrapping it under data.
func (c *Client) FetchQuotes(ctx context.Context) ([]marketentity.Quote, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/market/market-data", nil)
	if err != nil {
		return nil, err
	}

	var raw json.RawMessage
	if err := c.doJSON(req, &raw); err != nil {
		return nil, err
	}

	var payloads []dto.QuotePayload
	if err := json.Unmarshal(raw, &payloads); err != nil {
		var wrapped struct {
			Data []dto.QuotePayload `json:"data"`
		}
		if err := json.Unmarshal(raw, &wrapped); err != nil {
			return nil, fmt.Errorf("backend: unexpected market data shape: %w", err)
		}
		payloads = wrapped.Data
	}

	quotes := make([]marketentity.Quote, 0, len(payloads))
	for _, p := range payloads {
		if p.Symbol == "" {
			continue
		}
		q := marketentity.Quote{
			Symbol:       p.Symbol,
			CurrentPrice: float64(p.CurrentPrice),
		}
		for _, h := range p.History {
			q.History = append(q.History, marketentity.ClosingPrice{
				Date:  h.Date,
				Close: float64(h.Close),
			})
		}
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// newRequest builds a request against the configured base URL, serializing
// body as JSON when present and attaching the bearer token when one is held.
func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, rdr)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}
	return req, nil
}

// doJSON executes the request and decodes the response body into out when
// out is non-nil. Status codes >= 400 become errors carrying the backend's
// message when one was sent.
func (c *Client) doJSON(req *http.Request, out any) error {
	res, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return statusError(res)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(res.Body).Decode(out)
}

func statusError(res *http.Response) error {
	var body dto.ErrorBody
	if err := json.NewDecoder(res.Body).Decode(&body); err == nil && body.Text() != "" {
		return fmt.Errorf("backend http %d: %s", res.StatusCode, body.Text())
	}
	return fmt.Errorf("backend http %d", res.StatusCode)
}

// toHolding converts a wire payload into the domain entity, normalizing the
// asset type labels older deployments use ("Mutual Funds", "stock").
func toHolding(p dto.HoldingPayload) portfolioentity.Holding {
	return portfolioentity.Holding{
		ID:            p.Identifier(),
		AssetType:     normalizeAssetType(p.AssetType),
		Symbol:        p.Symbol,
		Quantity:      float64(p.Quantity),
		PurchasePrice: float64(p.PurchasePrice),
	}
}

func normalizeAssetType(s string) portfolioentity.AssetType {
	norm := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), " ", "_"))
	switch norm {
	case "STOCK", "STOCKS":
		return portfolioentity.AssetStock
	case "CRYPTO", "CRYPTOCURRENCY":
		return portfolioentity.AssetCrypto
	case "MUTUAL_FUND", "MUTUAL_FUNDS":
		return portfolioentity.AssetMutualFund
	default:
		return portfolioentity.AssetType(norm)
	}
}
