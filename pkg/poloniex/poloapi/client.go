// Package poloapi implements the low level REST transport for the Poloniex
// legacy API: two endpoints multiplexed on a "command" form parameter, with
// HMAC-SHA512 signed trading calls.
package poloapi

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const (
	// PublicAPIURL is the unauthenticated endpoint.
	PublicAPIURL = "https://poloniex.com/public"

	// TradingAPIURL is the authenticated endpoint.
	TradingAPIURL = "https://poloniex.com/tradingApi"

	UserAgent = "poloniex-go/1.0"

	defaultHTTPTimeout = time.Second * 15

	// requestInterval is the minimum delay between any two API requests,
	// shared by both endpoints.
	requestInterval = 250 * time.Millisecond
)

var logger = log.WithField("exchange", "poloniex")

type RestClient struct {
	client *http.Client

	PublicURL  string
	TradingURL string

	// Authentication
	APIKey    string
	APISecret string

	// nonce is strictly increasing across all trading calls made through
	// this client. The exchange rejects a replayed or decreased nonce.
	nonce int64

	limiter *rate.Limiter

	PublicService *PublicService
	TradeService  *TradeService
}

func NewRestClient() *RestClient {
	return NewRestClientWithHttpClient(PublicAPIURL, TradingAPIURL, &http.Client{
		Timeout: defaultHTTPTimeout,
	})
}

func NewRestClientWithHttpClient(publicURL, tradingURL string, httpClient *http.Client) *RestClient {
	c := &RestClient{
		client:     httpClient,
		PublicURL:  publicURL,
		TradingURL: tradingURL,
		nonce:      time.Now().Unix(),
		limiter:    rate.NewLimiter(rate.Every(requestInterval), 1),
	}
	c.PublicService = &PublicService{client: c}
	c.TradeService = &TradeService{client: c}
	return c
}

// Auth sets the api key and secret for trading API calls.
func (c *RestClient) Auth(key, secret string) *RestClient {
	c.APIKey = key
	c.APISecret = secret
	return c
}

func (c *RestClient) HasCredentials() bool {
	return len(c.APIKey) > 0 && len(c.APISecret) > 0
}

// NextNonce returns a nonce strictly greater than any previously returned by
// this client, seeded from the wall clock so a restarted process stays ahead
// of its previous run.
func (c *RestClient) NextNonce() int64 {
	for {
		last := atomic.LoadInt64(&c.nonce)
		next := last + 1
		if now := time.Now().Unix(); now > next {
			next = now
		}
		if atomic.CompareAndSwapInt64(&c.nonce, last, next) {
			return next
		}
	}
}

// QueryPublic issues command against the public endpoint and decodes the
// response into result.
func (c *RestClient) QueryPublic(ctx context.Context, command string, args url.Values, result interface{}) error {
	if args == nil {
		args = url.Values{}
	}
	args.Set("command", command)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.PublicURL+"?"+args.Encode(), nil)
	if err != nil {
		return &TransportError{Err: err}
	}

	status, body, err := c.do(req)
	if err != nil {
		return err
	}
	return decodeResponse(command, status, body, result)
}

// QueryTrading issues a signed command against the trading endpoint.
// ErrAuthenticationRequired is returned before any I/O when no credentials
// are configured.
func (c *RestClient) QueryTrading(ctx context.Context, command string, args url.Values, result interface{}) error {
	if !c.HasCredentials() {
		return ErrAuthenticationRequired
	}

	if args == nil {
		args = url.Values{}
	}
	args.Set("command", command)
	args.Set("nonce", strconv.FormatInt(c.NextNonce(), 10))

	payload := args.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.TradingURL, strings.NewReader(payload))
	if err != nil {
		return &TransportError{Err: err}
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Key", c.APIKey)
	req.Header.Set("Sign", c.sign(payload))

	status, body, err := c.do(req)
	if err != nil {
		return err
	}
	return decodeResponse(command, status, body, result)
}

// sign computes the hex HMAC-SHA512 of the form-encoded request body.
func (c *RestClient) sign(payload string) string {
	mac := hmac.New(sha512.New, []byte(c.APISecret))
	if _, err := mac.Write([]byte(payload)); err != nil {
		logger.WithError(err).Error("hmac write failed")
		return ""
	}
	return hex.EncodeToString(mac.Sum(nil))
}

func (c *RestClient) do(req *http.Request) (int, []byte, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return 0, nil, &TransportError{Err: err}
	}

	req.Header.Set("User-Agent", UserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, &TransportError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &TransportError{Err: err}
	}
	return resp.StatusCode, body, nil
}
