package kraken

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	jsoniter "github.com/json-iterator/go"

	"dancespiele/pkg/ratelimit"
	"dancespiele/pkg/utils"
)

const defaultBaseURL = "https://api.kraken.com"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// envelope - общий конверт ответов Kraken.
// result разбирается целевым типом без промежуточной пересериализации.
type envelope struct {
	Error  []string            `json:"error"`
	Result jsoniter.RawMessage `json:"result"`
}

// ClientConfig - настройки клиента
type ClientConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RateLimit float64 // запросов в секунду
	RateBurst float64
}

// Client - клиент REST API Kraken. Потокобезопасен: nonce атомарный,
// rate limiter общий для приватных и публичных вызовов.
type Client struct {
	baseURL    string
	apiKey     string
	apiSecret  []byte // декодированный base64-секрет
	httpClient *http.Client
	limiter    *ratelimit.RateLimiter
	nonce      atomic.Int64
	log        *utils.Logger
}

// NewClient создаёт клиент с подписью приватных запросов.
// apiSecret из keys.json закодирован base64, как выдаёт Kraken.
func NewClient(creds *Credentials, cfg ClientConfig, log *utils.Logger) (*Client, error) {
	secret, err := base64.StdEncoding.DecodeString(creds.APISecret)
	if err != nil {
		return nil, fmt.Errorf("api_secret is not valid base64: %w", err)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		apiKey:    creds.APIKey,
		apiSecret: secret,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: ratelimit.NewRateLimiter(cfg.RateLimit, cfg.RateBurst),
		log:     log.WithComponent("kraken"),
	}
	c.nonce.Store(time.Now().UnixNano())

	return c, nil
}

// nextNonce возвращает монотонно растущий nonce
func (c *Client) nextNonce() string {
	return strconv.FormatInt(c.nonce.Add(1), 10)
}

// sign строит заголовок API-Sign:
// base64(HMAC-SHA512(path + SHA256(nonce + postdata), secret))
func (c *Client) sign(path, nonce, postData string) string {
	inner := sha256.Sum256([]byte(nonce + postData))

	mac := hmac.New(sha512.New, c.apiSecret)
	mac.Write([]byte(path))
	mac.Write(inner[:])

	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// public выполняет публичный GET запрос и разбирает result в out
func (c *Client) public(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return err
	}

	return c.do(req, endpoint, out)
}

// private выполняет подписанный POST запрос и разбирает result в out
func (c *Client) private(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if params == nil {
		params = url.Values{}
	}
	nonce := c.nextNonce()
	params.Set("nonce", nonce)
	postData := params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, strings.NewReader(postData))
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("API-Key", c.apiKey)
	req.Header.Set("API-Sign", c.sign(endpoint, nonce, postData))

	return c.do(req, endpoint, out)
}

// do отправляет запрос, проверяет конверт и разбирает result
func (c *Client) do(req *http.Request, endpoint string, out interface{}) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("kraken %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("kraken %s: read body: %w", endpoint, err)
	}

	c.log.Debug("kraken request",
		utils.String("endpoint", endpoint),
		utils.Int("status", resp.StatusCode),
		utils.Duration("took", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return &APIError{Endpoint: endpoint, Messages: []string{fmt.Sprintf("HTTP %d", resp.StatusCode)}}
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return fmt.Errorf("kraken %s: decode envelope: %w", endpoint, err)
	}

	if len(env.Error) > 0 {
		return &APIError{Endpoint: endpoint, Messages: env.Error}
	}

	if len(env.Result) == 0 {
		return &MissingFieldError{Field: "result"}
	}

	if out != nil {
		if err := json.Unmarshal(env.Result, out); err != nil {
			return fmt.Errorf("kraken %s: decode result: %w", endpoint, err)
		}
	}

	return nil
}
