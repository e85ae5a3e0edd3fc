package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"dancespiele/internal/models"
	"dancespiele/pkg/utils"
)

// tokenTTL - срок жизни токена для почтового сервиса
const tokenTTL = 24 * time.Hour

// MailNotifier шлёт уведомление напрямую в почтовый сервис.
// Запрос подписывается HS256-токеном от имени системы.
type MailNotifier struct {
	baseURL    string
	jwtSecret  []byte
	recipient  string
	httpClient *http.Client
	now        func() time.Time
	log        *utils.Logger
}

// NewMailNotifier создаёт notifier mail-режима
func NewMailNotifier(baseURL, jwtSecret, recipient string, timeout time.Duration, log *utils.Logger) *MailNotifier {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &MailNotifier{
		baseURL:    strings.TrimRight(baseURL, "/"),
		jwtSecret:  []byte(jwtSecret),
		recipient:  recipient,
		httpClient: &http.Client{Timeout: timeout},
		now:        time.Now,
		log:        log.WithComponent("notify"),
	}
}

// systemToken выписывает токен сервисного пользователя
func (n *MailNotifier) systemToken() (string, error) {
	now := n.now()
	claims := jwt.MapClaims{
		"sub":   "SYSTEM",
		"iss":   "system",
		"email": n.recipient,
		"iat":   now.Unix(),
		"exp":   now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(n.jwtSecret)
}

// Send выполняет POST /mail/ с телом письма
func (n *MailNotifier) Send(ctx context.Context, payload models.Notify) error {
	body, err := json.Marshal(WithRecipient(payload, n.recipient))
	if err != nil {
		return fmt.Errorf("encode mail body: %w", err)
	}

	token, err := n.systemToken()
	if err != nil {
		return fmt.Errorf("sign mail token: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/mail/", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mail service returned %d: %s", resp.StatusCode, respBody)
	}

	n.log.Info("mail notification sent", utils.PairField(payload.Pair))
	return nil
}
