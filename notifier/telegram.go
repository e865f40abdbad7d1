package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	telegramAPI      = "https://api.telegram.org"
	telegramMaxChars = 4096
)

// TelegramNotifier sends messages to a Telegram chat.
type TelegramNotifier struct {
	apiKey     string
	userID     string
	baseURL    string
	httpClient *http.Client
}

// NewTelegramNotifier creates a new notifier for Telegram.
func NewTelegramNotifier(apiKey, userID string) *TelegramNotifier {
	return &TelegramNotifier{
		apiKey:  apiKey,
		userID:  userID,
		baseURL: telegramAPI,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FromEnv returns a TelegramNotifier when both TELEGRAM_BOT_API_KEY and
// TELEGRAM_USER_ID are set, and nil otherwise.
func FromEnv(get func(string) string) Notifier {
	apiKey, userID := get("TELEGRAM_BOT_API_KEY"), get("TELEGRAM_USER_ID")
	if apiKey == "" || userID == "" {
		return nil
	}
	return NewTelegramNotifier(apiKey, userID)
}

// Notify sends message, truncated to Telegram's size limit.
func (t *TelegramNotifier) Notify(ctx context.Context, message string) error {
	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.apiKey)

	message = truncate(message, telegramMaxChars)

	params := url.Values{}
	params.Add("chat_id", t.userID)
	params.Add("text", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, strings.NewReader(params.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API returned non-200 status: %d - %s", resp.StatusCode, string(body))
	}

	var tgResp struct {
		Ok          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tgResp); err != nil {
		return fmt.Errorf("failed to decode telegram response: %w", err)
	}
	if !tgResp.Ok {
		return fmt.Errorf("telegram API indicated failure: %s", tgResp.Description)
	}

	return nil
}

// truncate shortens s to at most limit bytes, ending in "..." and never
// splitting a UTF-8 sequence.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
