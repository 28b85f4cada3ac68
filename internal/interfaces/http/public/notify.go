package public

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/snhrk2951/illumi-contest-services/api/internal/interfaces/http/common"
)

// notifyEntrySubmitted は新規提出を運営チャンネルへ通知する。
// 通知の失敗は提出処理の結果に影響させず、ログと failed_notifications に残す。
func (h *Handler) notifyEntrySubmitted(ctx context.Context, user common.AuthenticatedUser, entry entryResponse) {
	if ctx == nil {
		ctx = context.Background()
	}

	dest := strings.TrimSpace(h.messengerDestination)
	if dest == "" {
		return
	}

	message := buildSubmissionMessage(h.adminEntryBaseURL, entry)
	if strings.TrimSpace(message) == "" {
		return
	}

	identifier := strings.TrimSpace(user.ID)
	if identifier == "" {
		identifier = "admin"
	}

	const attempts = 3
	if err := h.sendMessengerWithRetry(ctx, dest, identifier, message, attempts, 200*time.Millisecond); err != nil {
		if h.logger != nil {
			h.logger.Printf("提出通知の送信に失敗: %v", err)
		}
		h.persistNotificationFailure(ctx, identifier, entry, err, attempts)
	}
}

func buildSubmissionMessage(adminBaseURL string, entry entryResponse) string {
	var builder strings.Builder
	builder.WriteString("新しいエントリーの提出があります。\n")
	builder.WriteString(fmt.Sprintf("- 名称: %s\n", entry.Name))
	builder.WriteString(fmt.Sprintf("- 住所: %s\n", entry.AddressText))
	if entry.SubmittedAt != nil {
		builder.WriteString(fmt.Sprintf("- 提出日時: %s\n", entry.SubmittedAt.Format(time.RFC3339)))
	}
	if entry.ID != "" && strings.TrimSpace(adminBaseURL) != "" {
		builder.WriteString(fmt.Sprintf("[管理画面で確認](%s/%s)\n", strings.TrimRight(adminBaseURL, "/"), entry.ID))
	}
	return builder.String()
}

func (h *Handler) sendMessengerWithRetry(ctx context.Context, destination, userID, text string, attempts int, delay time.Duration) error {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return errors.New("destination is empty")
	}
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error
	for i := 0; i < attempts; i++ {
		if err := h.sendMessengerMessage(ctx, destination, userID, text); err == nil {
			return nil
		} else {
			lastErr = err
		}
		if delay > 0 {
			time.Sleep(delay)
		}
	}
	return lastErr
}

func (h *Handler) persistNotificationFailure(ctx context.Context, identifier string, entry entryResponse, sendErr error, attempts int) {
	if h.failedNotifications == nil || sendErr == nil {
		return
	}
	doc := bson.M{
		"target": "admin_notification",
		"payload": bson.M{
			"entryId":     entry.ID,
			"name":        entry.Name,
			"addressText": entry.AddressText,
			"identifier":  identifier,
		},
		"error":       sendErr.Error(),
		"attempts":    attempts,
		"status":      "pending",
		"createdAt":   time.Now().UTC(),
		"lastTriedAt": time.Now().UTC(),
	}
	if _, err := h.failedNotifications.InsertOne(ctx, doc); err != nil && h.logger != nil {
		h.logger.Printf("failed_notifications への保存に失敗: %v", err)
	}
}

func (h *Handler) sendMessengerMessage(ctx context.Context, destination, userID, bodyText string) error {
	trimmedUserID := strings.TrimSpace(userID)
	if trimmedUserID == "" {
		return errors.New("userID is required")
	}

	payload := map[string]any{
		"userId": trimmedUserID,
		"text":   bodyText,
	}
	if dest := strings.TrimSpace(destination); dest != "" {
		payload["destination"] = dest
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("メッセンジャー送信用ペイロードの作成に失敗: %w", err)
	}

	timeout := h.httpClient.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := strings.TrimRight(h.messengerEndpoint, "/") + "/messages"
	req, err := http.NewRequestWithContext(ctxWithTimeout, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("メッセンジャー送信リクエストの作成に失敗: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := h.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("メッセンジャー送信リクエストに失敗: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return fmt.Errorf("メッセンジャー送信でエラーが発生: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}

	return nil
}
