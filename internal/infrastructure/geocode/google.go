// Package geocode はジオコーディング API のクライアント実装を提供する。
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	entrydomain "github.com/snhrk2951/illumi-contest-services/api/internal/entry/domain"
)

const defaultGeocodeTimeout = 5 * time.Second

// GoogleClient は Google Geocoding API 互換のエンドポイントへ住所を問い合わせる。
// 座標が得られない場合は必ずエラーを返し、ゼロ値の座標を返すことはない。
type GoogleClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewGoogleClient は GoogleClient を生成する。timeout が 0 以下の場合は既定値を使う。
func NewGoogleClient(endpoint, apiKey string, timeout time.Duration) *GoogleClient {
	if timeout <= 0 {
		timeout = defaultGeocodeTimeout
	}
	return &GoogleClient{
		endpoint:   strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		apiKey:     strings.TrimSpace(apiKey),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type geocodeResponse struct {
	Status       string          `json:"status"`
	ErrorMessage string          `json:"error_message"`
	Results      []geocodeResult `json:"results"`
}

type geocodeResult struct {
	PlaceID  string `json:"place_id"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
}

// Resolve は住所文字列を座標に解決する。
func (c *GoogleClient) Resolve(ctx context.Context, addressText string) (entrydomain.Coordinates, error) {
	addressText = strings.TrimSpace(addressText)
	if addressText == "" {
		return entrydomain.Coordinates{}, errors.New("住所が指定されていません")
	}
	if c.endpoint == "" {
		return entrydomain.Coordinates{}, errors.New("ジオコーダーのエンドポイントが設定されていません")
	}
	if c.apiKey == "" {
		return entrydomain.Coordinates{}, errors.New("ジオコーダーの API キーが設定されていません")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	query := url.Values{}
	query.Set("address", addressText)
	query.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return entrydomain.Coordinates{}, fmt.Errorf("ジオコーディングリクエストの作成に失敗: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return entrydomain.Coordinates{}, fmt.Errorf("ジオコーディングリクエストに失敗: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 400 {
		message, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
		return entrydomain.Coordinates{}, fmt.Errorf("ジオコーディングでエラーが発生: status=%d body=%s", res.StatusCode, strings.TrimSpace(string(message)))
	}

	var payload geocodeResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return entrydomain.Coordinates{}, fmt.Errorf("ジオコーディング応答の読み取りに失敗: %w", err)
	}

	switch payload.Status {
	case "OK":
	case "ZERO_RESULTS":
		return entrydomain.Coordinates{}, errors.New("住所に一致する座標が見つかりません")
	default:
		if payload.ErrorMessage != "" {
			return entrydomain.Coordinates{}, fmt.Errorf("ジオコーディングに失敗: status=%s message=%s", payload.Status, payload.ErrorMessage)
		}
		return entrydomain.Coordinates{}, fmt.Errorf("ジオコーディングに失敗: status=%s", payload.Status)
	}
	if len(payload.Results) == 0 {
		return entrydomain.Coordinates{}, errors.New("住所に一致する座標が見つかりません")
	}

	location := payload.Results[0].Geometry.Location
	return entrydomain.Coordinates{Lat: location.Lat, Lng: location.Lng}, nil
}
