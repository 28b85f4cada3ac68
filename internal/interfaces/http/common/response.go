package common

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	entrydomain "github.com/snhrk2951/illumi-contest-services/api/internal/entry/domain"
)

// WriteJSON serializes payload to JSON with status and logs on failure.
func WriteJSON(logger *log.Logger, w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil && logger != nil {
		logger.Printf("JSON エンコードに失敗: %v", err)
	}
}

// WriteDomainError はドメインエラーを HTTP ステータスへ変換して返す。
// 分類できないエラーはログに残し、fallback メッセージで 500 を返す。
func WriteDomainError(logger *log.Logger, w http.ResponseWriter, err error, fallback string) {
	var (
		validationErr *entrydomain.ValidationError
		mismatchErr   *entrydomain.StateMismatchError
		claimedErr    *entrydomain.PlaceClaimedError
		boundsErr     *entrydomain.OutsideBoundsError
		geocodeErr    *entrydomain.GeocodeFailedError
	)

	switch {
	case errors.As(err, &validationErr):
		WriteJSON(logger, w, http.StatusBadRequest, map[string]string{"error": validationErr.Error()})
	case errors.Is(err, entrydomain.ErrNotFound):
		WriteJSON(logger, w, http.StatusNotFound, map[string]string{"error": err.Error()})
	case errors.Is(err, entrydomain.ErrOwnerHasEntry),
		errors.Is(err, entrydomain.ErrEntryNumberTaken),
		errors.As(err, &mismatchErr),
		errors.As(err, &claimedErr):
		WriteJSON(logger, w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.As(err, &boundsErr):
		WriteJSON(logger, w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
	case errors.As(err, &geocodeErr):
		WriteJSON(logger, w, http.StatusBadGateway, map[string]string{"error": err.Error()})
	default:
		if logger != nil {
			logger.Printf("未分類のエラー: %v", err)
		}
		WriteJSON(logger, w, http.StatusInternalServerError, map[string]string{"error": fallback})
	}
}
