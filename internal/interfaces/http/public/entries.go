package public

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/snhrk2951/illumi-contest-services/api/internal/interfaces/http/common"
	publicapp "github.com/snhrk2951/illumi-contest-services/api/internal/public/application"
)

func (h *Handler) entryCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "認証情報を取得できませんでした"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		entry, err := h.entryCommands.Create(ctx, user.ID)
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "エントリーの作成に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, buildEntryResponse(entry, nil))
	}
}

func (h *Handler) entryMineHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "認証情報を取得できませんでした"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		entry, photos, err := h.entryQueries.Mine(ctx, user.ID)
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "エントリーの取得に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildEntryResponse(entry, photos))
	}
}

func (h *Handler) entryUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "認証情報を取得できませんでした"})
			return
		}

		defer r.Body.Close()

		var req updateEntryRequest
		decoder := json.NewDecoder(io.LimitReader(r.Body, common.MaxEntryRequestBody))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("リクエストの形式が不正です: %v", err),
			})
			return
		}
		if utf8.RuneCountInString(req.Name) > common.MaxEntryNameRunes {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("表示名は%d文字以内で入力してください", common.MaxEntryNameRunes),
			})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		entry, err := h.entryCommands.UpdateDraft(ctx, user.ID, publicapp.UpdateEntryCommand{
			Name:        req.Name,
			AddressText: req.AddressText,
			PlaceKey:    req.PlaceKey,
		})
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "エントリーの更新に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, buildEntryResponse(entry, nil))
	}
}

func (h *Handler) entrySubmitHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "認証情報を取得できませんでした"})
			return
		}

		// 提出処理はジオコーディングの外部呼び出しを含むため、他より長めに待つ。
		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		entry, err := h.entryCommands.Submit(ctx, user.ID)
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "エントリーの提出に失敗しました")
			return
		}

		res := buildEntryResponse(entry, nil)
		// 通知はレスポンスを待たせないよう非同期で送る。
		go h.notifyEntrySubmitted(context.WithoutCancel(r.Context()), user, res)

		common.WriteJSON(h.logger, w, http.StatusOK, res)
	}
}

func (h *Handler) entryPhotoCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "認証情報を取得できませんでした"})
			return
		}

		defer r.Body.Close()

		var req attachPhotoRequest
		decoder := json.NewDecoder(io.LimitReader(r.Body, common.MaxEntryRequestBody))
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{
				"error": fmt.Sprintf("リクエストの形式が不正です: %v", err),
			})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		photo, err := h.entryCommands.AttachPhoto(ctx, user.ID, publicapp.AttachPhotoCommand{
			StoredPath:  req.StoredPath,
			PublicURL:   req.PublicURL,
			ContentType: req.ContentType,
		})
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "写真の登録に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusCreated, photoResponse{
			ID:          photo.ID,
			PublicURL:   photo.PublicURL,
			ContentType: photo.ContentType,
			UploadedAt:  photo.UploadedAt,
		})
	}
}

func (h *Handler) entryWithdrawHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, ok := common.UserFromContext(r.Context())
		if !ok {
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "認証情報を取得できませんでした"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := h.entryCommands.Withdraw(ctx, user.ID); err != nil {
			common.WriteDomainError(h.logger, w, err, "エントリーの取り下げに失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func (h *Handler) entryListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		entries, err := h.entryQueries.ListApproved(ctx)
		if err != nil {
			h.logger.Printf("公開エントリー一覧の取得に失敗: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "エントリー一覧の取得に失敗しました"})
			return
		}

		items := make([]publicEntryResponse, 0, len(entries))
		for _, entry := range entries {
			items = append(items, buildPublicEntryResponse(entry))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, publicEntryListResponse{Items: items})
	}
}
