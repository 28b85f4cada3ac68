package admin

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	adminapp "github.com/snhrk2951/illumi-contest-services/api/internal/admin/application"
	entrydomain "github.com/snhrk2951/illumi-contest-services/api/internal/entry/domain"
	"github.com/snhrk2951/illumi-contest-services/api/internal/interfaces/http/common"
)

func (h *Handler) entryListHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := adminapp.EntryFilter{}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := entrydomain.ParseStatus(raw)
			if err != nil {
				common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "ステータスの指定が不正です"})
				return
			}
			filter.Status = &status
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		entries, err := h.entryService.List(ctx, filter)
		if err != nil {
			h.logger.Printf("admin entry list fetch failed: %v", err)
			common.WriteJSON(h.logger, w, http.StatusInternalServerError, map[string]string{"error": "エントリー一覧の取得に失敗しました"})
			return
		}

		items := make([]adminEntryResponse, 0, len(entries))
		for _, entry := range entries {
			items = append(items, adminEntryDomainToResponse(entry, nil))
		}
		common.WriteJSON(h.logger, w, http.StatusOK, adminEntryListResponse{Items: items})
	}
}

func (h *Handler) entryDetailHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		if idParam == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "エントリーIDが指定されていません"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		entry, photos, err := h.entryService.Detail(ctx, idParam)
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "エントリーの取得に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, adminEntryDomainToResponse(*entry, photos))
	}
}

func (h *Handler) entryApproveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		if idParam == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "エントリーIDが指定されていません"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		entry, err := h.entryService.Approve(ctx, idParam)
		if err != nil {
			h.logger.Printf("admin entry approve failed id=%s err=%v", idParam, err)
			common.WriteDomainError(h.logger, w, err, "エントリーの承認に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, adminEntryDomainToResponse(*entry, nil))
	}
}

func (h *Handler) entryRejectHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		if idParam == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "エントリーIDが指定されていません"})
			return
		}

		var req rejectEntryRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, common.MaxEntryRequestBody)).Decode(&req); err != nil {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "リクエストの形式が不正です"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		entry, err := h.entryService.Reject(ctx, idParam, req.Reason)
		if err != nil {
			common.WriteDomainError(h.logger, w, err, "エントリーの却下に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, adminEntryDomainToResponse(*entry, nil))
	}
}

func (h *Handler) entryDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idParam := strings.TrimSpace(chi.URLParam(r, "id"))
		if idParam == "" {
			common.WriteJSON(h.logger, w, http.StatusBadRequest, map[string]string{"error": "エントリーIDが指定されていません"})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := h.entryService.Delete(ctx, idParam); err != nil {
			common.WriteDomainError(h.logger, w, err, "エントリーの削除に失敗しました")
			return
		}

		common.WriteJSON(h.logger, w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
