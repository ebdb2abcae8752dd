package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"shortr/internal/cache"
	"shortr/internal/config"
	"shortr/internal/dtos"
	"shortr/internal/entities"
	"shortr/internal/repositories"
	"shortr/internal/services"
	"shortr/internal/utils"
)

type Handlers struct {
	cfg config.Config

	urlRepo *repositories.URLRepo

	codeSvc  *services.CodeService
	qrSvc    services.QRService
	statsSvc *services.StatsService
	resolver cache.Resolver
}

func NewHandlers(
	cfg config.Config,
	urlRepo *repositories.URLRepo,
	codeSvc *services.CodeService,
	qrSvc services.QRService,
	statsSvc *services.StatsService,
	resolver cache.Resolver,
) *Handlers {
	return &Handlers{
		cfg:      cfg,
		urlRepo:  urlRepo,
		codeSvc:  codeSvc,
		qrSvc:    qrSvc,
		statsSvc: statsSvc,
		resolver: resolver,
	}
}

func (h *Handlers) Redirect(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" || code == "api" || code == "stats" {
		http.NotFound(w, r)
		return
	}

	ip := utils.GetClientIP(r)

	target, err := h.resolver.Resolve(r.Context(), code, ip, time.Now().UTC())
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, target, http.StatusFound)
}

func (h *Handlers) Stats(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	if code == "" {
		http.Error(w, "missing code", http.StatusBadRequest)
		return
	}

	stats, err := h.statsSvc.Stats(r.Context(), code)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, dtos.StatsResponse{
		Clicks:    stats.Clicks,
		UniqueIPs: stats.UniqueIPs,
	}, http.StatusOK)
}

func (h *Handlers) Shorten(w http.ResponseWriter, r *http.Request) {
	var req dtos.ShortenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	longURL := strings.TrimSpace(req.URL)
	if longURL == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}
	if !strings.HasPrefix(longURL, "http://") && !strings.HasPrefix(longURL, "https://") {
		http.Error(w, "url must start with http:// or https://", http.StatusBadRequest)
		return
	}

	code := strings.TrimSpace(req.CustomCode)
	if code != "" {
		if !h.codeSvc.IsValidCustomCode(code) {
			http.Error(w, "custom_code must be 6-16 chars, alphanumeric", http.StatusBadRequest)
			return
		}
		exists, err := h.urlRepo.ExistsCode(r.Context(), code)
		if err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		if exists {
			http.Error(w, "custom_code already in use", http.StatusConflict)
			return
		}
	} else {
		var err error
		code, err = h.codeSvc.GenerateUnique(r.Context())
		if err != nil {
			http.Error(w, "could not generate code", http.StatusInternalServerError)
			return
		}
	}

	u := entities.ShortURL{
		Code:        code,
		OriginalURL: longURL,
		OwnerID:     req.OwnerID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.urlRepo.Create(r.Context(), &u); err != nil {
		// A generated code can still collide with a concurrent insert;
		// regenerate once. Custom codes surface the conflict instead.
		if utils.IsUniqueConstraint(err) && req.CustomCode == "" {
			code2, err2 := h.codeSvc.GenerateUnique(r.Context())
			if err2 == nil {
				u.Code = code2
				if err3 := h.urlRepo.Create(r.Context(), &u); err3 == nil {
					h.writeShortenResponse(w, &u, req.WantQR)
					return
				}
			}
		}
		if utils.IsUniqueConstraint(err) {
			http.Error(w, "custom_code already in use", http.StatusConflict)
			return
		}
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	h.writeShortenResponse(w, &u, req.WantQR)
}

func (h *Handlers) writeShortenResponse(w http.ResponseWriter, u *entities.ShortURL, wantQR bool) {
	resp := dtos.ShortenResponse{
		ShortURL: h.cfg.BaseURL + "/" + u.Code,
		Code:     u.Code,
	}
	if wantQR {
		qr, err := h.qrSvc.MakeBase64(resp.ShortURL, 256)
		if err != nil {
			http.Error(w, "could not generate qr", http.StatusInternalServerError)
			return
		}
		resp.QRBase64 = qr
	}
	utils.WriteJSON(w, resp, http.StatusCreated)
}

func (h *Handlers) ListURLs(w http.ResponseWriter, r *http.Request) {
	rows, err := h.urlRepo.ListWithStats(r.Context())
	if err != nil {
		http.Error(w, "db error", http.StatusInternalServerError)
		return
	}

	out := make([]dtos.URLListItem, 0, len(rows))
	for _, row := range rows {
		out = append(out, dtos.URLListItem{
			Code:           row.Code,
			ShortURL:       h.cfg.BaseURL + "/" + row.Code,
			Original:       row.OriginalURL,
			CreatedAt:      row.CreatedAt,
			Clicks:         row.Clicks,
			UniqueVisitors: row.UniqueVisitors,
		})
	}

	utils.WriteJSON(w, out, http.StatusOK)
}
