package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Paulagot/quizroom/internal/service"
	"github.com/Paulagot/quizroom/internal/storage"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type setActiveReq struct {
	IsActive bool `json:"isActive"`
}

func registerAdminRoutes(r chi.Router, admin service.AdminService, adminToken string, log *zap.Logger) {
	r.Post("/admin/questions", requireAdminToken(adminToken, func(w http.ResponseWriter, req *http.Request) {
		var in storage.CreateQuestionInput
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			log.Warn("admin create question bad json", zap.Error(err))
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(req.Context(), 5*time.Second)
		defer cancel()

		row, err := admin.CreateQuestion(ctx, in)
		if err != nil {
			log.Warn("admin create question failed", zap.Error(err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		log.Info("question created", zap.String("id", row.ID), zap.String("type", string(row.Type)))
		writeJSON(w, row)
	}))

	r.Get("/admin/questions", requireAdminToken(adminToken, func(w http.ResponseWriter, req *http.Request) {
		includeInactive := req.URL.Query().Get("all") == "1"

		ctx, cancel := context.WithTimeout(req.Context(), 5*time.Second)
		defer cancel()

		rows, err := admin.ListQuestions(ctx, includeInactive)
		if err != nil {
			log.Error("admin list questions failed", zap.Error(err))
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, rows)
	}))

	r.Patch("/admin/questions/{id}", requireAdminToken(adminToken, func(w http.ResponseWriter, req *http.Request) {
		id := chi.URLParam(req, "id")

		var in setActiveReq
		if err := json.NewDecoder(req.Body).Decode(&in); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(req.Context(), 5*time.Second)
		defer cancel()

		row, err := admin.SetQuestionActive(ctx, id, in.IsActive)
		if err != nil {
			log.Warn("admin set question active failed", zap.String("id", id), zap.Error(err))
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		log.Info("question active flag set", zap.String("id", row.ID), zap.Bool("active", row.IsActive))
		writeJSON(w, row)
	}))
}
