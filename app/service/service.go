package service

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"magang-portal-backend/app/model"
	"magang-portal-backend/app/repository"
	"magang-portal-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// helper: cek role. Gagal otorisasi dijawab 403 tanpa detail.
func ensureRole(ctx *gin.Context, allowed ...string) bool {
	roleI, _ := ctx.Get("role")
	role, _ := roleI.(string)
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	ctx.JSON(http.StatusForbidden, utils.BuildResponseFailed(""))
	return false
}

// helper: ambil id user login dari context (diisi AuthMiddleware).
func currentUserID(ctx *gin.Context) uuid.UUID {
	idI, _ := ctx.Get("userID")
	id, _ := idI.(uuid.UUID)
	return id
}

// helper: ambil role user login dari context.
func currentRole(ctx *gin.Context) string {
	roleI, _ := ctx.Get("role")
	role, _ := roleI.(string)
	return role
}

// helper: parse path param UUID; jawab 400 jika tidak valid.
func parseIDParam(ctx *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Param(name))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, utils.BuildResponseFailed("ID tidak valid"))
		return uuid.Nil, false
	}
	return id, true
}

// helper: baca query limit/offset untuk daftar berpaginasi. Nilai kosong
// atau tidak valid jatuh ke default per endpoint.
func parseLimitOffset(ctx *gin.Context, defaultLimit int) (int, int) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit <= 0 {
		limit = defaultLimit
	}
	offset, _ := strconv.Atoi(ctx.Query("offset"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// catatAktivitas menulis jejak aktivitas ke MongoDB secara best-effort:
// kegagalan hanya di-log, tidak menggagalkan request yang sudah sukses.
func catatAktivitas(repo repository.ActivityRepository, ctx *gin.Context, action, entity, entityID string, note *string) {
	if repo == nil {
		return
	}
	a := model.Activity{
		ActorID:   currentUserID(ctx),
		ActorRole: currentRole(ctx),
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Note:      note,
		CreatedAt: time.Now(),
	}
	if err := repo.Record(context.Background(), &a); err != nil {
		log.Printf("[ACTIVITY] gagal mencatat %s %s: %v", action, entity, err)
	}
}
