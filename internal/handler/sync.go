package handler

import (
	"net/http"

	"github.com/XiaBell/Sprint4-Arquisfot/internal/apierror"
	"github.com/XiaBell/Sprint4-Arquisfot/internal/sync"

	"github.com/gin-gonic/gin"
)

// SyncHandler triggers a full write-store → read-store reconciliation.
type SyncHandler struct{ reconciler *sync.Reconciler }

func NewSyncHandler(reconciler *sync.Reconciler) *SyncHandler {
	return &SyncHandler{reconciler: reconciler}
}

// RunFull POST /v1/sync/full
// Runs synchronously: the caller gets the final report. Safe to invoke at
// any time, including under live traffic.
func (h *SyncHandler) RunFull(c *gin.Context) {
	report, err := h.reconciler.RunFull(c.Request.Context())
	if err != nil {
		// The only fatal cases are an unreachable store or aborted iteration.
		c.JSON(http.StatusServiceUnavailable, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, report)
}
