package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/KirkDiggler/beertally/internal/models"
	"github.com/KirkDiggler/beertally/internal/services/messaging"
	"github.com/KirkDiggler/beertally/internal/services/tally"
)

// Health reports whether the tally storage is reachable
func (h *Handler) Health(c *gin.Context) {
	if err := h.tallyService.Ping(c.Request.Context()); err != nil {
		h.logger.Warn("Health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// GetSnapshot returns the current tally
func (h *Handler) GetSnapshot(c *gin.Context) {
	output, err := h.tallyService.GetSnapshot(c.Request.Context(), &tally.GetSnapshotInput{})
	if err != nil {
		h.respondError(c, messaging.OperationSnapshot, "", err)
		return
	}

	c.JSON(http.StatusOK, snapshotResponse{Snapshot: output.Snapshot})
}

// LogDrink counts a drink for the participant in the body
func (h *Handler) LogDrink(c *gin.Context) {
	var req logDrinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body."})
		return
	}

	ctx := c.Request.Context()
	output, err := h.tallyService.LogDrink(ctx, &tally.LogDrinkInput{
		Participant: req.Participant,
		Photo:       req.Photo,
	})
	if err != nil {
		h.respondError(c, messaging.OperationLogDrink, tally.NormalizeName(req.Participant), err)
		return
	}

	resp := snapshotResponse{Snapshot: output.Snapshot}
	name := lastActionName(output.Snapshot, tally.NormalizeName(req.Participant))
	msg, err := h.messagingService.GetDrinkMessage(ctx, &messaging.GetDrinkMessageInput{
		Participant: name,
		DailyCount:  output.Snapshot.DailyCounts[name],
		WithPhoto:   output.PhotoID != "",
	})
	if err == nil {
		resp.Title, resp.Message = msg.Title, msg.Message
	}

	c.JSON(http.StatusOK, resp)
}

// Undo reverts the most recent drink
func (h *Handler) Undo(c *gin.Context) {
	ctx := c.Request.Context()
	output, err := h.tallyService.Undo(ctx, &tally.UndoInput{})
	if err != nil {
		h.respondError(c, messaging.OperationUndo, "", err)
		return
	}

	resp := snapshotResponse{Snapshot: output.Snapshot}
	msg, err := h.messagingService.GetUndoMessage(ctx, &messaging.GetUndoMessageInput{
		Participant: output.Participant,
	})
	if err == nil {
		resp.Title, resp.Message = msg.Title, msg.Message
	}

	c.JSON(http.StatusOK, resp)
}

// AddParticipant registers the participant named in the body
func (h *Handler) AddParticipant(c *gin.Context) {
	var req addParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "Invalid request body."})
		return
	}

	ctx := c.Request.Context()
	output, err := h.tallyService.AddParticipant(ctx, &tally.AddParticipantInput{Name: req.Name})
	if err != nil {
		h.respondError(c, messaging.OperationAddParticipant, tally.NormalizeName(req.Name), err)
		return
	}

	resp := snapshotResponse{Snapshot: output.Snapshot}
	msg, err := h.messagingService.GetParticipantMessage(ctx, &messaging.GetParticipantMessageInput{
		Participant: output.Participant,
	})
	if err == nil {
		resp.Title, resp.Message = msg.Title, msg.Message
	}

	c.JSON(http.StatusCreated, resp)
}

// RemoveParticipant deletes the participant named in the path
func (h *Handler) RemoveParticipant(c *gin.Context) {
	name := c.Param("name")

	ctx := c.Request.Context()
	output, err := h.tallyService.RemoveParticipant(ctx, &tally.RemoveParticipantInput{Name: name})
	if err != nil {
		h.respondError(c, messaging.OperationRemoveParticipant, tally.NormalizeName(name), err)
		return
	}

	resp := snapshotResponse{Snapshot: output.Snapshot}
	msg, err := h.messagingService.GetParticipantMessage(ctx, &messaging.GetParticipantMessageInput{
		Participant: output.Participant,
		Removed:     true,
	})
	if err == nil {
		resp.Title, resp.Message = msg.Title, msg.Message
	}

	c.JSON(http.StatusOK, resp)
}

// ResetAll zeroes every count
func (h *Handler) ResetAll(c *gin.Context) {
	ctx := c.Request.Context()
	output, err := h.tallyService.ResetAll(ctx, &tally.ResetAllInput{})
	if err != nil {
		h.respondError(c, messaging.OperationResetAll, "", err)
		return
	}

	h.respondReset(c, output.Snapshot, false)
}

// ResetDaily clears today's counts and photos
func (h *Handler) ResetDaily(c *gin.Context) {
	ctx := c.Request.Context()
	output, err := h.tallyService.ResetDaily(ctx, &tally.ResetDailyInput{})
	if err != nil {
		h.respondError(c, messaging.OperationResetDaily, "", err)
		return
	}

	h.respondReset(c, output.Snapshot, true)
}

// ListPhotos returns today's photos, most recent first
func (h *Handler) ListPhotos(c *gin.Context) {
	output, err := h.tallyService.ListPhotos(c.Request.Context(), &tally.ListPhotosInput{})
	if err != nil {
		h.respondError(c, messaging.OperationListPhotos, "", err)
		return
	}

	photos := output.Photos
	if photos == nil {
		photos = []*models.DrinkPhoto{}
	}

	c.JSON(http.StatusOK, photosResponse{
		Date:   output.Date,
		Photos: photos,
	})
}

func (h *Handler) respondReset(c *gin.Context, snapshot *models.Snapshot, daily bool) {
	resp := snapshotResponse{Snapshot: snapshot}
	msg, err := h.messagingService.GetResetMessage(c.Request.Context(), &messaging.GetResetMessageInput{Daily: daily})
	if err == nil {
		resp.Title, resp.Message = msg.Title, msg.Message
	}

	c.JSON(http.StatusOK, resp)
}

// respondError writes the human-readable failure with a status matching the error
func (h *Handler) respondError(c *gin.Context, op messaging.Operation, participant string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Tally operation failed",
			zap.String("operation", string(op)),
			zap.String("participant", participant),
			zap.Error(err))
	}

	resp := errorResponse{Error: err.Error()}
	msg, msgErr := h.messagingService.GetErrorMessage(c.Request.Context(), &messaging.GetErrorMessageInput{
		Operation:   op,
		Participant: participant,
		Err:         err,
	})
	if msgErr == nil {
		resp.Error, resp.Title = msg.Message, msg.Title
	}

	c.JSON(status, resp)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, tally.ErrInvalidParticipant):
		return http.StatusBadRequest
	case errors.Is(err, tally.ErrDuplicateParticipant), errors.Is(err, tally.ErrNoUndoAvailable):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// lastActionName prefers the stored name, which is normalized
func lastActionName(snapshot *models.Snapshot, fallback string) string {
	if snapshot != nil && snapshot.LastAction != nil {
		return *snapshot.LastAction
	}
	return fallback
}
