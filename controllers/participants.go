package controllers

import (
	"net/http"

	"github.com/bingolive/bingo-backend/services"
	"github.com/bingolive/bingo-backend/store"
	"github.com/gin-gonic/gin"
)

type ParticipantController struct {
	participants *services.ParticipantService
}

func NewParticipantController(participants *services.ParticipantService) *ParticipantController {
	return &ParticipantController{participants: participants}
}

// Join enters the current user into a round; the card is generated
// server side, exactly once.
func (pc *ParticipantController) Join(c *gin.Context) {
	roundID, ok := paramID(c, "id")
	if !ok {
		return
	}
	participant, err := pc.participants.Join(c.Request.Context(), roundID, currentProfile(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, participant)
}

// ListByRound lists a round's participants. ?winners=true restricts to
// confirmed bingos ordered by claim time, the winner board.
func (pc *ParticipantController) ListByRound(c *gin.Context) {
	roundID, ok := paramID(c, "id")
	if !ok {
		return
	}
	filter := store.ParticipantFilter{Order: store.OrderByJoined}
	if c.Query("winners") == "true" {
		filter.WinnersOnly = true
		filter.Order = store.OrderByClaimed
	}
	participants, err := pc.participants.List(c.Request.Context(), roundID, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participants)
}

// ListByUser returns the current user's cards across rounds, newest
// first.
func (pc *ParticipantController) ListByUser(c *gin.Context) {
	participants, err := pc.participants.ListByUser(c.Request.Context(), currentProfile(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participants)
}

// Number is unvalidated here so a 0 (FREE cell) reaches the engine and
// gets its proper rejection.
type toggleMarkRequest struct {
	Number int `json:"number"`
}

// ToggleMark flips one drawn number in the caller's mark ledger.
func (pc *ParticipantController) ToggleMark(c *gin.Context) {
	participantID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req toggleMarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	participant, err := pc.participants.ToggleMark(c.Request.Context(), participantID, req.Number)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participant)
}

// Claim verifies a bingo claim against the authoritative draw history.
func (pc *ParticipantController) Claim(c *gin.Context) {
	participantID, ok := paramID(c, "id")
	if !ok {
		return
	}
	participant, err := pc.participants.ClaimBingo(c.Request.Context(), participantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, participant)
}

// Remove deletes a participant and their card. Admin only.
func (pc *ParticipantController) Remove(c *gin.Context) {
	participantID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := pc.participants.Remove(c.Request.Context(), participantID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
