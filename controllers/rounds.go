package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bingolive/bingo-backend/game"
	"github.com/bingolive/bingo-backend/models"
	"github.com/bingolive/bingo-backend/services"
	"github.com/gin-gonic/gin"
)

type RoundController struct {
	rounds *services.RoundService
	drawer *services.AutoDrawer
}

func NewRoundController(rounds *services.RoundService, drawer *services.AutoDrawer) *RoundController {
	return &RoundController{rounds: rounds, drawer: drawer}
}

// Create opens a new round, finishing any active one first.
func (rc *RoundController) Create(c *gin.Context) {
	round, err := rc.rounds.Create(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, round)
}

// Active returns the current active round, 404 when there is none.
func (rc *RoundController) Active(c *gin.Context) {
	round, err := rc.rounds.Active(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if round == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no active round"})
		return
	}
	c.JSON(http.StatusOK, round)
}

// List returns rounds, optionally restricted to ?ids=1,2,3.
func (rc *RoundController) List(c *gin.Context) {
	var ids []uint
	if raw := c.Query("ids"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ids parameter"})
				return
			}
			ids = append(ids, uint(id))
		}
	}
	rounds, err := rc.rounds.List(c.Request.Context(), ids)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rounds)
}

// Draw draws the next number for a round.
func (rc *RoundController) Draw(c *gin.Context) {
	roundID, ok := paramID(c, "id")
	if !ok {
		return
	}
	num, err := rc.rounds.DrawNext(c.Request.Context(), roundID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"number": num, "column": game.ColumnLetter(num)})
}

// StartAutoDraw launches the repeating draw loop for a round.
func (rc *RoundController) StartAutoDraw(c *gin.Context) {
	roundID, ok := paramID(c, "id")
	if !ok {
		return
	}
	round, err := rc.rounds.Get(c.Request.Context(), roundID)
	if err != nil {
		respondError(c, err)
		return
	}
	if round.Status != models.RoundActive {
		respondError(c, game.ErrStaleRound)
		return
	}
	if !rc.drawer.Start(round.ID) {
		c.JSON(http.StatusConflict, gin.H{"error": "auto-draw already running"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"auto_drawing": true})
}

// StopAutoDraw cancels the draw loop. Committed draws stay committed.
func (rc *RoundController) StopAutoDraw(c *gin.Context) {
	roundID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if !rc.drawer.Stop(roundID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "auto-draw not running"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"auto_drawing": false})
}

// Finish ends an active round.
func (rc *RoundController) Finish(c *gin.Context) {
	roundID, ok := paramID(c, "id")
	if !ok {
		return
	}
	rc.drawer.Stop(roundID)
	if err := rc.rounds.Finish(c.Request.Context(), roundID); err != nil {
		respondError(c, err)
		return
	}
	round, err := rc.rounds.Get(c.Request.Context(), roundID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, round)
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
