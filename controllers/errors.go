package controllers

import (
	"errors"
	"net/http"

	"github.com/bingolive/bingo-backend/game"
	"github.com/bingolive/bingo-backend/services"
	"github.com/bingolive/bingo-backend/store"
	"github.com/bingolive/bingo-backend/utils/logger"
	"github.com/gin-gonic/gin"
)

// respondError maps engine errors onto HTTP statuses. Validation
// failures are 400, state conflicts 409, unknown records 404; anything
// else is treated as an internal failure and not leaked to the client.
func respondError(c *gin.Context, err error) {
	var incomplete *game.IncompleteError
	switch {
	case errors.As(err, &incomplete):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     incomplete.Error(),
			"remaining": incomplete.Remaining,
		})
	case errors.Is(err, game.ErrFreeCell),
		errors.Is(err, game.ErrNotDrawn),
		errors.Is(err, game.ErrUnverifiedMark),
		errors.Is(err, game.ErrIncompleteCard):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, game.ErrStaleRound),
		errors.Is(err, game.ErrExhaustedPool),
		errors.Is(err, game.ErrLedgerFrozen),
		errors.Is(err, services.ErrAlreadyJoined),
		errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		logger.Errorf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
