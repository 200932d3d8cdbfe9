package routes

import (
	"github.com/bingolive/bingo-backend/controllers"
	"github.com/bingolive/bingo-backend/store"
	"github.com/gin-gonic/gin"
)

// SetupRoutes wires the REST API. Reads are poll endpoints; writes go
// through the engine services. Operator routes sit behind the admin
// gate.
func SetupRoutes(
	r *gin.Engine,
	st store.Store,
	rounds *controllers.RoundController,
	participants *controllers.ParticipantController,
	profiles *controllers.ProfileController,
) {
	api := r.Group("/api")

	// ----------------------
	// Profile routes
	// ----------------------
	api.POST("/profiles", profiles.Register)
	api.GET("/profiles/:id", profiles.Get)
	api.PATCH("/profiles/:id", profiles.Update)

	// ----------------------
	// Round routes (reads are public poll targets)
	// ----------------------
	api.GET("/rounds", rounds.List)
	api.GET("/rounds/active", rounds.Active)
	api.GET("/rounds/:id/participants", participants.ListByRound)

	// ----------------------
	// Participant routes (current user)
	// ----------------------
	user := api.Group("", controllers.CurrentUser(st))
	user.POST("/rounds/:id/participants", participants.Join)
	user.GET("/me/participants", participants.ListByUser)
	user.POST("/participants/:id/marks", participants.ToggleMark)
	user.POST("/participants/:id/claim", participants.Claim)

	// ----------------------
	// Operator routes
	// ----------------------
	admin := api.Group("", controllers.CurrentUser(st), controllers.AdminRequired())
	admin.POST("/rounds", rounds.Create)
	admin.POST("/rounds/:id/draw", rounds.Draw)
	admin.POST("/rounds/:id/autodraw", rounds.StartAutoDraw)
	admin.DELETE("/rounds/:id/autodraw", rounds.StopAutoDraw)
	admin.POST("/rounds/:id/finish", rounds.Finish)
	admin.DELETE("/participants/:id", participants.Remove)
}
