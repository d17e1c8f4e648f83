package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders, makeResponseJSON)
	authMiddleware := standardMiddleware.Append(app.JWTMiddleware)

	mux := pat.New()

	// Users
	mux.Post("/user/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/user/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/user/guest", standardMiddleware.ThenFunc(app.userHandler.Guest))

	// Apartments
	mux.Post("/apartment", authMiddleware.ThenFunc(app.apartmentHandler.CreateApartment))
	mux.Post("/apartment/filtered", authMiddleware.ThenFunc(app.apartmentHandler.GetFeed))
	mux.Get("/apartment/summary", authMiddleware.ThenFunc(app.statsHandler.GetSummary))
	mux.Get("/apartment/mine", authMiddleware.ThenFunc(app.apartmentHandler.GetMyApartments))
	mux.Get("/apartment/liked", authMiddleware.ThenFunc(app.apartmentHandler.GetLikedApartments))
	mux.Get("/apartment/:id", authMiddleware.ThenFunc(app.apartmentHandler.GetApartmentByID))
	mux.Put("/apartment/:id", authMiddleware.ThenFunc(app.apartmentHandler.UpdateApartment))
	mux.Del("/apartment/:id", authMiddleware.ThenFunc(app.apartmentHandler.DeleteApartment))
	mux.Post("/apartment/:id/close", authMiddleware.ThenFunc(app.apartmentHandler.CloseApartment))

	// Likes
	mux.Post("/apartment/:id/like", authMiddleware.ThenFunc(app.likeHandler.ToggleLike))

	// Open house
	mux.Post("/apartment/:id/open_house", authMiddleware.ThenFunc(app.openHouseHandler.Register))
	mux.Del("/apartment/:id/open_house", authMiddleware.ThenFunc(app.openHouseHandler.Unregister))

	// Live feed updates
	mux.Get("/ws", standardMiddleware.ThenFunc(app.WebSocketHandler))

	return standardMiddleware.Then(mux)
}
