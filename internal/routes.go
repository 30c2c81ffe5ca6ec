package internal

import (
	"net/http"

	"vestd/internal/controllers"
	"vestd/internal/providers"
)

func InitRoutes(apiController *controllers.ApiController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Post("/initialize", http.HandlerFunc(apiController.Initialize))
	routers.Post("/migrate", http.HandlerFunc(apiController.Migrate))
	routers.Post("/burn", http.HandlerFunc(apiController.Burn))
	routers.Post("/withdraw", http.HandlerFunc(apiController.Withdraw))
	routers.Post("/owner", http.HandlerFunc(apiController.ChangeOwner))
	routers.Get("/available", http.HandlerFunc(apiController.GetAvailable))
	routers.Get("/state", http.HandlerFunc(apiController.GetState))
	return routers
}
