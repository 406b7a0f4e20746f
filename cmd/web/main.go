// @title           Zipbang Listing API
// @version         1.0
// @description     Listing search and back-office API (Swagger docs).
// @host            localhost:4000
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"zipbang_backend/internal/app"

	_ "zipbang_backend/docs"
)

func main() {
	app.Run()
}
