package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const ApiVersion = "v1"

// SetupRouter wires the read-only monitoring API against controller.
// Every route is a GET: the sheet's only writer is the stdin command
// loop.
func SetupRouter(grid *Grid) *gin.Engine {
	controller := NewApiController(grid)
	router := gin.New()

	apiRouterGroup := router.Group("/api/" + ApiVersion)
	apiRouterGroup.GET("/sheet/:cell_id", controller.GetCellAction)
	apiRouterGroup.GET("/sheet", controller.GetSheetAction)

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "health")
	})

	return router
}
