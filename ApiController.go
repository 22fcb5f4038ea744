package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ApiController is the read-only monitoring surface: unlike the stdin
// command language it can never mutate a cell, so it carries no
// SetCellAction/SubscribeAction counterpart.
type ApiController struct {
	Grid *Grid
}

type CellEndpointParams struct {
	CellId string `uri:"cell_id" binding:"required"`
}

func NewApiController(grid *Grid) *ApiController {
	return &ApiController{Grid: grid}
}

// GetCellAction returns one cell's snapshot, 404 if the name doesn't
// decode or falls outside the grid.
func (api *ApiController) GetCellAction(c *gin.Context) {
	params := CellEndpointParams{}
	if err := c.ShouldBindUri(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coord, ok := NameToCoord(params.CellId)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "cell not found"})
		return
	}

	snap, ok := api.Grid.Snapshot(coord)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "cell not found"})
		return
	}

	c.JSON(http.StatusOK, snap)
}

// GetSheetAction returns every cell that has ever been assigned a
// formula.
func (api *ApiController) GetSheetAction(c *gin.Context) {
	c.JSON(http.StatusOK, api.Grid.SnapshotAll())
}
