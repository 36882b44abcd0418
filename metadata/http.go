package metadata

import (
	"github.com/cdfmlr/crud/router"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the catalog CRUDs on r.
func RegisterRoutes(r gin.IRouter) {
	// basic CRUDs
	router.Crud[SongRow](r, "/songs")
}
