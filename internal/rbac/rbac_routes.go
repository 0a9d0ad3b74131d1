package rbac

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the permission check. auth must resolve the caller
// before the check runs.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, auth ...gin.HandlerFunc) {
	group := r.Group("/rbac")
	group.Use(auth...)
	{
		group.POST("/enforce", handler.Enforce)
	}
}
