package router

import "github.com/gin-gonic/gin"

// Module registers its routes on the group it is mounted on (/api or the root).
type Module interface {
	Register(rg *gin.RouterGroup)
}
