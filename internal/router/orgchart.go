package router

import (
	"orgchart/internal/handler"

	"github.com/gin-gonic/gin"
)

type OrgchartRouter struct {
	handler *handler.OrgchartHandler
}

func NewOrgchartRouter(handler *handler.OrgchartHandler) *OrgchartRouter {
	return &OrgchartRouter{handler: handler}
}

func (or *OrgchartRouter) RegisterRoutes(r *gin.Engine) {
	g := r.Group("/orgchart")
	{
		g.GET("", or.handler.FullOrgchart)
		g.GET("/stats", or.handler.Stats)
		g.POST("/rebuild", or.handler.Rebuild)
		g.GET("/related/:userId", or.handler.Related)
		g.GET("/directs/:userId", or.handler.Directs)
		g.GET("/expanded/:userId", or.handler.Expanded)
		g.GET("/trace/:userId", or.handler.Trace)
	}
}
