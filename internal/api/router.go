package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires all routes under /wildlife.
func NewRouter(h *Handler, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.MaxMultipartMemory = maxUploadBytes

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	w := r.Group("/wildlife")
	w.GET("/health", Health("wildlife-api"))

	api := w.Group("/api", NoCache())
	api.POST("/sightings", h.ReportSighting)
	api.GET("/sightings", h.GetSightings)
	api.GET("/sightings/:id", h.GetSighting)
	api.GET("/images/*key", h.GetImage)
	api.POST("/gps", h.ReceiveGPS)
	api.GET("/gps", h.GetGPS)

	// Aliases kept from the deployment where the data API shared the process.
	data := api.Group("/data")
	data.GET("/health", Health("data-api"))
	data.GET("/sightings", h.GetSightings)
	data.GET("/sightings/:id", h.GetSighting)

	return r
}
