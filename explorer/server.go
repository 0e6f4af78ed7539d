package explorer

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Serve exposes the loaded traces over HTTP. It blocks until the server
// stops.
func (e *Explorer) Serve(addr string) error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/summary", e.handleSummary)
	r.GET("/traces", e.handleTraces)
	r.GET("/traces/:id", e.handleTrace)
	return r.Run(addr)
}

func (e *Explorer) handleSummary(c *gin.Context) {
	c.JSON(http.StatusOK, e.Summary())
}

func (e *Explorer) handleTraces(c *gin.Context) {
	c.JSON(http.StatusOK, e.Traces)
}

func (e *Explorer) handleTrace(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "trace id is not a number"})
		return
	}
	if id < 0 || id >= len(e.Traces) {
		c.JSON(http.StatusNotFound, gin.H{"error": "no such trace"})
		return
	}
	c.JSON(http.StatusOK, e.Traces[id])
}
