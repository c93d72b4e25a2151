package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s *Server) getMyDocuments(c *gin.Context) {
	view := s.employeeDocs.Refresh(c.Request.Context(), currentUserID(c))
	c.JSON(http.StatusOK, view)
}

func (s *Server) downloadMyDocument(c *gin.Context) {
	signed, err := s.employeeDocs.Download(c.Request.Context(), currentUserID(c), c.Param("documentId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, signed)
}

func (s *Server) getMyPaychecks(c *gin.Context) {
	view := s.employeePaychecks.Refresh(c.Request.Context(), currentUserID(c))
	c.JSON(http.StatusOK, view)
}

func (s *Server) downloadMyPaycheck(c *gin.Context) {
	signed, err := s.employeePaychecks.Download(c.Request.Context(), currentUserID(c), c.Param("paycheckId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, signed)
}
