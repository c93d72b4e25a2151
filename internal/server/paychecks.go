package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	paydomain "github.com/bancalarisantiago/workfolio/internal/paycheck/domain"
	payservice "github.com/bancalarisantiago/workfolio/internal/paycheck/service"
)

func (s *Server) listPaychecks(c *gin.Context) {
	paychecks, err := s.paychecks.ListPaychecks(c.Request.Context(), c.Param("companyId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, paychecks)
}

func (s *Server) getPaycheck(c *gin.Context) {
	paycheck, err := s.paychecks.GetPaycheckByID(c.Request.Context(), c.Param("companyId"), c.Param("paycheckId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, paycheck)
}

func (s *Server) createPaycheck(c *gin.Context) {
	var paycheck paydomain.Paycheck
	if err := c.ShouldBindJSON(&paycheck); err != nil {
		AbortWithError(c, err)
		return
	}

	created, err := s.paychecks.CreatePaycheck(c.Request.Context(), c.Param("companyId"), paycheck)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) uploadPaycheckFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		AbortWithError(c, err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		AbortWithError(c, err)
		return
	}
	defer file.Close()

	updated, err := s.paycheckFileSvc.UploadFile(c.Request.Context(), c.Param("companyId"), c.Param("paycheckId"), payservice.FileUploadInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		SizeBytes:   fileHeader.Size,
		Content:     file,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) getPaycheckFileURL(c *gin.Context) {
	signed, err := s.paycheckFileSvc.CreateSignedURL(c.Request.Context(), c.Param("companyId"), c.Param("paycheckId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, signed)
}

func (s *Server) deletePaycheckFile(c *gin.Context) {
	updated, err := s.paycheckFileSvc.DeleteFile(c.Request.Context(), c.Param("companyId"), c.Param("paycheckId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
