package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	docdomain "github.com/bancalarisantiago/workfolio/internal/document/domain"
	docservice "github.com/bancalarisantiago/workfolio/internal/document/service"
)

func (s *Server) listDocuments(c *gin.Context) {
	docs, err := s.documents.ListDocuments(c.Request.Context(), c.Param("companyId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

func (s *Server) getDocument(c *gin.Context) {
	doc, err := s.documents.GetDocumentByID(c.Request.Context(), c.Param("companyId"), c.Param("documentId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (s *Server) createDocument(c *gin.Context) {
	var doc docdomain.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		AbortWithError(c, err)
		return
	}

	created, err := s.documents.CreateDocument(c.Request.Context(), c.Param("companyId"), doc)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) uploadDocumentFile(c *gin.Context) {
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

	created, err := s.documentFileSvc.UploadFile(c.Request.Context(), c.Param("companyId"), c.Param("documentId"), docservice.FileUploadInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		SizeBytes:   fileHeader.Size,
		UploadedBy:  currentUserID(c),
		Content:     file,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) getDocumentFileURL(c *gin.Context) {
	signed, err := s.documentFileSvc.CreateFileSignedURL(c.Request.Context(), c.Param("companyId"), c.Param("fileId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, signed)
}

func (s *Server) deleteDocumentFile(c *gin.Context) {
	if err := s.documentFileSvc.DeleteFileWithAsset(c.Request.Context(), c.Param("companyId"), c.Param("fileId")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
