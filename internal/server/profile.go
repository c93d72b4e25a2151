package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userdomain "github.com/bancalarisantiago/workfolio/internal/user/domain"
	userservice "github.com/bancalarisantiago/workfolio/internal/user/service"
)

func (s *Server) getMyProfile(c *gin.Context) {
	profile, err := s.users.GetUserProfileByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) updateMyProfile(c *gin.Context) {
	var patch userdomain.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		AbortWithError(c, err)
		return
	}

	profile, err := s.users.UpdateUserProfile(c.Request.Context(), currentUserID(c), patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) getMyPreferences(c *gin.Context) {
	prefs, err := s.users.GetUserPreferences(c.Request.Context(), currentUserID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (s *Server) updateMyPreferences(c *gin.Context) {
	var patch userdomain.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		AbortWithError(c, err)
		return
	}

	prefs, err := s.users.UpdateUserPreferences(c.Request.Context(), currentUserID(c), patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (s *Server) uploadMyAvatar(c *gin.Context) {
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

	profile, err := s.avatarSvc.UploadAvatar(c.Request.Context(), currentUserID(c), userservice.AvatarUploadInput{
		FileName:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     file,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) getMyAvatarURL(c *gin.Context) {
	signed, err := s.avatarSvc.CreateAvatarSignedURL(c.Request.Context(), currentUserID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, signed)
}

func (s *Server) deleteMyAvatar(c *gin.Context) {
	profile, err := s.avatarSvc.DeleteAvatar(c.Request.Context(), currentUserID(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
