package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	companydomain "github.com/bancalarisantiago/workfolio/internal/company/domain"
)

func (s *Server) getCompany(c *gin.Context) {
	company, err := s.companies.GetCompanyByID(c.Request.Context(), c.Param("companyId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (s *Server) updateCompany(c *gin.Context) {
	var patch companydomain.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		AbortWithError(c, err)
		return
	}

	company, err := s.companies.UpdateCompany(c.Request.Context(), c.Param("companyId"), patch)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (s *Server) listMembers(c *gin.Context) {
	members, err := s.companies.ListMembers(c.Request.Context(), c.Param("companyId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, members)
}

func (s *Server) listAuditLogs(c *gin.Context) {
	logs, err := s.companies.ListAuditLogs(c.Request.Context(), c.Param("companyId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (s *Server) listEvents(c *gin.Context) {
	events, err := s.events.ListEvents(c.Request.Context(), c.Param("companyId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}

func (s *Server) listEventAttendees(c *gin.Context) {
	attendees, err := s.events.GetEventAttendees(c.Request.Context(), c.Param("companyId"), c.Param("eventId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, attendees)
}

func (s *Server) listHolidays(c *gin.Context) {
	holidays, err := s.events.ListHolidays(c.Request.Context(), c.Param("companyId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, holidays)
}

func (s *Server) listNotifications(c *gin.Context) {
	notifications, err := s.notifications.ListNotifications(c.Request.Context(), c.Param("companyId"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}
