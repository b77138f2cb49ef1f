package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fashion-fuel/storefront-api/internal/httpx"
	"github.com/fashion-fuel/storefront-api/internal/notification"
)

func listNotificationsHandler(repo notification.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		out, err := repo.ListByUser(c.Request.Context(), c.GetString("uid"),
			intQuery(c, "limit", 20), intQuery(c, "offset", 0))
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not list notifications")
			return
		}
		if out == nil {
			out = []notification.Notification{}
		}
		httpx.OK(c, http.StatusOK, gin.H{"items": out})
	}
}

func unreadCountHandler(repo notification.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := repo.UnreadCount(c.Request.Context(), c.GetString("uid"))
		if err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not count notifications")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"unread": n})
	}
}

func markNotificationReadHandler(repo notification.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := repo.MarkRead(c.Request.Context(), c.GetString("uid"), c.Param("id"))
		if err != nil {
			if err == notification.ErrNotFound {
				httpx.Fail(c, http.StatusNotFound, "notification not found")
				return
			}
			httpx.Fail(c, http.StatusInternalServerError, "could not mark read")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"read": true})
	}
}

func markAllNotificationsReadHandler(repo notification.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.MarkAllRead(c.Request.Context(), c.GetString("uid")); err != nil {
			httpx.Fail(c, http.StatusInternalServerError, "could not mark read")
			return
		}
		httpx.OK(c, http.StatusOK, gin.H{"read": true})
	}
}
