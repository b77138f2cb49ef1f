// Package httpx holds gin middleware and the JSON response envelope shared by
// every handler: {"success":true,"data":...} or {"success":false,"error":"..."}.
package httpx

import "github.com/gin-gonic/gin"

func OK(c *gin.Context, code int, data any) {
	c.JSON(code, gin.H{"success": true, "data": data})
}

func Fail(c *gin.Context, code int, msg string) {
	c.JSON(code, gin.H{"success": false, "error": msg})
}
