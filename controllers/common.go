package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	mysql "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"resto-backend/middleware"
)

// Redis is shared with the cache middleware; admin mutations flush the
// public content cache through it. Nil when Redis is not configured.
var Redis *redis.Client

func flushPublicCache(c *gin.Context) {
	middleware.FlushPublicCache(c.Request.Context(), Redis)
}

func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"error": gin.H{"code": code, "message": message},
	})
}

func respondInternal(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{"code": "error.internal", "message": "internal server error", "details": err.Error()},
	})
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "error.invalidId", "invalid id")
		return 0, false
	}
	return uint(id), true
}

// isDuplicateEntry reports a MySQL unique-key violation (error 1062).
func isDuplicateEntry(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == 1062
}
