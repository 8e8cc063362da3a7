package api

import (
	"errors"

	"github.com/gin-gonic/gin"
)

var (
	ErrTaskNotFound = errors.New("no digest task with this ID in the queue")
)

func errorResponse(err error) gin.H {
	return gin.H{"error": err.Error()}
}
