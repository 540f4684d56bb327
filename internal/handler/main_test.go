package handler

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/monikajha100/prime-admin-gateway/internal/dto"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	dto.RegisterValidations()
	os.Exit(m.Run())
}
