package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createClientRequest struct {
	Name  string `json:"name" binding:"required,max=10"`
	Slug  string `json:"slug" binding:"omitempty,slug"`
	Email string `json:"email" binding:"omitempty,email"`
}

func validationRouter() *gin.Engine {
	SetupValidator()
	router := gin.New()
	router.POST("/clients", func(c *gin.Context) {
		var req createClientRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.Status(http.StatusCreated)
	})
	return router
}

func TestValidation_Details(t *testing.T) {
	router := validationRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/clients",
		strings.NewReader(`{"name":"far too long a name","slug":"Not A Slug","email":"nope"}`)))

	require.Equal(t, http.StatusBadRequest, w.Code)
	info := decodeError(t, w)
	assert.Equal(t, "ERR_VALIDATION", info.Code)

	byField := map[string]string{}
	for _, d := range info.Details {
		byField[d.Field] = d.Message
	}
	assert.Equal(t, "Must be at most 10 characters", byField["name"])
	assert.Contains(t, byField["slug"], "lowercase")
	assert.Equal(t, "Invalid email format", byField["email"])
}

func TestValidation_ValidSlug(t *testing.T) {
	router := validationRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/clients",
		strings.NewReader(`{"name":"Acme","slug":"acme-2024"}`)))
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestValidation_MalformedJSON(t *testing.T) {
	router := validationRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/clients", strings.NewReader(`{"name":`)))

	require.Equal(t, http.StatusBadRequest, w.Code)
	info := decodeError(t, w)
	assert.Empty(t, info.Details)
	assert.Contains(t, info.Message, "Invalid request body")
}
