package testutil

import (
	"fmt"
	"math"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type recordingT struct {
	errors []string
	failed bool
}

func (r *recordingT) Errorf(format string, args ...interface{}) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingT) FailNow() { r.failed = true }

func (r *recordingT) Helper() {}

func TestPerformRequestFailsOnUnencodableBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/echo", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	rt := &recordingT{}
	PerformRequest(rt, router, http.MethodPost, "/echo", gin.H{"price": math.Inf(1)}, nil)
	assert.True(t, rt.failed)
	if assert.Len(t, rt.errors, 1) {
		assert.Contains(t, rt.errors[0], "encoding request body")
	}

	w := PerformRequest(t, router, http.MethodPost, "/echo", gin.H{"price": 12}, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
