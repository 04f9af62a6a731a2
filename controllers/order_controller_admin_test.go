package controllers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"marketplace/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func refundRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("userId", primitive.NewObjectID().Hex())
		c.Set("role", models.RoleAdmin)
	})
	r.POST("/admin/order/:id/refund", CreateRefund)
	return r
}

func postRefundForm(t *testing.T, r *gin.Engine, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		assert.NoError(t, w.WriteField(k, v))
	}
	assert.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/admin/order/"+primitive.NewObjectID().Hex()+"/refund", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateRefund_RejectsNonNumericAmount(t *testing.T) {
	rec := postRefundForm(t, refundRouter(), map[string]string{
		"amount": "not-a-number",
		"method": "bank",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Amount must be a positive number")
}

func TestCreateRefund_RejectsNonPositiveAmount(t *testing.T) {
	rec := postRefundForm(t, refundRouter(), map[string]string{
		"amount": "-5.00",
		"method": "bank",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Amount must be a positive number")
}

func TestCreateRefund_RequiresMethod(t *testing.T) {
	rec := postRefundForm(t, refundRouter(), map[string]string{
		"amount": "10.00",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Method is required")
}

func TestSaveUpload_FiltersTypeAndSize(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	_, err := saveUpload(c, &multipart.FileHeader{Filename: "shot.gif", Size: 1024}, "refund")
	assert.ErrorContains(t, err, "unsupported file type")

	_, err = saveUpload(c, &multipart.FileHeader{Filename: "shot.png", Size: 6 << 20}, "refund")
	assert.ErrorContains(t, err, "file too large")
}
