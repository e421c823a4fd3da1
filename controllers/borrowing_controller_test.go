package controllers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestHandoverBorrowingRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	// A date in the wrong format must fail the request, not silently
	// degrade into "no due date supplied".
	body := strings.NewReader(`{"due_date": "31-08-2026"}`)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/borrowings/1/handover", body)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	HandoverBorrowing(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandoverBorrowingRejectsInvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/borrowings/abc/handover", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	HandoverBorrowing(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}
