package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"silab-api/services"
)

func respondTo(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondWorkflowError(c, err)
	return w
}

func TestRespondWorkflowErrorMapsSentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{services.ErrTransactionNotFound, http.StatusNotFound},
		{services.ErrMatrixNotFound, http.StatusNotFound},
		{services.ErrInvalidApprover, http.StatusBadRequest},
		{services.ErrApproverNotAssigned, http.StatusBadRequest},
		{services.ErrMatrixCannotActivate, http.StatusConflict},
		{services.ErrNotAuthorizedApprover, http.StatusForbidden},
		{services.ErrDuplicateDecision, http.StatusConflict},
		{services.ErrStepAlreadyDecided, http.StatusConflict},
		{services.ErrInvalidTransition, http.StatusConflict},
		{services.ErrUnitUnavailable, http.StatusConflict},
		{services.ErrValidation, http.StatusBadRequest},
	}
	for _, tc := range cases {
		if w := respondTo(t, tc.err); w.Code != tc.status {
			t.Errorf("%v: status = %d, want %d", tc.err, w.Code, tc.status)
		}
	}
}

func TestRespondWorkflowErrorMatchesWrappedSentinels(t *testing.T) {
	err := fmt.Errorf("%w: unit 5", services.ErrUnitUnavailable)
	if w := respondTo(t, err); w.Code != http.StatusConflict {
		t.Fatalf("wrapped sentinel: status = %d, want %d", w.Code, http.StatusConflict)
	}
}

func TestRespondWorkflowErrorUnknownIsGeneric(t *testing.T) {
	if w := respondTo(t, errors.New("driver: bad connection")); w.Code != http.StatusInternalServerError {
		t.Fatalf("unknown error: status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
}
