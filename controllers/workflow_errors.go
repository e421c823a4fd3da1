package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"silab-api/services"
)

type workflowFailure struct {
	status  int
	message string
}

// workflowFailures maps the service error taxonomy to HTTP codes and
// user-facing messages. Anything unmapped is a persistence failure and
// surfaces generically.
var workflowFailures = []struct {
	err     error
	failure workflowFailure
}{
	{services.ErrTransactionNotFound, workflowFailure{http.StatusNotFound, "Transaksi peminjaman tidak ditemukan"}},
	{services.ErrMatrixNotFound, workflowFailure{http.StatusNotFound, "Laboratorium belum memiliki matriks persetujuan aktif"}},
	{services.ErrInvalidApprover, workflowFailure{http.StatusBadRequest, "Penyetuju tidak valid atau perannya tidak sesuai"}},
	{services.ErrApproverNotAssigned, workflowFailure{http.StatusBadRequest, "Penyetuju tidak terdaftar pada laboratorium tersebut"}},
	{services.ErrMatrixCannotActivate, workflowFailure{http.StatusConflict, "Matriks tidak dapat diaktifkan: laboratorium belum memiliki dosen dan laboran"}},
	{services.ErrNotAuthorizedApprover, workflowFailure{http.StatusForbidden, "Anda bukan penyetuju untuk tahap yang sedang berjalan"}},
	{services.ErrDuplicateDecision, workflowFailure{http.StatusConflict, "Anda sudah memberikan keputusan pada transaksi ini"}},
	{services.ErrStepAlreadyDecided, workflowFailure{http.StatusConflict, "Tahap persetujuan ini sudah diputuskan"}},
	{services.ErrInvalidTransition, workflowFailure{http.StatusConflict, "Status transaksi tidak memungkinkan aksi ini"}},
	{services.ErrUnitUnavailable, workflowFailure{http.StatusConflict, "Ada unit alat yang tidak tersedia untuk serah terima"}},
	{services.ErrValidation, workflowFailure{http.StatusBadRequest, "Permintaan tidak valid"}},
}

// respondWorkflowError writes the {ok:false, message} shape for a failed
// mutating action. Unknown errors are logged server-side only.
func respondWorkflowError(c *gin.Context, err error) {
	for _, entry := range workflowFailures {
		if errors.Is(err, entry.err) {
			c.JSON(entry.failure.status, gin.H{
				"ok":      false,
				"message": entry.failure.message,
			})
			return
		}
	}

	log.Printf("workflow operation failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"ok":      false,
		"message": "Terjadi kesalahan pada server",
	})
}
