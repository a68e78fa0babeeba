package response

import "net/http"

type SuccessEnvelope struct {
	Success   bool   `json:"success"`
	Data      any    `json:"data,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

func (h *responseHandler) WriteSuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	writeJSON(w, r, status, SuccessEnvelope{
		Success:   true,
		Data:      data,
		RequestID: requestID(r),
	})
}
