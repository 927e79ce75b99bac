package web

import (
	"log/slog"
	"net/http"

	"github.com/KotFed0t/exchange_board/internal/externalApi"
	"github.com/KotFed0t/exchange_board/utils"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const internalErrMsg = "Something went wrong"

var errSummaries = map[string]string{
	externalApi.CodeUnreachable:       "Upstream unreachable",
	externalApi.CodeTimeout:           "Upstream timed out",
	externalApi.CodeBadStatus:         "Upstream returned an error status",
	externalApi.CodeMalformed:         "Upstream returned unexpected data",
	externalApi.CodeResourceMissing:   "Local data file not found",
	externalApi.CodeResourceMalformed: "Local data file is unreadable",
}

// ErrorResponse is returned with status 200: dashboards read the body, not the status.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details"`
	Code    string `json:"code"`
}

func newErrorResponse(err error) ErrorResponse {
	code := externalApi.CodeOf(err)
	summary, ok := errSummaries[code]
	if !ok {
		summary = internalErrMsg
	}
	return ErrorResponse{Error: summary, Details: err.Error(), Code: code}
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("got error while encoding response", slog.String("rqID", utils.GetRequestIDFromCtx(r.Context())), slog.String("err", err.Error()))
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	writeJSON(w, r, newErrorResponse(err))
}
