package ngxApi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KotFed0t/exchange_board/config"
	"github.com/KotFed0t/exchange_board/internal/externalApi"
)

func newTestApi(url string, timeout time.Duration) *NgxApi {
	cfg := &config.Config{}
	cfg.API.Timeout = timeout
	cfg.API.UserAgent = "test"
	cfg.API.NgxApi = config.NgxApi{Url: url, Path: "/REST/api/statistics/equities/", PageSize: 300}
	return New(cfg)
}

func TestGetEquities_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/REST/api/statistics/equities/" {
			t.Errorf("path = %v", r.URL.Path)
		}
		if got := r.URL.Query().Get("pageSize"); got != "300" {
			t.Errorf("pageSize = %v, want 300", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"Symbol":"NGX001","OpeningPrice":100,"Change":5,"Volume":1200},
			{"Symbol":"ZENITH","OpeningPrice":"35.5","Change":null}
		]`))
	}))
	defer srv.Close()

	quotes, err := newTestApi(srv.URL, time.Second).GetEquities(context.Background())
	if err != nil {
		t.Fatalf("GetEquities() error = %v", err)
	}
	if len(quotes) != 2 {
		t.Fatalf("len(quotes) = %d, want 2", len(quotes))
	}
	if quotes[0]["Symbol"] != "NGX001" || quotes[1]["Symbol"] != "ZENITH" {
		t.Errorf("order not preserved: %v", quotes)
	}
	if _, ok := quotes[0]["OpeningPrice"].(json.Number); !ok {
		t.Errorf("OpeningPrice is %T, want json.Number", quotes[0]["OpeningPrice"])
	}
}

func TestGetEquities_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		want    string
	}{
		{
			name: "bad status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			},
			want: externalApi.CodeBadStatus,
		},
		{
			name: "not an array",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"message":"maintenance"}`))
			},
			want: externalApi.CodeMalformed,
		},
		{
			name: "array of scalars",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[1,2,3]`))
			},
			want: externalApi.CodeMalformed,
		},
		{
			name: "timeout",
			handler: func(w http.ResponseWriter, r *http.Request) {
				select {
				case <-time.After(2 * time.Second):
				case <-r.Context().Done():
				}
			},
			want: externalApi.CodeTimeout,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			_, err := newTestApi(srv.URL, 100*time.Millisecond).GetEquities(context.Background())
			var f *externalApi.Failure
			if !errors.As(err, &f) {
				t.Fatalf("GetEquities() error = %v, want *externalApi.Failure", err)
			}
			if f.Code != tt.want {
				t.Errorf("Failure.Code = %v, want %v", f.Code, tt.want)
			}
		})
	}
}

func TestGetEquities_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := newTestApi(url, time.Second).GetEquities(context.Background())
	if got := externalApi.CodeOf(err); got != externalApi.CodeUnreachable {
		t.Errorf("CodeOf() = %v, want %v", got, externalApi.CodeUnreachable)
	}
}
