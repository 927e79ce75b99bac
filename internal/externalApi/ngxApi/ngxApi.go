package ngxApi

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/KotFed0t/exchange_board/config"
	"github.com/KotFed0t/exchange_board/internal/externalApi"
	"github.com/KotFed0t/exchange_board/internal/model/ngxModel"
	"github.com/KotFed0t/exchange_board/utils"
	"github.com/go-resty/resty/v2"
	jsoniter "github.com/json-iterator/go"
)

// numbers stay json.Number so the normalizer decides how to coerce them
var jsonAPI = jsoniter.Config{UseNumber: true}.Froze()

type NgxApi struct {
	client   *resty.Client
	path     string
	pageSize int
}

func New(cfg *config.Config) *NgxApi {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetBaseURL(cfg.API.NgxApi.Url).
		SetHeader("User-Agent", cfg.API.UserAgent)
	return &NgxApi{client: client, path: cfg.API.NgxApi.Path, pageSize: cfg.API.NgxApi.PageSize}
}

func (a *NgxApi) GetEquities(ctx context.Context) ([]ngxModel.RawQuote, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "NgxApi.GetEquities"
	params := map[string]string{
		"market":   "",
		"sector":   "",
		"orderby":  "",
		"pageSize": strconv.Itoa(a.pageSize),
		"pageNo":   "0",
	}

	slog.Debug("GetEquities start", slog.String("rqID", rqID), slog.String("op", op))

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(params).
		Get(a.path)
	if err != nil {
		slog.Error("error while dialing NgxApi", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, externalApi.FailureFromTransport(err)
	}

	if resp.IsError() {
		slog.Error("NgxApi responded with error status", slog.String("rqID", rqID), slog.String("op", op), slog.Int("status", resp.StatusCode()))
		return nil, externalApi.NewFailure(externalApi.CodeBadStatus, fmt.Errorf("unexpected status %s", resp.Status()))
	}

	quotes, err := parseEquities(resp.Body())
	if err != nil {
		slog.Error("can't parse NgxApi response", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, externalApi.NewFailure(externalApi.CodeMalformed, err)
	}

	slog.Debug("GetEquities completed", slog.String("rqID", rqID), slog.String("op", op), slog.Int("quotes", len(quotes)))

	return quotes, nil
}

func parseEquities(body []byte) ([]ngxModel.RawQuote, error) {
	var raw []any
	if err := jsonAPI.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("body is not a json array: %w", err)
	}

	if raw == nil {
		return nil, errors.New("body is json null")
	}

	quotes := make([]ngxModel.RawQuote, 0, len(raw))
	for i, item := range raw {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("element %d is %T, expected object", i, item)
		}
		quotes = append(quotes, ngxModel.RawQuote(obj))
	}

	return quotes, nil
}
