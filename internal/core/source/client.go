package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"recipe-viewer/internal/core/cache"
	"recipe-viewer/internal/infrastructure/config"
	"recipe-viewer/internal/pkg/common"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	listPath      = "/recipe.json"
	detailPattern = "/%s/recipe.json"

	kindList   = "list"
	kindDetail = "detail"
)

// Client 遠端食譜 JSON 客戶端
type Client struct {
	http  *resty.Client
	cache cache.Store
}

// NewClient 創建食譜來源客戶端；store 可為 nil（不使用快取）
func NewClient(cfg *config.SourceConfig, store cache.Store) *Client {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.Timeout).
		SetHeader("Accept", "application/json").
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(200 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp.StatusCode() >= http.StatusInternalServerError
		})

	return &Client{
		http:  client,
		cache: store,
	}
}

// ListRecipes 取得食譜清單
func (c *Client) ListRecipes(ctx context.Context) ([]common.Recipe, error) {
	var recipes []common.Recipe
	if err := c.get(ctx, kindList, listPath, &recipes); err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe 依 ID 取得食譜詳細資料
func (c *Client) GetRecipe(ctx context.Context, id string) (*common.Recipe, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, common.ErrInvalidRequest.Wrap(errors.New("recipe id is required"))
	}

	var recipe common.Recipe
	if err := c.get(ctx, kindDetail, fmt.Sprintf(detailPattern, url.PathEscape(id)), &recipe); err != nil {
		return nil, err
	}
	if recipe.ID == "" {
		recipe.ID = common.RecipeID(id)
	}
	return &recipe, nil
}

// get 讀取快取或遠端資料並解析到 v；只有解析成功的內容才會寫入快取
func (c *Client) get(ctx context.Context, kind, path string, v interface{}) error {
	if c.cache != nil {
		if data, err := c.cache.Get(ctx, path); err == nil {
			if _, err := common.ParseJSONLenient(data, v); err == nil {
				sourceCacheHits.Inc()
				return nil
			}
			common.LogWarn("快取內容無法解析，改為重新取得", zap.String("path", path))
		} else if !errors.Is(err, cache.ErrMiss) {
			common.LogWarn("讀取快取失敗", zap.String("path", path), zap.Error(err))
		}
	}

	body, err := c.fetch(ctx, kind, path)
	if err != nil {
		return err
	}

	repaired, err := common.ParseJSONLenient(body, v)
	if err != nil {
		common.LogError("Failed to decode recipe payload",
			zap.String("path", path),
			zap.Int("body_length", len(body)),
			zap.Error(err),
		)
		return common.ErrUpstreamInvalid.Wrap(err)
	}
	if repaired {
		sourceRepairedPayloads.Inc()
		common.LogWarn("Recipe payload repaired before decoding", zap.String("path", path))
	}

	if c.cache != nil {
		if err := c.cache.Set(ctx, path, body); err != nil {
			common.LogWarn("寫入快取失敗", zap.String("path", path), zap.Error(err))
		}
	}

	return nil
}

// fetch 發送請求並將狀態碼對應為領域錯誤
func (c *Client) fetch(ctx context.Context, kind, path string) ([]byte, error) {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		Get(path)
	duration := time.Since(start)
	upstreamRequestDuration.WithLabelValues(kind).Observe(duration.Seconds())

	if err != nil {
		upstreamRequestsTotal.WithLabelValues(kind, "error").Inc()
		common.LogUpstreamCall(path, 0, duration, err)
		if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
			return nil, common.ErrGatewayTimeout.Wrap(err)
		}
		return nil, common.ErrUpstreamUnavailable.Wrap(err)
	}

	status := resp.StatusCode()
	upstreamRequestsTotal.WithLabelValues(kind, strconv.Itoa(status)).Inc()

	switch {
	case status == http.StatusNotFound && kind == kindDetail:
		err := fmt.Errorf("recipe source returned %d for %s", status, path)
		common.LogUpstreamCall(path, status, duration, err)
		return nil, common.ErrRecipeNotFound.Wrap(err)
	case status < 200 || status >= 300:
		err := fmt.Errorf("recipe source returned %d for %s", status, path)
		common.LogUpstreamCall(path, status, duration, err)
		return nil, common.ErrUpstreamUnavailable.Wrap(err)
	}

	common.LogUpstreamCall(path, status, duration, nil)
	return resp.Body(), nil
}
