// Package handler provides HTTP handlers for the API.
package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/kyiku/shape-captcha-go/internal/captcha"
	"github.com/kyiku/shape-captcha-go/internal/response"
	"github.com/kyiku/shape-captcha-go/internal/store"
)

// CaptchaServiceInterface defines the challenge engine operations the
// handler needs.
type CaptchaServiceInterface interface {
	Create(ctx context.Context, lang string) (*captcha.Challenge, error)
	Verify(ctx context.Context, id string, x, y float64) (bool, error)
}

// ImagePublisherInterface uploads a challenge image and returns its
// delivery URL.
type ImagePublisherInterface interface {
	UploadChallengeImage(pngData []byte) (string, error)
}

// CaptchaHandler handles CAPTCHA-related requests.
type CaptchaHandler struct {
	service     CaptchaServiceInterface
	publisher   ImagePublisherInterface
	defaultLang string
}

// NewCaptchaHandler creates a new CaptchaHandler.
func NewCaptchaHandler(service CaptchaServiceInterface) *CaptchaHandler {
	return &CaptchaHandler{
		service:     service,
		defaultLang: "en",
	}
}

// SetImagePublisher enables CDN delivery of challenge images. Without a
// publisher the image is inlined as a data URL.
func (h *CaptchaHandler) SetImagePublisher(p ImagePublisherInterface) {
	h.publisher = p
}

// SetDefaultLanguage sets the prompt language used when the request does
// not specify one.
func (h *CaptchaHandler) SetDefaultLanguage(lang string) {
	if lang != "" {
		h.defaultLang = lang
	}
}

// Generate creates a new CAPTCHA challenge.
func (h *CaptchaHandler) Generate(c echo.Context) error {
	lang := h.requestLanguage(c)

	ch, err := h.service.Create(c.Request().Context(), lang)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			return response.ErrorWithCode(c, http.StatusServiceUnavailable,
				"STORE_UNAVAILABLE", "チャレンジストアが利用できません")
		}
		log.Printf("captcha generate failed: %v", err)
		return response.ErrorWithCode(c, http.StatusInternalServerError,
			"GENERATION_FAILED", "CAPTCHA生成に失敗しました")
	}

	data := map[string]interface{}{
		"challenge_id": ch.ID,
		"prompt":       ch.Prompt,
	}

	if h.publisher != nil {
		url, err := h.publisher.UploadChallengeImage(ch.Image)
		if err != nil {
			log.Printf("captcha image upload failed, falling back to inline: %v", err)
		} else {
			data["image_url"] = url
			return response.Success(c, data)
		}
	}

	data["image_data"] = "data:image/png;base64," + base64.StdEncoding.EncodeToString(ch.Image)
	return response.Success(c, data)
}

// VerifyRequest represents the CAPTCHA verification request.
type VerifyRequest struct {
	ChallengeID string   `json:"challenge_id"`
	X           *float64 `json:"x"`
	Y           *float64 `json:"y"`
}

// Verify checks a click against the challenge geometry. The challenge is
// consumed whether or not the click is correct.
func (h *CaptchaHandler) Verify(c echo.Context) error {
	var req VerifyRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "リクエストの解析に失敗しました")
	}
	if req.ChallengeID == "" {
		return response.Error(c, http.StatusBadRequest, "challenge_idが必要です")
	}
	if req.X == nil || req.Y == nil {
		return response.Error(c, http.StatusBadRequest, "クリック座標が必要です")
	}

	ok, err := h.service.Verify(c.Request().Context(), req.ChallengeID, *req.X, *req.Y)
	if err != nil {
		if errors.Is(err, store.ErrUnavailable) {
			return response.ErrorWithCode(c, http.StatusServiceUnavailable,
				"STORE_UNAVAILABLE", "チャレンジストアが利用できません")
		}
		log.Printf("captcha verify failed: %v", err)
		return response.Error(c, http.StatusInternalServerError, "検証に失敗しました")
	}

	data := map[string]interface{}{
		"success": ok,
	}
	if !ok {
		data["message"] = "不正解です。新しいチャレンジを取得してください"
	}
	return response.Success(c, data)
}

// requestLanguage picks the prompt language: explicit lang query parameter
// first, then the first Accept-Language tag, then the configured default.
func (h *CaptchaHandler) requestLanguage(c echo.Context) string {
	if lang := c.QueryParam("lang"); lang != "" {
		return lang
	}
	accept := c.Request().Header.Get("Accept-Language")
	if accept != "" {
		tag := strings.TrimSpace(strings.Split(accept, ",")[0])
		if i := strings.IndexAny(tag, "-;"); i > 0 {
			tag = tag[:i]
		}
		if tag != "" {
			return tag
		}
	}
	return h.defaultLang
}
