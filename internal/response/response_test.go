package response

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyiku/shape-captcha-go/internal/testutil"
)

func TestResponse_Success(t *testing.T) {
	tests := []struct {
		name       string
		data       map[string]interface{}
		wantFields []string
	}{
		{
			name: "正常系: 基本的な成功レスポンス",
			data: map[string]interface{}{
				"challenge_id": "abc123",
				"prompt":       "丸をクリックしてください",
			},
			wantFields: []string{"error", "challenge_id", "prompt"},
		},
		{
			name:       "正常系: 空のデータ",
			data:       map[string]interface{}{},
			wantFields: []string{"error"},
		},
		{
			name: "正常系: ネストしたデータ",
			data: map[string]interface{}{
				"result": map[string]interface{}{
					"success": true,
				},
			},
			wantFields: []string{"error", "result"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := testutil.NewTestContext(http.MethodGet, "/", nil)

			err := Success(tc.Context, tt.data)

			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, tc.Recorder.Code)

			var resp map[string]interface{}
			json.Unmarshal(tc.Recorder.Body.Bytes(), &resp)

			assert.Equal(t, false, resp["error"])
			for _, field := range tt.wantFields {
				assert.Contains(t, resp, field)
			}
		})
	}
}

func TestResponse_Error(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		message    string
		wantStatus int
		wantError  bool
	}{
		{
			name:       "BadRequest",
			statusCode: http.StatusBadRequest,
			message:    "入力が不正です",
			wantStatus: http.StatusBadRequest,
			wantError:  true,
		},
		{
			name:       "ServiceUnavailable",
			statusCode: http.StatusServiceUnavailable,
			message:    "一時的に利用できません",
			wantStatus: http.StatusServiceUnavailable,
			wantError:  true,
		},
		{
			name:       "InternalServerError",
			statusCode: http.StatusInternalServerError,
			message:    "サーバーエラーが発生しました",
			wantStatus: http.StatusInternalServerError,
			wantError:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := testutil.NewTestContext(http.MethodGet, "/", nil)

			err := Error(tc.Context, tt.statusCode, tt.message)

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, tc.Recorder.Code)

			var resp map[string]interface{}
			json.Unmarshal(tc.Recorder.Body.Bytes(), &resp)

			assert.Equal(t, tt.wantError, resp["error"])
			assert.Equal(t, tt.message, resp["message"])
		})
	}
}

func TestResponse_ErrorWithCode(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		code       string
		message    string
		wantCode   string
	}{
		{
			name:       "STORE_UNAVAILABLE",
			statusCode: http.StatusServiceUnavailable,
			code:       "STORE_UNAVAILABLE",
			message:    "チャレンジストアが利用できません",
			wantCode:   "STORE_UNAVAILABLE",
		},
		{
			name:       "GENERATION_FAILED",
			statusCode: http.StatusInternalServerError,
			code:       "GENERATION_FAILED",
			message:    "チャレンジの生成に失敗しました",
			wantCode:   "GENERATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := testutil.NewTestContext(http.MethodGet, "/", nil)

			err := ErrorWithCode(tc.Context, tt.statusCode, tt.code, tt.message)

			require.NoError(t, err)
			assert.Equal(t, tt.statusCode, tc.Recorder.Code)

			var resp map[string]interface{}
			json.Unmarshal(tc.Recorder.Body.Bytes(), &resp)

			assert.Equal(t, true, resp["error"])
			assert.Equal(t, tt.wantCode, resp["code"])
			assert.Equal(t, tt.message, resp["message"])
		})
	}
}

func TestResponse_ContentType(t *testing.T) {
	tc := testutil.NewTestContext(http.MethodGet, "/", nil)

	Success(tc.Context, map[string]interface{}{"test": true})

	contentType := tc.Recorder.Header().Get("Content-Type")
	assert.Contains(t, contentType, "application/json")
}
