package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kyiku/shape-captcha-go/internal/testutil"
)

func TestS3Client_UploadChallengeImage(t *testing.T) {
	tests := []struct {
		name       string
		setupMock  func(*testutil.MockS3Client)
		wantErr    bool
		wantURLPre string
	}{
		{
			name: "正常系: チャレンジ画像アップロード",
			setupMock: func(m *testutil.MockS3Client) {
				// アップロード成功
			},
			wantErr:    false,
			wantURLPre: "https://test.cloudfront.net/captcha/",
		},
		{
			name: "異常系: アップロード失敗",
			setupMock: func(m *testutil.MockS3Client) {
				m.PutErr = errors.New("access denied")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockS3 := testutil.NewMockS3Client()
			tt.setupMock(mockS3)

			client := NewS3Client(mockS3, "test-bucket", "https://test.cloudfront.net")

			url, err := client.UploadChallengeImage(testutil.CreateTestPNG(400, 250))

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Contains(t, url, tt.wantURLPre)
			assert.Contains(t, url, ".png")

			// アップロードされたデータが存在することを確認
			assert.Greater(t, len(mockS3.UploadedData), 0, "画像データがアップロードされているべき")
		})
	}
}

func TestS3Client_UploadChallengeImage_UniqueKeys(t *testing.T) {
	mockS3 := testutil.NewMockS3Client()
	client := NewS3Client(mockS3, "test-bucket", "https://test.cloudfront.net")

	png := testutil.CreateTestPNG(100, 100)

	url1, err := client.UploadChallengeImage(png)
	require.NoError(t, err)
	url2, err := client.UploadChallengeImage(png)
	require.NoError(t, err)

	// 同じ画像でもキーは毎回一意
	assert.NotEqual(t, url1, url2)
	assert.Len(t, mockS3.UploadedData, 2)
}

func TestS3Client_GetImage(t *testing.T) {
	mockS3 := testutil.NewMockS3Client()
	mockS3.Objects = map[string][]byte{
		"captcha/abc.png": testutil.CreateTestPNG(400, 250),
	}

	client := NewS3Client(mockS3, "test-bucket", "https://test.cloudfront.net")

	data, err := client.GetImage("captcha/abc.png")
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	_, err = client.GetImage("captcha/missing.png")
	assert.Error(t, err)
}

func TestS3Client_ListChallengeImages(t *testing.T) {
	mockS3 := testutil.NewMockS3Client()
	mockS3.Objects = map[string][]byte{
		"captcha/a.png": testutil.CreateTestPNG(10, 10),
		"captcha/b.png": testutil.CreateTestPNG(10, 10),
		"other/c.png":   testutil.CreateTestPNG(10, 10),
	}

	client := NewS3Client(mockS3, "test-bucket", "https://test.cloudfront.net")

	keys, err := client.ListChallengeImages()
	require.NoError(t, err)
	assert.Len(t, keys, 2)
}

func TestS3Client_TrailingSlashURL(t *testing.T) {
	mockS3 := testutil.NewMockS3Client()
	client := NewS3Client(mockS3, "test-bucket", "https://test.cloudfront.net/")

	url, err := client.UploadChallengeImage(testutil.CreateTestPNG(10, 10))
	require.NoError(t, err)
	assert.NotContains(t, url, ".net//")
}
