package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_5_flashcard_srs/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// createRequest はテスト用のリクエストを作ります。userID があれば X-User-ID ヘッダーを付ける。
func createRequest(t *testing.T, method, path string, body interface{}, userID *uuid.UUID) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		if s, ok := body.(string); ok {
			reader = strings.NewReader(s)
		} else {
			b, err := json.Marshal(body)
			require.NoError(t, err, "Failed to marshal request body")
			reader = bytes.NewReader(b)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != nil {
		req.Header.Set("X-User-ID", userID.String())
	}
	return req
}

// decodeError はエラーレスポンスのボディを取り出します
func decodeError(t *testing.T, rr *httptest.ResponseRecorder) model.ErrorDetail {
	t.Helper()
	var resp model.APIErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), "Failed to unmarshal error response body: %s", rr.Body.String())
	return resp.Error
}

type fakePinger struct {
	err error
}

func (p fakePinger) PingContext(ctx context.Context) error {
	return p.err
}
