package model

// HealthResponse はヘルスチェックの結果
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
