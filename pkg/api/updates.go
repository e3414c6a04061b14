package api

// UpdateCheckResponse представляет ответ GET /updates/check
type UpdateCheckResponse struct {
	Success       bool   `json:"success"`
	HasUpdate     bool   `json:"has_update"`
	LatestVersion string `json:"latest_version"`
	Changelog     string `json:"changelog,omitempty"`
	DownloadURL   string `json:"download_url,omitempty"`
}
