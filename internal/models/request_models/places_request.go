package request_models

type UpdateQueryRequest struct {
	Search   *string `json:"search"`
	Category *string `json:"category"`
}
