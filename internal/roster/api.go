package roster

import "station-board-backend/internal/store"

// ApiResponse models the top-level structure of the roster API's response.
type ApiResponse struct {
	Code int `json:"code"`
	Data struct {
		Page     int                `json:"page"`
		PageSize int                `json:"pageSize"`
		Total    int                `json:"total"`
		Items    []store.RosterItem `json:"items"`
	} `json:"data"`
}
