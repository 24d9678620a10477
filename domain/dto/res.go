package dto

// Res is the legacy code/message envelope still used by the auth middleware
// and the user endpoints.
type Res struct {
	ResponseCode    string      `json:"response_code"`
	ResponseMessage string      `json:"response_message"`
	Data            interface{} `json:"data,omitempty"`
}
