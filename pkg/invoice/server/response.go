package server

const (
	SuccessStatus = "success"
	ErrorStatus   = "error"
)

// Error codes returned in ErrorMessage.ErrCode besides validator tags
const (
	ErrcodeInvalidRequest  = "invalid_request"
	ErrcodeTemplateMissing = "template_missing"
	ErrcodeConversion      = "conversion_failed"
	ErrcodeInternal        = "internal_error"
)

// Response is the JSON envelope of every API reply
type Response struct {
	Status   string         `json:"status"`
	Data     any            `json:"data"`
	Messages []ErrorMessage `json:"messages"`
}

// ErrorMessage describes one problem with a request
type ErrorMessage struct {
	ErrCode string   `json:"errcode"`
	Field   *string  `json:"field,omitempty"`
	Vals    []string `json:"vals,omitempty"`
}

// BuildErrorMessage creates an error message, optionally tied to a field
func BuildErrorMessage(errcode string, field *string, vals ...string) ErrorMessage {
	return ErrorMessage{ErrCode: errcode, Field: field, Vals: vals}
}

func NewResponse(status string, data any, messages []ErrorMessage) *Response {
	return &Response{Status: status, Data: data, Messages: messages}
}

func NewSuccessResponse(data any) *Response {
	return NewResponse(SuccessStatus, data, nil)
}

// NewErrorResponse creates an error response with a single message
func NewErrorResponse(errcode string, field *string, vals ...string) *Response {
	return NewResponse(ErrorStatus, nil, []ErrorMessage{BuildErrorMessage(errcode, field, vals...)})
}
