package response

type Response struct {
	Status  string      `json:"status"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(code, message string, data interface{}) Response {
	return Response{
		Status:  "success",
		Code:    code,
		Message: message,
		Data:    data,
	}
}

func Error(code, message string, data interface{}) Response {
	return Response{
		Status:  "error",
		Code:    code,
		Message: message,
		Data:    data,
	}
}
