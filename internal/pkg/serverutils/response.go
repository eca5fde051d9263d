package serverutils

type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

type ErrorBody struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(code int, message string) ErrorBody {
	return ErrorBody{
		Success: false,
		Code:    code,
		Message: message,
	}
}

type ErrorBodyWithData[T any] struct {
	Success bool   `json:"success"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// ErrorResponseWithData is for failures that still produced a partial
// outcome the caller needs, like a batch that aborted mid-way.
func ErrorResponseWithData[T any](code int, message string, data T) ErrorBodyWithData[T] {
	return ErrorBodyWithData[T]{
		Success: false,
		Code:    code,
		Message: message,
		Data:    data,
	}
}
