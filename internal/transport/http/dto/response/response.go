package response

import "magazine_cms/internal/domain/models"

type Response struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

type ErrorResponse struct {
	Status  string              `json:"status"`
	Error   string              `json:"error"`
	Details string              `json:"details,omitempty"`
	Fields  []models.FieldError `json:"fields,omitempty"`
}

func SuccessResponse(data interface{}) Response {
	return Response{
		Status: "success",
		Data:   data,
	}
}

func ErrorResponseWithDetails(err, details string) ErrorResponse {
	return ErrorResponse{
		Status:  "error",
		Error:   err,
		Details: details,
	}
}

// ValidationFailed lists every violated rule under fields.
func ValidationFailed(ve *models.ValidationError) ErrorResponse {
	return ErrorResponse{
		Status:  "error",
		Error:   "validation_failed",
		Details: "One or more fields are invalid",
		Fields:  ve.Errors,
	}
}
