package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/Paudel3101/meditrack/pkg/errors"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func OKMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

// List includes a count so clients need not measure the array.
func List(c *gin.Context, data interface{}, count int) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data, Count: &count})
}

// Error maps an application error onto the envelope. Unknown errors
// surface as a generic 500 without leaking their cause.
func Error(c *gin.Context, err error) {
	appErr := apperrors.FromError(err)
	c.JSON(appErr.StatusCode(), Response{Success: false, Message: appErr.Message})
}

// BindError turns a gin binding failure into a 400 with per-field
// messages when the failure came from validation tags.
func BindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fieldMessage(fe))
		}
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Message: "validation failed",
			Errors:  details,
		})
		return
	}
	c.JSON(http.StatusBadRequest, Response{Success: false, Message: "invalid request body"})
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email address"
	case "strongpassword":
		return fe.Field() + " must be at least 8 characters with uppercase, number, and special character"
	case "mrn":
		return fe.Field() + " must be 6-20 uppercase letters and digits"
	case "dateonly":
		return fe.Field() + " must be a date in YYYY-MM-DD format"
	case "clocktime":
		return fe.Field() + " must be a time in HH:MM format"
	case "staffrole":
		return fe.Field() + " must be one of Admin, Doctor, Nurse, Receptionist"
	case "apptstatus":
		return fe.Field() + " must be one of Scheduled, Completed, Cancelled, No-show"
	case "gender":
		return fe.Field() + " must be one of Male, Female, Other"
	case "bloodtype":
		return fe.Field() + " must be a valid blood type"
	default:
		return fe.Field() + " is invalid"
	}
}
