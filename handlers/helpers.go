package handlers

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// Shared validator for all payload DTOs. Field names in error maps follow
// the json tags so they line up with what the client sent.
var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkPayload runs struct validation and flattens failures into a
// field → reason map, nil when the payload is valid.
func checkPayload(p any) map[string]string {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	errs := map[string]string{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			if fe.Param() != "" {
				errs[fe.Field()] = "failed " + fe.Tag() + "=" + fe.Param()
			} else {
				errs[fe.Field()] = "failed " + fe.Tag()
			}
		}
	} else {
		errs["payload"] = err.Error()
	}
	return errs
}

// authUserID returns the uid of the authenticated user, set by the JWT middleware.
func authUserID(c echo.Context) string {
	uid, _ := c.Get("user_id").(string)
	return uid
}

func authRole(c echo.Context) string {
	role, _ := c.Get("role").(string)
	return role
}
