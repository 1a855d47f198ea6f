package service

import (
	"regexp"

	"github.com/go-playground/validator/v10"

	"github.com/zein-dev/kelasku-api/internal/models"
)

var webLinkPattern = regexp.MustCompile(`^https?://.+`)

// NewValidator builds a validator with every custom rule the portal uses.
// Services accept a shared instance so the rules register once at startup.
func NewValidator() *validator.Validate {
	v := validator.New()
	registerClassNameValidation(v)
	registerWeekDayValidation(v)
	registerWebLinkValidation(v)
	return v
}

func registerWeekDayValidation(v *validator.Validate) {
	_ = v.RegisterValidation("week_day", func(fl validator.FieldLevel) bool {
		return models.ValidDay(fl.Field().String())
	})
}

func registerWebLinkValidation(v *validator.Validate) {
	_ = v.RegisterValidation("web_link", func(fl validator.FieldLevel) bool {
		return webLinkPattern.MatchString(fl.Field().String())
	})
}
