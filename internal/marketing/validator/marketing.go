package validator

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"campushub/pkg/logger"
	"campushub/pkg/model"
)

var hhmmTimeRegex = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return ""
	}
	var messages []string
	for _, err := range v {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %d error(s): [%s]", len(v), strings.Join(messages, "; "))
}

type MarketingValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
}

func NewMarketingValidator(log *logger.Logger) *MarketingValidator {
	v := validator.New()

	if err := v.RegisterValidation("iso_date", validateISODate); err != nil {
		log.Fatal("Failed to register 'iso_date' validator", "error", err)
	}
	if err := v.RegisterValidation("hhmm_time", validateHHMMTime); err != nil {
		log.Fatal("Failed to register 'hhmm_time' validator", "error", err)
	}

	log.Info("Marketing validator initialized successfully")

	return &MarketingValidator{
		validate: v,
		logger:   log,
	}
}

func validateISODate(fl validator.FieldLevel) bool {
	_, err := time.Parse("2006-01-02", fl.Field().String())
	return err == nil
}

func validateHHMMTime(fl validator.FieldLevel) bool {
	return hhmmTimeRegex.MatchString(fl.Field().String())
}

func (v *MarketingValidator) Validate(request *model.MarketingRequest) error {
	if err := v.validate.Struct(request); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if errs := validateChecklists(request); len(errs) > 0 {
		return errs
	}

	return nil
}

// validateChecklists rejects any checklist key outside the fixed catalog.
func validateChecklists(request *model.MarketingRequest) ValidationErrors {
	var errs ValidationErrors

	groups := map[string]model.Checklist{
		model.GroupCreation: request.Creation,
		model.GroupOutreach: request.Outreach,
		model.GroupOther:    request.Other,
	}
	for group, checklist := range groups {
		for item := range checklist {
			if !model.ChecklistItemKnown(group, item) {
				errs = append(errs, ValidationError{
					Field:   group,
					Message: fmt.Sprintf("unknown checklist item %q in group %q", item, group),
				})
			}
		}
	}

	return errs
}

func (v *MarketingValidator) ValidateChecklistPatch(patch *model.ChecklistPatch) error {
	if err := v.validate.Struct(patch); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateValidationErrors(validationErrs)
		}
		return err
	}

	if !model.ChecklistItemKnown(patch.Group, patch.Item) {
		return ValidationErrors{
			ValidationError{
				Field:   "Item",
				Message: fmt.Sprintf("unknown checklist item %q in group %q", patch.Item, patch.Group),
			},
		}
	}

	return nil
}

func translateValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	var validationErrors ValidationErrors

	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("%s is required", err.Field())
		case "min":
			message = fmt.Sprintf("%s must be at least %s", err.Field(), err.Param())
		case "max":
			message = fmt.Sprintf("%s must be at most %s", err.Field(), err.Param())
		case "email":
			message = fmt.Sprintf("%s must be a valid email address", err.Field())
		case "mongodb":
			message = fmt.Sprintf("%s must be a valid MongoDB ObjectID", err.Field())
		case "oneof":
			message = fmt.Sprintf("%s must be one of: %s", err.Field(), err.Param())
		case "iso_date":
			message = fmt.Sprintf("%s must be an ISO date (YYYY-MM-DD)", err.Field())
		case "hhmm_time":
			message = fmt.Sprintf("%s must be a time in HH:MM format", err.Field())
		}

		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: message,
		})
	}

	return validationErrors
}
