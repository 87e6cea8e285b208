package application

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ahrav/go-scoreboard/internal/domain"
)

// maxNameLength bounds grade/section, group, named-dance and judge names.
const maxNameLength = 200

// Package-level validator instance for configuration validation.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateConfigStruct, domain.Config{})
	return v
}

// validateConfigStruct checks the cross-field rules that struct tags cannot
// express: the judge list matches the judge count, catalog ids are unique
// and every named dance references existing catalog items.
func validateConfigStruct(sl validator.StructLevel) {
	cfg := sl.Current().Interface().(domain.Config)

	if cfg.JudgeCount != len(cfg.Judges) {
		sl.ReportError(cfg.Judges, "Judges", "Judges", "judgecount", fmt.Sprint(cfg.JudgeCount))
	}

	seen := make(map[string]bool, len(cfg.GradeSections))
	for _, gs := range cfg.GradeSections {
		if seen[gs.ID] {
			sl.ReportError(cfg.GradeSections, "GradeSections", "GradeSections", "uniqueid", gs.ID)
		}
		seen[gs.ID] = true
	}

	seen = make(map[string]bool, len(cfg.Groups))
	for _, g := range cfg.Groups {
		if seen[g.ID] {
			sl.ReportError(cfg.Groups, "Groups", "Groups", "uniqueid", g.ID)
		}
		seen[g.ID] = true
	}

	for _, d := range cfg.NamedDances {
		if _, ok := cfg.GradeSection(d.GradeSectionID); !ok {
			sl.ReportError(d.GradeSectionID, "NamedDances", "NamedDances", "gradesectionref", d.GradeSectionID)
		}
		if _, ok := cfg.Group(d.GroupID); !ok {
			sl.ReportError(d.GroupID, "NamedDances", "NamedDances", "groupref", d.GroupID)
		}
	}
}

// ValidateConfig validates a complete configuration. It returns a
// *domain.ValidationError listing every violated rule.
func ValidateConfig(cfg domain.Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	verr := domain.NewValidationError("config", domain.ErrInvalidConfiguration)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.AddError(err.Error())
		return verr
	}
	for _, fe := range fieldErrs {
		verr.AddError(describeFieldError(fe))
	}
	return verr
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "gtfield":
		return "score scale minimum must be lower than maximum"
	case "judgecount":
		return fmt.Sprintf("judge list must have exactly %s judges", fe.Param())
	case "uniqueid":
		return fmt.Sprintf("%s contains duplicate id %q", strings.ToLower(fe.Field()), fe.Param())
	case "gradesectionref":
		return fmt.Sprintf("named dance references unknown grade/section %q", fe.Param())
	case "groupref":
		return fmt.Sprintf("named dance references unknown group %q", fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", fe.Namespace(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", fe.Namespace(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %q validation", fe.Namespace(), fe.Tag())
	}
}

// normalizeName trims name and rejects blank or oversized values.
func normalizeName(entity, name string) (string, error) {
	name = strings.TrimSpace(name)
	if err := validate.Var(name, fmt.Sprintf("required,max=%d", maxNameLength)); err != nil {
		if name == "" {
			return "", domain.NewValidationError(entity, domain.ErrEmptyName, entity+" name is required")
		}
		return "", domain.NewValidationError(entity, domain.ErrNameTooLong,
			fmt.Sprintf("%s name must be at most %d characters", entity, maxNameLength))
	}
	return name, nil
}

// userMessage turns an operation error into the text shown to the user.
func userMessage(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) && verr.HasErrors() {
		return strings.Join(verr.Errors, "; ")
	}
	return err.Error()
}
