package catalog

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	kitouterrors "github.com/kitout-dev/kitout/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate

	// Chocolatey package IDs: lowercase, digits, dot/dash/underscore.
	packageIDPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._+-]*$`)
	// VS Code extension IDs: publisher.name.
	extensionIDPattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9-]*\.[a-zA-Z0-9][a-zA-Z0-9._-]*$`)
	semverPattern      = regexp.MustCompile(`^\d+\.\d+(?:\.\d+)?(?:-[0-9A-Za-z-.]+)?$`)
)

// validatorInstance configures and returns the shared validator instance
// used across the catalog package.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("package_id", func(fl validator.FieldLevel) bool {
			return packageIDPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("extension_id", func(fl validator.FieldLevel) bool {
			return extensionIDPattern.MatchString(fl.Field().String())
		})

		_ = v.RegisterValidation("semver", func(fl validator.FieldLevel) bool {
			return semverPattern.MatchString(fl.Field().String())
		})

		validateInst = v
	})

	return validateInst
}

// Validate checks the catalogue against its schema rules and rejects
// duplicate package IDs between the install groups and the legacy list,
// since a legacy ID that is still installable would be removed and
// reinstalled forever.
func Validate(c *Catalog) error {
	if err := validatorInstance().Struct(c); err != nil {
		return convertValidationError(err)
	}

	current := map[string]struct{}{}
	for _, group := range [][]PackageRef{c.Core, c.Docker, c.PowerBI, c.Security} {
		for _, ref := range group {
			current[ref.ID] = struct{}{}
		}
	}
	for _, ref := range c.Legacy {
		if _, clash := current[ref.ID]; clash {
			return kitouterrors.NewValidationError(
				"legacy",
				fmt.Sprintf("package %q cannot be both current and legacy", ref.ID),
				nil,
			)
		}
	}

	return nil
}

// convertValidationError normalizes validator errors into kitout validation errors.
func convertValidationError(err error) error {
	if err == nil {
		return nil
	}

	if ves, ok := err.(validator.ValidationErrors); ok {
		ve := ves[0]
		field := yamlishFieldName(ve)
		msg := fmt.Sprintf("%s failed validation for tag '%s'", field, ve.Tag())
		return kitouterrors.NewValidationError(field, msg, err)
	}

	return kitouterrors.NewValidationError("catalog", err.Error(), err)
}

func yamlishFieldName(fe validator.FieldError) string {
	ns := fe.StructNamespace()
	parts := strings.Split(ns, ".")
	var lowered []string
	for _, part := range parts {
		lowered = append(lowered, strings.ToLower(part))
	}
	return strings.Join(lowered, ".")
}
