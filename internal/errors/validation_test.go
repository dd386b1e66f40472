package errors_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/rpg-arena/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("years", "must be positive")
	ve.AddFieldError("armor", "is invalid")
	ve.AddFieldErrorf("fighters", "must be at least %d", 2)

	s.Assert().True(ve.HasErrors())
	s.Assert().Equal("validation failed: armor: is invalid; fighters: must be at least 2; years: must be positive", ve.Error())

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	vb := errors.NewValidationBuilder()
	vb.Field("name", "is required").
		Fieldf("level", "must be between %d and %d", 1, 20).
		RequiredField("mode").
		InvalidField("armor", "not a known armor")

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestConfigValidationBuilder() {
	vb := errors.NewConfigValidationBuilder()
	errors.ValidateMin("years", 0, 1, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	s.Assert().True(errors.IsInvalidConfiguration(err))
	s.Assert().False(errors.IsInvalidArgument(err))
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	vb := errors.NewValidationBuilder()
	err := vb.Build()
	s.Assert().Nil(err)
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "test", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
		{"valid with spaces", "  test  ", false},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("field", tc.value, vb)
			err := vb.Build()
			if tc.shouldErr {
				s.Assert().NotNil(err)
			} else {
				s.Assert().Nil(err)
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateMin() {
	vb := errors.NewValidationBuilder()
	errors.ValidateMin("fights", 0, 1, vb)
	errors.ValidateMin("years", 50, 1, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	validationErrors := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["fights"][0], "must be at least 1")
	s.Assert().NotContains(validationErrors, "years")
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("level", 25, 1, 20, vb)
	errors.ValidateRange("strength", 15, 3, 18, vb)
	errors.ValidateRange("party_size", 0, 1, 100, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	validationErrors := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["level"][0], "must be between 1 and 20")
	s.Assert().Contains(validationErrors["party_size"][0], "must be between 1 and 100")
	s.Assert().NotContains(validationErrors, "strength")
}

func (s *ValidationTestSuite) TestValidateEnum() {
	allowedModes := []string{"man-vs-man", "man-vs-monster"}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("mode", "monster-vs-monster", allowedModes, vb)
	errors.ValidateEnum("fallback_mode", "man-vs-man", allowedModes, vb)

	err := vb.Build()
	s.Require().NotNil(err)
	validationErrors := errors.GetMeta(err)["validation_errors"].(map[string][]string)
	s.Assert().Contains(validationErrors["mode"][0], "must be one of: man-vs-man, man-vs-monster")
	s.Assert().NotContains(validationErrors, "fallback_mode")
}
