package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (suite *ErrorTestSuite) TestNewError() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.NotNil(err)
	suite.Equal(ErrCodeInvalidParameter, err.Code)
	suite.Equal("invalid parameter", err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestNewfError() {
	err := Newf(ErrCodeUnknownPattern, "unknown pattern tag %q", "HAMMER")
	suite.NotNil(err)
	suite.Equal(ErrCodeUnknownPattern, err.Code)
	suite.Equal(`unknown pattern tag "HAMMER"`, err.Message)
	suite.Nil(err.Cause)
}

func (suite *ErrorTestSuite) TestWrapError() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataLoad, "failed to load bars", cause)
	suite.NotNil(err)
	suite.Equal(ErrCodeDataLoad, err.Code)
	suite.Equal("failed to load bars", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestWrapfError() {
	cause := errors.New("underlying error")
	err := Wrapf(ErrCodeDataLoad, cause, "failed to load bars from %s", "data.csv")
	suite.NotNil(err)
	suite.Equal(ErrCodeDataLoad, err.Code)
	suite.Equal("failed to load bars from data.csv", err.Message)
	suite.Equal(cause, err.Cause)
}

func (suite *ErrorTestSuite) TestErrorString() {
	err := New(ErrCodeInvalidParameter, "invalid parameter")
	suite.Equal("[100] invalid parameter", err.Error())
}

func (suite *ErrorTestSuite) TestErrorStringWithCause() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.Equal("[200] data not found: underlying error", err.Error())
}

func (suite *ErrorTestSuite) TestUnwrap() {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeDataNotFound, "data not found", cause)
	suite.Equal(cause, err.Unwrap())
}

func (suite *ErrorTestSuite) TestErrorsIsThroughChain() {
	cause := errors.New("underlying error")
	err := fmt.Errorf("outer: %w", Wrap(ErrCodeDataLoad, "failed to load", cause))
	suite.True(errors.Is(err, cause))
}

func (suite *ErrorTestSuite) TestGetCode() {
	err := New(ErrCodeInvalidThreshold, "threshold out of range")
	suite.Equal(ErrCodeInvalidThreshold, GetCode(err))
}

func (suite *ErrorTestSuite) TestGetCodeNonStructured() {
	suite.Equal(ErrCodeUnknown, GetCode(errors.New("plain error")))
}

func (suite *ErrorTestSuite) TestHasCode() {
	err := Newf(ErrCodeOptimizerBounds, "max patterns %d exceeds catalogue size %d", 12, 10)
	suite.True(HasCode(err, ErrCodeOptimizerBounds))
	suite.False(HasCode(err, ErrCodeInvalidParameter))
}

func (suite *ErrorTestSuite) TestHasCodeWrappedChain() {
	inner := New(ErrCodeInsufficientData, "not enough bars")
	outer := fmt.Errorf("recognizer: %w", inner)
	suite.True(HasCode(outer, ErrCodeInsufficientData))
}

func (suite *ErrorTestSuite) TestInsufficientDataError() {
	err := NewInsufficientDataError(15, 3, "RSI requires 15 points, got 3")
	suite.Equal(15, err.Required)
	suite.Equal(3, err.Actual)
	suite.Equal("RSI requires 15 points, got 3", err.Error())
}

func (suite *ErrorTestSuite) TestInsufficientDataErrorf() {
	err := NewInsufficientDataErrorf(21, 5, "SMA requires %d points, got %d", 21, 5)
	suite.Equal("SMA requires 21 points, got 5", err.Error())
}

func (suite *ErrorTestSuite) TestIsInsufficientDataError() {
	err := fmt.Errorf("indicator: %w", NewInsufficientDataError(15, 3, "not enough data"))
	suite.True(IsInsufficientDataError(err))
	suite.False(IsInsufficientDataError(errors.New("other")))
}
