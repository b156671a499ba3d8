package types

import (
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

// ProjectTypeCode is the two digit category code embedded in a project
// code, e.g. "01" in "HOS-25-0101".
type ProjectTypeCode string

var projectTypePattern = regexp.MustCompile(`^[0-9]{2}$`)

func (c ProjectTypeCode) Validate() error {
	if !projectTypePattern.MatchString(string(c)) {
		return goerr.New("project type code must be two digits", goerr.V("code", c))
	}
	return nil
}

func (c ProjectTypeCode) String() string {
	return string(c)
}

// ProjectType is a code/name pair.
type ProjectType struct {
	Code ProjectTypeCode `json:"code"`
	Name string          `json:"name"`
}

// DefaultProjectTypes returns the built-in project type table.
func DefaultProjectTypes() []ProjectType {
	return []ProjectType{
		{Code: "01", Name: "Operations"},
		{Code: "02", Name: "Technology"},
		{Code: "03", Name: "Clinical"},
		{Code: "04", Name: "Compliance"},
		{Code: "05", Name: "Finance"},
		{Code: "06", Name: "Strategy"},
		{Code: "07", Name: "Training"},
		{Code: "08", Name: "Data & Analytics"},
		{Code: "09", Name: "Communications"},
	}
}
