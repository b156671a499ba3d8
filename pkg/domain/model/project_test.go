package model_test

import (
	"testing"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestProjectCodePrefix(t *testing.T) {
	prefix, err := model.ProjectCodePrefix(types.TeamHOS, "01", 2025)
	gt.NoError(t, err).Required()
	gt.V(t, prefix).Equal("HOS-25-01")

	prefix, err = model.ProjectCodePrefix(types.TeamDME, "04", 2009)
	gt.NoError(t, err).Required()
	gt.V(t, prefix).Equal("DME-09-04")

	_, err = model.ProjectCodePrefix("", "01", 2025)
	gt.Error(t, err).Is(model.ErrInvalidValue)

	_, err = model.ProjectCodePrefix(types.TeamHOS, "1", 2025)
	gt.Error(t, err).Is(model.ErrInvalidValue)
}

func TestNextProjectCode(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		want     string
	}{
		{"no codes starts at 01", nil, "HOS-25-0101"},
		{"increments max", []string{"HOS-25-0101", "HOS-25-0102"}, "HOS-25-0103"},
		{"gap is not reused", []string{"HOS-25-0101", "HOS-25-0103"}, "HOS-25-0104"},
		{"unparsable codes are skipped", []string{"HOS-25-01AB", "HOS-25-0105"}, "HOS-25-0106"},
		{"short codes are skipped", []string{"HOS-25-01", "HOS-25-010"}, "HOS-25-0101"},
		{"other prefixes are ignored", []string{"HOS-25-0201", "DME-25-0109"}, "HOS-25-0101"},
		{"long suffix uses last two digits", []string{"HOS-25-01-x07"}, "HOS-25-0108"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.V(t, model.NextProjectCode("HOS-25-01", tt.existing)).Equal(tt.want)
		})
	}
}

func TestProjectFields_Validate(t *testing.T) {
	f := model.ProjectFields{Name: "  Kern Internalization "}.Normalize()
	gt.NoError(t, f.Validate())
	gt.V(t, f.Name).Equal("Kern Internalization")
	gt.V(t, f.Status).Equal(types.ProjectStatusPlanning)
	gt.V(t, f.Priority).Equal(types.PriorityMedium)
	gt.A(t, f.AssignedMembers).Length(0)

	gt.Error(t, model.ProjectFields{}.Normalize().Validate()).Is(model.ErrMissingRequired)

	bad := model.ProjectFields{Name: "x", Status: "Archived"}
	gt.Error(t, bad.Validate()).Is(model.ErrInvalidValue)

	gt.Error(t, model.ValidateProjectCode(" ")).Is(model.ErrMissingRequired)
}

func TestProject_FieldsCopiesMembers(t *testing.T) {
	p := &model.Project{Name: "p", AssignedMembers: []string{"Ann", "Bob"}}
	f := p.Fields()
	f.AssignedMembers[0] = "Zed"
	gt.V(t, p.AssignedMembers[0]).Equal("Ann")
}
