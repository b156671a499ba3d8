package model_test

import (
	"testing"
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/m-mizutani/gt"
)

func TestTimeLogFields_Validate(t *testing.T) {
	base := model.TimeLogFields{
		ProjectID:   1,
		UserID:      2,
		Date:        time.Date(2025, 5, 1, 9, 30, 0, 0, time.UTC),
		Hours:       3.5,
		Description: "sprint planning",
	}

	f := base.Normalize()
	gt.NoError(t, f.Validate())
	gt.V(t, f.Category).Equal(types.TimeOther)
	gt.V(t, f.Date.Hour()).Equal(0)

	tooMuch := base
	tooMuch.Hours = 25
	gt.Error(t, tooMuch.Normalize().Validate()).Is(model.ErrInvalidValue)

	tooLittle := base
	tooLittle.Hours = 0
	gt.Error(t, tooLittle.Normalize().Validate()).Is(model.ErrInvalidValue)

	noDesc := base
	noDesc.Description = " "
	gt.Error(t, noDesc.Normalize().Validate()).Is(model.ErrMissingRequired)
}

func TestStatusReportFields(t *testing.T) {
	f := model.StatusReportFields{ReportDate: time.Now(), HealthOverall: types.HealthAtRisk}.Normalize()
	gt.NoError(t, f.Validate())
	gt.V(t, f.HealthScope).Equal(types.HealthNotStarted)
	gt.V(t, f.HealthOverall).Equal(types.HealthAtRisk)

	gt.Error(t, model.StatusReportFields{}.Validate()).Is(model.ErrMissingRequired)

	var none *model.StatusReport
	gt.V(t, none.OverallHealth()).Equal(types.HealthNotStarted)
}

func TestMilestoneFields_Validate(t *testing.T) {
	f := model.MilestoneFields{Name: "KPATHS go-live", PercentComplete: 40}.Normalize()
	gt.NoError(t, f.Validate())
	gt.V(t, f.Status).Equal(types.MilestoneOnTrack)

	f.PercentComplete = 101
	gt.Error(t, f.Validate()).Is(model.ErrInvalidValue)
}
