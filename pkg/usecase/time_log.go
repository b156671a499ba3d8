package usecase

import (
	"context"
	"strconv"
	"strings"

	"github.com/athelas-portal/athelas/pkg/domain/interfaces"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

// recentEntries is the length of the personal time view.
const recentEntries = 5

type TimeLogUseCase struct {
	repo  interfaces.Repository
	users *UserUseCase
}

func NewTimeLogUseCase(repo interfaces.Repository, users *UserUseCase) *TimeLogUseCase {
	return &TimeLogUseCase{
		repo:  repo,
		users: users,
	}
}

// LogTimeInput is one time entry, optionally posted together with a free-form
// status update on the same project.
type LogTimeInput struct {
	model.TimeLogFields
	StatusUpdate string `json:"status_update"`
}

// Log stores the entry and its history lines in one transaction.
func (uc *TimeLogUseCase) Log(ctx context.Context, in LogTimeInput) (*model.TimeLog, error) {
	f := in.TimeLogFields.Normalize()
	if err := f.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid time log")
	}

	user, err := uc.users.Get(ctx, f.UserID)
	if err != nil {
		return nil, err
	}

	var created *model.TimeLog
	err = uc.repo.RunInTx(ctx, func(ctx context.Context, tx interfaces.Repository) error {
		tl, err := tx.TimeLog().Create(ctx, f)
		if err != nil {
			return projectErr(err, f.ProjectID)
		}

		if _, err := tx.ProjectUpdate().Create(ctx, f.ProjectID, model.ProjectUpdateFields{
			Type:     types.UpdateTimeLogged,
			UserName: user.Name,
			Text:     formatHours(f.Hours) + "h logged: " + f.Description,
		}); err != nil {
			return projectErr(err, f.ProjectID)
		}

		if text := strings.TrimSpace(in.StatusUpdate); text != "" {
			if _, err := tx.ProjectUpdate().Create(ctx, f.ProjectID, model.ProjectUpdateFields{
				Type:     types.UpdateStatusUpdate,
				UserName: user.Name,
				Text:     text,
			}); err != nil {
				return projectErr(err, f.ProjectID)
			}
		}

		created = tl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// List returns joined entries newest date first. A nil projectID lists all.
func (uc *TimeLogUseCase) List(ctx context.Context, projectID *int64) ([]*model.TimeLogEntry, error) {
	var opts []interfaces.ListTimeLogOption
	if projectID != nil {
		opts = append(opts, interfaces.WithProjectID(*projectID))
	}
	entries, err := uc.repo.TimeLog().List(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list time logs")
	}
	return entries, nil
}

// UserSummary returns the user's total hours and latest entries.
func (uc *TimeLogUseCase) UserSummary(ctx context.Context, userID int64) (*model.UserTimeSummary, error) {
	if _, err := uc.users.Get(ctx, userID); err != nil {
		return nil, err
	}

	total, err := uc.repo.Report().UserHours(ctx, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to sum user hours", goerr.V(UserIDKey, userID))
	}
	recent, err := uc.repo.TimeLog().List(ctx, interfaces.WithUserID(userID), interfaces.WithLimit(recentEntries))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list recent time logs", goerr.V(UserIDKey, userID))
	}

	return &model.UserTimeSummary{
		UserID:     userID,
		TotalHours: total,
		Recent:     recent,
	}, nil
}

// formatHours always keeps one decimal place for whole hours: 2 -> "2.0".
func formatHours(h float64) string {
	s := strconv.FormatFloat(h, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
