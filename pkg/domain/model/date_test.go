package model_test

import (
	"testing"
	"time"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2025, 3, 7, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		input   string
		want    *time.Time
		wantErr bool
	}{
		{"iso", "2025-03-07", &want, false},
		{"with time", "2025-03-07 13:45:00", &want, false},
		{"rfc3339", "2025-03-07T13:45:00Z", &want, false},
		{"us", "3/7/2025", &want, false},
		{"us padded", "03/07/2025", &want, false},
		{"blank", "   ", nil, false},
		{"garbage", "next tuesday", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := model.ParseDate(tt.input)
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err).Required()
			if tt.want == nil {
				gt.Value(t, got).Nil()
				return
			}
			gt.Value(t, got).NotNil()
			gt.B(t, got.Equal(*tt.want)).True()
		})
	}
}

func TestFormatDate(t *testing.T) {
	gt.V(t, model.FormatDate(nil)).Equal("")
	gt.V(t, model.FormatDate(model.DatePtr(time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)))).Equal("2025-01-02")
}
