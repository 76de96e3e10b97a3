package forum

import (
	"reflect"
	"testing"
	"time"

	"github.com/juslaw/forum/internal/models"
)

func TestBuildOpportunityFilter(t *testing.T) {
	now := time.Now().UTC()
	earlier := now.Add(-24 * time.Hour)

	tests := []struct {
		name     string
		attorney *models.Attorney
		start    *time.Time
		end      *time.Time
		wantOK   bool
	}{
		{
			name:     "no attorney profile never matches",
			attorney: nil,
			wantOK:   false,
		},
		{
			name: "no jurisdictions never matches",
			attorney: &models.Attorney{
				Specialties: []models.PracticeArea{{ID: 1}},
				Keywords:    []string{"divorce"},
			},
			wantOK: false,
		},
		{
			name: "jurisdictions without keywords select specialty branch",
			attorney: &models.Attorney{
				PracticeJurisdictions: []models.State{{ID: 3}, {ID: 7}},
				Specialties:           []models.PracticeArea{{ID: 1}, {ID: 2}},
			},
			wantOK: true,
		},
		{
			name: "blank keywords behave like no keywords",
			attorney: &models.Attorney{
				PracticeJurisdictions: []models.State{{ID: 3}},
				Keywords:              []string{"  ", ""},
			},
			wantOK: true,
		},
		{
			name: "period bounds carried through",
			attorney: &models.Attorney{
				PracticeJurisdictions: []models.State{{ID: 3}},
			},
			start:  &earlier,
			end:    &now,
			wantOK: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, ok := buildOpportunityFilter(tt.attorney, tt.start, tt.end)
			if ok != tt.wantOK {
				t.Fatalf("buildOpportunityFilter() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}

			wantStates := make([]int64, 0, len(tt.attorney.PracticeJurisdictions))
			for _, s := range tt.attorney.PracticeJurisdictions {
				wantStates = append(wantStates, s.ID)
			}
			if !reflect.DeepEqual(filter.StateIDs, wantStates) {
				t.Errorf("StateIDs = %v, want %v", filter.StateIDs, wantStates)
			}

			wantAreas := make([]int64, 0, len(tt.attorney.Specialties))
			for _, a := range tt.attorney.Specialties {
				wantAreas = append(wantAreas, a.ID)
			}
			if !reflect.DeepEqual(filter.AreaIDs, wantAreas) {
				t.Errorf("AreaIDs = %v, want %v", filter.AreaIDs, wantAreas)
			}

			wantQuerytext := ConvertKeywordsToQuerytext(tt.attorney.Keywords)
			if filter.Querytext != wantQuerytext {
				t.Errorf("Querytext = %q, want %q", filter.Querytext, wantQuerytext)
			}

			if tt.start != nil && (filter.PeriodStart == nil || !filter.PeriodStart.Equal(*tt.start)) {
				t.Errorf("PeriodStart = %v, want %v", filter.PeriodStart, tt.start)
			}
			if tt.start == nil && filter.PeriodStart != nil {
				t.Errorf("PeriodStart = %v, want nil", filter.PeriodStart)
			}
		})
	}
}
