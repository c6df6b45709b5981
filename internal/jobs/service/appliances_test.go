package service

import (
	"testing"

	"gascert_backend/platform/apperr"
)

func TestCheckApplianceClassification(t *testing.T) {
	cases := []struct {
		name           string
		safetyRating   string
		classification string
		wantErr        bool
	}{
		{"no classification on safe appliance", "safe", "", false},
		{"no classification on unsafe appliance", "at_risk", "", false},
		{"classification on at-risk appliance", "at_risk", "AR", false},
		{"classification on immediately dangerous appliance", "immediately_dangerous", "ID", false},
		{"classification on safe appliance", "safe", "AR", true},
		{"case-insensitive safe match", "Safe", "NCS", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := checkApplianceClassification(tc.safetyRating, tc.classification)
			if tc.wantErr && !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error %v", err)
			}
		})
	}
}
