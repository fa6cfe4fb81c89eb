package audit

import (
	"reflect"
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name       string
		app        ComputeApplication
		wantIssues []string
		wantScore  int
	}{
		{
			name:      "clean app",
			app:       ComputeApplication{State: StateRunning, HTTPSOnly: true, MinTLSVersion: "1.2", FTPS: FtpsDisabled},
			wantScore: 0,
		},
		{
			name:       "stopped only",
			app:        ComputeApplication{State: StateStopped, HTTPSOnly: true, MinTLSVersion: "1.2", FTPS: FtpsDisabled},
			wantIssues: []string{IssueStopped},
			wantScore:  20,
		},
		{
			name:       "http allowed only",
			app:        ComputeApplication{State: StateRunning, HTTPSOnly: false, MinTLSVersion: "1.2", FTPS: FtpsOnly},
			wantIssues: []string{IssueHTTPAllowed},
			wantScore:  15,
		},
		{
			name:       "old TLS 1.0",
			app:        ComputeApplication{State: StateRunning, HTTPSOnly: true, MinTLSVersion: "1.0", FTPS: FtpsDisabled},
			wantIssues: []string{IssueOldTLS},
			wantScore:  10,
		},
		{
			name:       "old TLS 1.1",
			app:        ComputeApplication{State: StateRunning, HTTPSOnly: true, MinTLSVersion: "1.1", FTPS: FtpsDisabled},
			wantIssues: []string{IssueOldTLS},
			wantScore:  10,
		},
		{
			name:       "ftps all allowed only",
			app:        ComputeApplication{State: StateRunning, HTTPSOnly: true, MinTLSVersion: "1.2", FTPS: FtpsAllAllowed},
			wantIssues: []string{IssueFTPSRisk},
			wantScore:  5,
		},
		{
			name:       "everything wrong",
			app:        ComputeApplication{State: StateStopped, HTTPSOnly: false, MinTLSVersion: "1.0", FTPS: FtpsAllAllowed},
			wantIssues: []string{IssueStopped, IssueHTTPAllowed, IssueOldTLS, IssueFTPSRisk},
			wantScore:  50,
		},
		{
			name:      "unknown state is not a risk",
			app:       ComputeApplication{State: StateUnknown, HTTPSOnly: true, MinTLSVersion: "1.2", FTPS: FtpsUnknown},
			wantScore: 0,
		},
		{
			name:      "tls 1.3 is fine",
			app:       ComputeApplication{State: StateRunning, HTTPSOnly: true, MinTLSVersion: "1.3", FTPS: FtpsDisabled},
			wantScore: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues, score := Score(tt.app)
			if !reflect.DeepEqual(issues, tt.wantIssues) {
				t.Fatalf("issues = %v, want %v", issues, tt.wantIssues)
			}
			if score != tt.wantScore {
				t.Fatalf("score = %d, want %d", score, tt.wantScore)
			}
			if (score != 0) != (len(issues) != 0) {
				t.Fatalf("score nonzero iff issues non-empty violated: score=%d issues=%v", score, issues)
			}
		})
	}
}

func TestScore_MissingOwnerIsNotARisk(t *testing.T) {
	app := ComputeApplication{State: StateRunning, HTTPSOnly: true, MinTLSVersion: "1.2", FTPS: FtpsDisabled, Owner: ""}
	issues, score := Score(app)
	if len(issues) != 0 || score != 0 {
		t.Fatalf("missing owner must never produce a finding, got issues=%v score=%d", issues, score)
	}
}

func TestScoreAll_SkipsCleanApps(t *testing.T) {
	apps := []ComputeApplication{
		{Name: "clean", State: StateRunning, HTTPSOnly: true, MinTLSVersion: "1.2", FTPS: FtpsDisabled},
		{Name: "dirty", State: StateStopped, HTTPSOnly: true, MinTLSVersion: "1.2", FTPS: FtpsDisabled},
	}

	findings := ScoreAll(apps)

	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].App.Name != "dirty" || findings[0].Score != 20 {
		t.Fatalf("unexpected finding: %+v", findings[0])
	}
}
