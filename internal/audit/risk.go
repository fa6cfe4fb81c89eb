package audit

// Issue tags and weights for the fixed risk rule set. Rules are evaluated
// independently and contribute additively; missing owner attribution is
// governance metadata, tracked in distribution counts, and is deliberately
// not a risk rule.
const (
	IssueStopped     = "Stopped"
	IssueHTTPAllowed = "HTTP Allowed"
	IssueOldTLS      = "Old TLS"
	IssueFTPSRisk    = "FTPS Risk"

	weightStopped     = 20
	weightHTTPAllowed = 15
	weightOldTLS      = 10
	weightFTPSRisk    = 5
)

// Score evaluates one application against the risk rule set. The score is
// the sum of matched weights; a clean application returns (nil, 0).
func Score(app ComputeApplication) (issues []string, score int) {
	if app.State == StateStopped {
		issues = append(issues, IssueStopped)
		score += weightStopped
	}
	if !app.HTTPSOnly {
		issues = append(issues, IssueHTTPAllowed)
		score += weightHTTPAllowed
	}
	if app.MinTLSVersion == "1.0" || app.MinTLSVersion == "1.1" {
		issues = append(issues, IssueOldTLS)
		score += weightOldTLS
	}
	if app.FTPS == FtpsAllAllowed {
		issues = append(issues, IssueFTPSRisk)
		score += weightFTPSRisk
	}
	return issues, score
}

// ScoreAll produces a RiskFinding for every application that matched at
// least one rule, in input order.
func ScoreAll(apps []ComputeApplication) []RiskFinding {
	var findings []RiskFinding
	for _, app := range apps {
		issues, score := Score(app)
		if len(issues) == 0 {
			continue
		}
		findings = append(findings, RiskFinding{App: app, Issues: issues, Score: score})
	}
	return findings
}
