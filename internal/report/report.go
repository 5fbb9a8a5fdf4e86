package report

import (
	"fmt"
	"io"
	"strings"

	"logmon/internal/feature"
	"logmon/internal/scan"
	"logmon/internal/types"
)

const rule = "----------------------------------"

// Reporter prints human readable run summaries
type Reporter struct {
	out   io.Writer
	errw  io.Writer
	style Style
}

// NewReporter writes summaries to out and failures to errw
func NewReporter(out, errw io.Writer, style Style) *Reporter {
	return &Reporter{out: out, errw: errw, style: style}
}

// WithStyle returns a reporter sharing the writers but using another style
func (r *Reporter) WithStyle(style Style) *Reporter {
	return &Reporter{out: r.out, errw: r.errw, style: style}
}

// Banner prints the startup header
func (r *Reporter) Banner(cfg types.Config) {
	mode := "single-scan"
	if cfg.Follow.Enabled {
		mode = fmt.Sprintf("follow (%s)", cfg.Follow.Interval)
	}
	fmt.Fprintln(r.out, r.style.Cyan("[INFO] Starting Log Monitor"))
	fmt.Fprintf(r.out, "File: %s\n", sanitize(cfg.Input.FilePath))
	fmt.Fprintf(r.out, "Failed-login threshold: %d\n", cfg.Detection.FailedThreshold)
	fmt.Fprintf(r.out, "Mode: %s\n\n", mode)
}

// Run prints the counts of a finished run, its alert banners and the
// suspicious addresses. savedTo names the sink when alerts were persisted.
func (r *Reporter) Run(res *scan.Result, savedTo string) {
	c := res.Counters

	fmt.Fprintf(r.out, "\n%s\n", rule)
	fmt.Fprintln(r.out, "Scan Results:")
	fmt.Fprintf(r.out, "  Failed logins: %d\n", c.FailedLogins)
	fmt.Fprintf(r.out, "  Errors:        %d\n", c.Errors)
	fmt.Fprintf(r.out, "  Criticals:     %d\n", c.Criticals)
	fmt.Fprintln(r.out, rule)

	for _, a := range res.Alerts {
		if a.Severity == types.SeverityCritical {
			fmt.Fprintln(r.out, r.style.Red("🚨 "+a.Line()))
		} else {
			fmt.Fprintln(r.out, r.style.Yellow("⚠️ "+a.Line()))
		}
	}

	if len(c.Addresses) > 0 {
		fmt.Fprintln(r.out, "\n🔎 Suspicious IPs:")
		for _, ac := range feature.SortedAddresses(c.Addresses) {
			fmt.Fprintf(r.out, "   %s → %d attempts\n", ac.Address, ac.Count)
		}
	}

	if res.Alerted && savedTo != "" {
		fmt.Fprintln(r.out, r.style.Green("✅ Alerts saved to "+savedTo))
	}
}

// Failure reports an error on the error writer
func (r *Reporter) Failure(err error) {
	fmt.Fprintf(r.errw, "❌ %s\n", sanitize(err.Error()))
}

// sanitize strips control characters (except newline and tab) to prevent terminal injection
func sanitize(s string) string {
	var builder strings.Builder
	for _, r := range s {
		if r >= 32 || r == '\n' || r == '\t' {
			builder.WriteRune(r)
		}
	}
	return builder.String()
}
