package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kkennyy/call-what-ah/internal/cache"
	"github.com/kkennyy/call-what-ah/internal/model"
	"github.com/kkennyy/call-what-ah/internal/pipeline"
	"github.com/kkennyy/call-what-ah/internal/score"
	"github.com/kkennyy/call-what-ah/internal/validate"
)

var (
	checkLinks   bool
	noCache      bool
	auditFormat  string
	auditTimeout time.Duration
)

// auditCmd represents the audit command
var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Score how well the dialect dataset is backed by citations",
	Long: `Audit evaluates the dialect dataset:
- Coverage of each dialect across concepts
- Share of variants backed by citations
- Authority tier of cited sources
- Dialect-only terms without any citation
- With --check-links, whether cited pages are alive and carry the cited title

Every score lists the signals and inputs behind it.

Example:
  cwah audit
  cwah audit --check-links --format json`,
	Args: cobra.NoArgs,
	RunE: runAudit,
}

func init() {
	rootCmd.AddCommand(auditCmd)

	auditCmd.Flags().BoolVar(&checkLinks, "check-links", false, "fetch every cited URL (honours robots.txt and rate limits)")
	auditCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the link check cache (force fresh fetch)")
	auditCmd.Flags().StringVarP(&auditFormat, "format", "f", "", "output format: text, json or markdown (default: output.format)")
	auditCmd.Flags().DurationVar(&auditTimeout, "audit-timeout", 10*time.Minute, "total timeout for link checks")
}

func runAudit(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), auditTimeout)
	defer cancel()

	bundle, err := loadBundle(ctx)
	if err != nil {
		return err
	}
	authority := validate.NewAuthorityClassifier(&config.Authority)

	var checks []model.LinkCheck
	if checkLinks {
		sources := validate.UniqueSources(validate.Citations(bundle.Dialects))
		fmt.Fprintf(os.Stderr, "⚙️  Checking %d cited URLs...\n", len(sources))

		checker := validate.NewLinkChecker(validate.LinkCheckerOptions{
			HTTP:         config.HTTP,
			RateLimiting: config.RateLimiting,
			Authority:    &config.Authority,
			Workers:      config.Concurrency.ValidationWorkers,
			Cache:        linkCache(),
			CacheTTL:     config.Cache.DiskTTL,
			Logger:       logger,
		})
		checks = checker.Check(ctx, sources)
		if checks == nil {
			checks = []model.LinkCheck{}
		}
		fmt.Fprintf(os.Stderr, "✓ Checked %d URLs\n\n", len(checks))
	}

	report := score.NewAuditor(authority).Audit(bundle.Dialects, checks)

	format := auditFormat
	if format == "" {
		format = config.Output.Format
	}
	switch format {
	case pipeline.FormatJSON:
		return pipeline.RenderJSON(os.Stdout, report)
	case pipeline.FormatMarkdown:
		return renderAuditMarkdown(os.Stdout, report)
	default:
		return renderAuditText(os.Stdout, report)
	}
}

// linkCache returns the layered memory and disk cache, or nil when caching
// is disabled
func linkCache() cache.Cache {
	if noCache || !config.Cache.Enabled {
		return nil
	}
	memory := cache.NewMemoryCache(config.Cache.DiskTTL, 10*time.Minute, config.Cache.MaxEntries)

	dir := config.Cache.Dir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			logger.Warn("no home directory, link cache is memory only", zap.Error(err))
			return memory
		}
		dir = filepath.Join(home, ".cwah", "cache")
	}
	return cache.NewLayeredCache(memory, cache.NewDiskCache(dir, config.Cache.DiskTTL))
}

func renderAuditText(w io.Writer, r model.AuditReport) error {
	b := &strings.Builder{}
	fmt.Fprintf(b, "Dataset:  %s (%d concepts)\n", versionOrUnknown(r.DatasetVersion), r.Concepts)
	fmt.Fprintf(b, "Index:    %d/100 (%s confidence)\n\n", r.Score.Index, r.Score.Confidence)

	fmt.Fprintf(b, "%-24s %8s %9s %7s %9s %6s\n", "DIALECT", "VARIANTS", "PREFERRED", "CITED", "DIVERGENT", "SCORE")
	for _, d := range r.Dialects {
		fmt.Fprintf(b, "%-24s %8d %9d %7d %9d %6d\n",
			d.DialectID, d.Variants, d.WithPreferred, d.SourceBacked, d.Divergent, d.Score.Index)
	}

	b.WriteString("\nSignals:\n")
	for _, s := range r.Score.Signals {
		fmt.Fprintf(b, "  [%s] %s: %s\n", s.Severity, s.Type, s.Description)
	}

	if r.LinkChecks != nil {
		dead, blocked := 0, 0
		for _, c := range r.LinkChecks {
			if c.IsDead {
				dead++
				fmt.Fprintf(b, "  dead link: %s (%s)\n", c.URL, deadReason(c))
			}
			if c.RobotsBlocked {
				blocked++
			}
		}
		fmt.Fprintf(b, "\nLinks: %d checked, %d dead, %d blocked by robots.txt\n", len(r.LinkChecks), dead, blocked)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func renderAuditMarkdown(w io.Writer, r model.AuditReport) error {
	b := &strings.Builder{}
	b.WriteString("# Dataset audit\n\n")
	fmt.Fprintf(b, "- **Dataset:** %s\n", versionOrUnknown(r.DatasetVersion))
	fmt.Fprintf(b, "- **Concepts:** %d\n", r.Concepts)
	fmt.Fprintf(b, "- **Index:** %d/100 (%s confidence)\n", r.Score.Index, r.Score.Confidence)
	fmt.Fprintf(b, "- **Audited:** %s\n\n", r.AuditedAt.Format(time.RFC3339))

	b.WriteString("| Dialect | Variants | Preferred | Cited | Divergent | Score |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	for _, d := range r.Dialects {
		fmt.Fprintf(b, "| %s | %d | %d | %d | %d | %d |\n",
			d.Label, d.Variants, d.WithPreferred, d.SourceBacked, d.Divergent, d.Score.Index)
	}

	b.WriteString("\n## Signals\n\n")
	for _, s := range r.Score.Signals {
		fmt.Fprintf(b, "- **%s** (%s): %s\n", s.Type, s.Severity, s.Description)
	}

	if len(r.LinkChecks) > 0 {
		b.WriteString("\n## Links\n\n")
		for _, c := range r.LinkChecks {
			status := "ok"
			if c.IsDead {
				status = "dead: " + deadReason(c)
			} else if c.RobotsBlocked {
				status = "blocked by robots.txt"
			}
			fmt.Fprintf(b, "- <%s> %s, %s\n", c.URL, c.Authority, status)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func deadReason(c model.LinkCheck) string {
	if c.Error != "" {
		return c.Error
	}
	return fmt.Sprintf("HTTP %d", c.StatusCode)
}

func versionOrUnknown(v string) string {
	if v == "" {
		return "unversioned"
	}
	return v
}
