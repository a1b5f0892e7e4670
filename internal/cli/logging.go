package cli

import (
	"fmt"
	"strings"

	"github.com/zeromicro/go-zero/core/logx"

	"fapitrade/internal/config"
	"fapitrade/pkg/confkit"
)

// ConfigSummaryLines returns human readable lines describing the loaded app config.
func ConfigSummaryLines(cfg *config.Config) []string {
	if cfg == nil {
		return []string{"Configuration: <nil>"}
	}

	lines := []string{
		fmt.Sprintf("Environment: %s", cfg.Env),
		fmt.Sprintf("Dry run: %s", enabled(cfg.DryRun)),
		sectionLine("Exchange config", cfg.Exchange),
		fmt.Sprintf("Order: %s %s %s qty=%s%s",
			strings.ToUpper(cfg.Order.Type),
			strings.ToUpper(cfg.Order.Side),
			cfg.Order.Symbol,
			cfg.Order.Quantity,
			priceSuffix(cfg.Order.Price),
		),
	}
	if cfg.DryRun {
		lines = append(lines, fmt.Sprintf("Dry run balance: %s", cfg.DryRunBalance))
	}

	return lines
}

// LogConfigSummary emits the configuration summary using logx.
func LogConfigSummary(cfg *config.Config) {
	lines := ConfigSummaryLines(cfg)
	if len(lines) == 0 {
		return
	}
	logx.Info("configuration summary")
	for _, line := range lines {
		logx.Infof("config • %s", line)
	}
}

func enabled(ok bool) string {
	if ok {
		return "enabled"
	}
	return "disabled"
}

func priceSuffix(price string) string {
	if strings.TrimSpace(price) == "" {
		return ""
	}
	return " price=" + price
}

func sectionLine[T any](name string, section confkit.Section[T]) string {
	switch {
	case strings.TrimSpace(section.File) != "":
		return fmt.Sprintf("%s: %s", name, section.File)
	case section.Value != nil:
		return fmt.Sprintf("%s: inline", name)
	default:
		return fmt.Sprintf("%s: environment", name)
	}
}
