package initializer

import (
	"io"
	"log/slog"
	"os"

	"github.com/amirasaad/minibank/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var levelColors = map[log.Level]lipgloss.AdaptiveColor{
	log.DebugLevel: {Light: "#7E57C2", Dark: "#7E57C2"},
	log.InfoLevel:  {Light: "#04B575", Dark: "#04B575"},
	log.WarnLevel:  {Light: "#EE6FF8", Dark: "#EE6FF8"},
	log.ErrorLevel: {Light: "#FF6B6B", Dark: "#FF6B6B"},
}

func logStyles() *log.Styles {
	styles := log.DefaultStyles()
	for level, color := range levelColors {
		styles.Levels[level] = lipgloss.NewStyle().
			SetString(level.String()).
			Bold(true).
			MaxWidth(5).
			Padding(0, 1).
			Foreground(color)
	}

	accent := levelColors[log.DebugLevel]
	styles.Keys["error"] = lipgloss.NewStyle().Foreground(levelColors[log.ErrorLevel])
	styles.Values["error"] = lipgloss.NewStyle().Bold(true)
	for _, key := range []string{"from", "to", "amount", "component", "provider"} {
		styles.Keys[key] = lipgloss.NewStyle().Foreground(accent)
		styles.Values[key] = lipgloss.NewStyle().Bold(true)
	}
	return styles
}

// NewLogger builds the charmbracelet slog handler described by cfg, writing
// to w.
func NewLogger(cfg *config.Log, w io.Writer) *slog.Logger {
	formatter := log.TextFormatter
	if cfg.Format == "json" {
		formatter = log.JSONFormatter
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(logStyles())
	return slog.New(logger)
}

func setupLogger(cfg *config.Log) *slog.Logger {
	slogger := NewLogger(cfg, os.Stdout)
	slog.SetDefault(slogger)
	return slogger
}
