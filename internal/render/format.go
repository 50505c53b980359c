package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cleo-engine/cleo/internal/dispatch"
)

// Format names one of the CLI's output renderers.
type Format string

const (
	FormatText  Format = "text"
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
)

// ResolveFormat applies the precedence flag > env > config > TTY-aware
// default (text for a terminal, json otherwise).
func ResolveFormat(flag, envValue, configValue string) Format {
	for _, v := range []string{flag, envValue, configValue} {
		if v != "" {
			return Format(v)
		}
	}
	if IsTerminal() {
		return FormatText
	}
	return FormatJSON
}

// WriteEnvelope renders env to w in format.
func WriteEnvelope(w io.Writer, env dispatch.Envelope, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, env)
	case FormatCSV:
		return writeCSV(w, env)
	case FormatHuman:
		return writeHuman(w, env)
	default:
		return writeText(w, env)
	}
}

func writeJSON(w io.Writer, env dispatch.Envelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

func writeText(w io.Writer, env dispatch.Envelope) error {
	if !env.Success {
		_, err := fmt.Fprintf(w, "error: %s: %s\n", env.Error.Code, env.Error.Message)
		return err
	}
	_, err := fmt.Fprintf(w, "%v\n", env.Data)
	return err
}

func writeHuman(w io.Writer, env dispatch.Envelope) error {
	if !env.Success {
		style := ColorFail
		_, err := fmt.Fprintf(w, "%s\n", newStyledLine(style, "✗ "+env.Error.Message))
		return err
	}
	style := ColorPass
	_, err := fmt.Fprintf(w, "%s\n", newStyledLine(style, fmt.Sprintf("✓ %s.%s", env.Meta.Domain, env.Meta.Operation)))
	return err
}

// rowsOf flattens a []map[string]any into a header row plus data rows,
// for CSV export of list-shaped envelope data.
func rowsOf(data any) ([]string, [][]string, bool) {
	items, ok := data.([]map[string]any)
	if !ok || len(items) == 0 {
		return nil, nil, false
	}
	headerSet := make(map[string]bool)
	var header []string
	for _, item := range items {
		for k := range item {
			if !headerSet[k] {
				headerSet[k] = true
				header = append(header, k)
			}
		}
	}
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		row := make([]string, len(header))
		for i, h := range header {
			row[i] = fmt.Sprintf("%v", item[h])
		}
		rows = append(rows, row)
	}
	return header, rows, true
}

func writeCSV(w io.Writer, env dispatch.Envelope) error {
	if !env.Success {
		return writeText(w, env)
	}
	header, rows, ok := rowsOf(env.Data)
	if !ok {
		return writeText(w, env)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// HumanReplSupported reports whether stdout is an interactive terminal with
// colour enabled (NO_COLOR unset and TERM not "dumb").
func HumanReplSupported() bool {
	return IsTerminal() && os.Getenv("NO_COLOR") == "" && !strings.EqualFold(os.Getenv("TERM"), "dumb")
}
