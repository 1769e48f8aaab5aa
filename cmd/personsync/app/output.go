package app

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/agentstation/personsync/pkg/config"
	"github.com/agentstation/personsync/pkg/errors"
	"github.com/agentstation/personsync/pkg/reconciler"
	"github.com/agentstation/personsync/pkg/topdesk"
)

// Output formats
const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validateFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return errors.NewValidationError("format", format, "must be one of text, json, yaml")
	}
}

// resultView is the printed form of a reconciliation result.
type resultView struct {
	RequestID  string          `json:"request_id,omitempty" yaml:"request_id,omitempty"`
	Email      string          `json:"email" yaml:"email"`
	Outcome    string          `json:"outcome" yaml:"outcome"`
	Action     string          `json:"action" yaml:"action"`
	Person     *topdesk.Person `json:"person,omitempty" yaml:"person,omitempty"`
	StatusCode int             `json:"status_code,omitempty" yaml:"status_code,omitempty"`
	Body       string          `json:"body,omitempty" yaml:"body,omitempty"`
	DurationMS int64           `json:"duration_ms" yaml:"duration_ms"`
}

func printResult(w io.Writer, format, requestID string, r *reconciler.Result) error {
	if format == formatText {
		_, err := fmt.Fprintln(w, r.Summary())
		return err
	}

	view := resultView{
		RequestID:  requestID,
		Email:      r.Email,
		Outcome:    r.Outcome.String(),
		Action:     r.Action.String(),
		Person:     r.Person,
		DurationMS: r.Duration.Milliseconds(),
	}
	if r.Create != nil {
		view.StatusCode = r.Create.StatusCode
		view.Body = r.Create.Body
	}
	return encode(w, format, view)
}

type probeView struct {
	Email   string `json:"email" yaml:"email"`
	Outcome string `json:"outcome" yaml:"outcome"`
}

func printProbe(w io.Writer, format, email string, outcome topdesk.LookupOutcome) error {
	if format == formatText {
		_, err := fmt.Fprintf(w, "%s: %s\n", email, outcome)
		return err
	}
	return encode(w, format, probeView{Email: email, Outcome: outcome.String()})
}

type configView struct {
	BaseURL     string `json:"baseURL" yaml:"baseURL"`
	Username    string `json:"username" yaml:"username"`
	Password    string `json:"password" yaml:"password"`
	BranchID    string `json:"branchId" yaml:"branchId"`
	Timeout     string `json:"timeout" yaml:"timeout"`
	ProbeMethod string `json:"probeMethod" yaml:"probeMethod"`
}

func printConfig(w io.Writer, format string, cfg config.Config) error {
	view := configView{
		BaseURL:     cfg.BaseURL,
		Username:    cfg.Username,
		Password:    cfg.Password,
		BranchID:    cfg.BranchID,
		Timeout:     cfg.Timeout.String(),
		ProbeMethod: cfg.ProbeMethod,
	}
	if format == formatText {
		return renderTable(w, []string{"Setting", "Value"}, [][]string{
			{config.KeyBaseURL, view.BaseURL},
			{config.KeyUsername, view.Username},
			{config.KeyPassword, view.Password},
			{config.KeyBranchID, view.BranchID},
			{config.KeyTimeout, view.Timeout},
			{config.KeyProbeMethod, view.ProbeMethod},
		})
	}
	return encode(w, format, view)
}

func renderTable(w io.Writer, headers []string, rows [][]string) error {
	align := make([]tw.Align, len(headers))
	for i := range align {
		align[i] = tw.AlignLeft
	}
	cfg := tablewriter.Config{}
	cfg.Row.Alignment = tw.CellAlignment{PerColumn: align}
	table := tablewriter.NewTable(w, tablewriter.WithConfig(cfg))

	header := make([]any, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	table.Header(header...)

	for _, row := range rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cell
		}
		if err := table.Append(cells...); err != nil {
			return err
		}
	}
	return table.Render()
}

func encode(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		data, err := yaml.Marshal(v)
		if err != nil {
			return errors.WrapParse("yaml", "output", err)
		}
		_, err = w.Write(data)
		return err
	}
}
