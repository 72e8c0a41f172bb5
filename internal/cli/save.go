package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Abdielcoder/int-bonos/internal/store"
)

// SaveOptions holds flags for the save command.
type SaveOptions struct {
	*RootOptions
	Agent        string
	Subramo      string
	Policy       string
	Kind         string
	Responsible  string
	PaymentID    string
	TargetDate   string
	Reason       string
	NewPolicy    string
	RequestFile  string
	ResponseFile string
}

// NewSaveCommand creates the save command.
func NewSaveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SaveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Persist an API-confirmed adjustment",
		Long: `Persist a completed, API-confirmed adjustment so the grid can resolve
it. The save is an upsert on (agent, subramo, policy, kind): a second save
with the same key replaces the prior record.

Example:
  bonos save --agent A1 --subramo VIDA --policy P100 --kind PRIMA \
    --payment-id PAY55 --target-date 2025-02-01 --responsible evelyn`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Agent, "agent", "", "agent identifier")
	cmd.Flags().StringVar(&opts.Subramo, "subramo", "", "subramo (sub-line) identifier")
	cmd.Flags().StringVar(&opts.Policy, "policy", "", "policy number")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "adjustment kind: PRIMA or NUEVO_NEGOCIO")
	cmd.Flags().StringVar(&opts.Responsible, "responsible", "", "responsible user")
	cmd.Flags().StringVar(&opts.PaymentID, "payment-id", "", "payment identifier (PRIMA)")
	cmd.Flags().StringVar(&opts.TargetDate, "target-date", "", "new first-payment date")
	cmd.Flags().StringVar(&opts.Reason, "reason", "", "free-text reason")
	cmd.Flags().StringVar(&opts.NewPolicy, "new-policy", "", "linked new-business policy number (NUEVO_NEGOCIO)")
	cmd.Flags().StringVar(&opts.RequestFile, "request", "", "file with the original request payload (JSON)")
	cmd.Flags().StringVar(&opts.ResponseFile, "response", "", "file with the remote API response (JSON)")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("responsible")

	return cmd
}

func runSave(opts *SaveOptions, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}

	rec := &store.AdjustmentRecord{
		Agent:             opts.Agent,
		Subramo:           opts.Subramo,
		PolicyNumber:      opts.Policy,
		Kind:              store.Kind(opts.Kind),
		Responsible:       opts.Responsible,
		PaymentID:         opts.PaymentID,
		TargetDate:        opts.TargetDate,
		Reason:            opts.Reason,
		NewBusinessPolicy: opts.NewPolicy,
	}

	var err error
	if rec.RequestSnapshot, err = readSnapshot(opts.RequestFile); err != nil {
		return WrapExitError(ExitCommandError, "read request snapshot", err)
	}
	if rec.ResponseSnapshot, err = readSnapshot(opts.ResponseFile); err != nil {
		return WrapExitError(ExitCommandError, "read response snapshot", err)
	}

	s, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "open database", err)
	}
	defer s.Close()

	if err := s.Save(cmd.Context(), rec); err != nil {
		if store.IsValidation(err) {
			return out.Failure(ExitFailure, "VALIDATION", err.Error())
		}
		return WrapExitError(ExitCommandError, "save adjustment", err)
	}

	slog.Debug("adjustment saved",
		"id", rec.ID,
		"agent", rec.Agent,
		"subramo", rec.Subramo,
		"policy", rec.PolicyNumber,
		"kind", rec.Kind,
	)

	return out.Success(rec, fmt.Sprintf("saved %s %s/%s/%s (%s)",
		rec.ID, rec.Agent, rec.Subramo, rec.PolicyNumber, rec.Kind))
}

// readSnapshot loads an opaque JSON snapshot file; validates it parses so
// round-tripping is safe, but does not interpret the structure.
func readSnapshot(path string) (json.RawMessage, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !json.Valid(data) {
		return nil, fmt.Errorf("%s: not valid JSON", path)
	}
	return json.RawMessage(data), nil
}
