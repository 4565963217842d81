package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjrosen/asana/internal/log"
	"github.com/zjrosen/asana/internal/mode"
	"github.com/zjrosen/asana/internal/mode/dashboard"
	"github.com/zjrosen/asana/internal/prompt"
	"github.com/zjrosen/asana/internal/registration"
	"github.com/zjrosen/asana/internal/ui/markdown"
)

// runPlain asks for each field on its own line and prints the booking
// summary instead of opening the dashboard.
func runPlain(cmd *cobra.Command, services mode.Services) error {
	ctrl := registration.NewController(services.Booker)
	out, err := prompt.NewFlow(prompt.NewSurveyDriver(), ctrl).Run(cmd.Context())
	if errors.Is(err, prompt.ErrAborted) {
		if out.Err != nil {
			return out.Err
		}
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Registration cancelled.")
		return nil
	}
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), out.Confirmation, services.Config.UI.MarkdownStyle)
	return nil
}

// printSummary writes the dashboard summary for conf, styled when glamour can render it.
func printSummary(w io.Writer, conf *registration.Confirmation, style string) {
	md := dashboard.Summary(conf)
	r, err := markdown.New(80, style)
	if err == nil {
		if rendered, renderErr := r.Render(md); renderErr == nil {
			md = rendered
		} else {
			err = renderErr
		}
	}
	if err != nil {
		log.Warn(log.CatUI, "Printing raw summary", "error", err)
	}
	_, _ = fmt.Fprint(w, md)
}
