package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zjrosen/asana/internal/presentation"
	"github.com/zjrosen/asana/internal/registration"
)

// errNotBooked marks a submit that printed its own failure.
var errNotBooked = errors.New("registration was not booked")

// notBooked silences cobra's "Error:" line, which would repeat the failure
// already written, and returns errNotBooked for the exit status.
func notBooked(cmd *cobra.Command) error {
	cmd.SilenceErrors = true
	return errNotBooked
}

var (
	submitFile   string
	submitJSON   bool
	submitFields = map[registration.Field]*string{}
)

// submitFlags names the flag for each field.
var submitFlags = map[registration.Field]string{
	registration.FieldFirstName: "first-name",
	registration.FieldLastName:  "last-name",
	registration.FieldMobile:    "mobile",
	registration.FieldEmail:     "email",
	registration.FieldAge:       "age",
	registration.FieldGender:    "gender",
	registration.FieldSlot:      "slot",
}

var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Book a class without the interactive form",
	Long: `Validate a registration and submit it to the booking API in one step.

Field values come from flags, from a YAML or JSON file (--file), or both;
flags override values read from the file. Invalid fields are listed and no
request is sent.

File keys match the request body: firstName, lastName, mobile, email, age,
gender and slot.

Examples:
  # Everything from flags
  asana submit --first-name Asha --last-name Iyer --email asha@example.com \
    --mobile 9876543210 --age 30 --gender Female --slot Morning

  # From a file, overriding the slot
  asana submit -f me.yaml --slot Evening

  # Machine-readable output
  asana submit -f me.yaml --json | jq .request_id`,
	Args: cobra.NoArgs,
	RunE: runSubmit,
}

func init() {
	for _, f := range registration.Fields {
		submitFields[f] = submitCmd.Flags().String(submitFlags[f], "", f.Label())
	}
	submitCmd.Flags().StringVarP(&submitFile, "file", "f", "", "YAML or JSON file with field values")
	submitCmd.Flags().BoolVar(&submitJSON, "json", false, "print the result as JSON")
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, _ []string) error {
	draft := registration.Draft{}
	if submitFile != "" {
		var err error
		if draft, err = readDraft(submitFile); err != nil {
			return err
		}
	}
	for _, f := range registration.Fields {
		if cmd.Flags().Changed(submitFlags[f]) {
			draft = draft.Set(f, *submitFields[f])
		}
	}

	services, shutdown, err := newServices(cfg, cfgPath)
	if err != nil {
		return err
	}
	defer shutdown()

	ctrl := registration.NewController(services.Booker)
	for _, f := range registration.Fields {
		ctrl.SetField(f, draft.Get(f))
	}

	out, err := ctrl.Submit(cmd.Context())
	var fieldErrs registration.Errors
	if errors.As(err, &fieldErrs) {
		printFieldErrors(cmd.OutOrStdout(), cmd.ErrOrStderr(), fieldErrs)
		return notBooked(cmd)
	}
	if err != nil {
		return err
	}
	if out.Err != nil {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "✗ "+out.Notice.Message)
		return notBooked(cmd)
	}

	if submitJSON {
		return presentation.NewFormatter(cmd.OutOrStdout()).FormatBooking(presentation.FromConfirmation(*out.Confirmation))
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "✓ %s\nRequest %s · HTTP %d\n",
		out.Notice.Message, out.Confirmation.RequestID, out.Confirmation.StatusCode)
	return nil
}

func printFieldErrors(stdout, stderr io.Writer, errs registration.Errors) {
	dtos := presentation.FromErrors(errs)
	if submitJSON {
		_ = presentation.NewFormatter(stdout).FormatFieldErrors(dtos)
		return
	}
	for _, e := range dtos {
		_, _ = fmt.Fprintf(stderr, "✗ %s: %s\n", e.Label, e.Message)
	}
}

// readDraft loads field values keyed by their JSON names. JSON input is
// accepted since it is valid YAML.
func readDraft(path string) (registration.Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return registration.Draft{}, fmt.Errorf("reading %s: %w", path, err)
	}

	values := map[string]string{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return registration.Draft{}, fmt.Errorf("parsing %s: %w", path, err)
	}

	var draft registration.Draft
	var unknown []string
	for key, value := range values {
		f, ok := registration.ParseField(key)
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		draft = draft.Set(f, value)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return registration.Draft{}, fmt.Errorf("parsing %s: unknown fields %s", path, strings.Join(unknown, ", "))
	}
	return draft, nil
}
