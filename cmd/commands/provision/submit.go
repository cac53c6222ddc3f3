package provision

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"nathanbeddoewebdev/infrachat/internal/auditlog"
	"nathanbeddoewebdev/infrachat/internal/config"
	"nathanbeddoewebdev/infrachat/internal/logging"
	"nathanbeddoewebdev/infrachat/internal/provision/domain"
	provisioning "nathanbeddoewebdev/infrachat/internal/provision/services"
	"nathanbeddoewebdev/infrachat/internal/services"
	"nathanbeddoewebdev/infrachat/internal/tui"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

// errSubmitFailed is returned after a failed submission has been printed.
var errSubmitFailed = errors.New("provisioning request failed")

func SubmitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit <message>",
		Short: "Submit a single provisioning request",
		Long: `Submit one plain-English provisioning request and print the assistant
reply and the terminal trace.

The command exits non-zero when the request is rejected or fails.

Examples:
  infrachat provision submit --type database "create a postgres db called orders"
  infrachat provision submit --type storage --verify "create a bucket called assets"
  infrachat provision submit --type server -o json "list my servers"`,
		Args:         cobra.MinimumNArgs(1),
		RunE:         runSubmit,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("type", "t", "", typeFlagUsage()+" (required)")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")
	cmd.Flags().Duration("timeout", 2*time.Minute, "Maximum time to wait for the request")
	cmd.Flags().Bool("verify", false, "Wait for the post-create check of new storage buckets")

	return cmd
}

func runSubmit(cmd *cobra.Command, args []string) error {
	start := time.Now()

	rt, err := resourceTypeFlag(cmd)
	if err != nil {
		return err
	}
	if rt == "" {
		return errors.New("--type is required")
	}

	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")
	verify, _ := cmd.Flags().GetBool("verify")

	logger := logging.FromContext(cmd.Context())
	settings, err := config.Resolve()
	if err != nil {
		return err
	}

	var reports []provisioning.VerifyReport
	var extra []provisioning.Option
	if verify {
		extra = append(extra, provisioning.WithVerifyObserver(func(r provisioning.VerifyReport) {
			reports = append(reports, r)
		}))
	}

	svc, err := services.NewProvisioning(cmd.Context(), settings, services.ProvisioningOptions{
		Logger: logger,
		Extra:  extra,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	message := strings.Join(args, " ")
	var resp *domain.Response
	var submitErr error
	submit := func(ctx context.Context) error {
		resp, submitErr = svc.Submit(ctx, message, rt)
		return nil
	}

	if output == "table" && term.IsTerminal(int(os.Stderr.Fd())) {
		if err := tui.RunWithSpinner(ctx, fmt.Sprintf("Provisioning %s...", rt.Noun()), submit); err != nil {
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Request cancelled.")
				return nil
			}
			return err
		}
	} else {
		submit(ctx)
	}

	// Verification runs detached; the observer slice is only read after Wait.
	svc.Wait()

	model := modelLabel(settings)
	auditlog.NewRecorder(logger).RecordResponse(cmd.Context(), cmd.CommandPath(), args, start, model, resp, submitErr)

	if output == "json" {
		if err := printJSON(cmd.OutOrStdout(), resp); err != nil {
			return err
		}
	} else {
		printResponse(cmd.OutOrStdout(), resp)
		for _, r := range reports {
			printVerifyReport(cmd, r)
		}
	}

	if submitErr != nil {
		return submitErr
	}
	if !resp.Success {
		return errSubmitFailed
	}
	return nil
}

func printVerifyReport(cmd *cobra.Command, r provisioning.VerifyReport) {
	w := cmd.OutOrStdout()
	switch {
	case r.Err != nil:
		fmt.Fprintf(w, "%sCould not verify bucket %s: %v\n", domain.TraceError.Prefix(), r.Bucket, r.Err)
	case r.Found:
		fmt.Fprintf(w, "%sBucket %s is listed by the storage flow\n", domain.TraceSuccess.Prefix(), r.Bucket)
	default:
		fmt.Fprintf(w, "%sBucket %s was not listed by the storage flow\n", domain.TraceError.Prefix(), r.Bucket)
	}
}
