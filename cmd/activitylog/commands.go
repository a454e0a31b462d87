package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/keyxmakerx/campaignlog/internal/activitylog"
)

// options holds the flags shared by every subcommand.
type options struct {
	performer string
	role      string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "activitylog",
		Short: "Classify and format campaign activity log lines",
		Long: `Reads raw log lines, one per line, from the given files or stdin.
A line starting with "{" is decoded as a JSON log entry
({"action", "performedBy", "performerRole", "createdAt"}); any other line is
taken as the raw action text, performed by --performer with role --role.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.performer, "performer", "", "performer name for plain-text lines")
	root.PersistentFlags().StringVar(&opts.role, "role", "", "performer role for plain-text lines (admin, client, creator, superadmin)")

	root.AddCommand(
		newClassifyCmd(opts),
		newFormatCmd(opts),
		newContextCmd(opts),
	)
	return root
}

func newClassifyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "classify [file...]",
		Short: "Print each line as a classified JSON log entry",
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			return eachEntry(cmd, args, opts, func(e activitylog.LogEntry) error {
				return enc.Encode(activitylog.Process(e))
			})
		},
	}
}

func newFormatCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "format [file...]",
		Short: "Print the display form of each line",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			return eachEntry(cmd, args, opts, func(e activitylog.LogEntry) error {
				l := activitylog.Process(e)
				_, err := fmt.Fprintf(out, "%-18s %s\n", l.Category, l.FormattedAction)
				return err
			})
		},
	}
}

func newContextCmd(opts *options) *cobra.Command {
	var campaignPath string

	cmd := &cobra.Command{
		Use:   "context [file...]",
		Short: "Print the extracted context of each line as JSON",
		Long: `Extracts creator, campaign, invoice and amount context from each line.
With --campaign, creators are resolved against the campaign JSON file
(the same shape GET /api/v1/campaigns/:id returns).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var campaign *activitylog.Campaign
			if campaignPath != "" {
				c, err := readCampaign(campaignPath)
				if err != nil {
					return err
				}
				campaign = c
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			return eachEntry(cmd, args, opts, func(e activitylog.LogEntry) error {
				return enc.Encode(activitylog.ExtractContext(activitylog.Process(e), campaign))
			})
		},
	}
	cmd.Flags().StringVar(&campaignPath, "campaign", "", "path to a campaign JSON file")
	return cmd
}

func readCampaign(path string) (*activitylog.Campaign, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading campaign file: %w", err)
	}
	var c activitylog.Campaign
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parsing campaign file %s: %w", path, err)
	}
	return &c, nil
}

// eachEntry feeds every non-blank line of the inputs to fn as a LogEntry.
func eachEntry(cmd *cobra.Command, paths []string, opts *options, fn func(activitylog.LogEntry) error) error {
	if len(paths) == 0 {
		return scanEntries(cmd.InOrStdin(), "stdin", opts, fn)
	}
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			return fmt.Errorf("opening %s: %w", p, err)
		}
		err = scanEntries(f, p, opts, fn)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func scanEntries(r io.Reader, name string, opts *options, fn func(activitylog.LogEntry) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		entry, err := parseLine(line, opts)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", name, lineNo, err)
		}
		if err := fn(entry); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	return nil
}

func parseLine(line string, opts *options) (activitylog.LogEntry, error) {
	if !strings.HasPrefix(line, "{") {
		return activitylog.LogEntry{
			Action:        line,
			PerformedBy:   opts.performer,
			PerformerRole: activitylog.ParseRole(opts.role),
		}, nil
	}

	var entry activitylog.LogEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		return entry, fmt.Errorf("decoding log entry: %w", err)
	}
	entry.PerformerRole = activitylog.ParseRole(string(entry.PerformerRole))
	return entry, nil
}
