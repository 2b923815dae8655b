package main

import (
	"errors"
	"fmt"
	"io"
	"maturity/internal/blob"
	"maturity/internal/catalog"
	"maturity/internal/core"
	"maturity/pkg/domain"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"
)

var errUnknownTarget = errors.New("unknown target")

func newShowCmd(a *app) *cobra.Command {
	var asJSON bool
	var dimension string
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the current assessment",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(_ *cobra.Command, _ []string, s *core.Store) error {
			if asJSON {
				data, err := s.ExportSnapshot()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(a.out, string(data))
				return err
			}
			cur := s.Current()
			if dimension != "" {
				d, ok := cur.FindDimension(dimension)
				if !ok {
					return fmt.Errorf("%w: dimension %q", errUnknownTarget, dimension)
				}
				return writeDimension(a.out, d)
			}
			return writeSummary(a.out, cur)
		}),
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the assessment as JSON")
	cmd.Flags().StringVar(&dimension, "dimension", "", "show the proof points of one dimension")
	return cmd
}

func newProgressCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show how many dimensions have a maturity level",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(_ *cobra.Command, _ []string, s *core.Store) error {
			p := s.Progress()
			fmt.Fprintf(a.out, "%d/%d dimensions assessed (%.1f%%)\n", p.Completed, p.Total, p.Percentage)
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, t := range s.Catalog() {
				c, _ := s.DimensionCompletion(t.ID)
				fmt.Fprintf(tw, "%s\t%d/%d proof points\t%.0f%%\t%d n/a\n", t.ID, c.Completed, c.Applicable, c.Percentage, c.NotApplicable)
			}
			return tw.Flush()
		}),
	}
}

func newLevelsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "levels",
		Short: "List the maturity levels",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, l := range catalog.MaturityLevels() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", l.Level, l.Label, l.Description)
			}
			return tw.Flush()
		},
	}
}

func newCatalogCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [dimension]",
		Short: "List the dimensions, or the proof points of one dimension",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			if len(args) == 0 {
				for _, d := range catalog.Dimensions() {
					fmt.Fprintf(tw, "%s\t%s\t%d proof points\n", d.ID, d.Name, len(d.ProofPoints))
				}
				return tw.Flush()
			}
			d, ok := catalog.Lookup(args[0])
			if !ok {
				return fmt.Errorf("%w: dimension %q", errUnknownTarget, args[0])
			}
			for _, p := range d.ProofPoints {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Category, p.Description)
			}
			return tw.Flush()
		},
	}
}

func newOrgCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "org", Short: "Organization details"}
	var name string
	var assessors []string
	set := &cobra.Command{
		Use:   "set",
		Short: "Set the organization name and assessors",
		Args:  cobra.NoArgs,
		RunE: a.mutation(func(cmd *cobra.Command, _ []string, s *core.Store) (domain.Assessment, error) {
			cur := s.Current()
			if !cmd.Flags().Changed("name") {
				name = cur.OrganizationName
			}
			if !cmd.Flags().Changed("assessor") {
				assessors = cur.Assessors
			}
			return s.SetOrganizationInfo(cmd.Context(), name, assessors)
		}),
	}
	set.Flags().StringVar(&name, "name", "", "organization name")
	set.Flags().StringArrayVar(&assessors, "assessor", nil, "assessor name (repeatable)")
	cmd.AddCommand(set)
	return cmd
}

func newNotesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "notes", Short: "Overall assessment notes"}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <text>",
		Short: "Replace the overall notes",
		Args:  cobra.ExactArgs(1),
		RunE: a.mutation(func(cmd *cobra.Command, args []string, s *core.Store) (domain.Assessment, error) {
			return s.SetOverallNotes(cmd.Context(), args[0])
		}),
	})
	return cmd
}

func newDateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "date", Short: "Assessment date"}
	cmd.AddCommand(&cobra.Command{
		Use:   "set <YYYY-MM-DD>",
		Short: "Set the assessment date",
		Args:  cobra.ExactArgs(1),
		RunE: a.mutation(func(cmd *cobra.Command, args []string, s *core.Store) (domain.Assessment, error) {
			date, err := civil.ParseDate(args[0])
			if err != nil {
				return domain.Assessment{}, fmt.Errorf("%w: %v", core.ErrInvalidDate, err)
			}
			return s.SetAssessmentDate(cmd.Context(), date)
		}),
	})
	return cmd
}

func requireDimension(s *core.Store, id string) error {
	if _, ok := s.Current().FindDimension(id); !ok {
		return fmt.Errorf("%w: dimension %q", errUnknownTarget, id)
	}
	return nil
}

func requireProofPoint(s *core.Store, dimensionID, proofPointID string) error {
	d, ok := s.Current().FindDimension(dimensionID)
	if !ok {
		return fmt.Errorf("%w: dimension %q", errUnknownTarget, dimensionID)
	}
	if _, ok := d.FindProofPoint(proofPointID); !ok {
		return fmt.Errorf("%w: proof point %q in %s", errUnknownTarget, proofPointID, dimensionID)
	}
	return nil
}

func newDimensionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "dimension", Short: "Per-dimension level and notes"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "level <dimension> <inactive|launch|integrate|optimize|none>",
			Short: "Select the maturity level of a dimension",
			Args:  cobra.ExactArgs(2),
			RunE: a.mutation(func(cmd *cobra.Command, args []string, s *core.Store) (domain.Assessment, error) {
				if err := requireDimension(s, args[0]); err != nil {
					return domain.Assessment{}, err
				}
				level, err := domain.ParseMaturityLevel(args[1])
				if err != nil {
					return domain.Assessment{}, err
				}
				return s.SetMaturityLevel(cmd.Context(), args[0], level)
			}),
		},
		&cobra.Command{
			Use:   "notes <dimension> <text>",
			Short: "Replace the notes of a dimension",
			Args:  cobra.ExactArgs(2),
			RunE: a.mutation(func(cmd *cobra.Command, args []string, s *core.Store) (domain.Assessment, error) {
				if err := requireDimension(s, args[0]); err != nil {
					return domain.Assessment{}, err
				}
				return s.SetDimensionNotes(cmd.Context(), args[0], args[1])
			}),
		},
	)
	return cmd
}

func newProofCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "proof", Short: "Proof point checklist"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "toggle <dimension> <proof-point>",
			Short: "Toggle whether a proof point is completed",
			Args:  cobra.ExactArgs(2),
			RunE: a.mutation(func(cmd *cobra.Command, args []string, s *core.Store) (domain.Assessment, error) {
				if err := requireProofPoint(s, args[0], args[1]); err != nil {
					return domain.Assessment{}, err
				}
				return s.ToggleProofPointCompleted(cmd.Context(), args[0], args[1])
			}),
		},
		&cobra.Command{
			Use:   "na <dimension> <proof-point>",
			Short: "Toggle whether a proof point is not applicable",
			Args:  cobra.ExactArgs(2),
			RunE: a.mutation(func(cmd *cobra.Command, args []string, s *core.Store) (domain.Assessment, error) {
				if err := requireProofPoint(s, args[0], args[1]); err != nil {
					return domain.Assessment{}, err
				}
				return s.ToggleProofPointNotApplicable(cmd.Context(), args[0], args[1])
			}),
		},
		&cobra.Command{
			Use:   "evidence <dimension> <proof-point> <text>",
			Short: "Replace the evidence text of a proof point",
			Args:  cobra.ExactArgs(3),
			RunE: a.mutation(func(cmd *cobra.Command, args []string, s *core.Store) (domain.Assessment, error) {
				if err := requireProofPoint(s, args[0], args[1]); err != nil {
					return domain.Assessment{}, err
				}
				return s.SetProofPointEvidence(cmd.Context(), args[0], args[1], args[2])
			}),
		},
	)
	return cmd
}

func newResetCmd(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Discard the assessment and start a fresh one",
		Args:  cobra.NoArgs,
		RunE: a.mutation(func(cmd *cobra.Command, _ []string, s *core.Store) (domain.Assessment, error) {
			if s.HasUserContent() && !force {
				return domain.Assessment{}, errors.New("assessment has entered data; rerun with --force to discard it")
			}
			return s.Reset(cmd.Context())
		}),
	}
	cmd.Flags().BoolVar(&force, "force", false, "discard entered data without asking")
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the assessment as JSON",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(_ *cobra.Command, _ []string, s *core.Store) error {
			data, err := s.ExportSnapshot()
			if err != nil {
				return err
			}
			if out == "" || out == "-" {
				_, err = fmt.Fprintln(a.out, string(data))
				return err
			}
			if err := os.WriteFile(out, append(data, '\n'), 0o644); err != nil {
				return fmt.Errorf("write export: %w", err)
			}
			fmt.Fprintf(a.out, "exported to %s\n", out)
			return nil
		}),
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Replace the assessment with a JSON snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: a.mutation(func(cmd *cobra.Command, args []string, s *core.Store) (domain.Assessment, error) {
			var (
				data []byte
				err  error
			)
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return domain.Assessment{}, fmt.Errorf("read snapshot: %w", err)
			}
			return s.ImportSnapshot(cmd.Context(), data)
		}),
	}
}

func newArchiveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "archive", Short: "Immutable snapshots in the archive blob store"}
	cmd.AddCommand(
		newArchiveSaveCmd(a),
		newArchiveListCmd(a),
		newArchiveRestoreCmd(a),
		newArchiveDeleteCmd(a),
	)
	return cmd
}

func newArchiveSaveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "save",
		Short: "Archive the current assessment",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, _ []string, s *core.Store) error {
			arch, err := a.openArchive(cmd.Context())
			if err != nil {
				return err
			}
			entry, err := arch.Save(cmd.Context(), s.Current())
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, entry.Key)
			return nil
		}),
	}
}

func newArchiveListCmd(a *app) *cobra.Command {
	var (
		all    bool
		urls   bool
		expiry time.Duration
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List archived snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, _ []string, s *core.Store) error {
			arch, err := a.openArchive(cmd.Context())
			if err != nil {
				return err
			}
			id := s.Current().ID
			if all {
				id = ""
			}
			entries, err := arch.List(cmd.Context(), id)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			for _, e := range entries {
				date := "-"
				if e.AssessmentDate.IsValid() {
					date = e.AssessmentDate.String()
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d bytes", e.Key, e.SavedAt.Format("2006-01-02 15:04:05"), date, e.Organization, e.Size)
				if urls {
					u, err := arch.ShareURL(cmd.Context(), e.Key, expiry)
					switch {
					case errors.Is(err, blob.ErrUnsupported):
						u = "-"
					case err != nil:
						return err
					}
					fmt.Fprintf(tw, "\t%s", u)
				}
				fmt.Fprintln(tw)
			}
			return tw.Flush()
		}),
	}
	cmd.Flags().BoolVar(&all, "all", false, "include snapshots of earlier assessments")
	cmd.Flags().BoolVar(&urls, "urls", false, "add a download URL per snapshot where the driver supports it")
	cmd.Flags().DurationVar(&expiry, "url-expiry", 15*time.Minute, "lifetime of signed download URLs")
	return cmd
}

func newArchiveRestoreCmd(a *app) *cobra.Command {
	var latest bool
	cmd := &cobra.Command{
		Use:   "restore [key]",
		Short: "Replace the assessment with an archived snapshot",
		Args: func(cmd *cobra.Command, args []string) error {
			if latest {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: a.mutation(func(cmd *cobra.Command, args []string, s *core.Store) (domain.Assessment, error) {
			arch, err := a.openArchive(cmd.Context())
			if err != nil {
				return domain.Assessment{}, err
			}
			var key string
			if latest {
				id := s.Current().ID
				entry, ok, err := arch.Latest(cmd.Context(), id)
				if err != nil {
					return domain.Assessment{}, err
				}
				if !ok {
					return domain.Assessment{}, fmt.Errorf("no archived snapshot of assessment %s", id)
				}
				key = entry.Key
			} else {
				key = strings.TrimSpace(args[0])
			}
			data, err := arch.Load(cmd.Context(), key)
			if err != nil {
				return domain.Assessment{}, err
			}
			return s.ImportSnapshot(cmd.Context(), data)
		}),
	}
	cmd.Flags().BoolVar(&latest, "latest", false, "restore the newest snapshot of the current assessment")
	return cmd
}

func newArchiveDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <key>",
		Short: "Remove an archived snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arch, err := a.openArchive(cmd.Context())
			if err != nil {
				return err
			}
			key := strings.TrimSpace(args[0])
			deleted, err := arch.Delete(cmd.Context(), key)
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("%w: archived snapshot %q", errUnknownTarget, key)
			}
			fmt.Fprintf(a.out, "deleted %s\n", key)
			return nil
		},
	}
}
