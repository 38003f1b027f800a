package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/feargalr/Daedalus/internal/pkg/cmdutil"
	"github.com/feargalr/Daedalus/internal/pkg/logger"
	"github.com/feargalr/Daedalus/internal/pkg/output"
	"github.com/feargalr/Daedalus/internal/pkg/runner"
	"github.com/feargalr/Daedalus/internal/pkg/sequence"
	"github.com/feargalr/Daedalus/internal/pkg/signals"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Find every epitope occurrence in a protein FASTA",
	Long: `Find every exact occurrence of every epitope in every protein.

Epitope sequences are upper-cased and stripped of non amino-acid letters,
then filtered by length (0 means no bound). Proteins are upper-cased only.
Each hit is written as one TSV row:

  protein  start  end  peptide  epitope_ids

with 1-based inclusive positions and comma-joined epitope identifiers.`,
	Example: `  acmatch match --epitopes iedb.fasta --proteins uniprot.fasta.gz --out hits.tsv --min-len 8 --max-len 15`,
	Args:    cobra.NoArgs,
	RunE:    runMatch,
}

func runMatch(cmd *cobra.Command, args []string) error {
	opts, err := matchOptions(cmd)
	if err != nil {
		return err
	}

	if cmdutil.GetBoolConfig(cmd, "build-index", "build_index") {
		logger.Warn("--build-index is accepted for compatibility and ignored; no index files are written")
	}

	ctx, stop := signals.WithShutdown(cmd.Context())
	defer stop()

	_, err = runner.Run(ctx, opts)
	return err
}

func matchOptions(cmd *cobra.Command) (runner.Options, error) {
	opts := runner.Options{
		EpitopesPath: cmdutil.GetStringConfig(cmd, "epitopes", "epitopes"),
		ProteinsPath: cmdutil.GetStringConfig(cmd, "proteins", "proteins"),
		OutputPath:   cmdutil.GetStringConfig(cmd, "out", "out"),
		Length: sequence.LengthRange{
			Min: cmdutil.GetIntConfig(cmd, "min-len", "min_len"),
			Max: cmdutil.GetIntConfig(cmd, "max-len", "max_len"),
		},
		KeepAmbiguous: cmdutil.GetBoolConfig(cmd, "keep-ambiguous", "keep_ambiguous"),
		Workers:       cmdutil.GetIntConfig(cmd, "workers", "workers"),
		Dense:         cmdutil.GetBoolConfig(cmd, "dense", "dense"),
		MetricsPath:   cmdutil.GetStringConfig(cmd, "metrics-file", "metrics_file"),
		SummaryPath:   cmdutil.GetStringConfig(cmd, "summary", "summary"),
		SummaryWriter: cmd.ErrOrStderr(),
		StyledSummary: output.IsStderrTTY(),
	}

	bufSize, err := cmdutil.ParseSizeString(cmdutil.GetStringConfig(cmd, "write-buffer", "write_buffer"))
	if err != nil {
		return opts, &sequence.ValidationError{Field: "write-buffer", Message: err.Error()}
	}
	if bufSize > math.MaxInt32 {
		return opts, &sequence.ValidationError{Field: "write-buffer", Message: fmt.Sprintf("%d exceeds %d bytes", bufSize, math.MaxInt32)}
	}
	opts.WriteBuffer = int(bufSize)

	return opts, opts.Validate()
}

func init() {
	matchCmd.Flags().StringP("epitopes", "e", "", "epitope FASTA (peptides), optionally gzipped")
	matchCmd.Flags().StringP("proteins", "p", "", "protein FASTA (targets), optionally gzipped")
	matchCmd.Flags().StringP("out", "o", "", "output TSV ('-' for stdout)")
	matchCmd.Flags().Int("min-len", 0, "minimum epitope length to include (0 = no min)")
	matchCmd.Flags().Int("max-len", 0, "maximum epitope length to include (0 = no max)")
	matchCmd.Flags().Bool("keep-ambiguous", true, "keep ambiguous residue letters (X, U, O, B, J, Z) in epitopes")
	matchCmd.Flags().IntP("workers", "w", 0, "scan workers (0 = one per CPU)")
	matchCmd.Flags().Bool("dense", false, "compile the automaton into a full transition table (faster, more memory)")
	matchCmd.Flags().String("write-buffer", "1M", "report write buffer size (e.g. 64K, 1M)")
	matchCmd.Flags().String("metrics-file", "", "write Prometheus metrics to this textfile")
	matchCmd.Flags().String("summary", "", "write a run summary (.json, .yaml or .yml; '-' for JSON on stdout)")
	matchCmd.Flags().Bool("build-index", false, "accepted for compatibility; index files are never written")
}
