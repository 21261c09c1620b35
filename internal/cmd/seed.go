package cmd

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dendrascience/dirsplit/util"
)

// seedOptions controls the sample tree generated by seed.
type seedOptions struct {
	count   int
	buckets int
	meta    int // percentage of logs that get a .meta companion
	verbose bool
}

// newSeedCmd creates and returns the seed subcommand. It generates a
// sample tree to split: .log files, most with a .meta companion, spread
// over bucket subdirectories.
func (a *app) newSeedCmd() *cobra.Command {
	opts := seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed OUTPUT",
		Short: "Generate a sample tree of log files with metadata companions",
		Long: `Generate a sample directory tree for trying out split.

Creates --count files named <id>.log in bucket_NN subdirectories of OUTPUT.
The bucket is derived from the file name, so it is stable for a given id.
Each log holds a few UUID lines; --meta percent of them also get a
<id>.meta file holding the log's name.

Split the result with:
  dirsplit split OUTPUT -e log -p '.*\.meta$'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			created, err := runSeed(cmd.ErrOrStderr(), args[0], opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created %d files in %s\n", created, args[0])
			return nil
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "c", 100, "Number of log files to generate")
	cmd.Flags().IntVarP(&opts.buckets, "buckets", "b", 8, "Number of bucket subdirectories")
	cmd.Flags().IntVar(&opts.meta, "meta", 75, "Percentage of log files that get a .meta companion")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")

	return cmd
}

// runSeed writes the sample tree under outputPath. With opts.verbose a
// progress line goes to progress after every thousandth file.
func runSeed(progress io.Writer, outputPath string, opts seedOptions) (int, error) {
	if opts.count < 0 || opts.buckets < 1 {
		return 0, fmt.Errorf("invalid seed options: count %d, buckets %d", opts.count, opts.buckets)
	}
	if err := os.MkdirAll(outputPath, 0o755); err != nil {
		return 0, fmt.Errorf("failed to create output directory: %w", err)
	}

	created := 0
	wrote := func() {
		created++
		if opts.verbose && created%1000 == 0 {
			fmt.Fprintf(progress, "Created %d files...\n", created)
		}
	}
	for range opts.count {
		id := uuid.New()
		name := id.String()[:8] + ".log"
		dir := filepath.Join(outputPath, fmt.Sprintf("bucket_%02d", util.Bucket(name, opts.buckets)))
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return created, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}

		lines, _ := rand.Int(rand.Reader, big.NewInt(4))
		content := id.String() + "\n"
		for range lines.Int64() {
			content += uuid.NewString() + "\n"
		}
		logPath := filepath.Join(dir, name)
		if err := os.WriteFile(logPath, []byte(content), 0o644); err != nil {
			return created, fmt.Errorf("failed to write %s: %w", logPath, err)
		}
		wrote()

		roll, _ := rand.Int(rand.Reader, big.NewInt(100))
		if roll.Int64() >= int64(opts.meta) {
			continue
		}
		metaPath := filepath.Join(dir, id.String()[:8]+".meta")
		if err := os.WriteFile(metaPath, []byte(name+"\n"), 0o644); err != nil {
			return created, fmt.Errorf("failed to write %s: %w", metaPath, err)
		}
		wrote()
	}
	return created, nil
}
