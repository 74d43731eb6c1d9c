/*
PURPOSE:
  Defines the 'generate' subcommand.
  Builds a standalone test corpus without benchmarking anything.

REQUIREMENTS:
  User-specified:
  - Produce a corpus at a given path, size, profile and duplicate ratio.
  - The corpus must carry its ground truth (metadata.json) so it can be
    benchmarked later or inspected by hand.

  Implementation-discovered:
  - Generation destructively recreates the output directory; the
    generator's unsafe-path guard protects / and $HOME.

ARCHITECTURE INTEGRATION:
  - Calls: internal/generator.Generate
  - Uses: internal/config

ERROR HANDLING:
  - Returns error if config load, size parse or generation fails.

IMPLEMENTATION RULES:
  - Setup flags in init().
  - Logic: Load Config -> Parse flags -> Generate.

USAGE:
  dedup-bench generate -o ./corpus -s 500M --profile mixed --dup-ratio 0.3

SELF-HEALING INSTRUCTIONS:
  - Unknown profile errors list come from the config's size_profiles.

RELATED FILES:
  - internal/generator/dataset.go

MAINTENANCE:
  - Update when generation gains new knobs.
*/

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daryltucker/dedup-bench/internal/config"
	"github.com/daryltucker/dedup-bench/internal/generator"
)

var (
	genOutput   string
	genSize     string
	genProfile  string
	genDupRatio float64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a standalone test corpus",
	Long: `Generates a directory tree of synthetic files with a precisely
controlled duplicate ratio and size distribution. The duplicate structure
is recorded in metadata.json inside the corpus root as ground truth.

WARNING: the output directory is deleted and recreated.`,
	Example: `  # 500M mixed-profile corpus with 30% duplicates
  dedup-bench generate -o ./corpus -s 500M --profile mixed --dup-ratio 0.3

  # Small corpus dominated by small files
  dedup-bench generate -o /tmp/corpus -s 50M --profile small-heavy --dup-ratio 0.6`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		totalSize, err := config.ParseSize(genSize)
		if err != nil {
			return err
		}
		if genDupRatio < 0 || genDupRatio > 1 {
			return fmt.Errorf("dup-ratio must be in [0,1], got %v", genDupRatio)
		}

		_, err = generator.Generate(genOutput, totalSize, genDupRatio, genProfile, cfg)
		return err
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&genOutput, "output", "o", "", "Output directory for the corpus (required)")
	generateCmd.Flags().StringVarP(&genSize, "size", "s", "500M", "Total corpus size (e.g. 500M, 2G)")
	generateCmd.Flags().StringVar(&genProfile, "profile", "mixed", "Size-distribution profile")
	generateCmd.Flags().Float64Var(&genDupRatio, "dup-ratio", 0.3, "Target duplicate ratio in [0,1]")
	generateCmd.MarkFlagRequired("output")
}
