package cli

import (
	"fmt"

	"bytemomo/moray/internal/adapter/artifactstore"
	"bytemomo/moray/internal/domain"
	"bytemomo/moray/internal/wordlist"

	"github.com/spf13/cobra"
)

var wordlistSize string

var wordlistsCmd = &cobra.Command{
	Use:   "wordlists",
	Short: "Generate and list the cached wordlist tiers",
	Long: `Materialize the wordlist cache ahead of a sweep so the lists can be
inspected or hand-tuned. A tier that already exists on disk is left
untouched; delete its file to force regeneration.

  moray wordlists
  moray wordlists --size large`,
	RunE: wordlistsCommand,
}

func init() {
	wordlistsCmd.Flags().StringVar(&wordlistSize, "size", "", "Only this size class: small|medium|large (default: all)")
	rootCmd.AddCommand(wordlistsCmd)
}

func wordlistsCommand(cmd *cobra.Command, args []string) error {
	sizes := []domain.SizeClass{domain.SizeSmall, domain.SizeMedium, domain.SizeLarge}
	if wordlistSize != "" {
		size := domain.SizeClass(wordlistSize)
		if err := size.Validate(); err != nil {
			return err
		}
		sizes = []domain.SizeClass{size}
	}

	gen := wordlist.New(artifactstore.New(outDir).WordlistDir())
	for _, size := range sizes {
		users, passwords, err := gen.EnsurePair(size)
		if err != nil {
			return err
		}
		fmt.Printf("%-7s %4d usernames  %s\n", size, len(users.Entries), users.Path)
		fmt.Printf("%-7s %4d passwords  %s\n", size, len(passwords.Entries), passwords.Path)
	}
	return nil
}
