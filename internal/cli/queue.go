package cli

import (
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	practicesession "github.com/remaimber-it/imagequiz/internal/domain/practice_session"
	"github.com/remaimber-it/imagequiz/internal/domain/questionbank"
)

var (
	queueBank int
	queueSize int
	queueSeed uint64
)

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Print one randomly drawn session queue",
	Long: `Draw a session queue the way the server does: size distinct question
ids from 1 to bank, in presentation order. A non-zero --seed makes the draw
reproducible.`,
	Args: cobra.NoArgs,
	RunE: runQueue,
}

func init() {
	queueCmd.Flags().IntVar(&queueBank, "bank", questionbank.DefaultSize, "number of questions in the bank")
	queueCmd.Flags().IntVar(&queueSize, "size", practicesession.DefaultSize, "questions per session")
	queueCmd.Flags().Uint64Var(&queueSeed, "seed", 0, "seed for a reproducible draw (0 draws randomly)")
	rootCmd.AddCommand(queueCmd)
}

func runQueue(cmd *cobra.Command, _ []string) error {
	var rng *rand.Rand
	if queueSeed != 0 {
		rng = rand.New(rand.NewPCG(queueSeed, queueSeed))
	}

	queue, err := practicesession.NewQueue(queueBank, queueSize, rng)
	if err != nil {
		return err
	}

	ids := make([]string, len(queue))
	for i, id := range queue {
		ids[i] = strconv.Itoa(id)
	}
	cmd.Println(strings.Join(ids, " "))
	return nil
}
