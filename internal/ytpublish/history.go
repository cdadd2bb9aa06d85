package ytpublish

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"mkuznets.com/go/ytpublish/internal/ledger"
)

type HistoryCommand struct {
	JSON bool `long:"json" description:"print as JSON"`
	Command
}

func (cmd *HistoryCommand) Execute([]string) error {
	defer cmd.Close()

	l, err := cmd.openLedger()
	if err != nil {
		return err
	}

	if !cmd.JSON {
		tw := tabwriter.NewWriter(os.Stdout, 0, 1, 2, ' ', 0)

		err := l.Map(func(video *ledger.Video) error {
			if _, err := fmt.Fprintln(tw, video.Row()); err != nil {
				return err
			}
			return nil
		})
		if err != nil {
			return err
		}
		return tw.Flush()
	}

	items := make([]*ledger.Video, 0)
	err = l.Map(func(video *ledger.Video) error {
		items = append(items, video)
		return nil
	})
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(items)
}
