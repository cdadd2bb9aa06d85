package ytpublish

import (
	"fmt"

	"mkuznets.com/go/ytpublish/internal/version"
)

type VersionCommand struct {
	Command
}

func (cmd *VersionCommand) Execute([]string) error {
	fmt.Print(version.Version())
	return nil
}

// Init skips config loading so the version is printable with a broken config.
func (cmd *VersionCommand) Init(interface{}) error {
	return nil
}
