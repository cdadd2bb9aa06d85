package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

const (
	watchURLFormat = "https://www.youtube.com/watch?v=%s"

	// Fixed width so that byte order matches time order.
	keyTimeFormat = "2006-01-02T15:04:05.000000000Z"
)

type Video struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Filename    string    `json:"filename"`
	Privacy     string    `json:"privacy"`
	PublishedAt time.Time `json:"published_at"`
}

// Key orders records by publishing time.
func (v *Video) Key() []byte {
	return []byte(fmt.Sprintf("%s::%s", v.PublishedAt.UTC().Format(keyTimeFormat), v.ID))
}

func (v *Video) URL() string {
	return fmt.Sprintf(watchURLFormat, v.ID)
}

// Row is a tab-separated line for tabular output.
func (v *Video) Row() string {
	line := fmt.Sprintf("%s\t%s\t%s\t%s\t%s",
		v.PublishedAt.Local().Format("2006-01-02 15:04"),
		v.ID,
		v.Privacy,
		truncate(v.Title, 40),
		v.URL(),
	)
	return strings.ReplaceAll(line, "\n", " ")
}

func truncate(s string, n int) string {
	return runewidth.Truncate(s, n, "...")
}
