package intake

import (
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
	"mkuznets.com/go/ytpublish/internal/utils"
)

const progressInterval = 5 * time.Second

type progressReader struct {
	r       io.Reader
	name    string
	read    uint64
	limiter *rate.Limiter
}

func newProgressReader(r io.Reader, name string) *progressReader {
	limiter := rate.NewLimiter(rate.Every(progressInterval), 1)
	// The first token is spent so that short transfers stay quiet.
	limiter.Allow()
	return &progressReader{r: r, name: name, limiter: limiter}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	p.read += uint64(n)
	if n > 0 && p.limiter.Allow() {
		log.Info().
			Str("filename", p.name).
			Str("fetched", utils.IBytes(p.read)).
			Msg("Progress")
	}
	return n, err
}
