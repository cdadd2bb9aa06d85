package staging

import (
	"syscall"

	"github.com/rs/zerolog/log"
	"mkuznets.com/go/ytpublish/internal/utils"
)

// LowSpace is the free space below which a warning is logged.
const LowSpace = 1 << 30 // 1 GiB

// Free returns the space available to unprivileged users, or 0 if unknown.
func (d *Dir) Free() uint64 {
	var st syscall.Statfs_t
	if err := syscall.Statfs(d.root, &st); err != nil {
		return 0
	}
	return st.Bavail * uint64(st.Bsize)
}

// CheckSpace logs the free space and reports whether it is above LowSpace.
func (d *Dir) CheckSpace() bool {
	free := d.Free()
	if free < LowSpace {
		log.Warn().
			Str("path", d.root).
			Str("free", utils.IBytes(free)).
			Msgf("Staging directory has less than %s free", utils.IBytes(LowSpace))
		return false
	}
	log.Debug().Str("path", d.root).Str("free", utils.IBytes(free)).Msg("Staging directory")
	return true
}
