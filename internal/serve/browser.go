package serve

import (
	"time"

	"github.com/pkg/browser"
	"github.com/rs/zerolog/log"
)

// openDelay gives the accept loop a beat to start before the browser's
// first request lands.
const openDelay = time.Second

// openBrowser launches the OS default browser at url after the delay.
// Launch failure is logged and otherwise ignored; serving never depends on
// a browser being available.
func openBrowser(url string, delay time.Duration) {
	time.Sleep(delay)
	if err := browser.OpenURL(url); err != nil {
		log.Warn().Err(err).Str("url", url).Msg("open browser failed")
		return
	}
	log.Debug().Str("url", url).Msg("opened browser")
}
