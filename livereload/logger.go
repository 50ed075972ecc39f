package livereload

import (
	"log"
	"os"

	"plugreload.io/livereload/logger"
	"plugreload.io/livereload/stdlogger"
)

func newDefaultLogger(noColors bool) logger.Logger {
	return stdlogger.New(log.New(os.Stderr, "", log.LstdFlags), noColors)
}
