// Package stdlogger writes logger.Logger output through a standard library
// log.Logger, with colored severity markers.
package stdlogger

import (
	"fmt"
	"log"

	"github.com/logrusorgru/aurora"
	"plugreload.io/livereload/logger"
)

type Options struct {
	NoColors bool // Print markers without ANSI colors.
	Quiet    bool // Drop info lines, keep errors.
}

type stdLogger struct {
	out     *log.Logger
	colors  aurora.Aurora
	options Options
}

func New(l *log.Logger, noColors bool) logger.Logger {
	return NewWithOptions(l, Options{NoColors: noColors})
}

func NewWithOptions(l *log.Logger, options Options) logger.Logger {
	return &stdLogger{
		out:     l,
		colors:  aurora.NewAurora(!options.NoColors),
		options: options,
	}
}

func (l *stdLogger) Info(v ...interface{}) {
	l.info(fmt.Sprint(v...))
}

func (l *stdLogger) Infof(format string, v ...interface{}) {
	l.info(fmt.Sprintf(format, v...))
}

func (l *stdLogger) Error(v ...interface{}) {
	l.out.Print(l.colors.Red("[error] "), fmt.Sprint(v...))
}

func (l *stdLogger) Errorf(format string, v ...interface{}) {
	l.out.Print(l.colors.Red("[error] "), fmt.Sprintf(format, v...))
}

func (l *stdLogger) info(line string) {
	if l.options.Quiet {
		return
	}
	l.out.Print(l.colors.Cyan("[info] "), line)
}
