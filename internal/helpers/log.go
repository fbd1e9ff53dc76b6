package helpers

import (
	"fmt"
	"log"
	"strings"

	"github.com/rs/zerolog"
)

type Logger interface {
	Println(v ...any)
	Printf(format string, v ...any)
	Print(v ...any)
}

type _defaultLogger struct {
}

func (l *_defaultLogger) Println(v ...any) {
	log.Println(v...)
}
func (l *_defaultLogger) Printf(format string, v ...any) {
	log.Printf(format, v...)
}
func (l *_defaultLogger) Print(v ...any) {
	log.Print(v...)
}

var DefaultLogger = _defaultLogger{}

type _silentLogger struct {
}

func (l *_silentLogger) Println(v ...any)               {}
func (l *_silentLogger) Printf(format string, v ...any) {}
func (l *_silentLogger) Print(v ...any)                 {}

var SilentLogger = _silentLogger{}

type _funcLogger struct {
	write func(string)
}

func FuncLogger(write func(string)) Logger {
	return &_funcLogger{write}
}

func (l *_funcLogger) Println(v ...any) {
	l.write(fmt.Sprintln(v...))
}
func (l *_funcLogger) Printf(format string, v ...any) {
	l.write(fmt.Sprintf(format, v...))
}
func (l *_funcLogger) Print(v ...any) {
	l.write(fmt.Sprint(v...))
}

// ZerologLogger forwards Logger calls to a zerolog.Logger at a fixed level.
type ZerologLogger struct {
	Log   zerolog.Logger
	Level zerolog.Level
}

var _ Logger = &ZerologLogger{}

func NewZerologLogger(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{Log: l, Level: zerolog.InfoLevel}
}

func (l *ZerologLogger) Println(v ...any) {
	l.Log.WithLevel(l.Level).Msg(strings.TrimSuffix(fmt.Sprintln(v...), "\n"))
}
func (l *ZerologLogger) Printf(format string, v ...any) {
	l.Log.WithLevel(l.Level).Msgf(format, v...)
}
func (l *ZerologLogger) Print(v ...any) {
	l.Log.WithLevel(l.Level).Msg(fmt.Sprint(v...))
}
