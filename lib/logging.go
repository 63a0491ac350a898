package lib

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

type LoggerStruct struct {
	Print    func(args ...interface{})
	Flush    func()
	disabled bool
}

var Logger = &LoggerStruct{
	Print: func(args ...interface{}) {
		fmt.Fprint(os.Stderr, args...)
	},
	Flush:    func() {},
	disabled: strings.ToLower(os.Getenv("LOGGING") + " ")[:1] == "n",
}

var doDebug = strings.ToLower(os.Getenv("DEBUG") + " ")[:1] == "y"

func caller() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return ""
	}
	parts := strings.Split(file, "/")
	if len(parts) >= 2 {
		file = strings.Join(parts[len(parts)-2:], "/")
	}
	return fmt.Sprintf("%s:%d: ", file, line)
}

func (l *LoggerStruct) line(v ...interface{}) []interface{} {
	var xs []string
	for _, x := range v {
		xs = append(xs, fmt.Sprint(x))
	}
	return []interface{}{strings.Join(xs, " "), "\n"}
}

func (l *LoggerStruct) Println(v ...interface{}) {
	if !l.disabled {
		l.Print(append([]interface{}{caller()}, l.line(v...)...)...)
	}
}

func (l *LoggerStruct) Printf(format string, v ...interface{}) {
	if !l.disabled {
		l.Print(fmt.Sprintf(caller()+format, v...))
	}
}

func (l *LoggerStruct) Fatal(v ...interface{}) {
	l.Print(append([]interface{}{caller()}, l.line(v...)...)...)
	l.Flush()
	os.Exit(1)
}

func (l *LoggerStruct) Fatalf(format string, v ...interface{}) {
	l.Print(fmt.Sprintf(caller()+format, v...))
	l.Flush()
	os.Exit(1)
}

// Debug logs the wall time of a named call when DEBUG=y.
type Debug struct {
	start time.Time
	name  string
}

func NewDebug(name string) *Debug {
	return &Debug{start: time.Now(), name: name}
}

func (d *Debug) Log() {
	if doDebug {
		Logger.Println("debug:", d.name, "took", humanize.FtoaWithDigits(time.Since(d.start).Seconds(), 3)+"s")
	}
}
