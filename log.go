package mp3tag

import "log"

// Enables logging if set to true.
var Logging LogFlag

type LogFlag bool

func (l LogFlag) Println(args ...interface{}) {
	if l {
		log.Println(args...)
	}
}

func (l LogFlag) Printf(format string, args ...interface{}) {
	if l {
		log.Printf(format, args...)
	}
}
