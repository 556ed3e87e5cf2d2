package util

import (
	"log"
	"os"
)

// InitLog redirects the standard logger to the given file. An empty path
// keeps logging on stderr.
func InitLog(logFile string) {
	if len(logFile) > 0 {
		f, err := os.OpenFile(logFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatalf("Error opening log file: %v", err)
		}
		log.SetOutput(f)
	}
}
