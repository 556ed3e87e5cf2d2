package util

import (
	"log"
	"os"
)

func MustDirExist(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		log.Fatalf("Directory not found: %s", path)
	}
}
