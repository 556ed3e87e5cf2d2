package cmd

import (
	"bufio"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/formula-lang/formula-api/util"
)

type FormulaSetup struct {
	DataDir      string
	Port         int
	InfluxDbHost string
	InfluxDbAuth string
}

// GetSetup reads the service configuration from setup.txt in the data
// directory passed as the single command-line argument.
func GetSetup(app string) FormulaSetup {
	if len(os.Args) != 2 {
		log.Fatal("Invalid command-line arguments. Please pass the data directory as argument.")
	}
	dataDir := os.Args[1]
	util.MustDirExist(dataDir)
	setup := FormulaSetup{
		DataDir: dataDir,
		Port:    8080, // default value
	}
	setupPath := filepath.Join(dataDir, "setup.txt")
	file, err := os.Open(setupPath)
	if err != nil {
		log.Fatalf("Failed to open: %v", err)
	}
	defer file.Close()
	scanner := bufio.NewScanner(file)
	scanner.Split(bufio.ScanLines)
	for scanner.Scan() {
		entry := strings.Split(scanner.Text(), "=")
		if len(entry) != 2 {
			continue
		}
		key := strings.TrimSpace(entry[0])
		value := strings.TrimSpace(entry[1])
		switch key {
		case "FORMULA_LOG_DIR":
			util.InitLog(filepath.Join(value, app))
		case "FORMULA_PORT":
			p, err := strconv.Atoi(value)
			if err != nil {
				log.Printf("Invalid port: %s", value)
			} else {
				setup.Port = p
			}
		case "FORMULA_INFLUXDB_HOST":
			setup.InfluxDbHost = value
		case "FORMULA_INFLUXDB_AUTH":
			setup.InfluxDbAuth = value
		}
	}
	return setup
}
