package main

import (
	"github.com/formula-lang/formula-api/cmd"
	"github.com/formula-lang/formula-api/util"
)

func main() {
	setup := cmd.GetSetup("formulas")
	var influxDbClient *util.InfluxDbClient
	if len(setup.InfluxDbHost) > 0 {
		user, password := util.ParseAuthInfo(setup.InfluxDbAuth)
		influxDbClient = util.NewInfluxDbClient(setup.InfluxDbHost, user, password)
	}
	s := NewFormulaServer(influxDbClient)
	s.Run(setup.Port)
}
