package main

import "github.com/Tiliavir/hubstaff-activity-report/cmd"

func main() {
	cmd.Execute()
}
