// BoxStack - 3D Bin Packing Optimizer
//
// A command line tool that packs boxes into as few identical bins as
// possible using a random-key genetic algorithm over an empty maximal space
// placement engine, and exports the packing as PDF, labels, DXF, XLSX and
// charts.
//
// Build:
//   go build -o boxstack ./cmd/boxstack
//
// Cross-compile:
//   GOOS=windows GOARCH=amd64 go build -o boxstack.exe ./cmd/boxstack
//   GOOS=darwin  GOARCH=arm64 go build -o boxstack-darwin ./cmd/boxstack

package main

import "github.com/piwi3910/BoxStack/cmd/boxstack/commands"

func main() {
	commands.Execute()
}
