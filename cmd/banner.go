package cmd

import (
	"fmt"

	"github.com/common-nighthawk/go-figure"
)

func printBanner() {
	figure.NewFigure("webcheck", "", true).Print()
	fmt.Println(colorInfo("Cyber Health Check - domain security posture scanner"))
	fmt.Println()
}
