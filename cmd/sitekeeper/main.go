package main

import (
	"os"

	"github.com/dmitrijs2005/sitekeeper/internal/buildinfo"
	"github.com/dmitrijs2005/sitekeeper/internal/cli"
)

func main() {
	buildinfo.PrintBuildData(os.Stderr)
	cli.Execute()
}
