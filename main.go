// main is the entrypoint for the klord CLI.
package main

import (
	"github.com/viratco/klord/cmd"
	"github.com/viratco/klord/internal/contract"
	"github.com/viratco/klord/internal/iocache"
)

func main() {
	cmd.SetCacheManager(iocache.Manager)

	err := cmd.Execute()

	if profErr := cmd.StopProfiling(); profErr != nil {
		contract.LogWarn("Failed to stop profiling", profErr)
	}
	iocache.CloseStores()

	if err != nil {
		contract.LogFatal("Cannot run klord", err)
	}
}
